// file: internals/features/peminjaman/service/peminjaman_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/authz"
	"dsr_faste_backend/internals/features/peminjaman/dto"
	"dsr_faste_backend/internals/features/peminjaman/model"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

const ErrAksiDitolak = "Aksi tidak diizinkan untuk peran Anda"

// PeminjamanAPI: subset DSR API yang dipakai service (diimplementasi dsrapi.Client).
type PeminjamanAPI interface {
	ListPeminjaman(ctx context.Context, token string, f dsrapi.ListFilter) ([]model.Peminjaman, error)
	GetPeminjaman(ctx context.Context, token string, id int64) (*model.Peminjaman, *string, error)
	CreatePeminjaman(ctx context.Context, token string, payload dsrapi.CreatePayload) (*model.Peminjaman, error)
	Verify(ctx context.Context, token string, id int64, v model.Verifikasi) (string, error)
	Activate(ctx context.Context, token string, id int64) (string, error)
	Return(ctx context.Context, token string, id int64) (string, error)
	ScanPickup(ctx context.Context, token string, id int64) (string, error)
	ScanReturn(ctx context.Context, token string, id int64) (string, error)
	ListLokasiAvailable(ctx context.Context, token string) ([]model.Lokasi, error)
}

// ActionLogStore: penyimpanan jejak aksi (nil = tidak dicatat).
type ActionLogStore interface {
	Create(ctx context.Context, row *model.PeminjamanActionLogModel) error
	ListByPeminjaman(ctx context.Context, peminjamanID int64, limit int) ([]model.PeminjamanActionLogModel, error)
}

type PeminjamanService struct {
	API  PeminjamanAPI
	Logs ActionLogStore
}

func NewPeminjamanService(api PeminjamanAPI, logs ActionLogStore) *PeminjamanService {
	return &PeminjamanService{API: api, Logs: logs}
}

/* =========================================================
   READ
========================================================= */

// List: daftar dari DSR API → filter lokal → LoanView → halaman.
func (s *PeminjamanService) List(ctx context.Context, actor helperAuth.Actor, token string, q dto.ListQuery) ([]dto.LoanView, helper.Pagination, error) {
	items, err := s.API.ListPeminjaman(ctx, token, q.Filter())
	if err != nil {
		return nil, helper.Pagination{}, dsrapi.AsFiberError(err)
	}

	views := make([]dto.LoanView, 0, len(items))
	for i := range items {
		p := &items[i]
		if actor.Is(constants.RoleCivitas) && !isOwner(p, actor) {
			continue
		}
		if q.Kategori != "" && authz.Classify(p) != model.Kategori(q.Kategori) {
			continue
		}
		if !MatchSearch(p, q.Q) {
			continue
		}
		v := dto.NewLoanView(p, actor)
		if q.PerluAksi && len(v.Aksi) == 0 {
			continue
		}
		views = append(views, v)
	}

	page, meta := helper.Paginate(views, q.Paging)
	return page, meta, nil
}

// Detail: civitas hanya boleh melihat peminjaman miliknya (selain itu 404).
func (s *PeminjamanService) Detail(ctx context.Context, actor helperAuth.Actor, token string, id int64) (dto.LoanView, error) {
	p, qr, err := s.API.GetPeminjaman(ctx, token, id)
	if err != nil {
		return dto.LoanView{}, dsrapi.AsFiberError(err)
	}
	if actor.Is(constants.RoleCivitas) && !isOwner(p, actor) {
		return dto.LoanView{}, fiber.NewError(fiber.StatusNotFound, "Peminjaman tidak ditemukan")
	}
	v := dto.NewLoanView(p, actor)
	v.QRCode = qr
	return v, nil
}

// History: jejak aksi gateway untuk satu peminjaman.
func (s *PeminjamanService) History(ctx context.Context, id int64) ([]model.PeminjamanActionLogModel, error) {
	if s.Logs == nil {
		return []model.PeminjamanActionLogModel{}, nil
	}
	rows, err := s.Logs.ListByPeminjaman(ctx, id, 100)
	if err != nil {
		log.Printf("[ERROR] Gagal ambil riwayat peminjaman #%d: %v", id, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat")
	}
	return rows, nil
}

func (s *PeminjamanService) LokasiAvailable(ctx context.Context, token string) ([]model.Lokasi, error) {
	out, err := s.API.ListLokasiAvailable(ctx, token)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	return out, nil
}

/* =========================================================
   WRITE
========================================================= */

// Create: hanya civitas; form sudah dinormalisasi & divalidasi controller.
func (s *PeminjamanService) Create(ctx context.Context, actor helperAuth.Actor, token string, req *dto.CreatePeminjamanRequest) (*model.Peminjaman, error) {
	if !actor.Is(constants.RoleCivitas) {
		return nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorCivitas("pengajuan peminjaman"))
	}
	p, err := s.API.CreatePeminjaman(ctx, token, req.ToPayload())
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Peminjaman baru #%d oleh nik=%s (%d barang)", p.ID, actor.NIK, len(req.BarangList))
	return p, nil
}

// Verify: terima / tolak.
func (s *PeminjamanService) Verify(ctx context.Context, actor helperAuth.Actor, token string, id int64, v model.Verifikasi) (dto.LoanView, string, error) {
	aksi, ok := authz.AksiUntukVerifikasi(v)
	if !ok {
		return dto.LoanView{}, "", fiber.NewError(fiber.StatusBadRequest, "verifikasi harus diterima atau ditolak")
	}
	return s.transition(ctx, actor, token, id, aksi, model.SumberDashboard)
}

func (s *PeminjamanService) Activate(ctx context.Context, actor helperAuth.Actor, token string, id int64) (dto.LoanView, string, error) {
	return s.transition(ctx, actor, token, id, model.AksiAktifkan, model.SumberDashboard)
}

func (s *PeminjamanService) Return(ctx context.Context, actor helperAuth.Actor, token string, id int64) (dto.LoanView, string, error) {
	return s.transition(ctx, actor, token, id, model.AksiKembalikan, model.SumberDashboard)
}

// ScanPickup: kode QR "PINJAM-{id}" → aktifkan.
func (s *PeminjamanService) ScanPickup(ctx context.Context, actor helperAuth.Actor, token, kode string) (dto.LoanView, string, error) {
	id, err := parseKode(kode)
	if err != nil {
		return dto.LoanView{}, "", err
	}
	return s.ScanPickupByID(ctx, actor, token, id)
}

// ScanReturn: kode QR "PINJAM-{id}" → kembalikan.
func (s *PeminjamanService) ScanReturn(ctx context.Context, actor helperAuth.Actor, token, kode string) (dto.LoanView, string, error) {
	id, err := parseKode(kode)
	if err != nil {
		return dto.LoanView{}, "", err
	}
	return s.ScanReturnByID(ctx, actor, token, id)
}

func (s *PeminjamanService) ScanPickupByID(ctx context.Context, actor helperAuth.Actor, token string, id int64) (dto.LoanView, string, error) {
	log.Printf("[SCAN] pickup #%d oleh nik=%s", id, actor.NIK)
	return s.transition(ctx, actor, token, id, model.AksiAktifkan, model.SumberScan)
}

func (s *PeminjamanService) ScanReturnByID(ctx context.Context, actor helperAuth.Actor, token string, id int64) (dto.LoanView, string, error) {
	log.Printf("[SCAN] return #%d oleh nik=%s", id, actor.NIK)
	return s.transition(ctx, actor, token, id, model.AksiKembalikan, model.SumberScan)
}

/* =========================================================
   INTERNAL
========================================================= */

// transition: snapshot → cek engine → panggil DSR API → catat.
// DSR API tidak pernah dipanggil untuk aksi yang ditolak engine.
func (s *PeminjamanService) transition(ctx context.Context, actor helperAuth.Actor, token string, id int64, aksi model.Aksi, sumber string) (dto.LoanView, string, error) {
	p, _, err := s.API.GetPeminjaman(ctx, token, id)
	if err != nil {
		return dto.LoanView{}, "", dsrapi.AsFiberError(err)
	}

	if !authz.Can(p, actor, aksi) {
		log.Printf("[WARN] Aksi %s #%d ditolak: role=%s status=%s verifikasi=%s", aksi, id, actor.Role, p.Status, p.Verifikasi)
		return dto.LoanView{}, "", fiber.NewError(fiber.StatusForbidden, ErrAksiDitolak)
	}
	keStatus, keVerif, err := authz.Apply(p, aksi)
	if err != nil {
		return dto.LoanView{}, "", fiber.NewError(fiber.StatusConflict, err.Error())
	}

	msg, callErr := s.call(ctx, token, id, aksi, sumber)
	s.record(ctx, actor, p, aksi, sumber, keStatus, keVerif, msg, callErr)
	if callErr != nil {
		return dto.LoanView{}, "", dsrapi.AsFiberError(callErr)
	}

	after := *p
	after.Status = keStatus
	after.Verifikasi = keVerif
	if msg == "" {
		msg = defaultPesan(aksi, sumber, id)
	}
	log.Printf("[INFO] Aksi %s #%d oleh nik=%s (%s): %s/%s → %s/%s", aksi, id, actor.NIK, sumber, p.Status, p.Verifikasi, keStatus, keVerif)
	return dto.NewLoanView(&after, actor), msg, nil
}

func (s *PeminjamanService) call(ctx context.Context, token string, id int64, aksi model.Aksi, sumber string) (string, error) {
	switch aksi {
	case model.AksiTerima, model.AksiTolak:
		v, _ := authz.VerifikasiUntuk(aksi)
		return s.API.Verify(ctx, token, id, v)
	case model.AksiAktifkan:
		if sumber == model.SumberScan {
			return s.API.ScanPickup(ctx, token, id)
		}
		return s.API.Activate(ctx, token, id)
	case model.AksiKembalikan:
		if sumber == model.SumberScan {
			return s.API.ScanReturn(ctx, token, id)
		}
		return s.API.Return(ctx, token, id)
	}
	return "", fmt.Errorf("aksi %q tidak dikenal", aksi)
}

// record: kegagalan pencatatan hanya di-log, tidak menggagalkan request.
func (s *PeminjamanService) record(ctx context.Context, actor helperAuth.Actor, p *model.Peminjaman, aksi model.Aksi, sumber string, keStatus model.Status, keVerif model.Verifikasi, msg string, callErr error) {
	if s.Logs == nil {
		return
	}
	row := &model.PeminjamanActionLogModel{
		PeminjamanID:      p.ID,
		Aksi:              aksi,
		Sumber:            sumber,
		ActorNIK:          actor.NIK,
		ActorNama:         actor.Nama,
		ActorRole:         string(actor.Role),
		StatusSebelum:     p.Status,
		VerifikasiSebelum: p.Verifikasi,
		Kategori:          authz.Classify(p),
		JenisBarang:       p.JenisBarangList(),
		Berhasil:          callErr == nil,
		Pesan:             msg,
	}
	if callErr == nil {
		row.StatusSesudah = keStatus
		row.VerifikasiSesudah = keVerif
	} else {
		var ue *dsrapi.UpstreamError
		if errors.As(callErr, &ue) {
			row.Pesan = ue.Message
		} else {
			row.Pesan = callErr.Error()
		}
	}
	if snap, err := sonic.Marshal(p); err == nil {
		row.Snapshot = datatypes.JSON(snap)
	}
	if err := s.Logs.Create(context.WithoutCancel(ctx), row); err != nil {
		log.Printf("[ERROR] Gagal catat aksi %s #%d: %v", aksi, p.ID, err)
	}
}

func parseKode(kode string) (int64, error) {
	id, err := authz.ParseLoanIDFromCode(kode)
	if err != nil {
		var pe *authz.ParseError
		if errors.As(err, &pe) {
			return 0, fiber.NewError(fiber.StatusBadRequest, pe.Error())
		}
		return 0, fiber.NewError(fiber.StatusBadRequest, "QR tidak valid")
	}
	return id, nil
}

func defaultPesan(aksi model.Aksi, sumber string, id int64) string {
	switch {
	case sumber == model.SumberScan && aksi == model.AksiAktifkan:
		return fmt.Sprintf("Scan pickup berhasil untuk peminjaman #%d.", id)
	case sumber == model.SumberScan && aksi == model.AksiKembalikan:
		return fmt.Sprintf("Scan return berhasil untuk peminjaman #%d.", id)
	case aksi == model.AksiTerima:
		return "Peminjaman diterima"
	case aksi == model.AksiTolak:
		return "Peminjaman ditolak"
	case aksi == model.AksiAktifkan:
		return "Peminjaman diaktifkan"
	default:
		return "Peminjaman dikembalikan"
	}
}

func isOwner(p *model.Peminjaman, actor helperAuth.Actor) bool {
	if p == nil || actor.NIK == "" {
		return false
	}
	if p.NikUser != "" {
		return p.NikUser == actor.NIK
	}
	return p.User != nil && p.User.NIK == actor.NIK
}
