package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/monitoring/dto"
	"dsr_faste_backend/internals/features/peminjaman/model"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

// AssetAPI: detail & perubahan aset di DSR API.
type AssetAPI interface {
	GetBarangUnit(ctx context.Context, token, nup string) (json.RawMessage, error)
	UpdateBarangUnit(ctx context.Context, token, nup string, payload any) (json.RawMessage, error)
	CreateBarangUnit(ctx context.Context, token string, payload any) (json.RawMessage, error)
	ListDataBarang(ctx context.Context, token string) ([]model.DataBarang, error)
	CreateDataBarang(ctx context.Context, token string, payload any) (json.RawMessage, error)
	GetLokasi(ctx context.Context, token, kode string) (json.RawMessage, error)
	UpdateLokasi(ctx context.Context, token, kode string, payload any) (json.RawMessage, error)
	CreateLokasi(ctx context.Context, token string, payload any) (json.RawMessage, error)
	CreateKondisi(ctx context.Context, token, contentType string, body []byte) (json.RawMessage, error)
}

// Semua admin boleh melihat detail; kepala bagian tidak pernah mengubah aset.
var (
	assetViewers  = constants.AdminRoles
	lokasiEditors = constants.OperatorRoles
	assetEditors  = constants.StaffOnly
)

var errTidakAdaPerubahan = fiber.NewError(fiber.StatusBadRequest, "Tidak ada perubahan yang dikirim")

type AssetService struct {
	API AssetAPI
}

func NewAssetService(api AssetAPI) *AssetService {
	return &AssetService{API: api}
}

/* =========================================================
   BARANG
========================================================= */

func (s *AssetService) BarangDetail(ctx context.Context, actor helperAuth.Actor, token, nup string) (json.RawMessage, error) {
	if err := allow(actor, assetViewers, constants.RoleErrorAdmin("detail barang")); err != nil {
		return nil, err
	}
	out, err := s.API.GetBarangUnit(ctx, token, nup)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	return out, nil
}

func (s *AssetService) UpdateBarang(ctx context.Context, actor helperAuth.Actor, token, nup string, req dto.UpdateBarangRequest) (json.RawMessage, error) {
	if err := allow(actor, assetEditors, constants.RoleErrorStaff("ubah barang")); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, errTidakAdaPerubahan
	}
	out, err := s.API.UpdateBarangUnit(ctx, token, nup, req)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Barang nup=%s diubah oleh nik=%s", nup, actor.NIK)
	return out, nil
}

// CreateBarang: kode_barang yang belum terdaftar dibuat dulu sebagai data barang.
func (s *AssetService) CreateBarang(ctx context.Context, actor helperAuth.Actor, token string, req dto.CreateBarangRequest) (json.RawMessage, error) {
	if err := allow(actor, assetEditors, constants.RoleErrorStaff("tambah barang")); err != nil {
		return nil, err
	}

	katalog, err := s.API.ListDataBarang(ctx, token)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	if !kodeTerdaftar(katalog, req.KodeBarang) {
		if req.JenisBarang == "" {
			return nil, helper.FieldErrors{"jenis_barang": {"wajib diisi untuk kode barang baru"}}
		}
		if _, err := s.API.CreateDataBarang(ctx, token, dto.DataBarangPayload{
			KodeBarang:  req.KodeBarang,
			JenisBarang: req.JenisBarang,
			Merek:       req.Merek,
		}); err != nil {
			return nil, dsrapi.AsFiberError(err)
		}
		log.Printf("[INFO] Data barang kode=%s dibuat oleh nik=%s", req.KodeBarang, actor.NIK)
	}

	out, err := s.API.CreateBarangUnit(ctx, token, dto.BarangUnitPayload{
		NUP:        req.NUP,
		KodeBarang: req.KodeBarang,
		Lokasi:     req.Lokasi,
		NikUser:    actor.NIK,
		Status:     req.Status,
		Jurusan:    req.Jurusan,
	})
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Barang nup=%s dibuat oleh nik=%s", req.NUP, actor.NIK)
	return out, nil
}

/* =========================================================
   LOKASI
========================================================= */

func (s *AssetService) LokasiDetail(ctx context.Context, actor helperAuth.Actor, token, kode string) (json.RawMessage, error) {
	if err := allow(actor, assetViewers, constants.RoleErrorAdmin("detail lokasi")); err != nil {
		return nil, err
	}
	out, err := s.API.GetLokasi(ctx, token, kode)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	return out, nil
}

func (s *AssetService) UpdateLokasi(ctx context.Context, actor helperAuth.Actor, token, kode string, req dto.UpdateLokasiRequest) (json.RawMessage, error) {
	if err := allow(actor, lokasiEditors, constants.RoleErrorOperator("ubah lokasi")); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, errTidakAdaPerubahan
	}
	out, err := s.API.UpdateLokasi(ctx, token, kode, req)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Lokasi kode=%s diubah oleh nik=%s", kode, actor.NIK)
	return out, nil
}

func (s *AssetService) CreateLokasi(ctx context.Context, actor helperAuth.Actor, token string, req dto.CreateLokasiRequest) (json.RawMessage, error) {
	if err := allow(actor, assetEditors, constants.RoleErrorStaff("tambah lokasi")); err != nil {
		return nil, err
	}
	out, err := s.API.CreateLokasi(ctx, token, req)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Lokasi kode=%s dibuat oleh nik=%s", req.KodeLokasi, actor.NIK)
	return out, nil
}

/* =========================================================
   KONDISI
========================================================= */

// CatatKondisi: body multipart sudah divalidasi controller dan diteruskan utuh.
func (s *AssetService) CatatKondisi(ctx context.Context, actor helperAuth.Actor, token, contentType string, body []byte, nup string) (json.RawMessage, error) {
	if err := allow(actor, assetEditors, constants.RoleErrorStaff("catat kondisi barang")); err != nil {
		return nil, err
	}
	out, err := s.API.CreateKondisi(ctx, token, contentType, body)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Kondisi barang nup=%s dicatat oleh nik=%s", nup, actor.NIK)
	return out, nil
}

/* =========================================================
   HELPERS
========================================================= */

func allow(actor helperAuth.Actor, roles []constants.Role, msg string) error {
	if !actor.Is(roles...) {
		return fiber.NewError(fiber.StatusForbidden, msg)
	}
	return nil
}

func kodeTerdaftar(katalog []model.DataBarang, kode string) bool {
	for _, d := range katalog {
		if strings.TrimSpace(d.KodeBarang) == kode {
			return true
		}
	}
	return false
}
