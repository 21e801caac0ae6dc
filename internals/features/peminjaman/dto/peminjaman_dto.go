// file: internals/features/peminjaman/dto/peminjaman_dto.go
package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/authz"
	"dsr_faste_backend/internals/features/peminjaman/model"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	"dsr_faste_backend/internals/helpers/dbtime"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

/* =========================================================
   VALIDATOR
========================================================= */

var reNoHP = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// NewValidator: validator helper + tag khusus peminjaman.
func NewValidator() *validator.Validate {
	v := helper.NewValidator()
	_ = v.RegisterValidation("nohp", func(fl validator.FieldLevel) bool {
		return reNoHP.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// Format waktu dari input datetime-local (menit/detik) atau RFC3339.
var layoutsWaktu = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func ParseWaktu(s string) (time.Time, bool) {
	return dbtime.ParseLocal(s, layoutsWaktu...)
}

/* =========================================================
   CREATE
========================================================= */

type CreatePeminjamanRequest struct {
	NoHP           string   `json:"no_hp" validate:"required,nohp"`
	Agenda         string   `json:"Agenda" validate:"required,max=500"`
	WaktuMulai     string   `json:"waktuMulai" validate:"required"`
	WaktuSelesai   string   `json:"waktuSelesai" validate:"required"`
	KodeLokasi     *string  `json:"kodeLokasi" validate:"omitempty,max=50"`
	LokasiTambahan *string  `json:"lokasiTambahan" validate:"omitempty,max=255"`
	BarangList     []string `json:"barangList" validate:"omitempty,max=50,dive,max=50"`
	// alternatif input: "12345, 67890"
	NupText string `json:"nupText" validate:"omitempty,max=2000"`
}

// Normalize: trim, gabung nupText ke barangList, buang duplikat & string kosong.
func (r *CreatePeminjamanRequest) Normalize() {
	r.NoHP = strings.TrimSpace(r.NoHP)
	r.Agenda = strings.TrimSpace(r.Agenda)
	r.WaktuMulai = strings.TrimSpace(r.WaktuMulai)
	r.WaktuSelesai = strings.TrimSpace(r.WaktuSelesai)
	r.KodeLokasi = trimPtr(r.KodeLokasi)
	r.LokasiTambahan = trimPtr(r.LokasiTambahan)

	raw := append([]string{}, r.BarangList...)
	if r.NupText != "" {
		raw = append(raw, strings.Split(r.NupText, ",")...)
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	r.BarangList = out
	r.NupText = ""
}

// Validate menjalankan tag validator lalu aturan lintas field.
// Hasil: nil atau helper.FieldErrors.
func (r *CreatePeminjamanRequest) Validate(v *validator.Validate) error {
	fields := helper.FieldErrors{}
	if err := v.Struct(r); err != nil {
		msgs, ok := helper.ValidationMessages(err)
		if !ok {
			return err
		}
		for k, list := range msgs {
			for _, m := range list {
				fields.Add(k, m)
			}
		}
	}
	if _, bad := fields["no_hp"]; bad {
		fields["no_hp"] = []string{"nomor HP 8-15 digit, boleh diawali +"}
	}

	if len(r.BarangList) == 0 {
		fields.Add("barangList", "Minimal 1 NUP barang harus diisi")
	}

	mulai, okMulai := ParseWaktu(r.WaktuMulai)
	selesai, okSelesai := ParseWaktu(r.WaktuSelesai)
	if r.WaktuMulai != "" && !okMulai {
		fields.Add("waktuMulai", "format waktu tidak valid")
	}
	if r.WaktuSelesai != "" && !okSelesai {
		fields.Add("waktuSelesai", "format waktu tidak valid")
	}
	if okMulai && okSelesai && !mulai.Before(selesai) {
		fields.Add("waktuSelesai", "waktu selesai harus setelah waktu mulai")
	}

	if len(fields) > 0 {
		return fields
	}
	return nil
}

func (r *CreatePeminjamanRequest) ToPayload() dsrapi.CreatePayload {
	return dsrapi.CreatePayload{
		NoHP:           r.NoHP,
		Agenda:         r.Agenda,
		WaktuMulai:     r.WaktuMulai,
		WaktuSelesai:   r.WaktuSelesai,
		KodeLokasi:     r.KodeLokasi,
		LokasiTambahan: r.LokasiTambahan,
		BarangList:     r.BarangList,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   ACTIONS
========================================================= */

type VerifyRequest struct {
	Verifikasi string `json:"verifikasi" validate:"required,oneof=diterima ditolak"`
}

type ScanRequest struct {
	Kode string `json:"kode" validate:"required,max=64"`
}

/* =========================================================
   LIST QUERY
========================================================= */

type ListQuery struct {
	Status     string `query:"status" json:"status" validate:"omitempty,oneof=booking aktif selesai batal"`
	Verifikasi string `query:"verifikasi" json:"verifikasi" validate:"omitempty,oneof=pending diterima ditolak"`
	Kategori   string `query:"kategori" json:"kategori" validate:"omitempty,oneof=jurusan lokasi barang"`
	Q          string `query:"q" json:"q" validate:"max=100"`
	// hanya baris yang punya minimal satu aksi untuk aktor
	PerluAksi bool `query:"perlu_aksi" json:"perlu_aksi"`

	Paging helper.Params `query:"-" json:"-"`
}

func (q ListQuery) Filter() dsrapi.ListFilter {
	return dsrapi.ListFilter{
		Status:     model.Status(q.Status),
		Verifikasi: model.Verifikasi(q.Verifikasi),
	}
}

/* =========================================================
   RESPONSE
========================================================= */

// LoanView: peminjaman + turunan engine otorisasi untuk aktor saat ini.
type LoanView struct {
	Peminjaman    *model.Peminjaman `json:"peminjaman"`
	Kategori      model.Kategori    `json:"kategori"`
	Otoritas      constants.Role    `json:"otoritas"`
	OtoritasLabel string            `json:"otoritas_label"`
	Aksi          []model.Aksi      `json:"aksi"`
	KodeQR        string            `json:"kode_qr"`
	QRCode        *string           `json:"qr_code,omitempty"`
}

func NewLoanView(p *model.Peminjaman, actor helperAuth.Actor) LoanView {
	otoritas, _ := authz.ApprovalAuthority(p)
	return LoanView{
		Peminjaman:    p,
		Kategori:      authz.Classify(p),
		Otoritas:      otoritas,
		OtoritasLabel: otoritas.Label(),
		Aksi:          authz.AllowedActions(p, actor),
		KodeQR:        authz.FormatLoanCode(p.ID),
	}
}
