package dto

import "strings"

/* =========================================================
   BARANG UNIT
========================================================= */

// UpdateBarangRequest: hanya field yang diisi yang diteruskan.
type UpdateBarangRequest struct {
	Lokasi    *string `json:"lokasi,omitempty" validate:"omitempty,min=1,max=100"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=Tersedia TidakTersedia"`
	Jurusan   *string `json:"jurusan,omitempty" validate:"omitempty,oneof=umum tif si te ti mt"`
	CreatedAt *string `json:"createdAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (r *UpdateBarangRequest) Normalize() {
	r.Lokasi = trimPtr(r.Lokasi)
	r.Status = trimPtr(r.Status)
	r.Jurusan = lowerPtr(r.Jurusan)
	r.CreatedAt = trimPtr(r.CreatedAt)
}

func (r *UpdateBarangRequest) Empty() bool {
	return r.Lokasi == nil && r.Status == nil && r.Jurusan == nil && r.CreatedAt == nil
}

// CreateBarangRequest: kode_barang baru ikut membuat data barang (jenis & merek).
type CreateBarangRequest struct {
	NUP         string `json:"nup" validate:"required,max=50"`
	KodeBarang  string `json:"kode_barang" validate:"required,max=50"`
	JenisBarang string `json:"jenis_barang" validate:"max=100"`
	Merek       string `json:"merek" validate:"max=100"`
	Lokasi      string `json:"lokasi" validate:"required,max=100"`
	Status      string `json:"status" validate:"required,oneof=Tersedia TidakTersedia"`
	Jurusan     string `json:"jurusan" validate:"required,oneof=umum tif si te ti mt"`
}

func (r *CreateBarangRequest) Normalize() {
	r.NUP = strings.TrimSpace(r.NUP)
	r.KodeBarang = strings.TrimSpace(r.KodeBarang)
	r.JenisBarang = strings.TrimSpace(r.JenisBarang)
	r.Merek = strings.TrimSpace(r.Merek)
	r.Lokasi = strings.TrimSpace(r.Lokasi)
	r.Status = strings.TrimSpace(r.Status)
	r.Jurusan = strings.ToLower(strings.TrimSpace(r.Jurusan))
	if r.Jurusan == "" {
		r.Jurusan = "umum"
	}
}

// DataBarangPayload: body POST /databarang.
type DataBarangPayload struct {
	KodeBarang  string `json:"kode_barang"`
	JenisBarang string `json:"jenis_barang"`
	Merek       string `json:"merek"`
}

// BarangUnitPayload: body POST /barangunit. NikUser diisi dari token.
type BarangUnitPayload struct {
	NUP        string `json:"nup"`
	KodeBarang string `json:"kodeBarang"`
	Lokasi     string `json:"lokasi"`
	NikUser    string `json:"nikUser"`
	Status     string `json:"status"`
	Jurusan    string `json:"jurusan"`
}

/* =========================================================
   LOKASI
========================================================= */

type UpdateLokasiRequest struct {
	Lokasi  *string `json:"lokasi,omitempty" validate:"omitempty,min=1,max=100"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=dipinjam tidakDipinjam belumTersedia"`
	Jurusan *string `json:"jurusan,omitempty" validate:"omitempty,oneof=umum tif si te ti mt"`
}

func (r *UpdateLokasiRequest) Normalize() {
	r.Lokasi = trimPtr(r.Lokasi)
	r.Status = trimPtr(r.Status)
	r.Jurusan = lowerPtr(r.Jurusan)
}

func (r *UpdateLokasiRequest) Empty() bool {
	return r.Lokasi == nil && r.Status == nil && r.Jurusan == nil
}

type CreateLokasiRequest struct {
	KodeLokasi string `json:"kode_lokasi" validate:"required,max=50"`
	Lokasi     string `json:"lokasi" validate:"required,max=100"`
	Status     string `json:"status" validate:"required,oneof=dipinjam tidakDipinjam belumTersedia"`
}

func (r *CreateLokasiRequest) Normalize() {
	r.KodeLokasi = strings.TrimSpace(r.KodeLokasi)
	r.Lokasi = strings.TrimSpace(r.Lokasi)
	r.Status = strings.TrimSpace(r.Status)
}

/* =========================================================
   KONDISI (form multipart + foto)
========================================================= */

// KondisiForm: hanya untuk validasi; body multipart diteruskan utuh.
type KondisiForm struct {
	NupBarang      string `form:"nupBarang" json:"nupBarang" validate:"required,max=50"`
	Waktu          string `form:"waktu" json:"waktu" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Plt            string `form:"plt" json:"plt" validate:"required,max=150"`
	KondisiBarang  string `form:"kondisiBarang" json:"kondisiBarang" validate:"required,oneof=baik rusak_ringan rusak_berat"`
	LokasiBarang   string `form:"lokasiBarang" json:"lokasiBarang" validate:"max=50"`
	LokasiTambahan string `form:"lokasiTambahan" json:"lokasiTambahan" validate:"max=200"`
	Keterangan     string `form:"keterangan" json:"keterangan" validate:"max=500"`
}

// trimPtr: string kosong dianggap tidak diubah (nil).
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

func lowerPtr(s *string) *string {
	v := trimPtr(s)
	if v != nil {
		*v = strings.ToLower(*v)
	}
	return v
}
