// file: internals/features/peminjaman/model/peminjaman_model.go
package model

import "strings"

/* =========================================================
   ENUM
========================================================= */

// Status siklus hidup peminjaman.
type Status string

const (
	StatusBooking Status = "booking"
	StatusAktif   Status = "aktif"
	StatusSelesai Status = "selesai"
	StatusBatal   Status = "batal"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooking, StatusAktif, StatusSelesai, StatusBatal:
		return true
	}
	return false
}

// Terminal: tidak ada transisi keluar.
func (s Status) Terminal() bool {
	return s == StatusSelesai || s == StatusBatal
}

// Verifikasi hanya bermakna selama status booking.
type Verifikasi string

const (
	VerifikasiPending  Verifikasi = "pending"
	VerifikasiDiterima Verifikasi = "diterima"
	VerifikasiDitolak  Verifikasi = "ditolak"
)

func (v Verifikasi) Valid() bool {
	switch v {
	case VerifikasiPending, VerifikasiDiterima, VerifikasiDitolak:
		return true
	}
	return false
}

// Jurusan (department tag) untuk unit barang dan lokasi.
type Jurusan string

const (
	JurusanUmum Jurusan = "umum"
	JurusanTIF  Jurusan = "tif"
	JurusanSI   Jurusan = "si"
	JurusanTE   Jurusan = "te"
	JurusanTI   Jurusan = "ti"
	JurusanMT   Jurusan = "mt"
)

var jurusanLabels = map[Jurusan]string{
	JurusanUmum: "Umum",
	JurusanTIF:  "Teknik Informatika",
	JurusanSI:   "Sistem Informasi",
	JurusanTE:   "Teknik Elektro",
	JurusanTI:   "Teknik Industri",
	JurusanMT:   "Matematika",
}

func (j Jurusan) Label() string {
	if l, ok := jurusanLabels[j]; ok {
		return l
	}
	return string(j)
}

// Kategori turunan peminjaman (tidak disimpan).
type Kategori string

const (
	KategoriJurusan Kategori = "jurusan" // ada barang kategori terbatas
	KategoriLokasi  Kategori = "lokasi"  // meminjam ruang
	KategoriBarang  Kategori = "barang"  // hanya barang
)

// Aksi yang bisa dipicu dari dashboard admin.
type Aksi string

const (
	AksiTerima     Aksi = "terima"
	AksiTolak      Aksi = "tolak"
	AksiAktifkan   Aksi = "aktifkan"
	AksiKembalikan Aksi = "kembalikan"
)

/* =========================================================
   RECORD (bentuk JSON mengikuti DSR API)
========================================================= */

type DataBarang struct {
	KodeBarang  string  `json:"kode_barang,omitempty"`
	JenisBarang *string `json:"jenis_barang,omitempty"`
	Merek       string  `json:"merek,omitempty"`
}

type BarangUnit struct {
	NUP        string      `json:"nup"`
	KodeBarang string      `json:"kodeBarang,omitempty"`
	Lokasi     string      `json:"lokasi,omitempty"`
	Status     string      `json:"status,omitempty"`
	Jurusan    *Jurusan    `json:"jurusan,omitempty"`
	DataBarang *DataBarang `json:"dataBarang,omitempty"`
}

// JenisBarang kosong jika referensi dataBarang belum ter-resolve.
func (u *BarangUnit) JenisBarang() string {
	if u == nil || u.DataBarang == nil || u.DataBarang.JenisBarang == nil {
		return ""
	}
	return strings.TrimSpace(*u.DataBarang.JenisBarang)
}

type Lokasi struct {
	KodeLokasi string   `json:"kode_lokasi"`
	Lokasi     string   `json:"lokasi"`
	Status     string   `json:"status,omitempty"`
	Jurusan    *Jurusan `json:"jurusan,omitempty"`
}

type PeminjamanItem struct {
	ID         int64       `json:"id,omitempty"`
	NupBarang  string      `json:"nupBarang,omitempty"`
	BarangUnit *BarangUnit `json:"barangUnit,omitempty"`
}

type UserRingkas struct {
	NIK   string `json:"nik"`
	Nama  string `json:"nama"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type Peminjaman struct {
	ID             int64            `json:"id"`
	NikUser        string           `json:"nikUser,omitempty"`
	Agenda         string           `json:"Agenda"`
	NoHP           string           `json:"no_hp,omitempty"`
	Status         Status           `json:"status"`
	Verifikasi     Verifikasi       `json:"verifikasi"`
	WaktuMulai     string           `json:"waktuMulai,omitempty"`
	WaktuSelesai   string           `json:"waktuSelesai,omitempty"`
	KodeLokasi     *string          `json:"kodeLokasi,omitempty"`
	Lokasi         *Lokasi          `json:"lokasi,omitempty"`
	LokasiTambahan *string          `json:"lokasiTambahan,omitempty"`
	Items          []PeminjamanItem `json:"items"`
	User           *UserRingkas     `json:"user,omitempty"`
}

// HasLokasi: ada referensi lokasi (kodeLokasi atau objek lokasi).
// lokasiTambahan (teks bebas) tidak dihitung.
func (p *Peminjaman) HasLokasi() bool {
	if p == nil {
		return false
	}
	if p.Lokasi != nil {
		return true
	}
	return p.KodeLokasi != nil && strings.TrimSpace(*p.KodeLokasi) != ""
}

// JenisBarangList: jenis barang unik sesuai urutan item.
func (p *Peminjaman) JenisBarangList() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(p.Items))
	out := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		j := it.BarangUnit.JenisBarang()
		if j == "" {
			continue
		}
		if _, ok := seen[j]; ok {
			continue
		}
		seen[j] = struct{}{}
		out = append(out, j)
	}
	return out
}
