// Package authz memutuskan aksi siklus hidup peminjaman yang boleh dipicu
// oleh seorang aktor. Semua fungsi murni: tanpa I/O, tanpa state global.
package authz

import (
	"strings"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/model"
)

// Jenis barang yang persetujuannya dipegang staff prodi (pool AV).
var restrictedCategories = []string{
	"Proyektor",
	"Microphone",
	"Sound System",
}

// IsRestrictedCategory: jenis barang termasuk kategori terbatas jurusan.
func IsRestrictedCategory(jenis string) bool {
	jenis = strings.TrimSpace(jenis)
	if jenis == "" {
		return false
	}
	for _, r := range restrictedCategories {
		if strings.EqualFold(jenis, r) {
			return true
		}
	}
	return false
}

// IsDepartmentRestrictedLoan: minimal satu item berkategori terbatas.
// Item tanpa unit/jenis tidak dihitung terbatas.
func IsDepartmentRestrictedLoan(p *model.Peminjaman) bool {
	if p == nil {
		return false
	}
	for _, it := range p.Items {
		if IsRestrictedCategory(it.BarangUnit.JenisBarang()) {
			return true
		}
	}
	return false
}

// IsGeneralLoan: tidak terbatas, semua unit berjurusan umum, dan tanpa lokasi
// atau lokasinya umum. Referensi yang belum ter-resolve tidak dianggap umum.
func IsGeneralLoan(p *model.Peminjaman) bool {
	if p == nil || IsDepartmentRestrictedLoan(p) {
		return false
	}
	for _, it := range p.Items {
		// unit atau jenis yang belum ter-resolve tidak dianggap umum
		if it.BarangUnit.JenisBarang() == "" || !isUmum(unitJurusan(it.BarangUnit)) {
			return false
		}
	}
	if !p.HasLokasi() {
		return true
	}
	if p.Lokasi == nil {
		return false
	}
	return isUmum(p.Lokasi.Jurusan)
}

// Classify menurunkan kategori peminjaman.
func Classify(p *model.Peminjaman) model.Kategori {
	switch {
	case IsDepartmentRestrictedLoan(p):
		return model.KategoriJurusan
	case p.HasLokasi():
		return model.KategoriLokasi
	default:
		return model.KategoriBarang
	}
}

// ApprovalAuthority: role yang berwenang menerima/menolak peminjaman.
// Partisi tiga arah: terbatas → staff prodi, umum → staff, sisanya → kepala bagian.
func ApprovalAuthority(p *model.Peminjaman) (constants.Role, bool) {
	switch {
	case p == nil:
		return "", false
	case IsDepartmentRestrictedLoan(p):
		return constants.RoleStaffProdi, true
	case IsGeneralLoan(p):
		return constants.RoleStaff, true
	default:
		return constants.RoleKepalaBagian, true
	}
}

func unitJurusan(u *model.BarangUnit) *model.Jurusan {
	if u == nil {
		return nil
	}
	return u.Jurusan
}

func isUmum(j *model.Jurusan) bool {
	if j == nil {
		return false
	}
	return model.Jurusan(strings.ToLower(strings.TrimSpace(string(*j)))) == model.JurusanUmum
}
