package constants

import (
	"fmt"
	"strings"
)

// Role adalah peran akun DSR FASTe. Satu-satunya kunci otorisasi.
type Role string

const (
	RoleCivitas      Role = "civitas_faste"
	RoleStaff        Role = "staff"
	RoleStaffProdi   Role = "staff_prodi"
	RoleKepalaBagian Role = "kepala_bagian_akademik"
)

// ParseRole menerima string mentah dari klaim JWT. Role yang tidak dikenal
// dikembalikan sebagai ("", false).
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleCivitas, RoleStaff, RoleStaffProdi, RoleKepalaBagian:
		return r, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// Label untuk tampilan.
func (r Role) Label() string {
	switch r {
	case RoleCivitas:
		return "Civitas FASTe"
	case RoleStaff:
		return "Staff"
	case RoleStaffProdi:
		return "Staff Prodi"
	case RoleKepalaBagian:
		return "Kepala Bagian Akademik"
	default:
		return "-"
	}
}

// Template pesan error role
const (
	ErrOnlyCivitasCanAccess      = "❌ Hanya civitas FASTe yang boleh mengakses fitur %s."
	ErrOnlyAdminsCanAccess       = "❌ Hanya staff, staff prodi, atau kepala bagian yang boleh mengakses fitur %s."
	ErrOnlyOperatorsCanAccess    = "❌ Hanya staff atau staff prodi yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess        = "❌ Hanya staff yang boleh mengakses fitur %s."
	ErrOnlyKepalaBagianCanAccess = "❌ Hanya kepala bagian akademik yang boleh mengakses fitur %s."
)

func RoleErrorCivitas(feature string) string {
	return fmt.Sprintf(ErrOnlyCivitasCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOperator(feature string) string {
	return fmt.Sprintf(ErrOnlyOperatorsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorKepalaBagian(feature string) string {
	return fmt.Sprintf(ErrOnlyKepalaBagianCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []Role{
		RoleCivitas,
		RoleStaff,
		RoleStaffProdi,
		RoleKepalaBagian,
	}

	// AdminRoles boleh masuk dashboard admin.
	AdminRoles = []Role{
		RoleStaff,
		RoleStaffProdi,
		RoleKepalaBagian,
	}

	// OperatorRoles memproses pickup/return secara fisik.
	OperatorRoles = []Role{
		RoleStaff,
		RoleStaffProdi,
	}

	CivitasOnly = []Role{
		RoleCivitas,
	}

	// StaffOnly mengelola data aset (barang & lokasi).
	StaffOnly = []Role{
		RoleStaff,
	}

	KepalaBagianOnly = []Role{
		RoleKepalaBagian,
	}
)

// HasRole mengecek keanggotaan role pada slice.
func HasRole(roles []Role, r Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
