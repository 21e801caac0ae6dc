package authz

import (
	"fmt"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/model"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

// transisi: (status, verifikasi) asal → (status, verifikasi) tujuan.
type transisi struct {
	dariStatus     model.Status
	dariVerifikasi model.Verifikasi
	keStatus       model.Status
	keVerifikasi   model.Verifikasi
}

var tabelTransisi = map[model.Aksi]transisi{
	model.AksiTerima:     {model.StatusBooking, model.VerifikasiPending, model.StatusBooking, model.VerifikasiDiterima},
	model.AksiTolak:      {model.StatusBooking, model.VerifikasiPending, model.StatusBooking, model.VerifikasiDitolak},
	model.AksiAktifkan:   {model.StatusBooking, model.VerifikasiDiterima, model.StatusAktif, model.VerifikasiDiterima},
	model.AksiKembalikan: {model.StatusAktif, model.VerifikasiDiterima, model.StatusSelesai, model.VerifikasiDiterima},
}

// urutan tampil tombol
var urutanAksi = []model.Aksi{
	model.AksiTerima,
	model.AksiTolak,
	model.AksiAktifkan,
	model.AksiKembalikan,
}

// CanVerify: aktor adalah pemegang wewenang persetujuan dan peminjaman masih
// (booking, pending).
func CanVerify(p *model.Peminjaman, actor helperAuth.Actor) bool {
	if p == nil || p.Status != model.StatusBooking || p.Verifikasi != model.VerifikasiPending {
		return false
	}
	if _, ok := constants.ParseRole(string(actor.Role)); !ok {
		return false
	}
	authority, ok := ApprovalAuthority(p)
	return ok && authority == actor.Role
}

// CanActivate: staff/staff prodi, peminjaman booking yang sudah diterima.
func CanActivate(p *model.Peminjaman, actor helperAuth.Actor) bool {
	if p == nil || !actor.Is(constants.OperatorRoles...) {
		return false
	}
	return p.Status == model.StatusBooking && p.Verifikasi == model.VerifikasiDiterima
}

// CanReturn: staff/staff prodi, peminjaman aktif.
func CanReturn(p *model.Peminjaman, actor helperAuth.Actor) bool {
	if p == nil || !actor.Is(constants.OperatorRoles...) {
		return false
	}
	return p.Status == model.StatusAktif
}

// Can mendispatch aksi ke predikat yang sesuai. Aksi tak dikenal ditolak.
func Can(p *model.Peminjaman, actor helperAuth.Actor, aksi model.Aksi) bool {
	switch aksi {
	case model.AksiTerima, model.AksiTolak:
		return CanVerify(p, actor)
	case model.AksiAktifkan:
		return CanActivate(p, actor)
	case model.AksiKembalikan:
		return CanReturn(p, actor)
	default:
		return false
	}
}

// AllowedActions: daftar aksi yang boleh ditampilkan untuk aktor.
func AllowedActions(p *model.Peminjaman, actor helperAuth.Actor) []model.Aksi {
	out := make([]model.Aksi, 0, len(urutanAksi))
	for _, a := range urutanAksi {
		if Can(p, actor, a) {
			out = append(out, a)
		}
	}
	return out
}

// Apply menghitung status setelah aksi. Hanya memeriksa prasyarat state,
// bukan wewenang aktor.
func Apply(p *model.Peminjaman, aksi model.Aksi) (model.Status, model.Verifikasi, error) {
	if p == nil {
		return "", "", fmt.Errorf("peminjaman kosong")
	}
	t, ok := tabelTransisi[aksi]
	if !ok {
		return "", "", fmt.Errorf("aksi %q tidak dikenal", aksi)
	}
	if p.Status != t.dariStatus {
		return "", "", fmt.Errorf("aksi %s tidak berlaku untuk status %s", aksi, p.Status)
	}
	// kembalikan tidak bergantung pada verifikasi
	if aksi != model.AksiKembalikan && p.Verifikasi != t.dariVerifikasi {
		return "", "", fmt.Errorf("aksi %s tidak berlaku untuk verifikasi %s", aksi, p.Verifikasi)
	}
	keVerif := t.keVerifikasi
	if aksi == model.AksiKembalikan {
		keVerif = p.Verifikasi
	}
	return t.keStatus, keVerif, nil
}

// VerifikasiUntuk memetakan aksi verifikasi ke nilai body DSR API.
func VerifikasiUntuk(aksi model.Aksi) (model.Verifikasi, bool) {
	switch aksi {
	case model.AksiTerima:
		return model.VerifikasiDiterima, true
	case model.AksiTolak:
		return model.VerifikasiDitolak, true
	}
	return "", false
}

// AksiUntukVerifikasi kebalikan VerifikasiUntuk.
func AksiUntukVerifikasi(v model.Verifikasi) (model.Aksi, bool) {
	switch v {
	case model.VerifikasiDiterima:
		return model.AksiTerima, true
	case model.VerifikasiDitolak:
		return model.AksiTolak, true
	}
	return "", false
}
