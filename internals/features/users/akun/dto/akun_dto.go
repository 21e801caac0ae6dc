package dto

import "strings"

// UpdateAkunRequest: kepala bagian mengubah akun lain (termasuk role).
type UpdateAkunRequest struct {
	Nama     string `json:"nama" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=civitas_faste staff staff_prodi kepala_bagian_akademik"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (r *UpdateAkunRequest) Normalize() {
	r.Nama = strings.TrimSpace(r.Nama)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.TrimSpace(r.Role)
}

// UpdateAkunSendiriRequest: profil sendiri; role tidak bisa diubah.
type UpdateAkunSendiriRequest struct {
	Nama            string `json:"nama" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password,omitempty" validate:"omitempty,min=8"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"eqfield=Password"`
}

func (r *UpdateAkunSendiriRequest) Normalize() {
	r.Nama = strings.TrimSpace(r.Nama)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Payload: body yang diteruskan ke PUT /auth/akun (tanpa konfirmasi).
func (r UpdateAkunSendiriRequest) Payload() AkunSendiriPayload {
	return AkunSendiriPayload{Nama: r.Nama, Email: r.Email, Password: r.Password}
}

type AkunSendiriPayload struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
