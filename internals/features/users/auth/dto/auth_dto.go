package dto

// Body yang diteruskan ke DSR API. Field role sengaja tidak ada di
// RegisterRequest: role default ditentukan DSR API.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	NIK                   string `json:"nik" validate:"required,numeric,min=8,max=20"`
	NomorIdentitasTunggal string `json:"nomor_identitas_tunggal" validate:"required,max=50"`
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required,min=8"`
	Nama                  string `json:"nama" validate:"required,max=150"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
