package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/users/akun/dto"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

// AkunAPI: manajemen akun di DSR API.
type AkunAPI interface {
	GetAkun(ctx context.Context, token, nik string) (json.RawMessage, error)
	UpdateAkun(ctx context.Context, token, nik string, payload any) (json.RawMessage, error)
	UpdateAkunSendiri(ctx context.Context, token string, payload any) (json.RawMessage, error)
}

type AkunService struct {
	API AkunAPI
}

func NewAkunService(api AkunAPI) *AkunService {
	return &AkunService{API: api}
}

// Detail: hanya kepala bagian.
func (s *AkunService) Detail(ctx context.Context, actor helperAuth.Actor, token, nik string) (json.RawMessage, error) {
	if !actor.Is(constants.KepalaBagianOnly...) {
		return nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorKepalaBagian("kelola akun"))
	}
	out, err := s.API.GetAkun(ctx, token, nik)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	return out, nil
}

func (s *AkunService) Update(ctx context.Context, actor helperAuth.Actor, token, nik string, req dto.UpdateAkunRequest) (json.RawMessage, error) {
	if !actor.Is(constants.KepalaBagianOnly...) {
		return nil, fiber.NewError(fiber.StatusForbidden, constants.RoleErrorKepalaBagian("kelola akun"))
	}
	// kepala bagian tidak boleh melepas role-nya sendiri
	if nik == actor.NIK && req.Role != string(actor.Role) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tidak dapat mengubah role akun sendiri")
	}
	out, err := s.API.UpdateAkun(ctx, token, nik, req)
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Akun nik=%s diubah oleh nik=%s (role=%s)", nik, actor.NIK, req.Role)
	return out, nil
}

// UpdateSelf: semua role; akun ditentukan dari token.
func (s *AkunService) UpdateSelf(ctx context.Context, actor helperAuth.Actor, token string, req dto.UpdateAkunSendiriRequest) (json.RawMessage, error) {
	out, err := s.API.UpdateAkunSendiri(ctx, token, req.Payload())
	if err != nil {
		return nil, dsrapi.AsFiberError(err)
	}
	log.Printf("[INFO] Profil nik=%s diperbarui", actor.NIK)
	return out, nil
}
