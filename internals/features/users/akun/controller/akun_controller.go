package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/features/users/akun/dto"
	"dsr_faste_backend/internals/features/users/akun/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

type AkunController struct {
	Svc      *service.AkunService
	Validate *validator.Validate
}

func NewAkunController(svc *service.AkunService) *AkunController {
	return &AkunController{Svc: svc, Validate: helper.NewValidator()}
}

// GET /api/a/akun/:nik
func (ac *AkunController) Detail(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	nik, err := parseNIK(c)
	if err != nil {
		return err
	}
	data, err := ac.Svc.Detail(c.UserContext(), actor, helperAuth.GetRawToken(c), nik)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail akun", data)
}

// PUT /api/a/akun/:nik
func (ac *AkunController) Update(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	nik, err := parseNIK(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAkunRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.AsValidationError(err)
	}
	data, err := ac.Svc.Update(c.UserContext(), actor, helperAuth.GetRawToken(c), nik, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", data)
}

// PUT /api/auth/akun
func (ac *AkunController) UpdateSelf(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAkunSendiriRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ac.Validate.Struct(&req); err != nil {
		return helper.AsValidationError(err)
	}
	data, err := ac.Svc.UpdateSelf(c.UserContext(), actor, helperAuth.GetRawToken(c), req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Akun berhasil diperbarui", data)
}

// parseNIK: hanya angka, agar tidak bentrok dengan /auth/akun di DSR API.
func parseNIK(c *fiber.Ctx) (string, error) {
	nik := strings.TrimSpace(c.Params("nik"))
	if nik == "" || len(nik) > 20 || strings.Trim(nik, "0123456789") != "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "NIK tidak valid")
	}
	return nik, nil
}
