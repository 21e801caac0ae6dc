package controller

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/features/laporan/dto"
	"dsr_faste_backend/internals/features/laporan/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

type LaporanController struct {
	Svc      *service.LaporanService
	Validate *validator.Validate
}

func NewLaporanController(svc *service.LaporanService) *LaporanController {
	return &LaporanController{Svc: svc, Validate: helper.NewValidator()}
}

// GET /api/a/laporan/peminjaman/export?verifikasi=&startDate=&endDate=
func (lc *LaporanController) ExportPeminjaman(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	q.Verifikasi = strings.ToLower(strings.TrimSpace(q.Verifikasi))
	q.StartDate = strings.TrimSpace(q.StartDate)
	q.EndDate = strings.TrimSpace(q.EndDate)
	if err := lc.Validate.Struct(&q); err != nil {
		return helper.AsValidationError(err)
	}

	f, err := lc.Svc.ExportPeminjaman(c.UserContext(), actor, helperAuth.GetRawToken(c), q)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, f.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, f.Name))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Send(f.Body)
}
