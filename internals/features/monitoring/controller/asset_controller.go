package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/features/monitoring/dto"
	"dsr_faste_backend/internals/features/monitoring/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

type AssetController struct {
	Svc      *service.AssetService
	Validate *validator.Validate
}

func NewAssetController(svc *service.AssetService) *AssetController {
	return &AssetController{Svc: svc, Validate: helper.NewValidator()}
}

// GET /api/a/monitoring/barang/:nup
func (ac *AssetController) BarangDetail(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	nup, err := keyParam(c, "nup", "NUP tidak valid")
	if err != nil {
		return err
	}
	data, err := ac.Svc.BarangDetail(c.UserContext(), actor, helperAuth.GetRawToken(c), nup)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail barang", data)
}

// PUT /api/a/monitoring/barang/:nup  body: {"status":"TidakTersedia"}
func (ac *AssetController) UpdateBarang(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	nup, err := keyParam(c, "nup", "NUP tidak valid")
	if err != nil {
		return err
	}
	var req dto.UpdateBarangRequest
	if err := ac.bind(c, &req, req.Normalize); err != nil {
		return err
	}
	data, err := ac.Svc.UpdateBarang(c.UserContext(), actor, helperAuth.GetRawToken(c), nup, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Barang berhasil diperbarui", data)
}

// POST /api/a/monitoring/barang
func (ac *AssetController) CreateBarang(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateBarangRequest
	if err := ac.bind(c, &req, req.Normalize); err != nil {
		return err
	}
	data, err := ac.Svc.CreateBarang(c.UserContext(), actor, helperAuth.GetRawToken(c), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Barang berhasil ditambahkan", data)
}

// GET /api/a/monitoring/lokasi/:kode
func (ac *AssetController) LokasiDetail(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	kode, err := keyParam(c, "kode", "Kode lokasi tidak valid")
	if err != nil {
		return err
	}
	data, err := ac.Svc.LokasiDetail(c.UserContext(), actor, helperAuth.GetRawToken(c), kode)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail lokasi", data)
}

// PUT /api/a/monitoring/lokasi/:kode
func (ac *AssetController) UpdateLokasi(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	kode, err := keyParam(c, "kode", "Kode lokasi tidak valid")
	if err != nil {
		return err
	}
	var req dto.UpdateLokasiRequest
	if err := ac.bind(c, &req, req.Normalize); err != nil {
		return err
	}
	data, err := ac.Svc.UpdateLokasi(c.UserContext(), actor, helperAuth.GetRawToken(c), kode, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Lokasi berhasil diperbarui", data)
}

// POST /api/a/monitoring/lokasi
func (ac *AssetController) CreateLokasi(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateLokasiRequest
	if err := ac.bind(c, &req, req.Normalize); err != nil {
		return err
	}
	data, err := ac.Svc.CreateLokasi(c.UserContext(), actor, helperAuth.GetRawToken(c), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Lokasi berhasil ditambahkan", data)
}

// POST /api/a/monitoring/kondisi  (multipart/form-data, field foto wajib)
func (ac *AssetController) CatatKondisi(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	ct := string(c.Request().Header.ContentType())
	if !strings.HasPrefix(strings.ToLower(ct), fiber.MIMEMultipartForm) {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "Gunakan multipart/form-data")
	}

	var form dto.KondisiForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form tidak valid")
	}
	form.KondisiBarang = strings.TrimSpace(form.KondisiBarang)
	if err := ac.Validate.Struct(&form); err != nil {
		return helper.AsValidationError(err)
	}
	if fh, err := c.FormFile("foto"); err != nil || fh.Size == 0 {
		return helper.FieldErrors{"foto": {"wajib diisi"}}
	}

	data, err := ac.Svc.CatatKondisi(c.UserContext(), actor, helperAuth.GetRawToken(c), ct, c.Body(), form.NupBarang)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Kondisi barang tercatat", data)
}

/* =========================================================
   INTERNAL
========================================================= */

// bind: parse → normalize → validate.
func (ac *AssetController) bind(c *fiber.Ctx, req any, normalize func()) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	normalize()
	if err := ac.Validate.Struct(req); err != nil {
		return helper.AsValidationError(err)
	}
	return nil
}

func keyParam(c *fiber.Ctx, name, msg string) (string, error) {
	v := strings.TrimSpace(c.Params(name))
	if v == "" || len(v) > 50 {
		return "", fiber.NewError(fiber.StatusBadRequest, msg)
	}
	return v, nil
}
