// file: internals/features/peminjaman/controller/peminjaman_controller.go
package controller

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/dto"
	"dsr_faste_backend/internals/features/peminjaman/model"
	"dsr_faste_backend/internals/features/peminjaman/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

type PeminjamanController struct {
	Svc      *service.PeminjamanService
	Validate *validator.Validate
}

func NewPeminjamanController(svc *service.PeminjamanService) *PeminjamanController {
	return &PeminjamanController{Svc: svc, Validate: dto.NewValidator()}
}

/* =========================================================
   LIST & DETAIL (user + admin)
========================================================= */

// GET /api/u/peminjaman | /api/a/peminjaman
func (pc *PeminjamanController) List(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	q.Q = strings.TrimSpace(q.Q)
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
	q.Verifikasi = strings.ToLower(strings.TrimSpace(q.Verifikasi))
	q.Kategori = strings.ToLower(strings.TrimSpace(q.Kategori))
	if err := pc.Validate.Struct(&q); err != nil {
		return helper.AsValidationError(err)
	}

	opts := helper.DefaultOpts
	if actor.Is(constants.AdminRoles...) {
		opts = helper.AdminOpts
	}
	q.Paging = helper.ParseFiber(c, opts)

	views, meta, err := pc.Svc.List(c.UserContext(), actor, helperAuth.GetRawToken(c), q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Daftar peminjaman", views, &meta)
}

// GET /:id
func (pc *PeminjamanController) Detail(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := pc.Svc.Detail(c.UserContext(), actor, helperAuth.GetRawToken(c), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detail peminjaman", v)
}

// GET /api/a/peminjaman/:id/riwayat
func (pc *PeminjamanController) History(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rows, err := pc.Svc.History(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Riwayat aksi peminjaman", rows)
}

/* =========================================================
   USER (civitas)
========================================================= */

// POST /api/u/peminjaman
func (pc *PeminjamanController) Create(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}

	var req dto.CreatePeminjamanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(pc.Validate); err != nil {
		return err
	}

	p, err := pc.Svc.Create(c.UserContext(), actor, helperAuth.GetRawToken(c), &req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Peminjaman berhasil diajukan", dto.NewLoanView(p, actor))
}

// GET /api/u/lokasi/available
func (pc *PeminjamanController) LokasiAvailable(c *fiber.Ctx) error {
	out, err := pc.Svc.LokasiAvailable(c.UserContext(), helperAuth.GetRawToken(c))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Lokasi tersedia", out)
}

/* =========================================================
   ADMIN ACTIONS
========================================================= */

// PUT /api/a/peminjaman/verify/:id  body: {"verifikasi":"diterima"}
func (pc *PeminjamanController) Verify(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Verifikasi = strings.ToLower(strings.TrimSpace(req.Verifikasi))
	if err := pc.Validate.Struct(&req); err != nil {
		return helper.AsValidationError(err)
	}

	v, msg, err := pc.Svc.Verify(c.UserContext(), actor, helperAuth.GetRawToken(c), id, model.Verifikasi(req.Verifikasi))
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, msg, v)
}

// PUT /api/a/peminjaman/activate/:id
func (pc *PeminjamanController) Activate(c *fiber.Ctx) error {
	return pc.byID(c, pc.Svc.Activate)
}

// PUT /api/a/peminjaman/return/:id
func (pc *PeminjamanController) Return(c *fiber.Ctx) error {
	return pc.byID(c, pc.Svc.Return)
}

/* =========================================================
   SCAN QR (operator)
========================================================= */

// POST /api/a/peminjaman/scan-pickup  body: {"kode":"PINJAM-12"}
func (pc *PeminjamanController) ScanPickup(c *fiber.Ctx) error {
	return pc.byKode(c, pc.Svc.ScanPickup)
}

// POST /api/a/peminjaman/scan-return
func (pc *PeminjamanController) ScanReturn(c *fiber.Ctx) error {
	return pc.byKode(c, pc.Svc.ScanReturn)
}

// POST /api/a/peminjaman/scan-pickup/:id
func (pc *PeminjamanController) ScanPickupByID(c *fiber.Ctx) error {
	return pc.byID(c, pc.Svc.ScanPickupByID)
}

// POST /api/a/peminjaman/scan-return/:id
func (pc *PeminjamanController) ScanReturnByID(c *fiber.Ctx) error {
	return pc.byID(c, pc.Svc.ScanReturnByID)
}

/* =========================================================
   INTERNAL
========================================================= */

type actionByID func(ctx context.Context, actor helperAuth.Actor, token string, id int64) (dto.LoanView, string, error)

type actionByKode func(ctx context.Context, actor helperAuth.Actor, token, kode string) (dto.LoanView, string, error)

func (pc *PeminjamanController) byID(c *fiber.Ctx, run actionByID) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, msg, err := run(c.UserContext(), actor, helperAuth.GetRawToken(c), id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, msg, v)
}

func (pc *PeminjamanController) byKode(c *fiber.Ctx, run actionByKode) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := pc.Validate.Struct(&req); err != nil {
		return helper.AsValidationError(err)
	}
	v, msg, err := run(c.UserContext(), actor, helperAuth.GetRawToken(c), req.Kode)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, msg, v)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "ID peminjaman tidak valid")
	}
	return id, nil
}
