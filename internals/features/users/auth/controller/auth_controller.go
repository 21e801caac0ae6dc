package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dsr_faste_backend/internals/configs"
	"dsr_faste_backend/internals/features/users/auth/dto"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

// Forwarder: subset DSR API yang dipakai auth (diteruskan apa adanya).
type Forwarder interface {
	Forward(ctx context.Context, method, path, token string, body []byte) (*dsrapi.Response, error)
}

// BlacklistFunc menyimpan token yang logout sampai masa berlakunya habis.
type BlacklistFunc func(ctx context.Context, rawToken, nik string, expiresAt time.Time) error

type AuthController struct {
	API       Forwarder
	Validate  *validator.Validate
	Blacklist BlacklistFunc
}

func NewAuthController(db *gorm.DB, api Forwarder) *AuthController {
	return &AuthController{
		API:      api,
		Validate: helper.NewValidator(),
		Blacklist: func(ctx context.Context, raw, nik string, exp time.Time) error {
			return helperAuth.Add(ctx, db, raw, configs.JWTSecret, nik, exp)
		},
	}
}

/* =========================================================
   PUBLIC (diteruskan ke DSR API)
========================================================= */

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ac.bind(c, &req, func() {
		req.Email = normalizeEmail(req.Email)
	}); err != nil {
		return err
	}
	return ac.forward(c, "/auth/login", req)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ac.bind(c, &req, func() {
		req.NIK = strings.TrimSpace(req.NIK)
		req.Email = normalizeEmail(req.Email)
		req.Nama = strings.TrimSpace(req.Nama)
	}); err != nil {
		return err
	}
	return ac.forward(c, "/auth/register", req)
}

// POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := ac.bind(c, &req, func() {
		req.Email = normalizeEmail(req.Email)
	}); err != nil {
		return err
	}
	return ac.forward(c, "/auth/forgot-password", req)
}

// POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := ac.bind(c, &req, nil); err != nil {
		return err
	}
	return ac.forward(c, "/auth/reset-password", req)
}

/* =========================================================
   PROTECTED
========================================================= */

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"user":       actor,
		"role_label": actor.Role.Label(),
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	raw := helperAuth.GetRawToken(c)
	exp, ok := c.Locals(helperAuth.LocTokenExp).(time.Time)
	if !ok || exp.IsZero() {
		exp = time.Now().Add(24 * time.Hour)
	}

	if err := ac.Blacklist(c.UserContext(), raw, actor.NIK, exp); err != nil {
		log.Printf("[ERROR] Gagal blacklist token nik=%s: %v", actor.NIK, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal logout")
	}
	helper.ClearAccessTokenCookie(c)

	log.Printf("[INFO] Logout nik=%s role=%s", actor.NIK, actor.Role)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* =========================================================
   INTERNAL
========================================================= */

// bind: parse → normalize → validate.
func (ac *AuthController) bind(c *fiber.Ctx, req any, normalize func()) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if normalize != nil {
		normalize()
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.AsValidationError(err)
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// forward: status & body DSR API dikembalikan ke klien apa adanya.
func (ac *AuthController) forward(c *fiber.Ctx, path string, payload any) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan request")
	}
	res, err := ac.API.Forward(c.UserContext(), fiber.MethodPost, path, "", body)
	if err != nil {
		return dsrapi.AsFiberError(err)
	}
	if res.ContentType != "" {
		c.Set(fiber.HeaderContentType, res.ContentType)
	}
	return c.Status(res.Status).Send(res.Body)
}
