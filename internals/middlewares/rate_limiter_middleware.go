package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

func byIP(max int, exp time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: exp,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return byIP(100, 1*time.Minute, "❌ Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return byIP(5, 1*time.Minute, "❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}

// Rate limiter untuk register route
func RegisterRateLimiter() fiber.Handler {
	return byIP(3, 5*time.Minute, "❌ Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.")
}

// Rate limiter untuk forgot-password
func ForgotPasswordRateLimiter() fiber.Handler {
	return byIP(2, 10*time.Minute, "❌ Terlalu banyak permintaan reset password. Silakan coba lagi dalam 10 menit.")
}

// Rate limiter scan QR, per akun (dipasang setelah AuthJWT).
func ScanRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if a, err := helperAuth.GetActor(c); err == nil {
				return "scan:" + a.NIK
			}
			return "scan-ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, "❌ Terlalu banyak scan. Tunggu sebentar.")
		},
	})
}
