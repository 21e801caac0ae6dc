// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "dsr_faste_backend/internals/features/users/auth/controller"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
	rateLimiter "dsr_faste_backend/internals/middlewares"
)

// AuthRoutes: Base /api/auth. authGuard = AuthJWT (dibuat di route index).
func AuthRoutes(app *fiber.App, db *gorm.DB, api *dsrapi.Client, authGuard fiber.Handler) {
	authController := controller.NewAuthController(db, api)

	baseAuth := app.Group("/api/auth")

	// 🔓 Public (diteruskan ke DSR API)
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), authController.ForgotPassword)
	baseAuth.Post("/reset-password", authController.ResetPassword)

	// 🔐 Protected
	baseAuth.Get("/me", authGuard, authController.Me)
	baseAuth.Post("/logout", authGuard, authController.Logout)
}
