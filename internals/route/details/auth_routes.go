package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	akunRoute "dsr_faste_backend/internals/features/users/akun/route"
	authRoute "dsr_faste_backend/internals/features/users/auth/route"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, api *dsrapi.Client, authGuard fiber.Handler) {
	authRoute.AuthRoutes(app, db, api, authGuard)
	akunRoute.AkunSelfRoutes(app.Group("/api/auth"), api, authGuard)
}
