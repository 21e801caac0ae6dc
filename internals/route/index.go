// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dsr_faste_backend/internals/configs"
	"dsr_faste_backend/internals/constants"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
	authMiddleware "dsr_faste_backend/internals/middlewares/auth"
	routeDetails "dsr_faste_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, api *dsrapi.Client) {
	startTime = time.Now()

	opts := authMiddleware.AuthJWTOpts{Secret: configs.JWTSecret}
	if db != nil {
		opts.BlacklistChecker = helperAuth.NewBlacklistChecker(db, configs.JWTSecret)
	}
	authGuard := authMiddleware.AuthJWT(opts)

	// ===================== BASE =====================
	BaseRoutes(app)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, api, authGuard)

	// ===================== USER (civitas) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authGuard,
		authMiddleware.OnlyRoles(constants.RoleErrorCivitas("peminjaman"), constants.CivitasOnly...),
	)
	routeDetails.PeminjamanUserRoutes(user, db, api)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authGuard,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("dashboard admin"), constants.AdminRoles...),
	)
	routeDetails.PeminjamanAdminRoutes(admin, db, api)

	log.Println("[INFO] Routes siap")
}
