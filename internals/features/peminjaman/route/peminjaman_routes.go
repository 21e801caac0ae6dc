// file: internals/features/peminjaman/route/peminjaman_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/peminjaman/controller"
	"dsr_faste_backend/internals/features/peminjaman/repository"
	"dsr_faste_backend/internals/features/peminjaman/service"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
	rateLimiter "dsr_faste_backend/internals/middlewares"
	"dsr_faste_backend/internals/middlewares/auth"
)

func newController(db *gorm.DB, api service.PeminjamanAPI) *controller.PeminjamanController {
	var logs service.ActionLogStore
	if db != nil {
		logs = repository.NewActionLogRepository(db)
	}
	return controller.NewPeminjamanController(service.NewPeminjamanService(api, logs))
}

// Panggil dengan: route.PeminjamanUserRoutes(app.Group("/api/u"), db, api)
//
//	/api/u/peminjaman
//	/api/u/lokasi/available
func PeminjamanUserRoutes(r fiber.Router, db *gorm.DB, api *dsrapi.Client) {
	ctl := newController(db, api)

	p := r.Group("/peminjaman")
	p.Get("/", ctl.List)      // 📄 milik sendiri
	p.Get("/:id", ctl.Detail) // 📄 detail + QR
	p.Post("/", ctl.Create)   // ➕ ajukan

	r.Get("/lokasi/available", ctl.LokasiAvailable)
}

// Panggil dengan: route.PeminjamanAdminRoutes(app.Group("/api/a"), db, api)
// Group /api/a sudah dijaga AdminRoles.
func PeminjamanAdminRoutes(r fiber.Router, db *gorm.DB, api *dsrapi.Client) {
	ctl := newController(db, api)

	operatorGuard := auth.OnlyRoles(
		constants.RoleErrorOperator("pickup & pengembalian"),
		constants.OperatorRoles...,
	)

	p := r.Group("/peminjaman")
	p.Get("/", ctl.List)               // 📄 ?status=&verifikasi=&kategori=&q=&perlu_aksi=
	p.Get("/:id", ctl.Detail)          // 📄 detail + aksi
	p.Get("/:id/riwayat", ctl.History) // 🕘 jejak aksi
	p.Put("/verify/:id", ctl.Verify)   // ✅ terima / tolak (engine menentukan wewenang)
	p.Put("/activate/:id", operatorGuard, ctl.Activate)
	p.Put("/return/:id", operatorGuard, ctl.Return)

	// 📷 scan QR
	scanLimiter := rateLimiter.ScanRateLimiter()
	p.Post("/scan-pickup", operatorGuard, scanLimiter, ctl.ScanPickup)
	p.Post("/scan-return", operatorGuard, scanLimiter, ctl.ScanReturn)
	p.Post("/scan-pickup/:id", operatorGuard, scanLimiter, ctl.ScanPickupByID)
	p.Post("/scan-return/:id", operatorGuard, scanLimiter, ctl.ScanReturnByID)
}
