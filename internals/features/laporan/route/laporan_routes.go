package route

import (
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/laporan/controller"
	"dsr_faste_backend/internals/features/laporan/service"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
	"dsr_faste_backend/internals/middlewares/auth"
)

// Panggil dengan: route.LaporanAdminRoutes(app.Group("/api/a"), api)
func LaporanAdminRoutes(r fiber.Router, api *dsrapi.Client) {
	ctl := controller.NewLaporanController(service.NewLaporanService(api))

	kepalaGuard := auth.OnlyRoles(
		constants.RoleErrorKepalaBagian("laporan"),
		constants.KepalaBagianOnly...,
	)

	r.Get("/laporan/peminjaman/export", kepalaGuard, ctl.ExportPeminjaman) // 📊 xlsx
}
