package route

import (
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/features/monitoring/controller"
	"dsr_faste_backend/internals/features/monitoring/service"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

// Panggil dengan: route.MonitoringAdminRoutes(app.Group("/api/a"), api)
// Akses per slug dan per aksi aset diputuskan service berdasarkan role.
func MonitoringAdminRoutes(r fiber.Router, api *dsrapi.Client) {
	ctl := controller.NewMonitoringController(service.NewMonitoringService(api))
	asset := controller.NewAssetController(service.NewAssetService(api))

	m := r.Group("/monitoring")
	m.Get("/", ctl.Menu)

	// 📦 aset
	m.Get("/barang/:nup", asset.BarangDetail)
	m.Put("/barang/:nup", asset.UpdateBarang)
	m.Post("/barang", asset.CreateBarang)
	m.Get("/lokasi/:kode", asset.LokasiDetail)
	m.Put("/lokasi/:kode", asset.UpdateLokasi)
	m.Post("/lokasi", asset.CreateLokasi)
	m.Post("/kondisi", asset.CatatKondisi)

	m.Get("/:slug", ctl.View)
}
