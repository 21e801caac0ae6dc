// internals/route/details/peminjaman_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	LaporanRoutes "dsr_faste_backend/internals/features/laporan/route"
	MonitoringRoutes "dsr_faste_backend/internals/features/monitoring/route"
	PeminjamanRoutes "dsr_faste_backend/internals/features/peminjaman/route"
	AkunRoutes "dsr_faste_backend/internals/features/users/akun/route"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
)

/* ===================== USER (civitas) ===================== */
func PeminjamanUserRoutes(r fiber.Router, db *gorm.DB, api *dsrapi.Client) {
	PeminjamanRoutes.PeminjamanUserRoutes(r, db, api)
}

/* ===================== ADMIN ===================== */
// staff, staff prodi, kepala bagian; wewenang per aksi diputuskan engine
func PeminjamanAdminRoutes(r fiber.Router, db *gorm.DB, api *dsrapi.Client) {
	PeminjamanRoutes.PeminjamanAdminRoutes(r, db, api)
	MonitoringRoutes.MonitoringAdminRoutes(r, api)
	LaporanRoutes.LaporanAdminRoutes(r, api)
	AkunRoutes.AkunAdminRoutes(r, api)
}
