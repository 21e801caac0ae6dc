package route

import (
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	"dsr_faste_backend/internals/features/users/akun/controller"
	"dsr_faste_backend/internals/features/users/akun/service"
	dsrapi "dsr_faste_backend/internals/helpers/dsrapi"
	"dsr_faste_backend/internals/middlewares/auth"
)

func newController(api *dsrapi.Client) *controller.AkunController {
	return controller.NewAkunController(service.NewAkunService(api))
}

// Panggil dengan: route.AkunAdminRoutes(app.Group("/api/a"), api)
func AkunAdminRoutes(r fiber.Router, api *dsrapi.Client) {
	ctl := newController(api)

	kepalaGuard := auth.OnlyRoles(
		constants.RoleErrorKepalaBagian("kelola akun"),
		constants.KepalaBagianOnly...,
	)

	a := r.Group("/akun", kepalaGuard)
	a.Get("/:nik", ctl.Detail)
	a.Put("/:nik", ctl.Update)
}

// Panggil dengan: route.AkunSelfRoutes(app.Group("/api/auth"), api, authGuard)
func AkunSelfRoutes(r fiber.Router, api *dsrapi.Client, authGuard fiber.Handler) {
	ctl := newController(api)
	r.Put("/akun", authGuard, ctl.UpdateSelf)
}
