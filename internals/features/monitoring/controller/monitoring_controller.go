package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/features/monitoring/dto"
	"dsr_faste_backend/internals/features/monitoring/service"
	helper "dsr_faste_backend/internals/helpers"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

type MonitoringController struct {
	Svc      *service.MonitoringService
	Validate *validator.Validate
}

func NewMonitoringController(svc *service.MonitoringService) *MonitoringController {
	return &MonitoringController{Svc: svc, Validate: helper.NewValidator()}
}

// GET /api/a/monitoring
func (mc *MonitoringController) Menu(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Menu monitoring", mc.Svc.Menu(actor))
}

// GET /api/a/monitoring/:slug?q=&page=&per_page=
func (mc *MonitoringController) View(c *fiber.Ctx) error {
	actor, err := helperAuth.GetActor(c)
	if err != nil {
		return err
	}
	var q dto.ViewQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := mc.Validate.Struct(&q); err != nil {
		return helper.AsValidationError(err)
	}

	data, meta, err := mc.Svc.View(c.UserContext(), actor, helperAuth.GetRawToken(c), c.Params("slug"), q.Q, helper.ParseFiber(c, helper.AdminOpts))
	if err != nil {
		return err
	}
	return helper.JsonList(c, "Data monitoring", data, &meta)
}
