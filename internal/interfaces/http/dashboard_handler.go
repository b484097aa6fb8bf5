package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/kdevnel/device-portal/internal/application/analytics"
)

// DashboardHandler dashboard endpoints.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Portal summary
// @Description  Device, quote and shipment distributions plus current-month quote figures.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.GetSummary(c.UserContext()))
}
