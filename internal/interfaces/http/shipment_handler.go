package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/application/usecase"
	"github.com/kdevnel/device-portal/internal/domain"
)

// ShipmentHandler shipment tracking endpoints.
type ShipmentHandler struct {
	uc *usecase.ShipmentUseCase
}

// NewShipmentHandler builds the handler.
func NewShipmentHandler(uc *usecase.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// List godoc
// @Summary      List shipments, newest first
// @Description  Out-of-range paging values fall back to page 1 / 20 items.
// @Tags         shipments
// @Produce      json
// @Param        page       query  int  false  "Page (1-based)"  default(1)
// @Param        page_size  query  int  false  "Page size (1-100)"  default(20)
// @Param        status     query  int  false  "1=Processing 2=InTransit 3=Delivered 4=Delayed"
// @Success      200  {object}  dto.ShipmentListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)
	status, ok := optionalIntQuery(c, "status")
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidEnum), "Invalid shipment status")
	}
	return respond(c, fiber.StatusOK, h.uc.List(c.UserContext(), page, size, status))
}

// GetByID godoc
// @Summary      Get a shipment
// @Tags         shipments
// @Produce      json
// @Param        id   path  int  true  "Shipment ID"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid shipment ID")
	}
	res := h.uc.GetByID(c.UserContext(), id)
	if res.IsSuccess() && res.Value() == nil {
		return writeError(c, fiber.StatusNotFound, string(domain.KindNotFound), "Shipment not found")
	}
	return respond(c, fiber.StatusOK, res)
}

// Track godoc
// @Summary      Find a shipment by tracking number
// @Tags         shipments
// @Produce      json
// @Param        tracking_number  path  string  true  "Tracking number"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/track/{tracking_number} [get]
func (h *ShipmentHandler) Track(c *fiber.Ctx) error {
	res := h.uc.Track(c.UserContext(), c.Params("tracking_number"))
	if res.IsSuccess() && res.Value() == nil {
		return writeError(c, fiber.StatusNotFound, string(domain.KindNotFound), "Shipment not found")
	}
	return respond(c, fiber.StatusOK, res)
}

// Create godoc
// @Summary      Register a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Shipment"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid request body")
	}
	return respond(c, fiber.StatusCreated, h.uc.Create(c.UserContext(), in))
}

// UpdateStatus godoc
// @Summary      Change a shipment status
// @Description  Delivered shipments cannot change. Delivered without actual_delivery stamps the current time.
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Shipment ID"
// @Param        body  body  dto.UpdateShipmentStatusRequest  true  "New status"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [patch]
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid shipment ID")
	}
	var in dto.UpdateShipmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid request body")
	}
	return respond(c, fiber.StatusOK, h.uc.UpdateStatus(c.UserContext(), id, in))
}

// StatusDistribution godoc
// @Summary      Shipment count per status
// @Tags         shipments
// @Produce      json
// @Success      200  {object}  dto.ShipmentStatusDistributionResponse
// @Router       /api/shipments/status-distribution [get]
func (h *ShipmentHandler) StatusDistribution(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.StatusDistribution(c.UserContext()))
}
