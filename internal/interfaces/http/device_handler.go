package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/application/usecase"
	"github.com/kdevnel/device-portal/internal/domain"
)

// DeviceHandler device catalog endpoints.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler builds the handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// List godoc
// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Param        page       query  int  false  "Page (1-based)"  default(1)
// @Param        page_size  query  int  false  "Page size (1-100)"  default(20)
// @Success      200  {object}  dto.DeviceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)
	return respond(c, fiber.StatusOK, h.uc.List(c.UserContext(), page, size))
}

// GetByID godoc
// @Summary      Get a device
// @Tags         devices
// @Produce      json
// @Param        id   path  int  true  "Device ID"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid device ID")
	}
	res := h.uc.GetByID(c.UserContext(), id)
	if res.IsSuccess() && res.Value() == nil {
		return writeError(c, fiber.StatusNotFound, string(domain.KindNotFound), "Device not found")
	}
	return respond(c, fiber.StatusOK, res)
}

// Create godoc
// @Summary      Add a device to the catalog
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeviceRequest  true  "Device"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid request body")
	}
	return respond(c, fiber.StatusCreated, h.uc.Create(c.UserContext(), in))
}

// UpdateStatus godoc
// @Summary      Change a device status
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "Device ID"
// @Param        body  body  dto.UpdateDeviceStatusRequest  true  "New status"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/status [patch]
func (h *DeviceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid device ID")
	}
	var in dto.UpdateDeviceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid request body")
	}
	return respond(c, fiber.StatusOK, h.uc.UpdateStatus(c.UserContext(), id, in))
}

// Delete godoc
// @Summary      Delete a device
// @Tags         devices
// @Param        id   path  int  true  "Device ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid device ID")
	}
	res := h.uc.Delete(c.UserContext(), id)
	if !res.IsSuccess() {
		return writeFailure(c, res.Failure())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StatusDistribution godoc
// @Summary      Device count per status
// @Tags         devices
// @Produce      json
// @Success      200  {object}  dto.DeviceStatusDistributionResponse
// @Router       /api/devices/status-distribution [get]
func (h *DeviceHandler) StatusDistribution(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.StatusDistribution(c.UserContext()))
}
