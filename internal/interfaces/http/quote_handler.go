package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/application/quote"
	"github.com/kdevnel/device-portal/internal/domain"
)

// QuoteHandler quote pricing endpoints.
type QuoteHandler struct {
	uc  *quote.UseCase
	pdf *quote.PDFUseCase
}

// NewQuoteHandler builds the handler. pdf may be nil, in which case the PDF route answers 404.
func NewQuoteHandler(uc *quote.UseCase, pdf *quote.PDFUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      List quotes, newest first
// @Tags         quotes
// @Produce      json
// @Param        page          query  int  false  "Page (1-based)"  default(1)
// @Param        page_size     query  int  false  "Page size (1-100)"  default(20)
// @Param        support_tier  query  int  false  "1=Basic 2=Standard 3=Premium"
// @Success      200  {object}  dto.QuoteListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)
	tier, ok := optionalIntQuery(c, "support_tier")
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidEnum), "Invalid support tier")
	}
	return respond(c, fiber.StatusOK, h.uc.List(c.UserContext(), page, size, tier))
}

// GetByID godoc
// @Summary      Get a quote with its device
// @Tags         quotes
// @Produce      json
// @Param        id   path  int  true  "Quote ID"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid quote ID")
	}
	res := h.uc.GetByID(c.UserContext(), id)
	if res.IsSuccess() && res.Value() == nil {
		return writeError(c, fiber.StatusNotFound, string(domain.KindNotFound), "Quote not found")
	}
	return respond(c, fiber.StatusOK, res)
}

// Calculate godoc
// @Summary      Price a lease without saving it
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateQuoteRequest  true  "Quote input"
// @Success      200   {object}  dto.QuoteCalculationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotes/calculate [post]
func (h *QuoteHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid request body")
	}
	return respond(c, fiber.StatusOK, h.uc.Calculate(c.UserContext(), in))
}

// Create godoc
// @Summary      Save a quote
// @Description  Monetary fields in the body are ignored and recomputed from the device price.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "Quote input"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid request body")
	}
	return respond(c, fiber.StatusCreated, h.uc.Create(c.UserContext(), in))
}

// TierDistribution godoc
// @Summary      Quote count per support tier
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  dto.TierDistributionResponse
// @Router       /api/quotes/support-tier-distribution [get]
func (h *QuoteHandler) TierDistribution(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.uc.TierDistribution(c.UserContext()))
}

// DownloadPDF godoc
// @Summary      Printable quote
// @Tags         quotes
// @Produce      application/pdf
// @Param        id   path  int  true  "Quote ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/pdf [get]
func (h *QuoteHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return writeError(c, fiber.StatusBadRequest, string(domain.KindInvalidInput), "Invalid quote ID")
	}
	if h.pdf == nil {
		return writeError(c, fiber.StatusNotFound, string(domain.KindNotFound), "PDF rendering is not enabled")
	}
	res := h.pdf.DownloadQuotePDF(c.UserContext(), id)
	if !res.IsSuccess() {
		return writeFailure(c, res.Failure())
	}
	doc := res.Value()
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename))
	return c.Status(fiber.StatusOK).Send(doc.Content)
}
