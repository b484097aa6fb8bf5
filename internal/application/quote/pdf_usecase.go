package quote

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

// PDFDocument a rendered quote.
type PDFDocument struct {
	Filename string
	Content  []byte
}

// PDFUseCase renders a printable version of a persisted quote.
type PDFUseCase struct {
	quotes    repository.QuoteRepository
	generator PDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(quotes repository.QuoteRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{quotes: quotes, generator: generator}
}

// DownloadQuotePDF loads the quote with its device and renders it.
// Fails with NotFound when the quote does not exist.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, id int) domain.Result[*PDFDocument] {
	if id <= 0 {
		return domain.Errf[*PDFDocument](domain.KindNotFound, "Quote not found")
	}
	q, err := uc.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Err[*PDFDocument](domain.AsFailure(err, "Failed to retrieve quote"))
	}
	if q == nil {
		return domain.Errf[*PDFDocument](domain.KindNotFound, "Quote not found")
	}

	content, err := uc.generator.GenerateQuotePDF(ctx, q)
	if err != nil {
		log.Error().Err(err).Int("quote_id", id).Msg("quote: render pdf")
		return domain.Errf[*PDFDocument](domain.KindInternal, "Failed to render quote: %v", err)
	}
	return domain.Ok(&PDFDocument{
		Filename: fmt.Sprintf("quote-%06d.pdf", q.ID),
		Content:  content,
	})
}
