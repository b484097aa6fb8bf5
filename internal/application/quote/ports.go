package quote

import (
	"context"

	"github.com/kdevnel/device-portal/internal/domain/entity"
)

// PDFGenerator renders a persisted quote (with its device attached) as a PDF document.
type PDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote) ([]byte, error)
}
