package repository

import (
	"context"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
)

// QuoteFilter optional list filters.
type QuoteFilter struct {
	SupportTier *entity.SupportTier
}

// QuoteRepository persistence port for quotes. Read paths attach the referenced
// device (Quote.Device) through an explicit join.
type QuoteRepository interface {
	// Create stores a quote whose monetary fields are already computed and assigns its ID.
	Create(ctx context.Context, quote *entity.Quote) error
	// GetByID returns (nil, nil) when the quote does not exist.
	GetByID(ctx context.Context, id int) (*entity.Quote, error)
	// List returns the total matching filter and one page ordered by created_at DESC.
	List(ctx context.Context, filter QuoteFilter, page domain.Page) ([]*entity.Quote, int, error)
	CountByTier(ctx context.Context) (map[entity.SupportTier]int, error)
	// DeleteAll removes every quote (admin CLI only).
	DeleteAll(ctx context.Context) (int, error)
}
