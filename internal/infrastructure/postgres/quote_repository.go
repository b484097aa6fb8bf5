package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// Every read joins the device so callers never see a quote without it.
const quoteSelect = `
	SELECT q.id, q.device_id, q.customer_name, q.duration_months, q.support_tier,
	       q.monthly_rate, q.support_rate, q.total_monthly_cost, q.total_cost,
	       q.created_at, q.valid_until,
	       d.id, d.name, d.model, d.monthly_price, d.purchase_date, d.status
	FROM quotes q
	JOIN devices d ON d.id = q.device_id`

// QuoteRepo QuoteRepository over PostgreSQL (pool or tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository builds the quote adapter. Pass a pool or a tx.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

// Create inserts a quote whose monetary fields are already computed.
func (r *QuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (device_id, customer_name, duration_months, support_tier,
		                    monthly_rate, support_rate, total_monthly_cost, total_cost,
		                    created_at, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		quote.DeviceID, quote.CustomerName, quote.DurationMonths, int(quote.SupportTier),
		quote.MonthlyRate, quote.SupportRate, quote.TotalMonthlyCost, quote.TotalCost,
		quote.CreatedAt, quote.ValidUntil,
	).Scan(&quote.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Fail(domain.KindNotFound, "Device not found")
		}
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when absent.
func (r *QuoteRepo) GetByID(ctx context.Context, id int) (*entity.Quote, error) {
	quote, err := scanQuote(r.q.QueryRow(ctx, quoteSelect+` WHERE q.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return quote, nil
}

// List returns the total matching filter and one page, newest first.
func (r *QuoteRepo) List(ctx context.Context, filter repository.QuoteFilter, page domain.Page) ([]*entity.Quote, int, error) {
	where := ""
	args := []any{}
	if filter.SupportTier != nil {
		where = ` WHERE q.support_tier = $1`
		args = append(args, int(*filter.SupportTier))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotes q`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("%s%s ORDER BY q.created_at DESC, q.id DESC LIMIT $%d OFFSET $%d", quoteSelect, where, n+1, n+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Quote, 0, page.Limit())
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list quotes rows: %w", err)
	}
	return list, total, nil
}

func (r *QuoteRepo) CountByTier(ctx context.Context) (map[entity.SupportTier]int, error) {
	rows, err := r.q.Query(ctx, `SELECT support_tier, COUNT(*) FROM quotes GROUP BY support_tier`)
	if err != nil {
		return nil, fmt.Errorf("count quotes by tier: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.SupportTier]int, len(entity.SupportTiers()))
	for rows.Next() {
		var tier, n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("scan tier count: %w", err)
		}
		counts[entity.SupportTier(tier)] = n
	}
	return counts, rows.Err()
}

func (r *QuoteRepo) DeleteAll(ctx context.Context) (int, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM quotes`)
	if err != nil {
		return 0, fmt.Errorf("delete quotes: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var (
		q            entity.Quote
		d            entity.Device
		tier, status int
	)
	err := row.Scan(
		&q.ID, &q.DeviceID, &q.CustomerName, &q.DurationMonths, &tier,
		&q.MonthlyRate, &q.SupportRate, &q.TotalMonthlyCost, &q.TotalCost,
		&q.CreatedAt, &q.ValidUntil,
		&d.ID, &d.Name, &d.Model, &d.MonthlyPrice, &d.PurchaseDate, &status,
	)
	if err != nil {
		return nil, err
	}
	q.SupportTier = entity.SupportTier(tier)
	q.CreatedAt = q.CreatedAt.UTC()
	q.ValidUntil = q.ValidUntil.UTC()
	d.Status = entity.DeviceStatus(status)
	d.PurchaseDate = d.PurchaseDate.UTC()
	q.Device = &d
	return &q, nil
}
