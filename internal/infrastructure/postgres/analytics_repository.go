package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only dashboard queries.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository builds the analytics adapter.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetQuoteMetrics aggregates quotes created in [start, end].
// COALESCE keeps the result at zero for an empty period.
func (r *AnalyticsRepo) GetQuoteMetrics(ctx context.Context, start, end time.Time) (repository.QuoteMetrics, error) {
	const query = `
	SELECT
	    COUNT(*)                                 AS quote_count,
	    COALESCE(SUM(total_cost), 0)             AS total_value,
	    COALESCE(ROUND(AVG(total_monthly_cost), 2), 0) AS avg_monthly
	FROM quotes
	WHERE created_at BETWEEN $1 AND $2`

	var m repository.QuoteMetrics
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&m.QuoteCount, &m.TotalQuotedValue, &m.AvgMonthlyCost); err != nil {
		return repository.QuoteMetrics{}, fmt.Errorf("analytics.GetQuoteMetrics: %w", err)
	}
	return m, nil
}

// GetTopQuotedDevices returns the `limit` devices with most quotes.
func (r *AnalyticsRepo) GetTopQuotedDevices(ctx context.Context, limit int) ([]repository.DeviceQuoteCount, error) {
	const query = `
	SELECT
	    d.id,
	    d.name,
	    d.model,
	    COUNT(q.id)                    AS quote_count,
	    COALESCE(SUM(q.total_cost), 0) AS total_value
	FROM quotes q
	JOIN devices d ON d.id = q.device_id
	GROUP BY d.id, d.name, d.model
	ORDER BY quote_count DESC, total_value DESC, d.id
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopQuotedDevices: %w", err)
	}
	defer rows.Close()

	results := []repository.DeviceQuoteCount{}
	for rows.Next() {
		var row repository.DeviceQuoteCount
		if err := rows.Scan(&row.DeviceID, &row.DeviceName, &row.Model, &row.QuoteCount, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopQuotedDevices scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetTopQuotedDevices rows: %w", err)
	}
	return results, nil
}
