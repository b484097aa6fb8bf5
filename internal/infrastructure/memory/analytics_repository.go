package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kdevnel/device-portal/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo dashboard aggregates computed over a Store.
type AnalyticsRepo struct {
	s *Store
}

func NewAnalyticsRepository(s *Store) *AnalyticsRepo {
	return &AnalyticsRepo{s: s}
}

func (r *AnalyticsRepo) GetQuoteMetrics(_ context.Context, start, end time.Time) (repository.QuoteMetrics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	var (
		m            repository.QuoteMetrics
		monthlyTotal = decimal.Zero
	)
	m.TotalQuotedValue = decimal.Zero
	m.AvgMonthlyCost = decimal.Zero
	for _, q := range r.s.quotes {
		if q.CreatedAt.Before(start) || q.CreatedAt.After(end) {
			continue
		}
		m.QuoteCount++
		m.TotalQuotedValue = m.TotalQuotedValue.Add(q.TotalCost)
		monthlyTotal = monthlyTotal.Add(q.TotalMonthlyCost)
	}
	if m.QuoteCount > 0 {
		m.AvgMonthlyCost = monthlyTotal.Div(decimal.NewFromInt(int64(m.QuoteCount))).Round(2)
	}
	return m, nil
}

func (r *AnalyticsRepo) GetTopQuotedDevices(_ context.Context, limit int) ([]repository.DeviceQuoteCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.touch()

	byDevice := make(map[int]*repository.DeviceQuoteCount)
	for _, q := range r.s.quotes {
		row, ok := byDevice[q.DeviceID]
		if !ok {
			d := r.s.devices[q.DeviceID]
			row = &repository.DeviceQuoteCount{DeviceID: q.DeviceID, DeviceName: d.Name, Model: d.Model, TotalValue: decimal.Zero}
			byDevice[q.DeviceID] = row
		}
		row.QuoteCount++
		row.TotalValue = row.TotalValue.Add(q.TotalCost)
	}

	results := make([]repository.DeviceQuoteCount, 0, len(byDevice))
	for _, row := range byDevice {
		results = append(results, *row)
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.QuoteCount != b.QuoteCount {
			return a.QuoteCount > b.QuoteCount
		}
		if !a.TotalValue.Equal(b.TotalValue) {
			return a.TotalValue.GreaterThan(b.TotalValue)
		}
		return a.DeviceID < b.DeviceID
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
