package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteMetrics aggregate figures over quotes created in a period.
type QuoteMetrics struct {
	QuoteCount       int
	TotalQuotedValue decimal.Decimal // sum of total_cost
	AvgMonthlyCost   decimal.Decimal // average total_monthly_cost
}

// DeviceQuoteCount how often a device was quoted.
type DeviceQuoteCount struct {
	DeviceID   int
	DeviceName string
	Model      string
	QuoteCount int
	TotalValue decimal.Decimal
}

// AnalyticsRepository read-only queries for the dashboard.
type AnalyticsRepository interface {
	// GetQuoteMetrics aggregates quotes created in [start, end]. Zero values when none.
	GetQuoteMetrics(ctx context.Context, start, end time.Time) (QuoteMetrics, error)

	// GetTopQuotedDevices returns at most limit devices ordered by quote count DESC.
	GetTopQuotedDevices(ctx context.Context, limit int) ([]DeviceQuoteCount, error)
}
