package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculateQuoteRequest input for a price preview.
type CalculateQuoteRequest struct {
	DeviceID       int    `json:"device_id"`
	CustomerName   string `json:"customer_name"`
	DurationMonths int    `json:"duration_months"`
	SupportTier    int    `json:"support_tier"`
}

// CreateQuoteRequest input to persist a quote. Monetary values sent by clients are
// accepted so older payloads still decode, then ignored: the quote is priced from the device.
type CreateQuoteRequest struct {
	DeviceID         int              `json:"device_id"`
	CustomerName     string           `json:"customer_name"`
	DurationMonths   int              `json:"duration_months"`
	SupportTier      int              `json:"support_tier"`
	ValidUntil       *time.Time       `json:"valid_until,omitempty"`
	MonthlyRate      *decimal.Decimal `json:"monthly_rate,omitempty"`
	SupportRate      *decimal.Decimal `json:"support_rate,omitempty"`
	TotalMonthlyCost *decimal.Decimal `json:"total_monthly_cost,omitempty"`
	TotalCost        *decimal.Decimal `json:"total_cost,omitempty"`
}

// QuoteCalculationResponse ephemeral quote (no id, no creation time).
type QuoteCalculationResponse struct {
	DeviceID         int             `json:"device_id"`
	DeviceName       string          `json:"device_name"`
	DeviceModel      string          `json:"device_model"`
	CustomerName     string          `json:"customer_name"`
	DurationMonths   int             `json:"duration_months"`
	SupportTier      int             `json:"support_tier"`
	SupportTierName  string          `json:"support_tier_name"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	SupportRate      decimal.Decimal `json:"support_rate"`
	TotalMonthlyCost decimal.Decimal `json:"total_monthly_cost"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	ValidUntil       time.Time       `json:"valid_until"`
}

// QuoteResponse persisted quote.
type QuoteResponse struct {
	ID int `json:"id"`
	QuoteCalculationResponse
	CreatedAt time.Time `json:"created_at"`
}

// QuoteListResponse paginated quote list.
type QuoteListResponse struct {
	Total int             `json:"total"`
	Items []QuoteResponse `json:"items"`
}

// TierDistributionResponse quote count per support tier.
type TierDistributionResponse struct {
	Basic    int `json:"basic"`
	Standard int `json:"standard"`
	Premium  int `json:"premium"`
}
