package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO response of GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalDevices int                                `json:"total_devices"`
	Devices      DeviceStatusDistributionResponse   `json:"devices"`
	Quotes       TierDistributionResponse           `json:"quotes"`
	Shipments    ShipmentStatusDistributionResponse `json:"shipments"`

	// Quotes created in the current month
	MonthlyQuoteCount int             `json:"monthly_quote_count"`
	MonthlyQuoteValue decimal.Decimal `json:"monthly_quote_value"`
	AvgMonthlyCost    decimal.Decimal `json:"avg_monthly_cost"`

	TopDevices []TopDeviceDTO `json:"top_devices"`
	DateLabel  string         `json:"date_label"` // e.g. "October 2026"
}

// TopDeviceDTO a frequently quoted device.
type TopDeviceDTO struct {
	DeviceID   int             `json:"device_id"`
	DeviceName string          `json:"device_name"`
	Model      string          `json:"model"`
	QuoteCount int             `json:"quote_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}
