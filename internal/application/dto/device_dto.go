package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeviceRequest input to add a device to the catalog.
type CreateDeviceRequest struct {
	Name         string          `json:"name"`
	Model        string          `json:"model"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	Status       int             `json:"status"` // 0 = Active
}

// UpdateDeviceStatusRequest input to move a device through its lifecycle.
type UpdateDeviceStatusRequest struct {
	Status int `json:"status"`
}

// DeviceResponse output for a device.
type DeviceResponse struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Model        string          `json:"model"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Status       int             `json:"status"`
	StatusName   string          `json:"status_name"`
}

// DeviceListResponse paginated device list.
type DeviceListResponse struct {
	Total int              `json:"total"`
	Items []DeviceResponse `json:"items"`
}

// DeviceStatusDistributionResponse device count per status.
type DeviceStatusDistributionResponse struct {
	Active      int `json:"active"`
	Retired     int `json:"retired"`
	UnderRepair int `json:"under_repair"`
}
