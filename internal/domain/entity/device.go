package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeviceStatus lifecycle of a leasable device.
type DeviceStatus int

const (
	DeviceStatusActive      DeviceStatus = 1
	DeviceStatusRetired     DeviceStatus = 2
	DeviceStatusUnderRepair DeviceStatus = 3
)

// deviceStatusNames is the single source for status display names.
var deviceStatusNames = map[DeviceStatus]string{
	DeviceStatusActive:      "Active",
	DeviceStatusRetired:     "Retired",
	DeviceStatusUnderRepair: "UnderRepair",
}

// DeviceStatuses returns every status in declaration order.
func DeviceStatuses() []DeviceStatus {
	return []DeviceStatus{DeviceStatusActive, DeviceStatusRetired, DeviceStatusUnderRepair}
}

func (s DeviceStatus) String() string {
	if name, ok := deviceStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s DeviceStatus) IsValid() bool {
	_, ok := deviceStatusNames[s]
	return ok
}

// Device a device in the leasing catalog.
// MonthlyPrice is the base lease price with 2 fractional digits.
type Device struct {
	ID           int
	Name         string
	Model        string
	MonthlyPrice decimal.Decimal
	PurchaseDate time.Time
	Status       DeviceStatus
}

// IsLeasable reports whether new quotes may reference the device.
func (d *Device) IsLeasable() bool {
	return d != nil && d.Status == DeviceStatusActive
}
