package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteValidity default lifetime of a quote.
const QuoteValidity = 30 * 24 * time.Hour

// SupportTier support level chosen for a lease.
type SupportTier int

const (
	SupportTierBasic    SupportTier = 1
	SupportTierStandard SupportTier = 2
	SupportTierPremium  SupportTier = 3
)

var supportTierNames = map[SupportTier]string{
	SupportTierBasic:    "Basic",
	SupportTierStandard: "Standard",
	SupportTierPremium:  "Premium",
}

// SupportTiers returns every tier in declaration order.
func SupportTiers() []SupportTier {
	return []SupportTier{SupportTierBasic, SupportTierStandard, SupportTierPremium}
}

func (t SupportTier) String() string {
	if name, ok := supportTierNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t SupportTier) IsValid() bool {
	_, ok := supportTierNames[t]
	return ok
}

// Quote a lease price quote. The four monetary fields are derived from the device
// price and the tier at creation time and are never taken from caller input.
// A zero ID means the quote is ephemeral (calculated, not persisted).
type Quote struct {
	ID               int
	DeviceID         int
	Device           *Device // attached by the repository read path
	CustomerName     string
	DurationMonths   int
	SupportTier      SupportTier
	MonthlyRate      decimal.Decimal
	SupportRate      decimal.Decimal
	TotalMonthlyCost decimal.Decimal
	TotalCost        decimal.Decimal
	CreatedAt        time.Time
	ValidUntil       time.Time
}
