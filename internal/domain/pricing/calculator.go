package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/kdevnel/device-portal/internal/domain/entity"
)

// currencyScale fractional digits stored for every monetary amount.
const currencyScale = 2

// tierMultipliers surcharge applied on top of the device base price.
var tierMultipliers = map[entity.SupportTier]decimal.Decimal{
	entity.SupportTierBasic:    decimal.Zero,
	entity.SupportTierStandard: decimal.RequireFromString("0.2"),
	entity.SupportTierPremium:  decimal.RequireFromString("0.5"),
}

// Breakdown monetary result of a quote calculation.
type Breakdown struct {
	MonthlyRate      decimal.Decimal
	SupportRate      decimal.Decimal
	TotalMonthlyCost decimal.Decimal
	TotalCost        decimal.Decimal
}

// Multiplier returns the surcharge multiplier for tier. Unknown tiers get no surcharge.
func Multiplier(tier entity.SupportTier) decimal.Decimal {
	if m, ok := tierMultipliers[tier]; ok {
		return m
	}
	return decimal.Zero
}

// Calculate prices a lease (domain service, pure).
//
//	SupportRate      = MonthlyRate × multiplier(tier)
//	TotalMonthlyCost = MonthlyRate + SupportRate
//	TotalCost        = TotalMonthlyCost × months
//
// SupportRate is rounded to currency scale before it is summed so the stored totals
// always equal the stored components.
func Calculate(monthlyRate decimal.Decimal, tier entity.SupportTier, months int) Breakdown {
	rate := monthlyRate.Round(currencyScale)
	support := rate.Mul(Multiplier(tier)).Round(currencyScale)
	totalMonthly := rate.Add(support)
	return Breakdown{
		MonthlyRate:      rate,
		SupportRate:      support,
		TotalMonthlyCost: totalMonthly,
		TotalCost:        totalMonthly.Mul(decimal.NewFromInt(int64(months))),
	}
}
