package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_Tiers(t *testing.T) {
	cases := []struct {
		name         string
		tier         entity.SupportTier
		support      string
		totalMonthly string
		total        string
	}{
		{"basic", entity.SupportTierBasic, "0", "100", "1200"},
		{"standard", entity.SupportTierStandard, "20", "120", "1440"},
		{"premium", entity.SupportTierPremium, "50", "150", "1800"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := pricing.Calculate(dec("100.00"), tc.tier, 12)
			assert.True(t, b.MonthlyRate.Equal(dec("100")), "monthly rate %s", b.MonthlyRate)
			assert.True(t, b.SupportRate.Equal(dec(tc.support)), "support %s", b.SupportRate)
			assert.True(t, b.TotalMonthlyCost.Equal(dec(tc.totalMonthly)), "total monthly %s", b.TotalMonthlyCost)
			assert.True(t, b.TotalCost.Equal(dec(tc.total)), "total %s", b.TotalCost)
		})
	}
}

func TestCalculate_RoundsSupportToCurrencyScale(t *testing.T) {
	// 45.99 × 0.2 = 9.198 → 9.20
	b := pricing.Calculate(dec("45.99"), entity.SupportTierStandard, 12)
	assert.Equal(t, "9.20", b.SupportRate.StringFixed(2))
	assert.Equal(t, "55.19", b.TotalMonthlyCost.StringFixed(2))
	assert.Equal(t, "662.28", b.TotalCost.StringFixed(2))
	// the stored components always add up
	assert.True(t, b.MonthlyRate.Add(b.SupportRate).Equal(b.TotalMonthlyCost))
	assert.True(t, b.TotalMonthlyCost.Mul(decimal.NewFromInt(12)).Equal(b.TotalCost))
}

func TestCalculate_UnknownTierHasNoSurcharge(t *testing.T) {
	b := pricing.Calculate(dec("42.50"), entity.SupportTier(9), 3)
	assert.True(t, b.SupportRate.IsZero())
	assert.Equal(t, "127.50", b.TotalCost.StringFixed(2))
}

func TestCalculate_ZeroRate(t *testing.T) {
	b := pricing.Calculate(decimal.Zero, entity.SupportTierPremium, 60)
	assert.True(t, b.TotalCost.IsZero())
}

func TestMultiplier(t *testing.T) {
	assert.True(t, pricing.Multiplier(entity.SupportTierBasic).IsZero())
	assert.Equal(t, "0.2", pricing.Multiplier(entity.SupportTierStandard).String())
	assert.Equal(t, "0.5", pricing.Multiplier(entity.SupportTierPremium).String())
	assert.True(t, pricing.Multiplier(entity.SupportTier(0)).IsZero())
}
