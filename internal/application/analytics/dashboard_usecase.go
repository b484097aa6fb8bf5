// Package analytics builds the portal dashboard from read-only repository queries.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/kdevnel/device-portal/internal/application/dto"
	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

const dashboardTopDevices = 5

// DashboardUseCase aggregates device, quote and shipment figures into one summary.
type DashboardUseCase struct {
	devices   repository.DeviceRepository
	quotes    repository.QuoteRepository
	shipments repository.ShipmentRepository
	analytics repository.AnalyticsRepository
	now       func() time.Time
}

// NewDashboardUseCase builds the use case.
func NewDashboardUseCase(
	devices repository.DeviceRepository,
	quotes repository.QuoteRepository,
	shipments repository.ShipmentRepository,
	analytics repository.AnalyticsRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		devices:   devices,
		quotes:    quotes,
		shipments: shipments,
		analytics: analytics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetSummary runs the five queries concurrently and fails on the first error
// in a fixed order:
//  1. device status distribution
//  2. support tier distribution
//  3. shipment status distribution
//  4. quote metrics for the current month
//  5. most quoted devices
func (uc *DashboardUseCase) GetSummary(ctx context.Context) domain.Result[*dto.DashboardSummaryDTO] {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type devicesResult struct {
		counts map[entity.DeviceStatus]int
		err    error
	}
	type tiersResult struct {
		counts map[entity.SupportTier]int
		err    error
	}
	type shipmentsResult struct {
		counts map[entity.ShipmentStatus]int
		err    error
	}
	type metricsResult struct {
		metrics repository.QuoteMetrics
		err     error
	}
	type topResult struct {
		top []repository.DeviceQuoteCount
		err error
	}

	devicesCh := make(chan devicesResult, 1)
	tiersCh := make(chan tiersResult, 1)
	shipmentsCh := make(chan shipmentsResult, 1)
	metricsCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		c, err := uc.devices.CountByStatus(ctx)
		devicesCh <- devicesResult{c, err}
	}()
	go func() {
		c, err := uc.quotes.CountByTier(ctx)
		tiersCh <- tiersResult{c, err}
	}()
	go func() {
		c, err := uc.shipments.CountByStatus(ctx)
		shipmentsCh <- shipmentsResult{c, err}
	}()
	go func() {
		m, err := uc.analytics.GetQuoteMetrics(ctx, monthStart, now)
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		t, err := uc.analytics.GetTopQuotedDevices(ctx, dashboardTopDevices)
		topCh <- topResult{t, err}
	}()

	devices := <-devicesCh
	tiers := <-tiersCh
	shipments := <-shipmentsCh
	metrics := <-metricsCh
	top := <-topCh

	for _, step := range []struct {
		name string
		err  error
	}{
		{"device distribution", devices.err},
		{"tier distribution", tiers.err},
		{"shipment distribution", shipments.err},
		{"quote metrics", metrics.err},
		{"top devices", top.err},
	} {
		if step.err != nil {
			return domain.Err[*dto.DashboardSummaryDTO](domain.AsFailure(step.err, "Error loading dashboard "+step.name))
		}
	}

	total := 0
	for _, n := range devices.counts {
		total += n
	}
	topDevices := make([]dto.TopDeviceDTO, 0, len(top.top))
	for _, d := range top.top {
		topDevices = append(topDevices, dto.TopDeviceDTO{
			DeviceID:   d.DeviceID,
			DeviceName: d.DeviceName,
			Model:      d.Model,
			QuoteCount: d.QuoteCount,
			TotalValue: d.TotalValue.Round(2),
		})
	}

	return domain.Ok(&dto.DashboardSummaryDTO{
		TotalDevices: total,
		Devices: dto.DeviceStatusDistributionResponse{
			Active:      devices.counts[entity.DeviceStatusActive],
			Retired:     devices.counts[entity.DeviceStatusRetired],
			UnderRepair: devices.counts[entity.DeviceStatusUnderRepair],
		},
		Quotes: dto.TierDistributionResponse{
			Basic:    tiers.counts[entity.SupportTierBasic],
			Standard: tiers.counts[entity.SupportTierStandard],
			Premium:  tiers.counts[entity.SupportTierPremium],
		},
		Shipments: dto.ShipmentStatusDistributionResponse{
			Processing: shipments.counts[entity.ShipmentStatusProcessing],
			InTransit:  shipments.counts[entity.ShipmentStatusInTransit],
			Delivered:  shipments.counts[entity.ShipmentStatusDelivered],
			Delayed:    shipments.counts[entity.ShipmentStatusDelayed],
		},
		MonthlyQuoteCount: metrics.metrics.QuoteCount,
		MonthlyQuoteValue: metrics.metrics.TotalQuotedValue.Round(2),
		AvgMonthlyCost:    metrics.metrics.AvgMonthlyCost.Round(2),
		TopDevices:        topDevices,
		DateLabel:         monthLabel(now),
	})
}

// monthLabel e.g. "October 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}
