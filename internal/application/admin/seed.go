// Package admin holds maintenance operations run from the portalctl CLI.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
)

// SampleDevice a catalog entry loaded by Seed.
type SampleDevice struct {
	Name         string
	Model        string
	MonthlyPrice string
	PurchaseDate string // YYYY-MM-DD
	Status       entity.DeviceStatus
}

// SampleDevices the demo catalog.
var SampleDevices = []SampleDevice{
	{"iPhone 15 Pro", "A3102", "45.99", "2024-01-15", entity.DeviceStatusActive},
	{"Samsung Galaxy S24", "SM-S921B", "42.50", "2025-02-20", entity.DeviceStatusActive},
	{"iPad Air", "A2316", "25.99", "2024-03-10", entity.DeviceStatusUnderRepair},
	{`MacBook Pro 14" M3`, "M3", "89.99", "2024-01-05", entity.DeviceStatusActive},
	{"Dell XPS 13", "9340", "55.75", "2023-04-12", entity.DeviceStatusRetired},
	{"Google Pixel 8", "GC3VE", "38.99", "2024-02-28", entity.DeviceStatusActive},
}

// SeedReport outcome of Seed.
type SeedReport struct {
	Created int
	Skipped int
}

// ClearReport outcome of Clear.
type ClearReport struct {
	Quotes  int
	Devices int
}

// Maintenance seeds and clears the device catalog.
type Maintenance struct {
	devices repository.DeviceRepository
	quotes  repository.QuoteRepository
}

// NewMaintenance builds the use case.
func NewMaintenance(devices repository.DeviceRepository, quotes repository.QuoteRepository) *Maintenance {
	return &Maintenance{devices: devices, quotes: quotes}
}

// Seed inserts the sample devices. Devices whose name already exists are skipped,
// so running it twice is harmless.
func (m *Maintenance) Seed(ctx context.Context) (SeedReport, error) {
	var report SeedReport
	for _, s := range SampleDevices {
		existing, err := m.devices.GetByName(ctx, s.Name)
		if err != nil {
			return report, fmt.Errorf("seed: lookup %q: %w", s.Name, err)
		}
		if existing != nil {
			report.Skipped++
			continue
		}

		purchased, err := time.Parse(time.DateOnly, s.PurchaseDate)
		if err != nil {
			return report, fmt.Errorf("seed: purchase date %q: %w", s.PurchaseDate, err)
		}
		price, err := decimal.NewFromString(s.MonthlyPrice)
		if err != nil {
			return report, fmt.Errorf("seed: price %q: %w", s.MonthlyPrice, err)
		}
		d := &entity.Device{
			Name:         s.Name,
			Model:        s.Model,
			MonthlyPrice: price,
			PurchaseDate: purchased.UTC(),
			Status:       s.Status,
		}
		if err := m.devices.Create(ctx, d); err != nil {
			return report, fmt.Errorf("seed: create %q: %w", s.Name, err)
		}
		report.Created++
		log.Info().Int("device_id", d.ID).Str("name", d.Name).Msg("seed: device created")
	}
	return report, nil
}

// Clear removes every quote and then every device.
func (m *Maintenance) Clear(ctx context.Context) (ClearReport, error) {
	var report ClearReport
	n, err := m.quotes.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("clear quotes: %w", err)
	}
	report.Quotes = n

	n, err = m.devices.DeleteAll(ctx)
	if err != nil {
		return report, fmt.Errorf("clear devices: %w", err)
	}
	report.Devices = n
	return report, nil
}
