package quote_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdevnel/device-portal/internal/application/quote"
	"github.com/kdevnel/device-portal/internal/domain"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/domain/repository"
	"github.com/kdevnel/device-portal/internal/infrastructure/memory"
)

// failingDevices fails every lookup.
type failingDevices struct {
	repository.DeviceRepository
	err error
}

func (f failingDevices) GetByID(context.Context, int) (*entity.Device, error) { return nil, f.err }

func validInput(deviceID int) quote.Input {
	return quote.Input{DeviceID: deviceID, CustomerName: "Acme Ltd", DurationMonths: 12, SupportTier: entity.SupportTierStandard}
}

// ── Input checks ──────────────────────────────────────────────────────────────

func TestCheckInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*quote.Input)
		kind    domain.ErrorKind
		message string
	}{
		{"device id zero", func(in *quote.Input) { in.DeviceID = 0 }, domain.KindInvalidInput, "Device ID must be a positive number"},
		{"device id negative", func(in *quote.Input) { in.DeviceID = -3 }, domain.KindInvalidInput, "Device ID must be a positive number"},
		{"blank name", func(in *quote.Input) { in.CustomerName = "   " }, domain.KindInvalidInput, "Customer name is required"},
		{"long name", func(in *quote.Input) { in.CustomerName = strings.Repeat("a", 101) }, domain.KindInvalidInput, "Customer name cannot exceed 100 characters"},
		{"zero months", func(in *quote.Input) { in.DurationMonths = 0 }, domain.KindOutOfRange, "Duration must be between 1 and 60 months"},
		{"61 months", func(in *quote.Input) { in.DurationMonths = 61 }, domain.KindOutOfRange, "Duration must be between 1 and 60 months"},
		{"tier zero", func(in *quote.Input) { in.SupportTier = 0 }, domain.KindInvalidEnum, "Invalid support tier"},
		{"tier four", func(in *quote.Input) { in.SupportTier = 4 }, domain.KindInvalidEnum, "Invalid support tier"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(1)
			tc.mutate(&in)
			f := quote.CheckInput(in)
			require.NotNil(t, f)
			assert.Equal(t, tc.kind, f.Kind)
			assert.Equal(t, tc.message, f.Message)
		})
	}
}

func TestCheckInput_Boundaries(t *testing.T) {
	for _, months := range []int{1, 60} {
		in := validInput(1)
		in.DurationMonths = months
		assert.Nil(t, quote.CheckInput(in), "months=%d", months)
	}
	in := validInput(1)
	in.CustomerName = "  " + strings.Repeat("é", 100) + "  "
	assert.Nil(t, quote.CheckInput(in), "100 characters after trimming is accepted")
}

func TestCheckInput_ReportsFirstFailureOnly(t *testing.T) {
	f := quote.CheckInput(quote.Input{DeviceID: 0, CustomerName: "", DurationMonths: 0, SupportTier: 9})
	require.NotNil(t, f)
	assert.Equal(t, domain.KindInvalidInput, f.Kind)
	assert.Equal(t, "Device ID must be a positive number", f.Message)

	f = quote.CheckInput(quote.Input{DeviceID: 1, CustomerName: "x", DurationMonths: 0, SupportTier: 9})
	require.NotNil(t, f)
	assert.Equal(t, domain.KindOutOfRange, f.Kind)
}

// ── Device checks ─────────────────────────────────────────────────────────────

func TestValidate_DeviceChecks(t *testing.T) {
	f := newFixture(t)
	active := f.addDevice(t, "iPhone 15 Pro", "45.99", entity.DeviceStatusActive)
	retired := f.addDevice(t, "Dell XPS 13", "55.75", entity.DeviceStatusRetired)
	repair := f.addDevice(t, "iPad Air", "25.99", entity.DeviceStatusUnderRepair)
	v := quote.NewValidator(f.devices)

	d, fail := v.Validate(context.Background(), validInput(active.ID))
	require.Nil(t, fail)
	assert.Equal(t, active.ID, d.ID)

	_, fail = v.Validate(context.Background(), validInput(999))
	require.NotNil(t, fail)
	assert.Equal(t, domain.KindNotFound, fail.Kind)
	assert.Equal(t, "Device not found", fail.Message)

	for _, id := range []int{retired.ID, repair.ID} {
		_, fail = v.Validate(context.Background(), validInput(id))
		require.NotNil(t, fail)
		assert.Equal(t, domain.KindUnavailable, fail.Kind)
		assert.Equal(t, "Device is not available for leasing", fail.Message)
	}
}

func TestValidate_InvalidInputNeverTouchesStorage(t *testing.T) {
	f := newFixture(t)
	v := quote.NewValidator(f.devices)
	before := f.store.Calls()

	_, fail := v.Validate(context.Background(), quote.Input{DeviceID: 1, CustomerName: "Acme", DurationMonths: 0, SupportTier: 1})
	require.NotNil(t, fail)
	assert.Equal(t, before, f.store.Calls())
}

func TestValidate_StorageFailurePassesMessageThrough(t *testing.T) {
	v := quote.NewValidator(failingDevices{err: errors.New("connection refused")})

	_, fail := v.Validate(context.Background(), validInput(1))
	require.NotNil(t, fail)
	assert.Equal(t, domain.KindStorageFailure, fail.Kind)
	assert.Contains(t, fail.Message, "connection refused")
}

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	store   *memory.Store
	devices *memory.DeviceRepo
	quotes  *memory.QuoteRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:   store,
		devices: memory.NewDeviceRepository(store),
		quotes:  memory.NewQuoteRepository(store),
	}
}
