package admin_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdevnel/device-portal/internal/application/admin"
	"github.com/kdevnel/device-portal/internal/domain/entity"
	"github.com/kdevnel/device-portal/internal/infrastructure/memory"
)

func TestMaintenance_SeedIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	devices := memory.NewDeviceRepository(store)
	m := admin.NewMaintenance(devices, memory.NewQuoteRepository(store))

	report, err := m.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(admin.SampleDevices), report.Created)

	report, err = m.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, len(admin.SampleDevices), report.Skipped)

	counts, err := devices.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, counts[entity.DeviceStatusActive])
	assert.Equal(t, 1, counts[entity.DeviceStatusRetired])
	assert.Equal(t, 1, counts[entity.DeviceStatusUnderRepair])

	iphone, err := devices.GetByName(context.Background(), "iPhone 15 Pro")
	require.NoError(t, err)
	require.NotNil(t, iphone)
	assert.Equal(t, "45.99", iphone.MonthlyPrice.StringFixed(2))
}

func TestMaintenance_ClearRemovesQuotesBeforeDevices(t *testing.T) {
	store := memory.NewStore()
	devices := memory.NewDeviceRepository(store)
	quotes := memory.NewQuoteRepository(store)
	m := admin.NewMaintenance(devices, quotes)

	_, err := m.Seed(context.Background())
	require.NoError(t, err)
	require.NoError(t, quotes.Create(context.Background(), &entity.Quote{DeviceID: 1, SupportTier: entity.SupportTierBasic}))

	report, err := m.Clear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Quotes)
	assert.Equal(t, len(admin.SampleDevices), report.Devices)
}

func TestWriteSeedSQL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, admin.WriteSeedSQL(&buf))

	script := buf.String()
	assert.Contains(t, script, "INSERT INTO devices (name, model, monthly_price, purchase_date, status) VALUES")
	assert.Contains(t, script, "('iPhone 15 Pro', 'A3102', 45.99, '2024-01-15', 1),")
	assert.Contains(t, script, "('Google Pixel 8', 'GC3VE', 38.99, '2024-02-28', 1)\nON CONFLICT DO NOTHING;")
	assert.Equal(t, len(admin.SampleDevices), strings.Count(script, "\n  ("))
}
