package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_OrderedAndEmbedded(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_devices", "002_quotes", "003_shipments"}, names)

	sql, err := migrationFiles.ReadFile("migrations/002_quotes.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(sql), "ON DELETE RESTRICT")
	assert.Contains(t, string(sql), "NUMERIC(10,2)")
}
