package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathwikreddyb/aqua-farms-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_orders_tables.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no orders migration file found")

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"CHECK (status IN ('placed', 'packed', 'out-for-delivery', 'delivered', 'cancelled'))",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS order_items",
	}
	for _, sub := range checks {
		assert.Contains(t, content, sub)
	}
}

func TestAddressesMigrationEnforcesSingleDefault(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_addresses_table.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no addresses migration file found")

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(data), "idx_addresses_user_default"),
		"missing partial unique index on default addresses")
}
