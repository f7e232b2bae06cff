package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("PRODUCTS_FILE", "")
	t.Setenv("CATALOG_DB_PATH", "")
	t.Setenv("INVOICE_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.TelegramToken)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, "data/products.json", cfg.ProductsFile)
	assert.Equal(t, "", cfg.CatalogDBPath)
	assert.Equal(t, "invoices", cfg.InvoiceDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("PRODUCTS_FILE", "/tmp/p.json")
	t.Setenv("CATALOG_DB_PATH", "/tmp/catalog.db")
	t.Setenv("INVOICE_DIR", "/tmp/invoices")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.AdminPassword)
	assert.Equal(t, "/tmp/p.json", cfg.ProductsFile)
	assert.Equal(t, "/tmp/catalog.db", cfg.CatalogDBPath)
	assert.Equal(t, "/tmp/invoices", cfg.InvoiceDir)
}
