package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken string
	AdminPassword string
	ProductsFile  string
	CatalogDBPath string // bo'sh bo'lmasa JSON o'rniga SQLite sink ishlatiladi
	InvoiceDir    string
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdminPassword: "admin123", // Default qiymat
		ProductsFile:  "data/products.json",
		InvoiceDir:    "invoices",
	}

	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		config.AdminPassword = password
	}
	if file := os.Getenv("PRODUCTS_FILE"); file != "" {
		config.ProductsFile = file
	}
	if dbPath := os.Getenv("CATALOG_DB_PATH"); dbPath != "" {
		config.CatalogDBPath = dbPath
	}
	if dir := os.Getenv("INVOICE_DIR"); dir != "" {
		config.InvoiceDir = dir
	}

	// Validatsiya
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}

	return config, nil
}
