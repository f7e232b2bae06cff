package repository

import (
	"context"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
)

// CatalogExporter katalogni fayl formatiga eksport qilish uchun interface
type CatalogExporter interface {
	// ExportCatalog mahsulotlar ro'yxatini fayl byte lariga yozish
	ExportCatalog(ctx context.Context, products []entity.Product) ([]byte, error)
}
