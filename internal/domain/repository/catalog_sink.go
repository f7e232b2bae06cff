package repository

import (
	"context"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
)

// CatalogSink katalogni tashqi saqlagichga yozish uchun interface.
// Engine holatidan ajratilgan: saqlash har bir mutatsiyadan keyingi
// alohida qadam, xatosi xotiradagi holatni bekor qilmaydi.
type CatalogSink interface {
	// Load saqlangan katalogni olish; hech narsa saqlanmagan bo'lsa
	// built-in seed qaytariladi
	Load(ctx context.Context) ([]entity.Product, error)

	// Save butun katalogni yozish (avvalgi mazmun ustidan)
	Save(ctx context.Context, products []entity.Product) error
}
