package repository

import (
	"context"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
)

// StoreRepository katalog va savat juftligini birgalikda saqlovchi engine.
// Har bir operatsiya bitta atomar o'tish: validatsiya to'liq o'tmaguncha
// hech narsa o'zgarmaydi, xato qaytsa holat avvalgidek qoladi.
type StoreRepository interface {
	// AddProduct yangi mahsulot qo'shish (deduplicate qilinmaydi)
	AddProduct(ctx context.Context, product entity.Product) (string, error)

	// Products katalog nusxasini olish (katalog tartibida)
	Products(ctx context.Context) ([]entity.Product, error)

	// ReplaceAll butun katalogni almashtirish (yuklash va import uchun)
	ReplaceAll(ctx context.Context, products []entity.Product) error

	// Purchase indeksdagi mahsulotdan qty donani savatga olish
	Purchase(ctx context.Context, productIndex, qty int) error

	// RemoveLine savat qatorini o'chirish, zaxirani qaytarish
	RemoveLine(ctx context.Context, lineIndex int) error

	// ClearCart savatni bo'shatish, barcha zaxiralarni qaytarish
	ClearCart(ctx context.Context) error

	// Cart savat nusxasini olish (qo'shilish tartibida)
	Cart(ctx context.Context) ([]entity.CartLine, error)

	// Total savat jami summasi
	Total(ctx context.Context) (int64, error)
}
