package usecase

import (
	"context"
	"fmt"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

// StoreUseCase katalog va savat bilan bog'liq business logic.
// Har bir muvaffaqiyatli mutatsiyadan keyin katalog sink ga yoziladi
// (autosave yoqilgan bo'lsa); sink xatosi xotiradagi holatni bekor
// qilmaydi, faqat ErrPersistence bilan qaytariladi.
type StoreUseCase interface {
	// Purchase mahsulotdan qty donani savatga olish
	Purchase(ctx context.Context, productIndex, qty int) error

	// RemoveLine savat qatorini o'chirish, zaxirani qaytarish
	RemoveLine(ctx context.Context, lineIndex int) error

	// ClearCart savatni bo'shatish
	ClearCart(ctx context.Context) error

	// AddProduct yangi mahsulot qo'shish
	AddProduct(ctx context.Context, product entity.Product) (string, error)

	// ReplaceCatalog butun katalogni almashtirish
	ReplaceCatalog(ctx context.Context, products []entity.Product) error

	// Products katalogni olish
	Products(ctx context.Context) ([]entity.Product, error)

	// Cart savatni olish
	Cart(ctx context.Context) ([]entity.CartLine, error)

	// Total savat jami summasi
	Total(ctx context.Context) (int64, error)

	// LoadCatalog sink dan katalogni yuklash (startup)
	LoadCatalog(ctx context.Context) (int, error)

	// SaveNow katalogni darhol saqlash (yakuniy save yoki retry uchun)
	SaveNow(ctx context.Context) error
}

type storeUseCase struct {
	store    repository.StoreRepository
	sink     repository.CatalogSink
	autoSave bool
}

// NewStoreUseCase yangi StoreUseCase yaratish.
// autoSave false bo'lsa saqlash faqat SaveNow orqali bo'ladi.
func NewStoreUseCase(store repository.StoreRepository, sink repository.CatalogSink, autoSave bool) StoreUseCase {
	return &storeUseCase{
		store:    store,
		sink:     sink,
		autoSave: autoSave,
	}
}

// Purchase mahsulotdan qty donani savatga olish
func (u *storeUseCase) Purchase(ctx context.Context, productIndex, qty int) error {
	if err := u.store.Purchase(ctx, productIndex, qty); err != nil {
		return err
	}
	return u.afterMutation(ctx)
}

// RemoveLine savat qatorini o'chirish
func (u *storeUseCase) RemoveLine(ctx context.Context, lineIndex int) error {
	if err := u.store.RemoveLine(ctx, lineIndex); err != nil {
		return err
	}
	return u.afterMutation(ctx)
}

// ClearCart savatni bo'shatish
func (u *storeUseCase) ClearCart(ctx context.Context) error {
	if err := u.store.ClearCart(ctx); err != nil {
		return err
	}
	return u.afterMutation(ctx)
}

// AddProduct yangi mahsulot qo'shish
func (u *storeUseCase) AddProduct(ctx context.Context, product entity.Product) (string, error) {
	id, err := u.store.AddProduct(ctx, product)
	if err != nil {
		return "", err
	}
	return id, u.afterMutation(ctx)
}

// ReplaceCatalog butun katalogni almashtirish
func (u *storeUseCase) ReplaceCatalog(ctx context.Context, products []entity.Product) error {
	if err := u.store.ReplaceAll(ctx, products); err != nil {
		return err
	}
	return u.afterMutation(ctx)
}

// Products katalogni olish
func (u *storeUseCase) Products(ctx context.Context) ([]entity.Product, error) {
	return u.store.Products(ctx)
}

// Cart savatni olish
func (u *storeUseCase) Cart(ctx context.Context) ([]entity.CartLine, error) {
	return u.store.Cart(ctx)
}

// Total savat jami summasi
func (u *storeUseCase) Total(ctx context.Context) (int64, error) {
	return u.store.Total(ctx)
}

// LoadCatalog sink dan katalogni yuklash
func (u *storeUseCase) LoadCatalog(ctx context.Context) (int, error) {
	products, err := u.sink.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("katalogni yuklab bo'lmadi: %w", err)
	}
	if err := u.store.ReplaceAll(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

// SaveNow katalogni darhol saqlash
func (u *storeUseCase) SaveNow(ctx context.Context) error {
	products, err := u.store.Products(ctx)
	if err != nil {
		return err
	}
	if err := u.sink.Save(ctx, products); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrPersistence, err)
	}
	return nil
}

// afterMutation mutatsiyadan keyingi saqlash hook i.
// Mutatsiya allaqachon muvaffaqiyatli: bu yerdagi xato faqat
// saqlash haqida, holat o'z kuchida qoladi.
func (u *storeUseCase) afterMutation(ctx context.Context) error {
	if !u.autoSave {
		return nil
	}
	return u.SaveNow(ctx)
}
