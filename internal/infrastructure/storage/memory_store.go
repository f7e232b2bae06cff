package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

type memoryStoreRepository struct {
	mu       sync.RWMutex
	products []entity.Product
	cart     []entity.CartLine
}

// NewMemoryStoreRepository in-memory katalog+savat engine yaratish
func NewMemoryStoreRepository() repository.StoreRepository {
	return &memoryStoreRepository{
		products: []entity.Product{},
		cart:     []entity.CartLine{},
	}
}

// AddProduct yangi mahsulot qo'shish
func (m *memoryStoreRepository) AddProduct(ctx context.Context, product entity.Product) (string, error) {
	if strings.TrimSpace(product.Name) == "" {
		return "", fmt.Errorf("%w: mahsulot nomi bo'sh", entity.ErrInvalidInput)
	}
	if product.Price < 0 {
		return "", fmt.Errorf("%w: narx manfiy bo'lmasligi kerak", entity.ErrInvalidInput)
	}
	if product.Stock < 0 {
		return "", fmt.Errorf("%w: ombor qoldig'i manfiy bo'lmasligi kerak", entity.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	// Bir xil (name, price) li mahsulot allaqachon bo'lsa ham qo'shiladi
	m.products = append(m.products, product)
	return product.ID, nil
}

// Products katalog nusxasini olish
func (m *memoryStoreRepository) Products(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, len(m.products))
	copy(products, m.products)
	return products, nil
}

// ReplaceAll butun katalogni almashtirish
func (m *memoryStoreRepository) ReplaceAll(ctx context.Context, products []entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make([]entity.Product, len(products))
	copy(m.products, products)
	for i := range m.products {
		if m.products[i].ID == "" {
			m.products[i].ID = uuid.New().String()
		}
	}
	return nil
}

// Purchase mahsulotdan qty donani savatga olish.
// Tartib: validatsiya, zaxirani kamaytirish, savatda yig'ish.
func (m *memoryStoreRepository) Purchase(ctx context.Context, productIndex, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: miqdor musbat bo'lishi kerak", entity.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if productIndex < 0 || productIndex >= len(m.products) {
		return fmt.Errorf("%w: mahsulot %d topilmadi", entity.ErrInvalidIndex, productIndex)
	}

	p := &m.products[productIndex]
	if qty > p.Stock {
		return fmt.Errorf("%w: so'ralgan %d, omborda %d", entity.ErrInsufficientStock, qty, p.Stock)
	}

	p.Stock -= qty
	p.UpdatedAt = time.Now()

	// Savatda bir xil (name, price) qator bo'lsa ustiga yig'amiz,
	// qator birinchi xarid o'rnida qoladi
	for i := range m.cart {
		if m.cart[i].Matches(p.Name, p.Price) {
			m.cart[i].Qty += qty
			return nil
		}
	}
	m.cart = append(m.cart, entity.CartLine{Name: p.Name, Price: p.Price, Qty: qty})
	return nil
}

// RemoveLine savat qatorini o'chirish va zaxirani qaytarish
func (m *memoryStoreRepository) RemoveLine(ctx context.Context, lineIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lineIndex < 0 || lineIndex >= len(m.cart) {
		return fmt.Errorf("%w: savat qatori %d topilmadi", entity.ErrInvalidIndex, lineIndex)
	}

	line := m.cart[lineIndex]
	m.cart = append(m.cart[:lineIndex], m.cart[lineIndex+1:]...)
	m.restoreStock(line)
	return nil
}

// ClearCart savatni bo'shatish, barcha zaxiralarni qaytarish.
// Bitta qator uchun mos mahsulot topilmasa ham davom etadi.
func (m *memoryStoreRepository) ClearCart(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, line := range m.cart {
		m.restoreStock(line)
	}
	m.cart = m.cart[:0]
	return nil
}

// restoreStock qator miqdorini birinchi mos mahsulotga qaytarish.
// Moslik topilmasa bu no-op: faqat warning, xato emas (katalog tashqaridan
// yangilangan bo'lishi mumkin).
func (m *memoryStoreRepository) restoreStock(line entity.CartLine) {
	for i := range m.products {
		if m.products[i].Matches(line.Name, line.Price) {
			m.products[i].Stock += line.Qty
			m.products[i].UpdatedAt = time.Now()
			return
		}
	}
	log.Printf("⚠️ Savat qatori uchun mahsulot topilmadi: %s (narx %d), %d dona qaytarilmadi",
		line.Name, line.Price, line.Qty)
}

// Cart savat nusxasini olish
func (m *memoryStoreRepository) Cart(ctx context.Context) ([]entity.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cart := make([]entity.CartLine, len(m.cart))
	copy(cart, m.cart)
	return cart, nil
}

// Total savat jami summasi
func (m *memoryStoreRepository) Total(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, line := range m.cart {
		total += line.LineTotal()
	}
	return total, nil
}
