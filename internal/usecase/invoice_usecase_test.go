package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
	"github.com/kimyagariii/supermarket/internal/infrastructure/storage"
)

func newInvoiceFixture(t *testing.T) (InvoiceUseCase, repository.StoreRepository) {
	t.Helper()
	store := storage.NewMemoryStoreRepository()
	require.NoError(t, store.ReplaceAll(context.Background(), []entity.Product{
		{ID: "m", Name: "Milk", Price: 25000, Stock: 10},
		{ID: "b", Name: "Bread", Price: 8000, Stock: 20},
	}))
	return NewInvoiceUseCase(store), store
}

func TestBuildInvoice(t *testing.T) {
	ctx := context.Background()
	uc, store := newInvoiceFixture(t)

	require.NoError(t, store.Purchase(ctx, 0, 3))
	require.NoError(t, store.Purchase(ctx, 1, 2))

	at := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)
	text, err := uc.Build(ctx, at)
	require.NoError(t, err)

	assert.Contains(t, text, "2025-09-01 12:30:00")
	assert.Contains(t, text, "Milk — 3 x 25,000 = 75,000")
	assert.Contains(t, text, "Bread — 2 x 8,000 = 16,000")
	assert.Contains(t, text, "Jami: 91,000 so'm")
	assert.Contains(t, text, strings.Repeat("-", 40))

	// Qatorlar savat tartibida, qayta saralanmaydi
	assert.Less(t, strings.Index(text, "Milk"), strings.Index(text, "Bread"))
}

func TestBuildInvoiceIdempotent(t *testing.T) {
	ctx := context.Background()
	uc, store := newInvoiceFixture(t)
	require.NoError(t, store.Purchase(ctx, 0, 3))

	at := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)
	first, err := uc.Build(ctx, at)
	require.NoError(t, err)
	second, err := uc.Build(ctx, at)
	require.NoError(t, err)

	assert.Equal(t, first, second, "o'zgarmagan savat uchun matn bir xil")
}

func TestBuildInvoiceDoesNotMutateCart(t *testing.T) {
	ctx := context.Background()
	uc, store := newInvoiceFixture(t)
	require.NoError(t, store.Purchase(ctx, 0, 3))

	_, err := uc.Build(ctx, time.Now())
	require.NoError(t, err)

	cart, _ := store.Cart(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Qty)
	products, _ := store.Products(ctx)
	assert.Equal(t, 7, products[0].Stock)
}

func TestBuildInvoiceEmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInvoiceFixture(t)

	text, err := uc.Build(ctx, time.Now())
	require.NoError(t, err)
	assert.Contains(t, text, "Jami: 0 so'm")
}

func TestSaveToFile(t *testing.T) {
	ctx := context.Background()
	uc, store := newInvoiceFixture(t)
	require.NoError(t, store.Purchase(ctx, 0, 1))

	at := time.Date(2025, 9, 1, 12, 30, 0, 0, time.UTC)

	t.Run("Extension appended", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faktura")
		saved, err := uc.SaveToFile(ctx, path, at)
		require.NoError(t, err)
		assert.Equal(t, path+".txt", saved)

		data, err := os.ReadFile(saved)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Milk")
	})

	t.Run("Existing extension kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faktura.log")
		saved, err := uc.SaveToFile(ctx, path, at)
		require.NoError(t, err)
		assert.Equal(t, path, saved)
	})

	t.Run("Directory created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invoices", "faktura.txt")
		_, err := uc.SaveToFile(ctx, path, at)
		require.NoError(t, err)
	})
}

func TestDefaultFilename(t *testing.T) {
	uc, _ := newInvoiceFixture(t)
	at := time.Date(2025, 9, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "invoice_20250901_123045.txt", uc.DefaultFilename(at))
}
