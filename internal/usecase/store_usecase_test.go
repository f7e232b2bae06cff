package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/infrastructure/storage"
)

// fakeSink saqlashlarni hisoblaydigan sink
type fakeSink struct {
	loadResult []entity.Product
	saved      [][]entity.Product
	failSave   error
}

func (f *fakeSink) Load(ctx context.Context) ([]entity.Product, error) {
	return f.loadResult, nil
}

func (f *fakeSink) Save(ctx context.Context, products []entity.Product) error {
	if f.failSave != nil {
		return f.failSave
	}
	snapshot := make([]entity.Product, len(products))
	copy(snapshot, products)
	f.saved = append(f.saved, snapshot)
	return nil
}

func newStoreFixture(t *testing.T, sink *fakeSink, autoSave bool) StoreUseCase {
	t.Helper()
	store := storage.NewMemoryStoreRepository()
	uc := NewStoreUseCase(store, sink, autoSave)
	require.NoError(t, store.ReplaceAll(context.Background(), []entity.Product{
		{ID: "m", Name: "Milk", Price: 25000, Stock: 10},
	}))
	return uc
}

func TestPurchaseTriggersSave(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	uc := newStoreFixture(t, sink, true)

	require.NoError(t, uc.Purchase(ctx, 0, 3))

	require.Len(t, sink.saved, 1, "har bir mutatsiyadan keyin bitta saqlash")
	assert.Equal(t, 7, sink.saved[0][0].Stock, "saqlangan katalog yangilangan holat")
}

func TestFailedPurchaseDoesNotSave(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	uc := newStoreFixture(t, sink, true)

	err := uc.Purchase(ctx, 0, 999)
	assert.ErrorIs(t, err, entity.ErrInsufficientStock)
	assert.Empty(t, sink.saved, "rad etilgan operatsiya saqlashni chaqirmaydi")
}

func TestSaveFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{failSave: errors.New("disk full")}
	uc := newStoreFixture(t, sink, true)

	err := uc.Purchase(ctx, 0, 3)
	assert.ErrorIs(t, err, entity.ErrPersistence)

	// Xotiradagi holat o'z kuchida: xarid amalga oshgan
	products, _ := uc.Products(ctx)
	assert.Equal(t, 7, products[0].Stock)
	cart, _ := uc.Cart(ctx)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Qty)

	// Sink tuzalgach keyingi operatsiya saqlanadi
	sink.failSave = nil
	require.NoError(t, uc.Purchase(ctx, 0, 1))
	require.Len(t, sink.saved, 1)
}

func TestAutoSaveDisabled(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	uc := newStoreFixture(t, sink, false)

	require.NoError(t, uc.Purchase(ctx, 0, 2))
	assert.Empty(t, sink.saved)

	require.NoError(t, uc.SaveNow(ctx))
	require.Len(t, sink.saved, 1)
	assert.Equal(t, 8, sink.saved[0][0].Stock)
}

func TestMutationsFlowThroughHook(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{}
	uc := newStoreFixture(t, sink, true)

	require.NoError(t, uc.Purchase(ctx, 0, 2))
	require.NoError(t, uc.RemoveLine(ctx, 0))
	_, err := uc.AddProduct(ctx, entity.Product{Name: "Bread", Price: 8000, Stock: 20})
	require.NoError(t, err)
	require.NoError(t, uc.ClearCart(ctx))

	assert.Len(t, sink.saved, 4)
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{loadResult: []entity.Product{
		{ID: "a", Name: "Eggs", Price: 30000, Stock: 6},
		{ID: "b", Name: "Milk", Price: 25000, Stock: 10},
	}}
	store := storage.NewMemoryStoreRepository()
	uc := NewStoreUseCase(store, sink, true)

	count, err := uc.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	products, _ := uc.Products(ctx)
	require.Len(t, products, 2)
	assert.Equal(t, "Eggs", products[0].Name)
}
