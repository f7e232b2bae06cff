package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
)

func TestJSONCatalogSinkSeedWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	sink, err := NewJSONCatalogSink(path)
	require.NoError(t, err)

	products, err := sink.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Milk", products[0].Name)
	assert.Equal(t, int64(25000), products[0].Price)
	assert.Equal(t, 10, products[0].Stock)
	assert.Equal(t, "Bread", products[1].Name)
	assert.Equal(t, "Eggs", products[2].Name)
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
	}
}

func TestJSONCatalogSinkRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "products.json")
	sink, err := NewJSONCatalogSink(path)
	require.NoError(t, err)

	in := []entity.Product{
		{ID: "a", Name: "Milk", Price: 25000, Stock: 7, Image: "images/milk.png"},
		{ID: "b", Name: "Bread", Price: 8000, Stock: 20, Image: ""},
	}
	require.NoError(t, sink.Save(ctx, in))

	out, err := sink.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	// Tartib va maydonlar saqlanadi, ID qayta beriladi
	assert.Equal(t, "Milk", out[0].Name)
	assert.Equal(t, int64(25000), out[0].Price)
	assert.Equal(t, 7, out[0].Stock)
	assert.Equal(t, "images/milk.png", out[0].Image)
	assert.Equal(t, "Bread", out[1].Name)
	assert.NotEmpty(t, out[0].ID)
}

func TestJSONCatalogSinkFileFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "products.json")
	sink, err := NewJSONCatalogSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Save(ctx, []entity.Product{
		{ID: "a", Name: "Milk", Price: 25000, Stock: 10, Image: "images/milk.png"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Eski fayl formati: faqat name, price, stock, image maydonlari
	content := string(data)
	assert.Contains(t, content, `"name": "Milk"`)
	assert.Contains(t, content, `"price": 25000`)
	assert.Contains(t, content, `"stock": 10`)
	assert.Contains(t, content, `"image": "images/milk.png"`)
	assert.NotContains(t, content, `"id"`)
}

func TestJSONCatalogSinkCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	sink, err := NewJSONCatalogSink(path)
	require.NoError(t, err)

	_, err = sink.Load(context.Background())
	assert.Error(t, err)
}

func TestJSONCatalogSinkEmptyPath(t *testing.T) {
	_, err := NewJSONCatalogSink("")
	assert.Error(t, err)
}
