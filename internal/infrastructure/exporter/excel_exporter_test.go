package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/infrastructure/parser"
)

// Eksport qilingan fayl parser tomonidan qayta o'qilishi kerak
func TestExportCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()

	in := []entity.Product{
		{ID: "a", Name: "Milk", Price: 25000, Stock: 10, Image: "images/milk.png"},
		{ID: "b", Name: "Bread", Price: 8000, Stock: 20},
	}

	data, err := NewExcelExporter().ExportCatalog(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	out, err := parser.NewExcelParser().ParseProductsFromBytes(ctx, data, "katalog.xlsx")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Milk", out[0].Name)
	assert.Equal(t, int64(25000), out[0].Price)
	assert.Equal(t, 10, out[0].Stock)
	assert.Equal(t, "images/milk.png", out[0].Image)
	assert.Equal(t, "Bread", out[1].Name)
}

func TestExportEmptyCatalog(t *testing.T) {
	data, err := NewExcelExporter().ExportCatalog(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data, "bo'sh katalog ham header bilan eksport qilinadi")
}
