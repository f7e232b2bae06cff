package exporter

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

// excelExporter katalogni xlsx ko'rinishida eksport qiladi
type excelExporter struct{}

// NewExcelExporter yangi Excel exporter yaratish
func NewExcelExporter() repository.CatalogExporter {
	return &excelExporter{}
}

// ExportCatalog katalogni xlsx byte array ga yozish.
// Ustun tartibi parser kutganiga mos: Nomi | Narxi | Ombor | Rasm.
func (e *excelExporter) ExportCatalog(ctx context.Context, products []entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Nomi", "Narxi", "Ombor", "Rasm"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, p := range products {
		row := i + 2
		values := []any{p.Name, p.Price, p.Stock, p.Image}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	return buf.Bytes(), nil
}
