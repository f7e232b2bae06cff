package parser

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

// excelParser narxnoma fayllari uchun parser.
// Kutilgan ustunlar: Nomi | Narxi | Ombor | Rasm (rasm ixtiyoriy).
type excelParser struct{}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser() repository.ExcelParser {
	return &excelParser{}
}

// ParseProducts Excel fayldan mahsulotlarni o'qish
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// ParseProductsFromBytes byte array dan parse qilish
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	reader := bytes.NewReader(data)
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// parseExcelFile Excel faylni parse qilish
func (e *excelParser) parseExcelFile(f *excelize.File) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file is empty")
	}

	// Header qatori borligini tekshirish: birinchi qatorning 2-ustuni
	// raqam bo'lsa, header yo'q
	startRow := 0
	if len(rows[0]) >= 2 {
		if _, err := strconv.ParseInt(strings.TrimSpace(rows[0][1]), 10, 64); err != nil {
			startRow = 1
		}
	}

	now := time.Now()
	var products []entity.Product
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}

		price, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
		if err != nil || price < 0 {
			log.Printf("⚠️ %d-qator o'tkazib yuborildi: narx noto'g'ri (%q)", i+1, row[1])
			continue
		}

		stock, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil || stock < 0 {
			log.Printf("⚠️ %d-qator o'tkazib yuborildi: ombor qoldig'i noto'g'ri (%q)", i+1, row[2])
			continue
		}

		image := ""
		if len(row) >= 4 {
			image = strings.TrimSpace(row[3])
		}

		products = append(products, entity.Product{
			ID:        uuid.New().String(),
			Name:      name,
			Price:     price,
			Stock:     stock,
			Image:     image,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return products, nil
}
