package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

// productRecord products.json dagi yozuv formati.
// Maydon nomlari eski fayllar bilan moslik uchun o'zgarmas.
type productRecord struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
	Image string `json:"image"`
}

type jsonCatalogSink struct {
	path string
}

// NewJSONCatalogSink JSON fayl asosidagi katalog sink
func NewJSONCatalogSink(path string) (repository.CatalogSink, error) {
	if path == "" {
		return nil, errors.New("fayl yo'li bo'sh bo'lmasligi kerak")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("katalog papkasini yaratib bo'lmadi: %w", err)
		}
	}
	return &jsonCatalogSink{path: path}, nil
}

// Load saqlangan katalogni o'qish; fayl bo'lmasa seed qaytariladi
func (s *jsonCatalogSink) Load(ctx context.Context) ([]entity.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSeed(), nil
		}
		return nil, fmt.Errorf("katalog faylini o'qib bo'lmadi: %w", err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("katalog fayli buzilgan: %w", err)
	}

	now := time.Now()
	products := make([]entity.Product, 0, len(records))
	for _, r := range records {
		products = append(products, entity.Product{
			ID:        uuid.New().String(),
			Name:      r.Name,
			Price:     r.Price,
			Stock:     r.Stock,
			Image:     r.Image,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return products, nil
}

// Save butun katalogni fayl ustidan yozish
func (s *jsonCatalogSink) Save(ctx context.Context, products []entity.Product) error {
	records := make([]productRecord, 0, len(products))
	for _, p := range products {
		records = append(records, productRecord{
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Image: p.Image,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("katalogni serialize qilib bo'lmadi: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("katalog faylini yozib bo'lmadi: %w", err)
	}
	return nil
}
