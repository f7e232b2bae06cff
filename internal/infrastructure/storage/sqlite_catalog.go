package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

type sqliteCatalogSink struct {
	db *sql.DB
}

// NewSQLiteCatalogSink SQLite asosidagi katalog sink
func NewSQLiteCatalogSink(dbPath string) (repository.CatalogSink, error) {
	if dbPath == "" {
		return nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}

	if err := createCatalogSchema(db); err != nil {
		return nil, err
	}

	return &sqliteCatalogSink{db: db}, nil
}

func createCatalogSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	pos INTEGER NOT NULL,
	name TEXT NOT NULL,
	price INTEGER NOT NULL,
	stock INTEGER NOT NULL,
	image TEXT,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_pos ON products (pos);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}
	return nil
}

// Load saqlangan katalogni katalog tartibida o'qish; jadval bo'sh bo'lsa
// seed qaytariladi
func (s *sqliteCatalogSink) Load(ctx context.Context) ([]entity.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, stock, image, updated_at FROM products ORDER BY pos ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		var image sql.NullString
		var ts time.Time
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &image, &ts); err != nil {
			return nil, err
		}
		p.Image = image.String
		p.CreatedAt = ts
		p.UpdatedAt = ts
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return defaultSeed(), nil
	}
	return products, nil
}

// Save butun katalogni bitta tranzaksiyada qayta yozish
func (s *sqliteCatalogSink) Save(ctx context.Context, products []entity.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		tx.Rollback()
		return err
	}

	now := time.Now()
	for i, p := range products {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO products (id, pos, name, price, stock, image, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, p.Name, p.Price, p.Stock, p.Image, now)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
