package entity

import "time"

// Product mahsulot entity
type Product struct {
	ID        string
	Name      string
	Price     int64 // eng kichik pul birligida
	Stock     int
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches nom va narx bo'yicha moslikni tekshirish (legacy identifikatsiya)
func (p Product) Matches(name string, price int64) bool {
	return p.Name == name && p.Price == price
}

// ProductCatalog mahsulotlar katalogi
type ProductCatalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string // fayl nomi yoki "seed"
}
