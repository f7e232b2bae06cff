package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/kimyagariii/supermarket/internal/domain/entity"
)

const defaultImage = "images/no_image.png"

// defaultSeed saqlangan katalog bo'lmaganda qaytariladigan namuna mahsulotlar
func defaultSeed() []entity.Product {
	now := time.Now()
	seed := []entity.Product{
		{Name: "Milk", Price: 25000, Stock: 10, Image: defaultImage},
		{Name: "Bread", Price: 8000, Stock: 20, Image: defaultImage},
		{Name: "Eggs", Price: 30000, Stock: 6, Image: defaultImage},
	}
	for i := range seed {
		seed[i].ID = uuid.New().String()
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
	}
	return seed
}
