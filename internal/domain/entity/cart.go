package entity

// CartLine savatdagi bitta yig'ilgan qator.
// Har bir (name, price) juftligi uchun ko'pi bilan bitta qator bo'ladi.
type CartLine struct {
	Name  string
	Price int64
	Qty   int
}

// LineTotal qator summasi
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Qty)
}

// Matches mahsulot bilan moslikni tekshirish
func (l CartLine) Matches(name string, price int64) bool {
	return l.Name == name && l.Price == price
}
