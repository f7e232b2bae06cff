package entity

import "errors"

// Engine qaytaradigan xato turlari. Operatsiyalar xatoni shu sentinellarga
// o'rab qaytaradi, tekshirish errors.Is orqali.
var (
	// ErrInvalidInput noto'g'ri yoki bo'sh kiritilgan qiymat
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidIndex mavjud bo'lmagan mahsulot yoki savat qatori
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInsufficientStock so'ralgan miqdor ombordagidan ko'p
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPersistence saqlash muvaffaqiyatsiz, xotiradagi holat o'z kuchida
	ErrPersistence = errors.New("persistence failed")
)
