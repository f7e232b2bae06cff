package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

const invoiceSeparatorWidth = 40

// InvoiceUseCase savatdan faktura matnini tayyorlash.
// Build faqat o'qiydi: bir xil savat va vaqt uchun har doim
// bir xil matn qaytadi.
type InvoiceUseCase interface {
	// Build faktura matnini tayyorlash
	Build(ctx context.Context, at time.Time) (string, error)

	// SaveToFile fakturani faylga yozish; kengaytma bo'lmasa .txt
	// qo'shiladi, yakuniy yo'l qaytariladi
	SaveToFile(ctx context.Context, path string, at time.Time) (string, error)

	// DefaultFilename vaqtga qarab standart fayl nomi
	DefaultFilename(at time.Time) string
}

type invoiceUseCase struct {
	store   repository.StoreRepository
	printer *message.Printer
}

// NewInvoiceUseCase yangi InvoiceUseCase yaratish
func NewInvoiceUseCase(store repository.StoreRepository) InvoiceUseCase {
	return &invoiceUseCase{
		store:   store,
		printer: message.NewPrinter(language.English),
	}
}

// Build faktura matnini tayyorlash
func (u *invoiceUseCase) Build(ctx context.Context, at time.Time) (string, error) {
	cart, err := u.store.Cart(ctx)
	if err != nil {
		return "", err
	}
	total, err := u.store.Total(ctx)
	if err != nil {
		return "", err
	}

	separator := strings.Repeat("-", invoiceSeparatorWidth)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("XARID FAKTURASI - %s\n\n", at.Format("2006-01-02 15:04:05")))
	sb.WriteString(separator + "\n")
	for _, line := range cart {
		sb.WriteString(fmt.Sprintf("%s — %d x %s = %s\n",
			line.Name, line.Qty,
			u.printer.Sprintf("%d", line.Price),
			u.printer.Sprintf("%d", line.LineTotal())))
	}
	sb.WriteString(separator + "\n")
	sb.WriteString(fmt.Sprintf("Jami: %s so'm\n", u.printer.Sprintf("%d", total)))

	return sb.String(), nil
}

// SaveToFile fakturani faylga yozish
func (u *invoiceUseCase) SaveToFile(ctx context.Context, path string, at time.Time) (string, error) {
	text, err := u.Build(ctx, at)
	if err != nil {
		return "", err
	}

	if filepath.Ext(path) == "" {
		path += ".txt"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("faktura papkasini yaratib bo'lmadi: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("fakturani yozib bo'lmadi: %w", err)
	}
	return path, nil
}

// DefaultFilename vaqtga qarab standart fayl nomi
func (u *invoiceUseCase) DefaultFilename(at time.Time) string {
	return fmt.Sprintf("invoice_%s.txt", at.Format("20060102_150405"))
}
