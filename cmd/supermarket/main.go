package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/kimyagariii/supermarket/config"
	"github.com/kimyagariii/supermarket/internal/delivery/telegram"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
	"github.com/kimyagariii/supermarket/internal/infrastructure/exporter"
	"github.com/kimyagariii/supermarket/internal/infrastructure/parser"
	"github.com/kimyagariii/supermarket/internal/infrastructure/storage"
	"github.com/kimyagariii/supermarket/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Konfiguratsiya xatosi: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Katalog sink: CATALOG_DB_PATH berilgan bo'lsa SQLite, aks holda JSON
	var sink repository.CatalogSink
	if cfg.CatalogDBPath != "" {
		sink, err = storage.NewSQLiteCatalogSink(cfg.CatalogDBPath)
		if err != nil {
			log.Fatalf("❌ SQLite sink xatosi: %v", err)
		}
		log.Printf("💾 Katalog SQLite da saqlanadi: %s", cfg.CatalogDBPath)
	} else {
		sink, err = storage.NewJSONCatalogSink(cfg.ProductsFile)
		if err != nil {
			log.Fatalf("❌ JSON sink xatosi: %v", err)
		}
		log.Printf("💾 Katalog JSON faylda saqlanadi: %s", cfg.ProductsFile)
	}

	store := storage.NewMemoryStoreRepository()
	storeUC := usecase.NewStoreUseCase(store, sink, true)

	count, err := storeUC.LoadCatalog(ctx)
	if err != nil {
		log.Fatalf("❌ Katalogni yuklab bo'lmadi: %v", err)
	}
	log.Printf("📦 Katalog yuklandi: %d ta mahsulot", count)

	adminRepo := storage.NewMemoryAdminRepository()
	adminUC := usecase.NewAdminUseCase(adminRepo, storeUC, parser.NewExcelParser(), exporter.NewExcelExporter(), cfg.AdminPassword)
	invoiceUC := usecase.NewInvoiceUseCase(store)

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, storeUC, adminUC, invoiceUC, cfg.InvoiceDir)
	if err != nil {
		log.Fatalf("❌ Bot yaratib bo'lmadi: %v", err)
	}

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Bot xato bilan to'xtadi: %v", err)
	}

	// Yakuniy saqlash
	if err := storeUC.SaveNow(context.Background()); err != nil {
		log.Printf("⚠️ Yakuniy saqlash muvaffaqiyatsiz: %v", err)
	} else {
		log.Println("💾 Katalog saqlandi, dastur yakunlandi.")
	}
}
