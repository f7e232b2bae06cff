package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/domain/repository"
)

// DefaultImage rasm ko'rsatilmaganda ishlatiladigan yo'l
const DefaultImage = "images/no_image.png"

// AdminUseCase admin bilan bog'liq business logic
type AdminUseCase interface {
	// Login admin login qilish
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout admin logout qilish
	Logout(ctx context.Context, userID int64) error

	// IsAdmin admin ekanligini tekshirish
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// AddProduct katalogga yangi mahsulot qo'shish
	AddProduct(ctx context.Context, userID int64, name string, price int64, stock int, image string) (string, error)

	// UploadCatalog Excel fayldan katalogni yuklash
	UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error)

	// ExportCatalog katalogni xlsx byte lariga eksport qilish
	ExportCatalog(ctx context.Context, userID int64) ([]byte, error)

	// CatalogInfo katalog haqida ma'lumot
	CatalogInfo(ctx context.Context) (string, error)

	// AuditLog oxirgi admin harakatlari
	AuditLog(ctx context.Context, userID int64, limit int) ([]entity.AdminAction, error)
}

type adminUseCase struct {
	adminRepo   repository.AdminRepository
	storeUC     StoreUseCase
	excelParser repository.ExcelParser
	exporter    repository.CatalogExporter
	password    string
}

// NewAdminUseCase yangi AdminUseCase yaratish
func NewAdminUseCase(
	adminRepo repository.AdminRepository,
	storeUC StoreUseCase,
	excelParser repository.ExcelParser,
	exporter repository.CatalogExporter,
	password string,
) AdminUseCase {
	return &adminUseCase{
		adminRepo:   adminRepo,
		storeUC:     storeUC,
		excelParser: excelParser,
		exporter:    exporter,
		password:    password,
	}
}

// Login admin login qilish
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	// Parolni tekshirish
	if password != u.password {
		return false, nil
	}

	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    time.Now(),
		LastActivity: time.Now(),
	}

	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, "login", "Admin successfully logged in")
	return true, nil
}

// Logout admin logout qilish
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin admin ekanligini tekshirish
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

// AddProduct katalogga yangi mahsulot qo'shish
func (u *adminUseCase) AddProduct(ctx context.Context, userID int64, name string, price int64, stock int, image string) (string, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return "", err
	}

	if image == "" {
		image = DefaultImage
	}

	id, err := u.storeUC.AddProduct(ctx, entity.Product{
		Name:  name,
		Price: price,
		Stock: stock,
		Image: image,
	})
	if err != nil {
		return "", err
	}

	u.logAction(ctx, userID, "add_product",
		fmt.Sprintf("Added %q (price %d, stock %d)", name, price, stock))
	return id, nil
}

// UploadCatalog Excel fayldan katalogni yuklash
func (u *adminUseCase) UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return 0, err
	}

	products, err := u.excelParser.ParseProductsFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("no products found in excel file")
	}

	if err := u.storeUC.ReplaceCatalog(ctx, products); err != nil {
		return 0, err
	}

	u.logAction(ctx, userID, "upload_catalog",
		fmt.Sprintf("Uploaded %d products from %s", len(products), filename))
	return len(products), nil
}

// ExportCatalog katalogni xlsx byte lariga eksport qilish
func (u *adminUseCase) ExportCatalog(ctx context.Context, userID int64) ([]byte, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}

	products, err := u.storeUC.Products(ctx)
	if err != nil {
		return nil, err
	}

	data, err := u.exporter.ExportCatalog(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("failed to export catalog: %w", err)
	}

	u.logAction(ctx, userID, "export_catalog",
		fmt.Sprintf("Exported %d products", len(products)))
	return data, nil
}

// CatalogInfo katalog haqida ma'lumot
func (u *adminUseCase) CatalogInfo(ctx context.Context) (string, error) {
	products, err := u.storeUC.Products(ctx)
	if err != nil {
		return "", err
	}

	totalStock := 0
	var lastUpdate time.Time
	for _, p := range products {
		totalStock += p.Stock
		if p.UpdatedAt.After(lastUpdate) {
			lastUpdate = p.UpdatedAt
		}
	}

	info := fmt.Sprintf("📦 Jami mahsulotlar: %d\n", len(products))
	info += fmt.Sprintf("📊 Jami ombor qoldig'i: %d\n", totalStock)
	if !lastUpdate.IsZero() {
		info += fmt.Sprintf("📅 Oxirgi yangilanish: %s\n", lastUpdate.Format("2006-01-02 15:04"))
	}
	return info, nil
}

// AuditLog oxirgi admin harakatlari
func (u *adminUseCase) AuditLog(ctx context.Context, userID int64, limit int) ([]entity.AdminAction, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return u.adminRepo.RecentActions(ctx, limit)
}

func (u *adminUseCase) requireAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return fmt.Errorf("user is not admin")
	}
	return nil
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, action, details string) {
	_ = u.adminRepo.LogAction(ctx, entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
