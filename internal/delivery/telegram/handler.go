package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
	"github.com/kimyagariii/supermarket/internal/usecase"
)

type addStage int

const (
	addStageNeedName addStage = iota
	addStageNeedPrice
	addStageNeedStock
	addStageNeedImage
)

// addProductSession admin mahsulot qo'shish suhbati holati
type addProductSession struct {
	Stage     addStage
	Name      string
	Price     int64
	Stock     int
	StartedAt time.Time
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot              *tgbotapi.BotAPI
	storeUseCase     usecase.StoreUseCase
	adminUseCase     usecase.AdminUseCase
	invoiceUseCase   usecase.InvoiceUseCase
	invoiceDir       string
	sessionMu        sync.RWMutex
	addSessions      map[int64]*addProductSession
	awaitingPassword map[int64]bool
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	storeUseCase usecase.StoreUseCase,
	adminUseCase usecase.AdminUseCase,
	invoiceUseCase usecase.InvoiceUseCase,
	invoiceDir string,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:              bot,
		storeUseCase:     storeUseCase,
		adminUseCase:     adminUseCase,
		invoiceUseCase:   invoiceUseCase,
		invoiceDir:       invoiceDir,
		addSessions:      make(map[int64]*addProductSession),
		awaitingPassword: make(map[int64]bool),
	}, nil
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	log.Printf("Bot @%s ishga tushdi!", h.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot to'xtatilmoqda...")
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			// Engine bitta chaqiruvchidan ishlaydi: xabarlar ketma-ket
			h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	// Fayl yuborilgan bo'lsa
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	// Parol kutilayotgan bo'lsa
	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	// Komandalarni qayta ishlash
	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	// Mahsulot qo'shish suhbati davom etayotgan bo'lsa
	if h.hasAddSession(userID) {
		h.handleAddFlow(ctx, message)
		return
	}

	if message.Text != "" {
		h.sendMessage(message.Chat.ID, "Komandalar ro'yxati uchun /help ni bosing.")
	}
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start", "help":
		h.sendMessage(message.Chat.ID, h.getHelpMessage())
	case "catalog":
		h.handleCatalogCommand(ctx, message)
	case "buy":
		h.handleBuyCommand(ctx, message)
	case "cart":
		h.handleCartCommand(ctx, message)
	case "remove":
		h.handleRemoveCommand(ctx, message)
	case "clear":
		h.handleClearCommand(ctx, message)
	case "invoice":
		h.handleInvoiceCommand(ctx, message)
	case "invoice_file":
		h.handleInvoiceFileCommand(ctx, message)
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "add":
		h.handleAddCommand(ctx, message)
	case "cancel":
		h.handleCancelCommand(ctx, message)
	case "export":
		h.handleExportCommand(ctx, message)
	case "info":
		h.handleInfoCommand(ctx, message)
	case "audit":
		h.handleAuditCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Noma'lum komanda. /help ni bosing.")
	}
}

func (h *BotHandler) getHelpMessage() string {
	return `🛒 Supermarket bot

/catalog - Mahsulotlar ro'yxati
/buy <raqam> <soni> - Savatga qo'shish
/cart - Savatni ko'rish
/remove <raqam> - Savat qatorini o'chirish
/clear - Savatni bo'shatish
/invoice - Fakturani ko'rish
/invoice_file - Fakturani fayl qilib olish

Admin:
/admin - Admin sifatida kirish
/add - Yangi mahsulot qo'shish
/export - Katalogni xlsx qilib olish
/info - Katalog haqida ma'lumot
/audit - Oxirgi admin harakatlari
/logout - Chiqish

Excel narxnoma yuborilsa katalog to'liq yangilanadi (faqat admin).`
}

// handleCatalogCommand mahsulotlar ro'yxati
func (h *BotHandler) handleCatalogCommand(ctx context.Context, message *tgbotapi.Message) {
	products, err := h.storeUseCase.Products(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Katalogni yuklab bo'lmadi.")
		return
	}
	if len(products) == 0 {
		h.sendMessage(message.Chat.ID, "📭 Katalog bo'sh.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📦 Mavjud mahsulotlar:\n\n")
	for i, p := range products {
		sb.WriteString(fmt.Sprintf("%d. %s - %d so'm (Omborda: %d)\n", i+1, p.Name, p.Price, p.Stock))
	}
	sb.WriteString("\nXarid uchun: /buy <raqam> <soni>")
	h.sendMessage(message.Chat.ID, sb.String())
}

// handleBuyCommand savatga qo'shish: /buy <raqam> [soni]
func (h *BotHandler) handleBuyCommand(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) == 0 {
		h.sendMessage(message.Chat.ID, "Format: /buy <raqam> <soni>")
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Mahsulot raqami butun son bo'lishi kerak.")
		return
	}

	qty := 1
	if len(args) >= 2 {
		qty, err = strconv.Atoi(args[1])
		if err != nil {
			h.sendMessage(message.Chat.ID, "❌ Soni butun son bo'lishi kerak.")
			return
		}
	}

	// Foydalanuvchi 1 dan boshlab ko'radi
	if err := h.storeUseCase.Purchase(ctx, index-1, qty); err != nil {
		h.sendEngineError(message.Chat.ID, err)
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Savatga qo'shildi. /cart bilan ko'ring.")
}

// handleCartCommand savatni ko'rsatish
func (h *BotHandler) handleCartCommand(ctx context.Context, message *tgbotapi.Message) {
	cart, err := h.storeUseCase.Cart(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Savatni yuklab bo'lmadi.")
		return
	}
	if len(cart) == 0 {
		h.sendMessage(message.Chat.ID, "🪹 Savat bo'sh.")
		return
	}

	total, err := h.storeUseCase.Total(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Savatni yuklab bo'lmadi.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🛒 Savat:\n\n")
	for i, line := range cart {
		sb.WriteString(fmt.Sprintf("%d. %s — %d x %d = %d\n", i+1, line.Name, line.Qty, line.Price, line.LineTotal()))
	}
	sb.WriteString(fmt.Sprintf("\nJami: %d so'm", total))
	h.sendMessage(message.Chat.ID, sb.String())
}

// handleRemoveCommand savat qatorini o'chirish: /remove <raqam>
func (h *BotHandler) handleRemoveCommand(ctx context.Context, message *tgbotapi.Message) {
	arg := strings.TrimSpace(message.CommandArguments())
	index, err := strconv.Atoi(arg)
	if err != nil {
		h.sendMessage(message.Chat.ID, "Format: /remove <raqam>")
		return
	}

	if err := h.storeUseCase.RemoveLine(ctx, index-1); err != nil {
		h.sendEngineError(message.Chat.ID, err)
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Qator o'chirildi, zaxira qaytarildi.")
}

// handleClearCommand savatni bo'shatish
func (h *BotHandler) handleClearCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.storeUseCase.ClearCart(ctx); err != nil {
		h.sendEngineError(message.Chat.ID, err)
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Savat bo'shatildi, zaxiralar qaytarildi.")
}

// handleInvoiceCommand fakturani ko'rsatish
func (h *BotHandler) handleInvoiceCommand(ctx context.Context, message *tgbotapi.Message) {
	cart, err := h.storeUseCase.Cart(ctx)
	if err != nil || len(cart) == 0 {
		h.sendMessage(message.Chat.ID, "🪹 Savat bo'sh.")
		return
	}

	text, err := h.invoiceUseCase.Build(ctx, time.Now())
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Fakturani tayyorlab bo'lmadi.")
		return
	}
	h.sendMessage(message.Chat.ID, text)
}

// handleInvoiceFileCommand fakturani fayl qilib yuborish
func (h *BotHandler) handleInvoiceFileCommand(ctx context.Context, message *tgbotapi.Message) {
	cart, err := h.storeUseCase.Cart(ctx)
	if err != nil || len(cart) == 0 {
		h.sendMessage(message.Chat.ID, "🪹 Savat bo'sh.")
		return
	}

	now := time.Now()
	path := filepath.Join(h.invoiceDir, h.invoiceUseCase.DefaultFilename(now))
	savedPath, err := h.invoiceUseCase.SaveToFile(ctx, path, now)
	if err != nil {
		log.Printf("Invoice save error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Fakturani saqlab bo'lmadi.")
		return
	}

	text, err := h.invoiceUseCase.Build(ctx, now)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Fakturani tayyorlab bo'lmadi.")
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  filepath.Base(savedPath),
		Bytes: []byte(text),
	})
	if _, err := h.bot.Send(doc); err != nil {
		log.Printf("Faktura yuborishda xatolik: %v", err)
		h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Faktura saqlandi: %s", savedPath))
	}
}

// handleAdminCommand admin login boshlanishi
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(message.Chat.ID, "✅ Siz allaqachon adminsiz.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Admin parolini kiriting:")
}

// handlePasswordInput parol kiritilganda
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)

	ok, err := h.adminUseCase.Login(ctx, userID, strings.TrimSpace(message.Text))
	if err != nil {
		log.Printf("Admin login error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Kirishda xatolik yuz berdi.")
		return
	}
	if !ok {
		h.sendMessage(message.Chat.ID, "❌ Parol noto'g'ri. Dostup rad etildi.")
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Admin sifatida kirdingiz. /add bilan mahsulot qo'shing.")
}

// handleLogoutCommand admin chiqishi
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.adminUseCase.Logout(ctx, message.From.ID); err != nil {
		h.sendMessage(message.Chat.ID, "❌ Chiqishda xatolik.")
		return
	}
	h.sendMessage(message.Chat.ID, "👋 Admin sessiyasi yopildi.")
}

// handleAddCommand mahsulot qo'shish suhbatini boshlash
func (h *BotHandler) handleAddCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Bu komanda faqat adminlar uchun. /admin bilan kiring.")
		return
	}

	h.sessionMu.Lock()
	h.addSessions[userID] = &addProductSession{Stage: addStageNeedName, StartedAt: time.Now()}
	h.sessionMu.Unlock()

	h.sendMessage(message.Chat.ID, "📝 Mahsulot nomini kiriting (/cancel - bekor qilish):")
}

// handleCancelCommand suhbatni bekor qilish
func (h *BotHandler) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	h.sessionMu.Lock()
	_, active := h.addSessions[userID]
	delete(h.addSessions, userID)
	h.sessionMu.Unlock()

	if active {
		h.sendMessage(message.Chat.ID, "↩️ Mahsulot qo'shish bekor qilindi.")
	} else {
		h.sendMessage(message.Chat.ID, "Bekor qilinadigan amal yo'q.")
	}
}

// handleAddFlow mahsulot qo'shish suhbati bosqichlari
func (h *BotHandler) handleAddFlow(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	h.sessionMu.Lock()
	session, ok := h.addSessions[userID]
	h.sessionMu.Unlock()
	if !ok {
		return
	}

	switch session.Stage {
	case addStageNeedName:
		if text == "" {
			h.sendMessage(message.Chat.ID, "❌ Nom bo'sh bo'lmasligi kerak. Qaytadan kiriting:")
			return
		}
		session.Name = text
		session.Stage = addStageNeedPrice
		h.sendMessage(message.Chat.ID, "💰 Narxini kiriting (butun son):")

	case addStageNeedPrice:
		price, err := strconv.ParseInt(text, 10, 64)
		if err != nil || price < 0 {
			h.sendMessage(message.Chat.ID, "❌ Narx manfiy bo'lmagan butun son bo'lishi kerak. Qaytadan kiriting:")
			return
		}
		session.Price = price
		session.Stage = addStageNeedStock
		h.sendMessage(message.Chat.ID, "📦 Ombor qoldig'ini kiriting (butun son):")

	case addStageNeedStock:
		stock, err := strconv.Atoi(text)
		if err != nil || stock < 0 {
			h.sendMessage(message.Chat.ID, "❌ Qoldiq manfiy bo'lmagan butun son bo'lishi kerak. Qaytadan kiriting:")
			return
		}
		session.Stock = stock
		session.Stage = addStageNeedImage
		h.sendMessage(message.Chat.ID, "🖼 Rasm yo'lini kiriting (ixtiyoriy, o'tkazish uchun \"-\"):")

	case addStageNeedImage:
		image := text
		if image == "-" {
			image = ""
		}

		h.sessionMu.Lock()
		delete(h.addSessions, userID)
		h.sessionMu.Unlock()

		_, err := h.adminUseCase.AddProduct(ctx, userID, session.Name, session.Price, session.Stock, image)
		if err != nil {
			h.sendEngineError(message.Chat.ID, err)
			return
		}
		h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ %q katalogga qo'shildi.", session.Name))
	}
}

// handleDocumentMessage fayl yuborilganda
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.adminUseCase.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Fayllarni faqat adminlar yuklashi mumkin. /admin komandasi bilan admin bo'ling.")
		return
	}

	doc := message.Document

	// Fayl hajmini tekshirish (5MB)
	if doc.FileSize > 5*1024*1024 {
		h.sendMessage(message.Chat.ID, "❌ Fayl hajmi 5MB dan oshmasligi kerak!")
		return
	}

	if !strings.HasSuffix(doc.FileName, ".xlsx") && !strings.HasSuffix(doc.FileName, ".xls") {
		h.sendMessage(message.Chat.ID, "❌ Faqat Excel fayllari (.xlsx, .xls) qabul qilinadi!")
		return
	}

	h.sendMessage(message.Chat.ID, "⏳ Fayl yuklanmoqda va qayta ishlanmoqda...")

	fileBytes, err := h.downloadFile(doc.FileID)
	if err != nil {
		log.Printf("File download error: %v", err)
		h.sendMessage(message.Chat.ID, "❌ Faylni yuklashda xatolik yuz berdi.")
		return
	}

	count, err := h.adminUseCase.UploadCatalog(ctx, userID, fileBytes, doc.FileName)
	if err != nil {
		log.Printf("Upload catalog error: %v", err)
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Katalogni yangilashda xatolik: %v", err))
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf("✅ Katalog yangilandi: %d ta mahsulot (%s).", count, doc.FileName))
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	fileURL := file.Link(h.bot.Token)
	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// handleExportCommand katalogni xlsx qilib yuborish
func (h *BotHandler) handleExportCommand(ctx context.Context, message *tgbotapi.Message) {
	data, err := h.adminUseCase.ExportCatalog(ctx, message.From.ID)
	if err != nil {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Eksport qilib bo'lmadi: %v", err))
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  "katalog.xlsx",
		Bytes: data,
	})
	if _, err := h.bot.Send(doc); err != nil {
		log.Printf("Eksport yuborishda xatolik: %v", err)
	}
}

// handleInfoCommand katalog haqida ma'lumot
func (h *BotHandler) handleInfoCommand(ctx context.Context, message *tgbotapi.Message) {
	info, err := h.adminUseCase.CatalogInfo(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Ma'lumotni olib bo'lmadi.")
		return
	}
	h.sendMessage(message.Chat.ID, info)
}

// handleAuditCommand oxirgi admin harakatlari
func (h *BotHandler) handleAuditCommand(ctx context.Context, message *tgbotapi.Message) {
	actions, err := h.adminUseCase.AuditLog(ctx, message.From.ID, 10)
	if err != nil {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Jurnalni olib bo'lmadi: %v", err))
		return
	}
	if len(actions) == 0 {
		h.sendMessage(message.Chat.ID, "📭 Jurnal bo'sh.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🗒 Oxirgi harakatlar:\n\n")
	for _, a := range actions {
		sb.WriteString(fmt.Sprintf("%s  %s: %s\n", a.Timestamp.Format("01-02 15:04"), a.Action, a.Details))
	}
	h.sendMessage(message.Chat.ID, sb.String())
}

// sendEngineError engine xatosini foydalanuvchi tiliga o'girish
func (h *BotHandler) sendEngineError(chatID int64, err error) {
	switch {
	case errors.Is(err, entity.ErrPersistence):
		// Mutatsiya o'tdi, faqat saqlash muvaffaqiyatsiz
		log.Printf("Katalogni saqlashda xatolik: %v", err)
		h.sendMessage(chatID, "⚠️ Amal bajarildi, lekin katalogni diskka saqlab bo'lmadi.")
	case errors.Is(err, entity.ErrInvalidInput):
		h.sendMessage(chatID, "❌ Kiritilgan qiymat noto'g'ri.")
	case errors.Is(err, entity.ErrInvalidIndex):
		h.sendMessage(chatID, "❌ Bunday raqamli yozuv yo'q.")
	case errors.Is(err, entity.ErrInsufficientStock):
		h.sendMessage(chatID, "❌ Omborda yetarli mahsulot yo'q.")
	default:
		log.Printf("Engine xatosi: %v", err)
		h.sendMessage(chatID, "❌ Amalni bajarib bo'lmadi.")
	}
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.sessionMu.Lock()
	defer h.sessionMu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

func (h *BotHandler) hasAddSession(userID int64) bool {
	h.sessionMu.RLock()
	defer h.sessionMu.RUnlock()
	_, ok := h.addSessions[userID]
	return ok
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Xabar yuborishda xatolik: %v", err)
	}
}
