// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	TelegramToken string
	AppEnv        string
	Port          string

	// WebhookURL: если задан, бот регистрирует вебхук и получает обновления
	// через HTTP; если пуст — работает через long polling.
	WebhookURL string

	// AdminChatIDs — получатели служебных уведомлений о заказах.
	AdminChatIDs []int64
	// AdminUsername подставляется в ответ на кнопку "Hubungi Admin".
	AdminUsername string

	// Таблица заказов.
	SheetPath string
	SheetName string

	// Медиахостинг для подтверждений оплаты.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// QRISPayload — платежная строка QRIS; если задана, вместе с инвойсом
	// DP клиенту отправляется QR-код для оплаты.
	QRISPayload string
}

// LoadConfig загружает конфигурацию из переменных окружения.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken:       os.Getenv("TELEGRAM_APITOKEN"),
		AppEnv:              os.Getenv("ENV"),
		Port:                os.Getenv("PORT"),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		AdminUsername:       os.Getenv("ADMIN_USERNAME"),
		SheetPath:           os.Getenv("SHEET_PATH"),
		SheetName:           os.Getenv("SHEET_NAME"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		QRISPayload:         os.Getenv("QRIS_PAYLOAD"),
	}

	if cfg.TelegramToken == "" {
		log.Println("Критическая ошибка: TELEGRAM_APITOKEN не установлен.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SheetPath == "" {
		cfg.SheetPath = "data/orders.xlsx"
		log.Printf("SHEET_PATH не установлен, используется значение по умолчанию: %s", cfg.SheetPath)
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Pesanan"
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "@admin"
		log.Println("Предупреждение: ADMIN_USERNAME не установлен, используется @admin.")
	}

	cfg.AdminChatIDs = parseChatIDs(os.Getenv("ADMIN_CHAT_IDS"))
	if len(cfg.AdminChatIDs) == 0 {
		log.Println("Предупреждение: ADMIN_CHAT_IDS не установлен. Уведомления персоналу отправляться не будут.")
	}

	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		log.Println("Предупреждение: параметры Cloudinary заданы не полностью. Загрузка подтверждений оплаты не будет работать.")
	}

	log.Println("Конфигурация загружена.")
	return cfg, nil
}

// parseChatIDs разбирает список chat ID через запятую; нечисловые элементы
// пропускаются с предупреждением.
func parseChatIDs(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("parseChatIDs: не удалось прочитать chat ID '%s': %v. Пропущен.", part, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
