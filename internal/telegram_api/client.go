package telegram_api

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// Sender — часть Telegram-клиента, нужная обработчикам. Выделена в
// интерфейс, чтобы тесты могли подставить фальшивый транспорт.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// BotClient — обертка над Telegram Bot API.
type BotClient struct {
	api   *tgbotapi.BotAPI
	Debug bool
}

// InitBot инициализирует Telegram бота. Если webhookURL пуст, снимается
// ранее установленный вебхук (обязательно для getUpdates); иначе вебхук
// регистрируется на webhookURL.
func InitBot(token string, debug bool, webhookURL string) (*BotClient, error) {
	if token == "" {
		return nil, fmt.Errorf("токен Telegram API не предоставлен")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Telegram Bot API: %w", err)
	}
	api.Debug = debug

	log.Printf("Авторизован как аккаунт %s", api.Self.UserName)

	if webhookURL == "" {
		deleteWebhookConfig := tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}
		if _, err := api.Request(deleteWebhookConfig); err != nil {
			// Вебхука могло и не быть; логируем, но не прерываем запуск.
			log.Printf("Предупреждение при отключении вебхука: %v", err)
		} else {
			log.Println("Вебхук отключен (или не был установлен), работаем через long polling.")
		}
	} else {
		wh, errWh := tgbotapi.NewWebhook(webhookURL)
		if errWh != nil {
			return nil, fmt.Errorf("не удалось подготовить конфигурацию вебхука: %w", errWh)
		}
		if _, errWh := api.Request(wh); errWh != nil {
			return nil, fmt.Errorf("не удалось установить вебхук %s: %w", webhookURL, errWh)
		}
		log.Printf("Вебхук установлен: %s", webhookURL)
	}

	return &BotClient{api: api, Debug: debug}, nil
}

// GetUpdatesChan возвращает канал обновлений от Telegram.
func (bc *BotClient) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return bc.api.GetUpdatesChan(config)
}

// Send отправляет сообщение через BotClient.
func (bc *BotClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if bc == nil || bc.api == nil {
		return tgbotapi.Message{}, fmt.Errorf("BotClient не инициализирован")
	}
	if bc.Debug {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			log.Printf("Отправка сообщения: ChatID=%d, Text='%.50s...'", msg.ChatID, msg.Text)
		} else {
			log.Printf("Отправка/запрос типа %T", c)
		}
	}
	return bc.api.Send(c)
}

// GetFileDirectURL возвращает прямую ссылку на скачивание файла по FileID.
func (bc *BotClient) GetFileDirectURL(fileID string) (string, error) {
	if bc == nil || bc.api == nil {
		return "", fmt.Errorf("BotClient не инициализирован")
	}
	return bc.api.GetFileDirectURL(fileID)
}
