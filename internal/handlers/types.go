package handlers

import (
	"net/http"

	"jokibot/internal/config"
	"jokibot/internal/media"
	"jokibot/internal/notify"
	"jokibot/internal/session"
	"jokibot/internal/store"
	"jokibot/internal/telegram_api"
)

// HandlerDependencies содержит все зависимости, необходимые обработчикам.
// Внешние коллабораторы заведены за интерфейсы, чтобы логика диалога
// тестировалась без сети.
type HandlerDependencies struct {
	Config    *config.Config
	BotClient telegram_api.Sender
	Sessions  *session.Manager
	Store     store.OrderStore
	Uploader  media.Uploader
	Notifier  notify.Notifier

	// HTTPClient используется для скачивания фото по прямой ссылке
	// Telegram. Если nil, берется http.DefaultClient.
	HTTPClient *http.Client
}

// BotHandler инкапсулирует обработку входящих событий диалога.
type BotHandler struct {
	Deps HandlerDependencies
}

// NewBotHandler создает новый экземпляр BotHandler.
func NewBotHandler(deps HandlerDependencies) *BotHandler {
	if deps.Config == nil || deps.BotClient == nil || deps.Sessions == nil ||
		deps.Store == nil || deps.Uploader == nil || deps.Notifier == nil {
		panic("Не все зависимости для BotHandler были предоставлены.")
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	return &BotHandler{Deps: deps}
}
