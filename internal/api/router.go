package api

import (
	"github.com/go-chi/chi/v5"

	"jokibot/internal/config"
	"jokibot/internal/handlers"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config *config.Config
	Bot    *handlers.BotHandler
}

// SetupRoutes настраивает маршруты HTTP-поверхности бота.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Get("/healthz", HealthHandler)
	// Точка входа вебхука Telegram; используется, когда задан WEBHOOK_URL.
	r.Post("/api/webhook", WebhookHandler(deps))
	r.Get("/api/webhook", WebhookStatusHandler)
}
