package api

import (
	"encoding/json"
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
)

// HealthHandler отвечает на проверку живости процесса.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// WebhookStatusHandler отвечает на GET-запрос к адресу вебхука.
// Telegram шлет только POST; GET полезен для ручной проверки.
func WebhookStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Webhook aktif."))
}

// WebhookHandler принимает обновление от Telegram и передает его
// обработчику диалога. Telegram повторяет доставку при любом статусе,
// кроме 200, поэтому ответ всегда 200 OK, даже при внутренней ошибке:
// кривое обновление лучше потерять, чем получать его бесконечно.
func WebhookHandler(deps ApiDependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("WebhookHandler: ошибка декодирования обновления: %v", err)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Gagal memproses update"))
			return
		}

		go deps.Bot.HandleMessage(update)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
