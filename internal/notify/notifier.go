// Пакет notify — уведомления персонала о движении заказов.
package notify

import (
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"jokibot/internal/telegram_api"
)

// Notifier — интерфейс уведомлений, который видят обработчики.
type Notifier interface {
	Notify(text string)
}

// AdminNotifier рассылает текст по списку chat ID из конфигурации.
// Доставка fire-and-forget: ошибка по одному получателю логируется и не
// влияет ни на остальных получателей, ни на обработку заказа.
type AdminNotifier struct {
	bot     telegram_api.Sender
	chatIDs []int64
}

// NewAdminNotifier создает нотификатор с заданным списком получателей.
func NewAdminNotifier(bot telegram_api.Sender, chatIDs []int64) *AdminNotifier {
	return &AdminNotifier{bot: bot, chatIDs: chatIDs}
}

// Notify отправляет текст каждому получателю.
func (n *AdminNotifier) Notify(text string) {
	for _, chatID := range n.chatIDs {
		if _, err := n.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			log.Printf("AdminNotifier.Notify: не удалось отправить уведомление в чат %d: %v", chatID, err)
			continue
		}
		log.Printf("AdminNotifier.Notify: уведомление отправлено в чат %d.", chatID)
	}
}
