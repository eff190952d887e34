// Файл: internal/handlers/message_handler.go
package handlers

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/google/uuid"

	"jokibot/internal/constants"
	"jokibot/internal/dialog"
	"jokibot/internal/models"
)

// HandleMessage обрабатывает одно входящее сообщение от Telegram.
// События одного чата сериализуются мьютексом чата; паника внутри
// обработчика не должна ронять процесс.
func (bh *BotHandler) HandleMessage(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("HandleMessage: перехвачена паника: %v", r)
		}
	}()

	if update.Message == nil {
		return
	}
	message := update.Message
	chatID := message.Chat.ID
	eventID := uuid.NewString()[:8]

	lock := bh.Deps.Sessions.LockChat(chatID)
	lock.Lock()
	defer lock.Unlock()

	ev := dialog.Event{
		Text:     strings.TrimSpace(message.Text),
		IsStart:  message.IsCommand() && message.Command() == "start",
		HasPhoto: len(message.Photo) > 0,
	}
	if message.From != nil {
		ev.SenderID = message.From.ID
		ev.Username = message.From.UserName
	}

	state := bh.Deps.Sessions.GetState(chatID)
	log.Printf("HandleMessage[%s]: ChatID=%d, State=%s, Text='%s', Photo=%v",
		eventID, chatID, state, ev.Text, ev.HasPhoto)

	res := dialog.Transition(state, bh.Deps.Sessions.GetDraft(chatID), ev)

	// Полный сброс диалога (а не просто пустой черновик) — чтобы карта
	// сессий не копила записи по завершенным чатам.
	if res.Next == constants.STATE_MAIN_MENU && res.Draft == (models.Order{}) {
		bh.Deps.Sessions.Clear(chatID)
	} else {
		bh.Deps.Sessions.UpdateDraft(chatID, res.Draft)
	}

	if bh.runEffects(chatID, message, res, eventID) {
		bh.Deps.Sessions.SetState(chatID, res.Next)
	}
}

// runEffects исполняет эффекты перехода по порядку. Возвращает true, если
// состояние диалога должно быть переведено в res.Next; false — если
// эффекты сами распорядились состоянием (процедура подтверждения оплаты)
// или ошибка хранилища прервала обработку события.
func (bh *BotHandler) runEffects(chatID int64, message *tgbotapi.Message, res dialog.Result, eventID string) bool {
	for _, effect := range res.Effects {
		switch e := effect.(type) {
		case dialog.SendMainMenu:
			bh.sendMainMenu(chatID)
		case dialog.SendText:
			bh.sendMessage(chatID, e.Text)
		case dialog.SendAdminContact:
			bh.sendMessage(chatID, fmt.Sprintf(constants.MSG_CONTACT_ADMIN, bh.Deps.Config.AdminUsername))
		case dialog.SendPrompt:
			bh.sendKeyboardWithMainMenu(chatID, e.Text, e.Options)
		case dialog.SaveOrder:
			if err := bh.Deps.Store.Upsert(res.Draft.OrderID, res.Draft.Record()); err != nil {
				// Ошибка записи прерывает оставшиеся шаги события;
				// состояние не переводится, клиент повторит ввод.
				log.Printf("runEffects[%s]: ошибка записи заказа %s в таблицу: %v", eventID, res.Draft.OrderID, err)
				return false
			}
			log.Printf("runEffects[%s]: заказ %s записан в таблицу.", eventID, res.Draft.OrderID)
		case dialog.SendInvoice:
			bh.sendInvoice(chatID, res.Draft, e.IsDP)
		case dialog.SendPaymentQR:
			bh.sendPaymentQR(chatID)
		case dialog.ProcessProof:
			bh.processPaymentProof(chatID, message, e.IsDP, eventID)
			return false
		default:
			log.Printf("runEffects[%s]: неизвестный эффект %T", eventID, effect)
		}
	}
	return true
}
