package handlers

import (
	"fmt"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	qrcode "github.com/skip2/go-qrcode"

	"jokibot/internal/constants"
	"jokibot/internal/models"
)

// sendMessage отправляет обычное текстовое сообщение. Ошибки транспорта
// логируются и проглатываются: пользователь просто не получит ответ.
func (bh *BotHandler) sendMessage(chatID int64, text string) {
	if _, err := bh.Deps.BotClient.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("sendMessage: ошибка отправки в чат %d: %v", chatID, err)
	}
}

// sendMainMenu показывает главное меню с тремя верхнеуровневыми кнопками.
func (bh *BotHandler) sendMainMenu(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_ORDER_JOKI)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_SERVICE_INFO)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_CONTACT_ADMIN)),
	)
	keyboard.OneTimeKeyboard = false

	msg := tgbotapi.NewMessage(chatID, constants.MSG_WELCOME)
	msg.ReplyMarkup = keyboard
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("sendMainMenu: ошибка отправки в чат %d: %v", chatID, err)
	}
}

// sendKeyboardWithMainMenu отправляет вопрос с клавиатурой: по одной
// кнопке на строку для каждого варианта плюс кнопка возврата в меню.
func (bh *BotHandler) sendKeyboardWithMainMenu(chatID int64, text string, options []string) {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(options)+1)
	for _, option := range options {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(option)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(constants.BTN_BACK_TO_MAIN)))

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = false

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := bh.Deps.BotClient.Send(msg); err != nil {
		log.Printf("sendKeyboardWithMainMenu: ошибка отправки в чат %d: %v", chatID, err)
	}
}

// sendInvoice отправляет инвойс по черновику заказа. Порядок и подписи
// полей фиксированы: по этому тексту персонал сверяет заказы, менять
// формат нельзя.
func (bh *BotHandler) sendInvoice(chatID int64, draft models.Order, isDP bool) {
	text := "Invoice Pemesanan\n"
	text += fmt.Sprintf("ID Pesanan: %s\n\n", draft.OrderID)
	text += fmt.Sprintf("Nama: %s\n", draft.Nama)
	text += fmt.Sprintf("Username: %s\n", draft.Username)
	text += fmt.Sprintf("Pembuatan: %s\n", draft.Pembuatan)
	text += fmt.Sprintf("Keperluan: %s\n", draft.Keperluan)
	text += fmt.Sprintf("Teknologi: %s\n", draft.Teknologi)
	text += fmt.Sprintf("Fitur: %s\n", draft.Fitur)
	text += fmt.Sprintf("Mockup: %s\n", draft.Mockup)
	text += fmt.Sprintf("Deadline: %s\n", draft.Deadline)
	text += fmt.Sprintf("Akun TikTok: %s\n\n", draft.AkunTiktok)
	if isDP {
		text += constants.INVOICE_TRAILER_DP
	} else {
		text += constants.INVOICE_TRAILER_FINAL
	}
	bh.sendMessage(chatID, text)
}

// sendPaymentQR отправляет QRIS для оплаты, если он настроен.
// Это косметический шаг: любая ошибка логируется и не прерывает диалог.
func (bh *BotHandler) sendPaymentQR(chatID int64) {
	payload := bh.Deps.Config.QRISPayload
	if payload == "" {
		return
	}
	// qrcode.Medium — уровень коррекции ошибок, 256 — размер в пикселях.
	qrBytes, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		log.Printf("sendPaymentQR: ошибка кодирования QRIS: %v", err)
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "qris.png", Bytes: qrBytes})
	photo.Caption = constants.MSG_QRIS_CAPTION
	if _, err := bh.Deps.BotClient.Send(photo); err != nil {
		log.Printf("sendPaymentQR: ошибка отправки QRIS в чат %d: %v", chatID, err)
	}
}
