// Файл: internal/handlers/proof_handler.go
package handlers

import (
	"fmt"
	"io"
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"jokibot/internal/constants"
)

// processPaymentProof выполняет процедуру обработки фото-подтверждения
// оплаты: скачивает фото, загружает его на медиахостинг, обновляет строку
// заказа и уведомляет персонал.
//
// Политика ошибок — "переотправь позже": при любой ошибке до записи в
// таблицу включительно клиент получает один общий ответ об ошибке, а
// состояние и черновик остаются нетронутыми, чтобы повторная отправка
// фото прошла процедуру заново. Откатов нет.
func (bh *BotHandler) processPaymentProof(chatID int64, message *tgbotapi.Message, isDP bool, eventID string) {
	fail := func(stage string, err error) {
		log.Printf("processPaymentProof[%s]: %s: %v", eventID, stage, err)
		bh.sendMessage(chatID, constants.MSG_PROOF_ERROR)
	}

	if len(message.Photo) == 0 {
		fail("вложение", fmt.Errorf("сообщение не содержит фото"))
		return
	}
	// Telegram присылает несколько вариантов фото; последний — самый крупный.
	fileID := message.Photo[len(message.Photo)-1].FileID

	fileURL, err := bh.Deps.BotClient.GetFileDirectURL(fileID)
	if err != nil {
		fail("получение ссылки на файл", err)
		return
	}
	data, err := bh.downloadFile(fileURL)
	if err != nil {
		fail("скачивание файла", err)
		return
	}

	draft := bh.Deps.Sessions.GetDraft(chatID)
	if draft.OrderID == "" {
		fail("контекст заказа", fmt.Errorf("для чата %d не найден OrderId", chatID))
		return
	}

	suffix := "Pelunasan"
	if isDP {
		suffix = "DP"
	}
	fileName := fmt.Sprintf("%s_%s", draft.OrderID, suffix)

	proofURL, err := bh.Deps.Uploader.Upload(fileName, data)
	if err != nil {
		fail("загрузка на медиахостинг", err)
		return
	}

	if message.From != nil {
		draft.TelegramID = message.From.ID
	}
	if isDP {
		draft.Status = constants.STATUS_DP_PAID
		draft.BuktiDP = proofURL
	} else {
		draft.Status = constants.STATUS_PAID
		draft.BuktiPelunasan = proofURL
	}

	if err := bh.Deps.Store.Upsert(draft.OrderID, draft.Record()); err != nil {
		fail("запись в таблицу", err)
		return
	}

	bh.Deps.Notifier.Notify(fmt.Sprintf(
		"🔔 Update pesanan\nID Pesanan: %s\nNama: %s\nUsername: %s\nStatus: %s",
		draft.OrderID, draft.Nama, draft.Username, draft.Status))

	bh.sendMessage(chatID, constants.MSG_PROOF_UPLOADED)
	if isDP {
		bh.sendMessage(chatID, constants.MSG_THANKS_DP)
	} else {
		bh.sendMessage(chatID, constants.MSG_THANKS_FINAL)
	}

	log.Printf("processPaymentProof[%s]: заказ %s переведен в статус '%s'.", eventID, draft.OrderID, draft.Status)
	bh.Deps.Sessions.Clear(chatID)
	bh.sendMainMenu(chatID)
}

// downloadFile скачивает файл по прямой ссылке Telegram.
func (bh *BotHandler) downloadFile(fileURL string) ([]byte, error) {
	resp, err := bh.Deps.HTTPClient.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса файла: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("неожиданный статус при скачивании файла: %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тела файла: %w", err)
	}
	return data, nil
}
