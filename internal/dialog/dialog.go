// Пакет dialog содержит машину состояний диалога приема заказов.
// Transition — чистая функция: она не трогает ни Telegram, ни таблицу,
// а только возвращает следующее состояние, измененный черновик и список
// эффектов, которые исполняет обработчик (internal/handlers).
package dialog

import (
	"fmt"
	"time"

	"jokibot/internal/constants"
	"jokibot/internal/models"
)

// Event — одно входящее событие диалога в уже разобранном виде.
type Event struct {
	Text     string // Текст сообщения (пустой для фото без подписи)
	IsStart  bool   // Команда /start
	HasPhoto bool   // Во вложении есть фото
	SenderID int64  // Числовой ID отправителя в Telegram
	Username string // @username отправителя (может быть пустым)
}

// Result — итог одного перехода.
type Result struct {
	Next    constants.State
	Draft   models.Order
	Effects []Effect
}

// Эффекты — закрытый набор действий, которые машина состояний просит
// выполнить. Сама она побочных эффектов не производит.
type (
	// Effect — маркерный интерфейс эффекта.
	Effect interface{ isEffect() }

	// SendMainMenu — показать главное меню с тремя верхнеуровневыми кнопками.
	SendMainMenu struct{}

	// SendText — отправить обычное текстовое сообщение без клавиатуры.
	SendText struct{ Text string }

	// SendPrompt — отправить вопрос с клавиатурой из Options и кнопкой
	// возврата в главное меню.
	SendPrompt struct {
		Text    string
		Options []string
	}

	// SaveOrder — записать текущий черновик в таблицу заказов.
	// Ошибка записи прерывает выполнение оставшихся эффектов.
	SaveOrder struct{}

	// SendInvoice — отправить инвойс по текущему черновику.
	SendInvoice struct{ IsDP bool }

	// SendPaymentQR — отправить QRIS для оплаты (если настроен).
	SendPaymentQR struct{}

	// SendAdminContact — отправить контакт администратора; сам @username
	// берется из конфигурации, машина состояний его не знает.
	SendAdminContact struct{}

	// ProcessProof — выполнить процедуру обработки фото-подтверждения
	// оплаты. Итоговое состояние чата решает исполнитель процедуры:
	// при успехе диалог сбрасывается, при ошибке остается без изменений.
	ProcessProof struct{ IsDP bool }
)

func (SendMainMenu) isEffect() {}
func (SendText) isEffect() {}
func (SendPrompt) isEffect() {}
func (SaveOrder) isEffect() {}
func (SendInvoice) isEffect() {}
func (SendPaymentQR) isEffect() {}
func (SendAdminContact) isEffect() {}
func (ProcessProof) isEffect() {}

// NewOrderID генерирует идентификатор заказа вида ORDER + 6 цифр.
// Переменная, а не функция, чтобы тесты могли подставить детерминированный
// генератор.
var NewOrderID = func() string {
	return fmt.Sprintf("ORDER%06d", time.Now().UnixMilli()%1000000)
}

// Transition применяет одно событие к состоянию диалога.
func Transition(state constants.State, draft models.Order, ev Event) Result {
	// Username фиксируется при первом же событии, как и в анкете.
	// Хранится без префикса @ — в таком виде он уходит в таблицу.
	if draft.Username == "" {
		if ev.Username != "" {
			draft.Username = ev.Username
		} else {
			draft.Username = constants.USERNAME_UNAVAILABLE
		}
	}

	// Безусловный сброс: /start и кнопка возврата работают из любого состояния.
	if ev.IsStart || ev.Text == constants.BTN_BACK_TO_MAIN {
		return Result{
			Next:    constants.STATE_MAIN_MENU,
			Draft:   models.Order{},
			Effects: []Effect{SendMainMenu{}},
		}
	}

	// Фото принимаются только в состояниях ожидания подтверждения оплаты.
	if ev.HasPhoto && (state == constants.STATE_AWAIT_DP_PROOF || state == constants.STATE_AWAIT_FINAL_PROOF) {
		return Result{
			Next:    state,
			Draft:   draft,
			Effects: []Effect{ProcessProof{IsDP: state == constants.STATE_AWAIT_DP_PROOF}},
		}
	}

	switch state {
	case constants.STATE_MAIN_MENU:
		switch ev.Text {
		case constants.BTN_ORDER_JOKI:
			return Result{
				Next:  constants.STATE_ASK_HAS_ORDERED,
				Draft: draft,
				Effects: []Effect{SendPrompt{
					Text:    constants.MSG_ASK_HAS_JOKI,
					Options: []string{constants.BTN_NOT_ORDERED, constants.BTN_HAS_ORDERED},
				}},
			}
		case constants.BTN_SERVICE_INFO:
			return Result{
				Next:    constants.STATE_MAIN_MENU,
				Draft:   draft,
				Effects: []Effect{SendText{Text: constants.MSG_SERVICE_INFO}, SendMainMenu{}},
			}
		case constants.BTN_CONTACT_ADMIN:
			return Result{
				Next:    constants.STATE_MAIN_MENU,
				Draft:   draft,
				Effects: []Effect{SendAdminContact{}, SendMainMenu{}},
			}
		default:
			return Result{
				Next:    constants.STATE_MAIN_MENU,
				Draft:   draft,
				Effects: []Effect{SendMainMenu{}},
			}
		}

	case constants.STATE_ASK_HAS_ORDERED:
		switch ev.Text {
		case constants.BTN_NOT_ORDERED:
			draft.OrderID = NewOrderID()
			return Result{
				Next:    constants.STATE_COLLECT_NAME,
				Draft:   draft,
				Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_NAME}},
			}
		case constants.BTN_HAS_ORDERED:
			return Result{
				Next:    constants.STATE_AWAIT_ORDER_ID,
				Draft:   draft,
				Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_ORDER_ID}},
			}
		}

	case constants.STATE_AWAIT_ORDER_ID:
		draft.OrderID = ev.Text
		return Result{
			Next:    constants.STATE_AWAIT_FINAL_PROOF,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_SEND_FINAL}},
		}

	case constants.STATE_COLLECT_NAME:
		draft.Nama = ev.Text
		return Result{
			Next:    constants.STATE_COLLECT_BUILD,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_BUILD}},
		}

	case constants.STATE_COLLECT_BUILD:
		draft.Pembuatan = ev.Text
		return Result{
			Next:    constants.STATE_COLLECT_PURPOSE,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_PURPOSE}},
		}

	case constants.STATE_COLLECT_PURPOSE:
		draft.Keperluan = ev.Text
		return Result{
			Next:    constants.STATE_COLLECT_TECH,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_TECH}},
		}

	case constants.STATE_COLLECT_TECH:
		draft.Teknologi = ev.Text
		return Result{
			Next:    constants.STATE_COLLECT_FEATURES,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_FEATURES}},
		}

	case constants.STATE_COLLECT_FEATURES:
		draft.Fitur = ev.Text
		return Result{
			Next:  constants.STATE_COLLECT_MOCKUP,
			Draft: draft,
			Effects: []Effect{SendPrompt{
				Text:    constants.MSG_ASK_MOCKUP,
				Options: []string{constants.BTN_YES, constants.BTN_NO},
			}},
		}

	case constants.STATE_COLLECT_MOCKUP:
		// Принимается любой текст, не только Ya/Tidak — так ведет себя анкета.
		draft.Mockup = ev.Text
		return Result{
			Next:    constants.STATE_COLLECT_DEADLINE,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_DEADLINE}},
		}

	case constants.STATE_COLLECT_DEADLINE:
		draft.Deadline = ev.Text
		return Result{
			Next:    constants.STATE_COLLECT_TIKTOK,
			Draft:   draft,
			Effects: []Effect{SendPrompt{Text: constants.MSG_ASK_TIKTOK}},
		}

	case constants.STATE_COLLECT_TIKTOK:
		// Последний шаг анкеты: заказ фиксируется в таблице и клиенту
		// выставляется инвойс на DP.
		draft.AkunTiktok = ev.Text
		draft.Status = constants.STATUS_AWAITING_DP
		draft.TelegramID = ev.SenderID
		return Result{
			Next:  constants.STATE_AWAIT_DP_PROOF,
			Draft: draft,
			Effects: []Effect{
				SaveOrder{},
				SendInvoice{IsDP: true},
				SendPaymentQR{},
				SendPrompt{Text: constants.MSG_ORDER_RECORDED},
			},
		}
	}

	// Неопознанная пара состояние/ввод (в том числе текст в состояниях
	// ожидания фото): ответить "не понял" и остаться на месте.
	return Result{
		Next:    state,
		Draft:   draft,
		Effects: []Effect{SendPrompt{Text: constants.MSG_NOT_UNDERSTOOD}},
	}
}
