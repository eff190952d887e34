package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"jokibot/internal/config"
	"jokibot/internal/constants"
	"jokibot/internal/dialog"
	"jokibot/internal/models"
	"jokibot/internal/session"
)

// --- Фальшивые коллабораторы ---

type fakeSender struct {
	sent    []tgbotapi.Chattable
	fileURL string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL, nil
}

// sentTexts возвращает тексты отправленных текстовых сообщений по порядку.
func (f *fakeSender) sentTexts() []string {
	var texts []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

type upsertCall struct {
	orderID string
	rec     map[string]string
}

type fakeStore struct {
	upserts []upsertCall
	err     error
}

func (f *fakeStore) Upsert(orderID string, rec map[string]string) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, upsertCall{orderID: orderID, rec: rec})
	return nil
}

type uploadCall struct {
	fileName string
	size     int
}

type fakeUploader struct {
	uploads []uploadCall
}

func (f *fakeUploader) Upload(fileName string, data []byte) (string, error) {
	f.uploads = append(f.uploads, uploadCall{fileName: fileName, size: len(data)})
	return "https://res.example.com/" + fileName + ".jpg", nil
}

type fakeNotifier struct {
	notes []string
}

func (f *fakeNotifier) Notify(text string) {
	f.notes = append(f.notes, text)
}

type fixture struct {
	handler  *BotHandler
	sender   *fakeSender
	store    *fakeStore
	uploader *fakeUploader
	notifier *fakeNotifier
	sessions *session.Manager
}

func newFixture(t *testing.T, fileURL string, httpClient *http.Client) *fixture {
	t.Helper()
	fx := &fixture{
		sender:   &fakeSender{fileURL: fileURL},
		store:    &fakeStore{},
		uploader: &fakeUploader{},
		notifier: &fakeNotifier{},
		sessions: session.NewManager(),
	}
	fx.handler = NewBotHandler(HandlerDependencies{
		Config:     &config.Config{AdminUsername: "@joki_admin"},
		BotClient:  fx.sender,
		Sessions:   fx.sessions,
		Store:      fx.store,
		Uploader:   fx.uploader,
		Notifier:   fx.notifier,
		HTTPClient: httpClient,
	})
	return fx
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: 42, UserName: "budi"},
		Text: text,
	}}
}

func photoUpdate(chatID int64) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  tgbotapi.Chat{ID: chatID},
		From:  &tgbotapi.User{ID: 42, UserName: "budi"},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	}}
}

// --- Тесты ---

func TestIntakeWritesOrderOnce(t *testing.T) {
	orig := dialog.NewOrderID
	dialog.NewOrderID = func() string { return "ORDER123456" }
	defer func() { dialog.NewOrderID = orig }()

	fx := newFixture(t, "", nil)
	const chatID = int64(500)

	for _, text := range []string{
		constants.BTN_ORDER_JOKI, constants.BTN_NOT_ORDERED,
		"Budi", "website", "skripsi", "PHP", "login, CRUD",
		constants.BTN_NO, "01/01/2026", "@budi_tiktok",
	} {
		fx.handler.HandleMessage(textUpdate(chatID, text))
	}

	if got := fx.sessions.GetState(chatID); got != constants.STATE_AWAIT_DP_PROOF {
		t.Errorf("после анкеты ожидалось await_dp_proof, получено %s", got)
	}
	if len(fx.store.upserts) != 1 {
		t.Fatalf("ожидалась одна запись в таблицу, получено %d", len(fx.store.upserts))
	}

	call := fx.store.upserts[0]
	if call.orderID != "ORDER123456" {
		t.Errorf("OrderID записи: '%s'", call.orderID)
	}
	want := map[string]string{
		"OrderId": "ORDER123456", "Nama": "Budi", "Username": "budi",
		"Pembuatan": "website", "Keperluan": "skripsi", "Teknologi": "PHP",
		"Fitur": "login, CRUD", "Mockup": constants.BTN_NO,
		"Deadline": "01/01/2026", "AkunTiktok": "@budi_tiktok",
		"Status": constants.STATUS_AWAITING_DP, "TelegramID": "42",
	}
	for key, value := range want {
		if call.rec[key] != value {
			t.Errorf("колонка %s: получено '%s', ожидалось '%s'", key, call.rec[key], value)
		}
	}

	// Ровно один инвойс DP с фиксированным порядком полей и хвостом:
	// по этому тексту персонал сверяет заказы.
	var invoices []string
	for _, text := range fx.sender.sentTexts() {
		if strings.HasPrefix(text, "Invoice Pemesanan") {
			invoices = append(invoices, text)
		}
	}
	if len(invoices) != 1 {
		t.Fatalf("ожидался один инвойс, получено %d", len(invoices))
	}
	wantInvoice := "Invoice Pemesanan\n" +
		"ID Pesanan: ORDER123456\n\n" +
		"Nama: Budi\n" +
		"Username: budi\n" +
		"Pembuatan: website\n" +
		"Keperluan: skripsi\n" +
		"Teknologi: PHP\n" +
		"Fitur: login, CRUD\n" +
		"Mockup: Tidak\n" +
		"Deadline: 01/01/2026\n" +
		"Akun TikTok: @budi_tiktok\n\n" +
		constants.INVOICE_TRAILER_DP
	if invoices[0] != wantInvoice {
		t.Errorf("текст инвойса разошелся:\n получено:\n%s\n ожидалось:\n%s", invoices[0], wantInvoice)
	}
}

func TestStoreFailureKeepsState(t *testing.T) {
	orig := dialog.NewOrderID
	dialog.NewOrderID = func() string { return "ORDER123456" }
	defer func() { dialog.NewOrderID = orig }()

	fx := newFixture(t, "", nil)
	fx.store.err = errStore
	const chatID = int64(501)

	for _, text := range []string{
		constants.BTN_ORDER_JOKI, constants.BTN_NOT_ORDERED,
		"Budi", "website", "skripsi", "PHP", "login, CRUD",
		constants.BTN_NO, "01/01/2026",
	} {
		fx.handler.HandleMessage(textUpdate(chatID, text))
	}
	sentBefore := len(fx.sender.sent)

	// Последний шаг анкеты падает на записи заказа.
	fx.handler.HandleMessage(textUpdate(chatID, "@budi_tiktok"))

	if got := fx.sessions.GetState(chatID); got != constants.STATE_COLLECT_TIKTOK {
		t.Errorf("при ошибке записи состояние не должно продвигаться, получено %s", got)
	}
	if len(fx.sender.sent) != sentBefore {
		t.Errorf("при ошибке записи оставшиеся эффекты не должны исполняться, отправлено %d сообщений", len(fx.sender.sent)-sentBefore)
	}
}

func TestDPProofHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL+"/photo.jpg", srv.Client())
	const chatID = int64(502)

	fx.sessions.SetState(chatID, constants.STATE_AWAIT_DP_PROOF)
	fx.sessions.UpdateDraft(chatID, models.Order{OrderID: "ORDER123456", Nama: "Budi", Username: "budi"})

	fx.handler.HandleMessage(photoUpdate(chatID))

	if len(fx.uploader.uploads) != 1 {
		t.Fatalf("ожидалась одна загрузка, получено %d", len(fx.uploader.uploads))
	}
	if got := fx.uploader.uploads[0].fileName; got != "ORDER123456_DP" {
		t.Errorf("имя файла: '%s'", got)
	}

	if len(fx.store.upserts) != 1 {
		t.Fatalf("ожидалась одна запись в таблицу, получено %d", len(fx.store.upserts))
	}
	rec := fx.store.upserts[0].rec
	if rec["Status"] != constants.STATUS_DP_PAID {
		t.Errorf("Status: '%s'", rec["Status"])
	}
	if rec["BuktiDP"] != "https://res.example.com/ORDER123456_DP.jpg" {
		t.Errorf("BuktiDP: '%s'", rec["BuktiDP"])
	}
	if rec["TelegramID"] != "42" {
		t.Errorf("TelegramID: '%s'", rec["TelegramID"])
	}

	if len(fx.notifier.notes) != 1 || !strings.Contains(fx.notifier.notes[0], "ORDER123456") {
		t.Errorf("уведомление персоналу: %v", fx.notifier.notes)
	}

	texts := fx.sender.sentTexts()
	if len(texts) < 2 || texts[0] != constants.MSG_PROOF_UPLOADED || texts[1] != constants.MSG_THANKS_DP {
		t.Errorf("подтверждения клиенту: %v", texts)
	}

	// После успешной загрузки диалог сброшен в главное меню.
	if got := fx.sessions.GetState(chatID); got != constants.STATE_MAIN_MENU {
		t.Errorf("после загрузки ожидалось main_menu, получено %s", got)
	}
	if got := fx.sessions.GetDraft(chatID); got != (models.Order{}) {
		t.Errorf("черновик не очищен: %+v", got)
	}
}

func TestFinalProofSetsPaidStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL+"/photo.jpg", srv.Client())
	const chatID = int64(503)

	fx.sessions.SetState(chatID, constants.STATE_AWAIT_FINAL_PROOF)
	fx.sessions.UpdateDraft(chatID, models.Order{OrderID: "ORDER654321", Username: "budi"})

	fx.handler.HandleMessage(photoUpdate(chatID))

	if len(fx.uploader.uploads) != 1 || fx.uploader.uploads[0].fileName != "ORDER654321_Pelunasan" {
		t.Fatalf("загрузки: %+v", fx.uploader.uploads)
	}
	rec := fx.store.upserts[0].rec
	if rec["Status"] != constants.STATUS_PAID {
		t.Errorf("Status: '%s'", rec["Status"])
	}
	if rec["BuktiPelunasan"] == "" {
		t.Error("BuktiPelunasan не записан")
	}
	if _, ok := rec["BuktiDP"]; ok {
		t.Error("BuktiDP не должен записываться при пелунасан")
	}
}

func TestProofWithoutOrderContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	fx := newFixture(t, srv.URL+"/photo.jpg", srv.Client())
	const chatID = int64(504)

	// Состояние ожидания фото, но черновик без OrderID.
	fx.sessions.SetState(chatID, constants.STATE_AWAIT_DP_PROOF)

	fx.handler.HandleMessage(photoUpdate(chatID))

	if len(fx.uploader.uploads) != 0 {
		t.Errorf("загрузок быть не должно: %+v", fx.uploader.uploads)
	}
	if len(fx.store.upserts) != 0 {
		t.Errorf("записей быть не должно: %+v", fx.store.upserts)
	}
	texts := fx.sender.sentTexts()
	if len(texts) != 1 || texts[0] != constants.MSG_PROOF_ERROR {
		t.Errorf("ожидался один общий ответ об ошибке, получено %v", texts)
	}
	// Состояние не тронуто: клиент может прислать фото снова.
	if got := fx.sessions.GetState(chatID); got != constants.STATE_AWAIT_DP_PROOF {
		t.Errorf("состояние после ошибки: %s", got)
	}
}

func TestContactAdminUsesConfiguredUsername(t *testing.T) {
	fx := newFixture(t, "", nil)
	const chatID = int64(505)

	fx.handler.HandleMessage(textUpdate(chatID, constants.BTN_CONTACT_ADMIN))

	found := false
	for _, text := range fx.sender.sentTexts() {
		if strings.Contains(text, "@joki_admin") {
			found = true
		}
	}
	if !found {
		t.Errorf("ответ не содержит @joki_admin: %v", fx.sender.sentTexts())
	}
}

func TestStartResetsDialog(t *testing.T) {
	fx := newFixture(t, "", nil)
	const chatID = int64(506)

	fx.sessions.SetState(chatID, constants.STATE_COLLECT_TECH)
	fx.sessions.UpdateDraft(chatID, models.Order{OrderID: "ORDER123456", Nama: "Budi"})

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: 42, UserName: "budi"},
		Text:     "/start",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}}
	fx.handler.HandleMessage(update)

	if got := fx.sessions.GetState(chatID); got != constants.STATE_MAIN_MENU {
		t.Errorf("после /start ожидалось main_menu, получено %s", got)
	}
	if got := fx.sessions.GetDraft(chatID); got != (models.Order{}) {
		t.Errorf("после /start черновик не очищен: %+v", got)
	}
}

func TestMessageWithoutSenderHandled(t *testing.T) {
	fx := newFixture(t, "", nil)
	const chatID = int64(507)

	// Сообщение без From (канал, анонимный администратор) не должно
	// ронять обработчик; отправитель просто не фиксируется.
	update := tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: tgbotapi.Chat{ID: chatID},
		Text: constants.BTN_ORDER_JOKI,
	}}
	fx.handler.HandleMessage(update)

	if got := fx.sessions.GetState(chatID); got != constants.STATE_ASK_HAS_ORDERED {
		t.Errorf("состояние после сообщения без From: %s", got)
	}
	if got := fx.sessions.GetDraft(chatID).Username; got != constants.USERNAME_UNAVAILABLE {
		t.Errorf("ожидалось '%s', получено '%s'", constants.USERNAME_UNAVAILABLE, got)
	}
}

func TestNonMessageUpdateIgnored(t *testing.T) {
	fx := newFixture(t, "", nil)
	fx.handler.HandleMessage(tgbotapi.Update{})
	if len(fx.sender.sent) != 0 {
		t.Errorf("обновление без сообщения не должно порождать ответов: %d", len(fx.sender.sent))
	}
}

var errStore = errors.New("таблица недоступна")
