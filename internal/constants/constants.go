package constants

// Состояния диалога. Закрытое перечисление: каждый чат в любой момент
// находится ровно в одном из этих состояний.
type State string

const (
	STATE_MAIN_MENU         State = "main_menu"
	STATE_ASK_HAS_ORDERED   State = "ask_has_ordered"
	STATE_AWAIT_ORDER_ID    State = "await_order_id"
	STATE_COLLECT_NAME      State = "collect_name"
	STATE_COLLECT_BUILD     State = "collect_build"
	STATE_COLLECT_PURPOSE   State = "collect_purpose"
	STATE_COLLECT_TECH      State = "collect_tech"
	STATE_COLLECT_FEATURES  State = "collect_features"
	STATE_COLLECT_MOCKUP    State = "collect_mockup"
	STATE_COLLECT_DEADLINE  State = "collect_deadline"
	STATE_COLLECT_TIKTOK    State = "collect_tiktok"
	STATE_AWAIT_DP_PROOF    State = "await_dp_proof"
	STATE_AWAIT_FINAL_PROOF State = "await_final_proof"
)

// Статусы заказа в таблице.
const (
	STATUS_AWAITING_DP = "Menunggu DP"
	STATUS_DP_PAID     = "DP Dibayar"
	STATUS_PAID        = "Lunas"
)

// Кнопки reply-клавиатур. Тексты сверяются с входящими сообщениями,
// поэтому менять их можно только синхронно с логикой переходов.
const (
	BTN_ORDER_JOKI    = "Pesan Joki"
	BTN_SERVICE_INFO  = "Info Layanan"
	BTN_CONTACT_ADMIN = "Hubungi Admin"
	BTN_BACK_TO_MAIN  = "Kembali ke Menu Utama"
	BTN_NOT_ORDERED   = "Belum Joki"
	BTN_HAS_ORDERED   = "Sudah Joki"
	BTN_YES           = "Ya"
	BTN_NO            = "Tidak"
)

// Тексты сообщений бота (индонезийский — язык клиентов сервиса).
const (
	MSG_WELCOME        = "Selamat datang di Joki Bot! Silakan pilih menu:"
	MSG_SERVICE_INFO   = "Kami menyediakan layanan joki untuk berbagai kebutuhan. Silakan hubungi admin untuk informasi lebih lanjut."
	MSG_CONTACT_ADMIN  = "Silakan hubungi admin kami di %s"
	MSG_ASK_HAS_JOKI   = "Apakah Anda belum joki atau sudah joki?"
	MSG_ASK_ORDER_ID   = "Silakan masukkan ID Pemesanan Anda:"
	MSG_ASK_NAME       = "Silakan isi form berikut:\n1. Nama"
	MSG_ASK_BUILD      = "2. Pembuatan (contoh: website/android/mobile/desktop)/bahasa pemrograman"
	MSG_ASK_PURPOSE    = "3. Keperluan (contoh: tugas kuliah/ skripsi/ UMKM)"
	MSG_ASK_TECH       = "4. Teknologi/ Bahasa Pemrograman (isi bebas jika tidak ada bahasa yang diperlukan)"
	MSG_ASK_FEATURES   = "5. Fitur"
	MSG_ASK_MOCKUP     = "6. Ada mock up/ prototype?"
	MSG_ASK_DEADLINE   = "7. Deadline (format: dd/mm/yyyy)"
	MSG_ASK_TIKTOK     = "8. Akun TikTok (jika chat di TikTok)"
	MSG_ORDER_RECORDED = "Pesanan Anda telah dicatat. Silakan lakukan pembayaran DP."
	MSG_SEND_FINAL     = "Silakan kirimkan bukti pembayaran pelunasan dalam bentuk foto."
	MSG_NOT_UNDERSTOOD = "Maaf, saya tidak mengerti. Silakan gunakan menu yang tersedia."

	MSG_PROOF_UPLOADED = "Bukti pembayaran berhasil diunggah dan status pesanan telah diperbarui."
	MSG_THANKS_DP      = "Terima kasih atas pembayaran DP. Tim kami akan segera memproses pesanan Anda."
	MSG_THANKS_FINAL   = "Terima kasih atas pelunasan. Pesanan Anda akan segera diselesaikan."
	MSG_PROOF_ERROR    = "Terjadi kesalahan saat mengunggah bukti pembayaran. Silakan coba lagi nanti."

	MSG_QRIS_CAPTION = "Scan QRIS berikut untuk melakukan pembayaran."

	USERNAME_UNAVAILABLE = "Username tidak tersedia"
)

// Хвосты инвойса: после перечисления полей заказа клиенту объясняется,
// какой именно платеж от него ждут.
const (
	INVOICE_TRAILER_DP    = "Silakan lakukan pembayaran DP 30% untuk memulai proyek.\nKirimkan bukti pembayaran DP dalam bentuk foto."
	INVOICE_TRAILER_FINAL = "Silakan lakukan pelunasan pembayaran untuk menyelesaikan proyek.\nKirimkan bukti pelunasan dalam bentuk foto."
)

// SheetHeaders — порядок колонок листа заказов. Должен совпадать с тем,
// что читает персонал; не переупорядочивать.
var SheetHeaders = []string{
	"Nama", "Username", "Pembuatan", "Keperluan", "Teknologi", "Fitur",
	"Mockup", "Deadline", "AkunTiktok", "OrderId", "Status",
	"BuktiDP", "BuktiPelunasan", "TelegramID",
}

// Имя папки на медиахостинге для всех подтверждений оплаты.
const MEDIA_FOLDER = "bukti_pembayaran"
