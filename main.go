package main

import (
	"log"
	"net/http"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"jokibot/internal/api"
	"jokibot/internal/config"
	"jokibot/internal/handlers"
	"jokibot/internal/media"
	"jokibot/internal/notify"
	"jokibot/internal/session"
	"jokibot/internal/store"
	"jokibot/internal/telegram_api"
)

func main() {
	// --- Блок инициализации ---
	err := godotenv.Load()
	if err != nil {
		log.Println("Предупреждение: не удалось загрузить файл .env. Переменные окружения должны быть установлены иным способом.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось загрузить конфигурацию: %v", err)
	}

	orderStore, err := store.NewSheetStore(cfg.SheetPath, cfg.SheetName)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать таблицу заказов: %v", err)
	}

	botClient, err := telegram_api.InitBot(cfg.TelegramToken, cfg.AppEnv == "dev", cfg.WebhookURL)
	if err != nil {
		log.Fatalf("Критическая ошибка: не удалось инициализировать Telegram бота: %v", err)
	}

	sessionManager := session.NewManager()
	uploader := media.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	notifier := notify.NewAdminNotifier(botClient, cfg.AdminChatIDs)

	botHandler := handlers.NewBotHandler(handlers.HandlerDependencies{
		Config:    cfg,
		BotClient: botClient,
		Sessions:  sessionManager,
		Store:     orderStore,
		Uploader:  uploader,
		Notifier:  notifier,
	})

	// --- Настройка роутера и Middleware ---
	apiRouter := chi.NewRouter()

	apiRouter.Use(middleware.Logger)
	apiRouter.Use(middleware.Recoverer)
	apiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.SetupRoutes(apiRouter, api.ApiDependencies{
		Config: cfg,
		Bot:    botHandler,
	})

	// Запускаем HTTP-сервер в отдельной горутине: он нужен и в режиме
	// вебхука (прием обновлений), и в режиме polling (проверка живости).
	go func() {
		log.Printf("Запуск HTTP-сервера на порту %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, apiRouter); err != nil {
			log.Fatalf("КРИТИЧЕСКАЯ ОШИБКА: не удалось запустить HTTP-сервер: %v", err)
		}
	}()

	if cfg.WebhookURL != "" {
		// Обновления придут через POST /api/webhook; polling не нужен.
		log.Println("Бот запущен в режиме вебхука и готов к работе...")
		select {}
	}

	// Запуск самого бота
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botClient.GetUpdatesChan(u)

	log.Println("Бот и API-сервер запущены и готовы к работе...")

	for update := range updates {
		if update.Message != nil {
			// From пуст у сообщений от каналов и анонимных администраторов.
			if update.Message.From != nil {
				log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)
			}
			go botHandler.HandleMessage(update)
		}
	}
}
