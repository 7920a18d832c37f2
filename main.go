package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	db "tg_miniapp/internal/database"
	"tg_miniapp/internal/handlers"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
	"gorm.io/gorm"
)

var DB *gorm.DB

func init() {
	var err error
	DB, err = db.Connect()
	if err != nil {
		log.Panic("Ошибка подключения к базе:", err)
	}
	if err := db.Migrate(DB); err != nil {
		log.Panic("Ошибка миграции базы:", err)
	}
	if os.Getenv("SEED_TEST_DATA") == "1" {
		if err := db.SeedTestData(DB); err != nil {
			log.Println("Ошибка заполнения тестовых данных:", err)
		}
	}

	botToken = os.Getenv("BOT_TOKEN")
	webhook_url = os.Getenv("BOT_URL")
}

var botToken, webhook_url string

func main() {

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Panic("Ошибка создания бота:", err)
	}
	log.Printf("Authorized on account %s", bot.Self.UserName)

	if len(os.Args) > 1 && os.Args[1] == "setwebhook" {
		if _, err := bot.SetWebhook(tgbotapi.NewWebhook(webhook_url + "/webhook")); err != nil {
			log.Fatal("Ошибка при установке webhook:", err)
		}
		fmt.Println(webhook_url + "/webhook")
		return
	}

	mux := http.NewServeMux()

	// Статика мини-приложения
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	// Webhook бота
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		handlers.StartHandler(DB, bot, w, r)
	})

	SetupRoutes(mux, DB, handlers.PaymentBase, mediaDir(), &handlers.AdminNotifier{Bot: bot})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Println("Server is running on port " + port + "...")
	log.Fatal(http.ListenAndServe(":"+port, mux))
}

func mediaDir() string {
	if dir := os.Getenv("MEDIA_DIR"); dir != "" {
		return dir
	}
	return "/mnt/data/media"
}
