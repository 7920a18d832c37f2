package handlers

import (
	"tg_miniapp/auth"
	messages "tg_miniapp/internal/msg_gen"
	"tg_miniapp/models"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

// AdminNotifier - рассылает админам заказы, оформленные через мини-апп
type AdminNotifier struct {
	Bot *tgbotapi.BotAPI
}

func (n *AdminNotifier) NotifyNewOrder(order *models.Order) {
	if n == nil || n.Bot == nil {
		return
	}
	text := messages.MakeMessage_NewOrderForAdmin(order, "webapp")
	for _, admin := range auth.GetAuth().AdminIDs() {
		sendText(n.Bot, admin, text)
	}
}
