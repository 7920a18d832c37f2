package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"tg_miniapp/auth"
	"tg_miniapp/internal/bot_commands"
	db "tg_miniapp/internal/database"
	menu "tg_miniapp/internal/keyboards"
	messages "tg_miniapp/internal/msg_gen"
	"tg_miniapp/internal/utils"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
	"gorm.io/gorm"
)

var (
	decode_request = utils.Decode_request
)

var AdminStates = make(map[int64]int)

var PaymentBase = os.Getenv("PAYMENT_URL_BASE")

func deleteMessage(bot *tgbotapi.BotAPI, chatID int64, messageID int) {
	if _, err := bot.DeleteMessage(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Println("Ошибка удаления сообщения:", err)
	}
}

func sendText(bot *tgbotapi.BotAPI, chatID int64, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Println("Ошибка отправки сообщения:", err)
	}
}

// (АДМИН) Обработка CallBackQuery: та же воронка город → тип → район,
// в конце редактирование цен вместо заказа
func admin_callback_handler(DB *gorm.DB, bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery) {
	data := decode_request(query.Data)
	chatID := query.Message.Chat.ID

	switch data.Command {
	case bot_commands.Start:
		menu.ShowStartMenu_admin(bot, chatID)
		deleteMessage(bot, chatID, query.Message.MessageID)
		return

	case bot_commands.Start_redact: //Редактирование каталога -> выбор города
		cities, err := db.Get_city_names(DB)
		if err != nil {
			log.Println("Ошибка чтения городов в БД:", err)
		}
		menu.ChooseOption(bot, cities, bot_commands.Choose_city, data, chatID, "Выберите город:")
		deleteMessage(bot, chatID, query.Message.MessageID)
		return

	case bot_commands.Choose_city: //Выбор города -> выбор типа
		if data.City == "" {
			log.Println("Error, get empty field in choose_type_command")
			return
		}
		types, err := db.Get_type_names(DB, data.City)
		if err != nil {
			log.Println("Ошибка чтения типов в БД:", err)
		}
		menu.ChooseOption(bot, types, bot_commands.Choose_type, data, chatID, "Выберите тип товара:")
		deleteMessage(bot, chatID, query.Message.MessageID)
		return

	case bot_commands.Choose_type: //Выбор типа -> выбор района
		if data.City == "" || data.ProductType == "" {
			log.Println("Error, get empty field in choose_district_command")
			return
		}
		districts, err := db.Get_district_names(DB, data.City, data.ProductType)
		if err != nil {
			log.Println("Ошибка чтения районов в БД:", err)
		}
		menu.ChooseOption(bot, districts, bot_commands.Choose_district, data, chatID, "Выберите район:")
		deleteMessage(bot, chatID, query.Message.MessageID)
		return

	case bot_commands.Choose_district: //Выбор района -> список вариаций + действия
		variations, err := db.Get_variations(DB, data.City, data.ProductType, data.District)
		if err != nil {
			log.Println("Ошибка извлечения вариаций:", err)
		} else {
			sendText(bot, chatID, messages.MakeMessagePriceList(variations, data.District))
		}

		menu.GetRedactAction(bot, chatID, data)
		deleteMessage(bot, chatID, query.Message.MessageID)
		return

	case bot_commands.Redact_prices:
		variations, err := db.Get_variations(DB, data.City, data.ProductType, data.District)
		if err != nil {
			sendText(bot, chatID, fmt.Sprintf(
				"Ошибка загрузки вариантов для %s / %s / %s",
				data.City,
				data.ProductType,
				data.District,
			))
			return
		}
		sendText(bot, chatID, messages.MakeMessage_GetVariationsForEdit(variations))
		AdminStates[chatID] = bot_commands.Wait_for_PriceList
		deleteMessage(bot, chatID, query.Message.MessageID)

	default:
		sendText(bot, chatID, "Unknown admin command")
		deleteMessage(bot, chatID, query.Message.MessageID)
		return
	}
}

// обработка сообщений админа
func admin_message_handler(DB *gorm.DB, bot *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	switch msg.Text {
	case "/start":
		menu.ShowStartMenu_admin(bot, msg.Chat.ID)
		return
	}

	switch AdminStates[msg.Chat.ID] {
	case bot_commands.Wait_for_PriceList:
		updated, err := db.RedactProducts(DB, msg.Text)
		if err != nil {
			sendText(bot, msg.Chat.ID, fmt.Sprint("Ошибка обновления цен ", err))
		} else {
			sendText(bot, msg.Chat.ID, fmt.Sprintf("Успешно обновлено %d записей", updated))
		}
		AdminStates[msg.Chat.ID] = bot_commands.None
		menu.ShowStartMenu_admin(bot, msg.Chat.ID)

	default:
		sendText(bot, msg.Chat.ID, "Unexpected message")
		return
	}
}

func userMessageHandler(bot *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	switch msg.Text {
	case "/start":
		menu.ShowStartMenu_user(bot, msg.Chat.ID)
		return
	default:
		return
	}
}

// Webhook-обработчик: принимает Update и раздает по ролям
func StartHandler(DB *gorm.DB, bot *tgbotapi.BotAPI, w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Can't read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		log.Println("JSON parse error:", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	// Обработка callback
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		user_id := update.CallbackQuery.Message.Chat.ID
		if auth.GetAuth().IsAdmin(user_id) {
			admin_callback_handler(DB, bot, update.CallbackQuery)
		} else {
			userCallbackHandler(DB, bot, update.CallbackQuery)
		}
		return
	}

	// Обработка сообщения
	var msg *tgbotapi.Message
	if update.Message != nil {
		msg = update.Message
	} else if update.EditedMessage != nil {
		msg = update.EditedMessage
	} else {
		http.Error(w, "Unsupported update type", http.StatusBadRequest)
		return
	}

	if auth.GetAuth().IsAdmin(msg.Chat.ID) {
		admin_message_handler(DB, bot, msg)
	} else {
		userMessageHandler(bot, msg)
	}
}

func userCallbackHandler(DB *gorm.DB, bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery) {
	data := decode_request(query.Data)
	chatID := query.Message.Chat.ID

	switch data.Command {

	case bot_commands.Start:
		menu.ShowStartMenu_user(bot, chatID)
		return

	case bot_commands.Catalog_start: //Каталог -> выбор города
		cities, err := db.Get_city_names(DB)
		if err != nil {
			log.Println("Ошибка чтения городов в БД:", err)
		}
		menu.ChooseOption(bot, cities, bot_commands.Choose_city, data, chatID, "Выберите город:")
		return

	case bot_commands.Choose_city: //Выбор города -> выбор типа
		if data.City == "" {
			log.Println("Error, get empty field in choose_type_command")
			return
		}
		types, err := db.Get_type_names(DB, data.City)
		if err != nil {
			log.Println("Ошибка чтения типов в БД:", err)
		}
		menu.ChooseOption(bot, types, bot_commands.Choose_type, data, chatID, "Выберите тип товара:")
		return

	case bot_commands.Choose_type: //Выбор типа -> выбор района
		if data.City == "" || data.ProductType == "" {
			log.Println("Error, get empty field in choose_district_command")
			return
		}
		districts, err := db.Get_district_names(DB, data.City, data.ProductType)
		if err != nil {
			log.Println("Ошибка чтения районов в БД:", err)
		}
		menu.ChooseOption(bot, districts, bot_commands.Choose_district, data, chatID, "Выберите район:")
		return

	case bot_commands.Choose_district: //Выбор района -> список вариаций
		variations, err := db.Get_variations(DB, data.City, data.ProductType, data.District)
		if err != nil {
			log.Println("Ошибка извлечения вариаций:", err)
			return
		}
		sendText(bot, chatID, messages.MakeMessagePriceList(variations, data.District))
		if err := menu.ShowVariations(bot, variations, data, chatID); err != nil {
			log.Println("Ошибка отображения вариантов:", err)
		}
		return

	case bot_commands.MakeOrder: //Выбрал вариацию -> оформить заказ
		productID, err := strconv.Atoi(data.ProductID)
		if err != nil {
			log.Println("Некорректные данные в data.ProductID")
			sendText(bot, chatID, "Ошибка при создании заказа. Попробуйте позже")
			return
		}

		order, err := db.MakeOrder(DB, chatID, uint(productID), PaymentBase)
		if err != nil {
			log.Printf("Ошибка создания заказа %d", productID)
			sendText(bot, chatID, err.Error())
			return
		}

		// Рассылка админам нового заказа
		orderMessage := messages.MakeMessage_NewOrderForAdmin(order, query.From.UserName)
		for _, admin := range auth.GetAuth().AdminIDs() {
			sendText(bot, admin, orderMessage)
		}

		sendText(bot, chatID, messages.MakeMessage_OrderCreated(order))
		return

	case bot_commands.CheckOrder:
		sendText(bot, chatID, "Напишите номер заказа, менеджер ответит в этом чате.")
		return

	default:
		sendText(bot, chatID, "Unknown user command")
	}
}
