package menu

import (
	"fmt"
	"log"
	"strconv"

	"tg_miniapp/internal/bot_commands"
	"tg_miniapp/internal/utils"
	"tg_miniapp/models"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

var (
	code_request = utils.Code_request
)

func ShowStartMenu_user(bot *tgbotapi.BotAPI, chatID int64) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Каталог", code_request(models.CallBackData{Command: bot_commands.Catalog_start})),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Вопрос по заказу", code_request(models.CallBackData{Command: bot_commands.CheckOrder})),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "Меню:")
	msg.ReplyMarkup = keyboard
	if _, err := bot.Send(msg); err != nil {
		log.Println("Ошибка отправки меню:", err)
	}
}

// ChooseOption - формирует и отправляет меню для определенного этапа выбора
// в каталоге.
// options - список городов/типов/районов, составляющий кнопки
// command - текущая команда (Choose_city / Choose_type / Choose_district)
// data - callbackData предыдущего запроса (выбранные на текущий момент уровни)
// chatID - получатель
func ChooseOption(bot *tgbotapi.BotAPI, options []string, command string,
	data models.CallBackData, chatID int64, title string) {

	var rows [][]tgbotapi.InlineKeyboardButton
	new_data := data

	for _, option := range options { //Выводим кнопки с вариантами уровня
		new_data.Command = command

		switch command {
		case bot_commands.Choose_city:
			new_data.City = option

		case bot_commands.Choose_type:
			new_data.ProductType = option

		case bot_commands.Choose_district:
			new_data.District = option
		default:
			log.Println("Unknown command in ChooseOption:", command)
			return
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, code_request(new_data)),
		))
	}

	back_data := data // Кнопка "Назад" ведет на уровень выше
	switch command {
	case bot_commands.Choose_city: //Город -> стартовое меню
		back_data = models.CallBackData{Command: bot_commands.Start}
	case bot_commands.Choose_type: // Тип -> города
		back_data.Command = bot_commands.Catalog_start
	case bot_commands.Choose_district: // Район -> типы
		back_data.Command = bot_commands.Choose_city
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Назад", code_request(back_data)),
	))

	msg := tgbotapi.NewMessage(chatID, title)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bot.Send(msg); err != nil {
		log.Println("Ошибка отправки меню выбора:", err)
	}
}

// (ПОЛЬЗОВАТЕЛЬ) Клавиатура с вариациями для выбранного города/типа/района
func ShowVariations(bot *tgbotapi.BotAPI, variations []models.Product,
	data models.CallBackData, chatID int64) error {

	if len(variations) == 0 {
		return fmt.Errorf("нет доступных вариантов")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range variations {
		buttonText := fmt.Sprintf("%s %s --- %.2f", v.ProductType, v.Size, v.Price)
		but_data := data
		but_data.Command = bot_commands.MakeOrder
		but_data.ProductID = strconv.Itoa(int(v.ID))

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(buttonText, code_request(but_data)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Главное меню", code_request(models.CallBackData{Command: bot_commands.Start})),
	))

	msg := tgbotapi.NewMessage(chatID, "Выберите вариант:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := bot.Send(msg); err != nil {
		log.Println("Ошибка отправки вариантов:", err)
		return err
	}
	return nil
}

// (АДМИН) Отправка меню выбора действия в редактировании каталога
func GetRedactAction(bot *tgbotapi.BotAPI, chatID int64, data models.CallBackData) {
	new_data := data
	new_data.Command = bot_commands.Redact_prices

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Редактировать цены", code_request(new_data)),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "Выберите действие:")
	msg.ReplyMarkup = keyboard
	if _, err := bot.Send(msg); err != nil {
		log.Println("Ошибка отправки меню действий:", err)
	}
}

// (АДМИН) Отправляет стартовое меню
func ShowStartMenu_admin(bot *tgbotapi.BotAPI, chatID int64) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Редактировать каталог",
				code_request(models.CallBackData{Command: bot_commands.Start_redact})),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "Выберите действие:")
	msg.ReplyMarkup = keyboard
	if _, err := bot.Send(msg); err != nil {
		log.Println("Ошибка отправки меню:", err)
	}
}
