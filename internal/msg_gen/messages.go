package messages

import (
	"fmt"
	"strings"

	"tg_miniapp/models"
)

// (АДМИН) Создает образец сообщения для редактирования вариаций
func MakeMessage_GetVariationsForEdit(variations []models.Product) string {

	var message strings.Builder
	message.WriteString("Скопируйте данное сообщение и отправьте с внесенными изменениями.\n")
	message.WriteString("(редактировать можно цену и количество)\n")
	// Добавляем список вариаций
	if len(variations) == 0 {
		message.WriteString("Нет доступных вариантов")
	} else {
		message.WriteString("Доступные варианты:\n\n")
		message.WriteString("ID | Размер | Цена | Кол-во\n")
		message.WriteString("----------------------------------\n")

		for _, v := range variations {
			message.WriteString(fmt.Sprintf("%d | %s | %.2f | %d\n",
				v.ID,
				v.Size,
				v.Price,
				v.Available))
		}
	}
	return message.String()
}

// Создает список всех вариаций для города/типа/района
func MakeMessagePriceList(variations []models.Product, district string) string {
	var message strings.Builder

	if len(variations) == 0 {
		message.WriteString("Нет доступных вариантов")
		return message.String()
	}

	message.WriteString(fmt.Sprintf("Доступные варианты (%s):\n\n", district))
	message.WriteString("ID | Размер | Цена | Остаток\n")
	message.WriteString("----------------------------------\n")

	for _, v := range variations {
		message.WriteString(fmt.Sprintf("%d | %s | %.2f | %d\n",
			v.ID,
			v.Size,
			v.Price,
			v.Available-v.Reserved))
	}
	return message.String()
}

// Сообщение пользователю после оформления заказа
func MakeMessage_OrderCreated(order *models.Order) string {
	if order.PaymentURL != "" {
		return fmt.Sprintf("Заказ %s оформлен!\nОплата: %s", order.Reference, order.PaymentURL)
	}
	return fmt.Sprintf("Заказ %s оформлен!\nСкоро с вами свяжется менеджер для уточнения деталей.", order.Reference)
}

// Рассылка админам о новом заказе
func MakeMessage_NewOrderForAdmin(order *models.Order, username string) string {
	return fmt.Sprintf("Новый заказ %s от пользователя @%s (товар ID: %d).",
		order.Reference, username, order.ProductID)
}
