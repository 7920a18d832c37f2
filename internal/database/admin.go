package db

import (
	"fmt"
	"strconv"
	"strings"

	"tg_miniapp/models"

	"gorm.io/gorm"
)

// (АДМИН) Обработка сообщения редактирования цен и остатков
func RedactProducts(DB *gorm.DB, text string) (int, error) {
	lines := strings.Split(text, "\n")
	startParsing := false
	updated := 0

	for _, line := range lines {
		// Начать парсинг после заголовка таблицы
		if strings.HasPrefix(line, "ID |") {
			startParsing = true
			continue
		}
		if !startParsing || strings.HasPrefix(line, "---") || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			continue
		}

		idStr := strings.TrimSpace(parts[0])
		priceStr := strings.TrimSpace(parts[2])
		qtyStr := strings.TrimSpace(parts[3])

		id, err := strconv.Atoi(idStr)
		if err != nil {
			return 0, fmt.Errorf("не удалось распарсить ID: %v", err)
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return 0, fmt.Errorf("не удалось распарсить цену для ID %d: %v", id, err)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return 0, fmt.Errorf("не удалось распарсить количество для ID %d: %v", id, err)
		}

		var product models.Product
		if err := DB.First(&product, id).Error; err != nil {
			return 0, fmt.Errorf("не удалось найти товар с ID %d: %v", id, err)
		}

		// Сохраняем, только если данные изменились
		if product.Price != price || product.Available != qty {
			product.Price = price
			product.Available = qty
			if err := DB.Save(&product).Error; err != nil {
				return updated, fmt.Errorf("ошибка при сохранении товара ID %d: %v", id, err)
			}
			updated++
		}
	}

	return updated, nil
}
