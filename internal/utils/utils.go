package utils

import (
	"strings"

	"tg_miniapp/models"
)

// Кодирует состояние воронки в callback_data (лимит Telegram - 64 байта,
// поэтому компактный формат с разделителем, не JSON)
func Code_request(data models.CallBackData) string {
	return strings.Join([]string{data.Command, data.City, data.ProductType, data.District, data.ProductID}, "|")
}

func Decode_request(encoded string) models.CallBackData {
	parts := strings.Split(encoded, "|")

	data := models.CallBackData{}

	if len(parts) > 0 {
		data.Command = parts[0]
	}
	if len(parts) > 1 {
		data.City = parts[1]
	}
	if len(parts) > 2 {
		data.ProductType = parts[2]
	}
	if len(parts) > 3 {
		data.District = parts[3]
	}
	if len(parts) > 4 {
		data.ProductID = parts[4]
	}

	return data
}
