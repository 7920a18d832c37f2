package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tg_miniapp/auth"
	db "tg_miniapp/internal/database"
	"tg_miniapp/models"

	"gorm.io/gorm"
)

// OrderNotifier - уведомление о новом заказе (рассылка админам через бота)
type OrderNotifier interface {
	NotifyNewOrder(order *models.Order)
}

// Оформление заказа. Сервер - единственный владелец резерва и платежной
// ссылки; при ее отсутствии заказ дальше ведется ботом.
func PlaceOrderHandler(DB *gorm.DB, paymentBase string, notifier OrderNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserFromRequest(r)

		var req models.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.OrderResponse{Error: "Invalid JSON"})
			return
		}
		if userID == 0 {
			userID = req.UserID
		}
		if userID == 0 || req.ProductID == 0 {
			writeJSON(w, http.StatusBadRequest, models.OrderResponse{Error: "product_id and user_id are required"})
			return
		}

		order, err := db.MakeOrder(DB, userID, req.ProductID, paymentBase)
		if err != nil {
			writeJSON(w, http.StatusConflict, models.OrderResponse{Message: "Product is no longer available"})
			return
		}

		if notifier != nil {
			notifier.NotifyNewOrder(order)
		}

		resp := models.OrderResponse{
			Success:   true,
			Reference: order.Reference,
		}
		if order.PaymentURL != "" {
			resp.PaymentURL = order.PaymentURL
		} else {
			resp.Message = "Заказ принят, менеджер свяжется с вами в боте"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Отдача медиафайлов товара из MEDIA_DIR
func ServeMediaHandler(mediaDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/media/")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		if _, err := strconv.ParseUint(parts[0], 10, 32); err != nil {
			http.NotFound(w, r)
			return
		}

		name := filepath.Base(parts[1])
		path := filepath.Join(mediaDir, parts[0], name)
		if _, err := os.Stat(path); err != nil {
			log.Printf("Медиафайл не найден: %s", path)
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}
