package api

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"tg_miniapp/auth"
	db "tg_miniapp/internal/database"
	"tg_miniapp/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var upper = cases.Upper(language.Und)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeDiscountCode - нормализация промокода перед проверкой
func NormalizeDiscountCode(code string) string {
	return upper.String(strings.TrimSpace(code))
}

func GetBasketHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserFromRequest(r)
		if userID == 0 {
			writeJSON(w, http.StatusUnauthorized, models.BasketResponse{Basket: []models.ProductJSON{}, Error: "Unauthorized"})
			return
		}

		items, err := db.Get_basket(DB, userID)
		if err != nil {
			log.Printf("Ошибка чтения корзины: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.BasketResponse{Basket: []models.ProductJSON{}, Error: "Failed to load basket"})
			return
		}

		types, err := db.Get_product_types(DB)
		if err != nil {
			types = nil
		}

		basket := make([]models.ProductJSON, 0, len(items))
		var total float64
		for _, item := range items {
			p := shapeProduct(DB, item.Product, userID, types)
			total += p.Price
			basket = append(basket, p)
		}
		writeJSON(w, http.StatusOK, models.BasketResponse{Success: true, Basket: basket, Total: round2(total)})
	}
}

func AddToBasketHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserFromRequest(r)
		if userID == 0 {
			writeJSON(w, http.StatusUnauthorized, models.SimpleResponse{Error: "Unauthorized"})
			return
		}

		idStr := strings.TrimPrefix(r.URL.Path, "/api/basket/add/")
		productID, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.SimpleResponse{Error: "Invalid product id"})
			return
		}

		if err := db.AddToBasket(DB, userID, uint(productID)); err != nil {
			log.Printf("Ошибка добавления в корзину: %v", err)
			writeJSON(w, http.StatusConflict, models.SimpleResponse{Error: "Product is out of stock"})
			return
		}
		writeJSON(w, http.StatusOK, models.SimpleResponse{Success: true})
	}
}

func ClearBasketHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserFromRequest(r)
		if userID == 0 {
			writeJSON(w, http.StatusUnauthorized, models.SimpleResponse{Error: "Unauthorized"})
			return
		}

		if err := db.ClearBasket(DB, userID); err != nil {
			log.Printf("Ошибка очистки корзины: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.SimpleResponse{Error: "Failed to clear basket"})
			return
		}
		writeJSON(w, http.StatusOK, models.SimpleResponse{Success: true})
	}
}

func ValidateDiscountHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserFromRequest(r)
		if userID == 0 {
			writeJSON(w, http.StatusUnauthorized, models.DiscountResponse{Error: "Unauthorized"})
			return
		}

		var req models.DiscountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.DiscountResponse{Error: "Invalid JSON"})
			return
		}

		code := NormalizeDiscountCode(req.Code)
		if code == "" {
			writeJSON(w, http.StatusOK, models.DiscountResponse{Success: true, Valid: false, Message: "Введите промокод"})
			return
		}

		valid, message, result, err := db.ValidateDiscountAtomic(DB, code, req.Total)
		if err != nil {
			log.Printf("Ошибка валидации промокода: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.DiscountResponse{Error: "Failed to validate discount"})
			return
		}
		if !valid {
			writeJSON(w, http.StatusOK, models.DiscountResponse{Success: true, Valid: false, Message: message})
			return
		}
		writeJSON(w, http.StatusOK, models.DiscountResponse{
			Success:        true,
			Valid:          true,
			DiscountAmount: result.DiscountAmount,
			FinalTotal:     result.FinalTotal,
			Code:           code,
		})
	}
}

func GetBalanceHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserFromRequest(r)
		if userID == 0 {
			writeJSON(w, http.StatusUnauthorized, models.BalanceResponse{Error: "Unauthorized"})
			return
		}

		balance, err := db.Get_balance(DB, userID)
		if err != nil {
			log.Printf("Ошибка чтения баланса: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.BalanceResponse{Error: "Failed to load balance"})
			return
		}
		writeJSON(w, http.StatusOK, models.BalanceResponse{Success: true, Balance: balance})
	}
}
