package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"tg_miniapp/auth"
	db "tg_miniapp/internal/database"
	"tg_miniapp/models"

	"gorm.io/gorm"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// Эмодзи типа по точному совпадению имени
func emojiFor(types []models.ProductType, name string) string {
	for _, t := range types {
		if t.Name == name {
			return t.Emoji
		}
	}
	return "📦"
}

// Снимок товара для клиента: эмодзи типа, остаток, скидка реселлера (если
// передан userID), признак наличия медиа
func shapeProduct(DB *gorm.DB, p models.Product, userID int64, types []models.ProductType) models.ProductJSON {
	out := models.ProductJSON{
		ID:       p.ID,
		City:     p.City,
		District: p.District,
		Type:     p.ProductType,
		Size:     p.Size,
		Emoji:    emojiFor(types, p.ProductType),
		Price:    p.Price,
		InStock:  p.Available - p.Reserved,
	}

	if userID != 0 {
		percent, err := db.Get_reseller_discount(DB, userID, p.ProductType)
		if err != nil {
			log.Printf("Ошибка чтения скидки реселлера: %v", err)
		} else if percent > 0 {
			out.OriginalPrice = p.Price
			out.Price = p.Price - p.Price*percent/100
			out.DiscountPercent = percent
		}
	}

	if len(p.Media) > 0 {
		out.HasMedia = true
		out.MediaType = p.Media[0].MediaType
	}
	return out
}

func GetCitiesHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cities, err := db.Get_cities(DB)
		if err != nil {
			log.Printf("Ошибка чтения городов в БД: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.CitiesResponse{Error: "Failed to load cities"})
			return
		}

		list := make([]models.CityJSON, 0, len(cities))
		for _, c := range cities {
			list = append(list, models.CityJSON{ID: c.ID, Name: c.Name})
		}
		writeJSON(w, http.StatusOK, models.CitiesResponse{Success: true, Cities: list})
	}
}

func GetDistrictsHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/districts/")
		cityID, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.DistrictsResponse{Error: "Invalid city id"})
			return
		}

		districts, err := db.Get_districts(DB, uint(cityID))
		if err != nil {
			log.Printf("Ошибка чтения районов в БД: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.DistrictsResponse{Error: "Failed to load districts"})
			return
		}

		list := make([]models.DistrictJSON, 0, len(districts))
		for _, d := range districts {
			list = append(list, models.DistrictJSON{ID: d.ID, Name: d.Name})
		}
		writeJSON(w, http.StatusOK, models.DistrictsResponse{Success: true, Districts: list})
	}
}

func GetProductTypesHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := db.Get_product_types(DB)
		if err != nil {
			log.Printf("Ошибка чтения типов товаров в БД: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ProductTypesResponse{Error: "Failed to load product types"})
			return
		}

		list := make([]models.ProductTypeJSON, 0, len(types))
		for _, t := range types {
			list = append(list, models.ProductTypeJSON{Name: t.Name, Emoji: t.Emoji})
		}
		writeJSON(w, http.StatusOK, models.ProductTypesResponse{Success: true, Types: list})
	}
}

// Каталог с фильтрами. Незаданные фильтры опускаются клиентом и не
// участвуют в запросе.
func GetProductsHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := db.ProductFilter{
			City:        q.Get("city"),
			District:    q.Get("district"),
			ProductType: q.Get("type"),
		}

		var userID int64
		if idStr := q.Get("user_id"); idStr != "" {
			userID, _ = strconv.ParseInt(idStr, 10, 64)
		}

		products, err := db.Get_products(DB, filter)
		if err != nil {
			log.Printf("Ошибка чтения каталога в БД: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ProductsResponse{Error: "Failed to load products"})
			return
		}

		types, err := db.Get_product_types(DB)
		if err != nil {
			log.Printf("Ошибка чтения типов товаров в БД: %v", err)
			types = nil
		}

		list := make([]models.ProductJSON, 0, len(products))
		for _, p := range products {
			list = append(list, shapeProduct(DB, p, userID, types))
		}
		writeJSON(w, http.StatusOK, models.ProductsResponse{Success: true, Products: list})
	}
}

func GetProductDetailsHandler(DB *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/api/product/")
		productID, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ProductDetailsResponse{Error: "Invalid product id"})
			return
		}

		product, err := db.Get_product(DB, uint(productID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				writeJSON(w, http.StatusNotFound, models.ProductDetailsResponse{Error: "Product not found or out of stock"})
				return
			}
			log.Printf("Ошибка чтения товара %d: %v", productID, err)
			writeJSON(w, http.StatusInternalServerError, models.ProductDetailsResponse{Error: "Failed to load product"})
			return
		}

		types, err := db.Get_product_types(DB)
		if err != nil {
			types = nil
		}

		userID := auth.UserFromRequest(r)
		details := models.ProductDetailsJSON{
			ProductJSON: shapeProduct(DB, *product, userID, types),
			Description: product.Description,
			Media:       make([]models.MediaJSON, 0, len(product.Media)),
		}
		for _, m := range product.Media {
			details.Media = append(details.Media, models.MediaJSON{Type: m.MediaType, FileID: m.FileID})
		}
		writeJSON(w, http.StatusOK, models.ProductDetailsResponse{Success: true, Product: &details})
	}
}
