package main

import (
	"net/http"

	"tg_miniapp/internal/api"

	"gorm.io/gorm"
)

func SetupRoutes(mux *http.ServeMux, DB *gorm.DB, paymentBase, mediaDir string, notifier api.OrderNotifier) {

	mux.HandleFunc("/api/cities", api.GetCitiesHandler(DB))
	mux.HandleFunc("/api/districts/", api.GetDistrictsHandler(DB))
	mux.HandleFunc("/api/product-types", api.GetProductTypesHandler(DB))
	mux.HandleFunc("/api/products", api.GetProductsHandler(DB))
	mux.HandleFunc("/api/product/", api.GetProductDetailsHandler(DB))

	mux.HandleFunc("/api/basket", api.GetBasketHandler(DB))
	mux.HandleFunc("/api/basket/add/", api.AddToBasketHandler(DB))
	mux.HandleFunc("/api/basket/clear", api.ClearBasketHandler(DB))
	mux.HandleFunc("/api/discount/validate", api.ValidateDiscountHandler(DB))
	mux.HandleFunc("/api/user/balance", api.GetBalanceHandler(DB))
	mux.HandleFunc("/api/order", api.PlaceOrderHandler(DB, paymentBase, notifier))

	mux.HandleFunc("/media/", api.ServeMediaHandler(mediaDir))
}
