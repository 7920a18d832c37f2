package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"tg_miniapp/auth"
	db "tg_miniapp/internal/database"
	"tg_miniapp/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	DB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(DB))
	require.NoError(t, db.SeedTestData(DB))
	return DB
}

func initDataFor(userID int64) string {
	values := url.Values{}
	values.Set("user", fmt.Sprintf(`{"id":%d}`, userID))
	return values.Encode()
}

func doRequest(handler http.HandlerFunc, method, target string, body interface{}, userID int64) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != 0 {
		req.Header.Set(auth.InitDataHeader, initDataFor(userID))
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGetCities(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(GetCitiesHandler(DB), http.MethodGet, "/api/cities", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CitiesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Cities, 3)
	require.Equal(t, "Berlin", resp.Cities[0].Name)
}

func TestGetDistrictsForCity(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(GetDistrictsHandler(DB), http.MethodGet, "/api/districts/1", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DistrictsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Districts, 3)
}

func TestGetProductsFiltered(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(GetProductsHandler(DB), http.MethodGet, "/api/products?city=Berlin&type=Widget", nil, 0)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Products, 3)
	for _, p := range resp.Products {
		require.Equal(t, "Berlin", p.City)
		require.Equal(t, "Widget", p.Type)
		require.Greater(t, p.InStock, 0)
		require.Equal(t, "📦", p.Emoji)
	}
	// новые записи первыми
	require.Greater(t, resp.Products[0].ID, resp.Products[2].ID)
}

func TestGetProductsNoFiltersReturnsAll(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(GetProductsHandler(DB), http.MethodGet, "/api/products", nil, 0)
	var resp models.ProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Products, 7)
}

func TestResellerDiscountApplied(t *testing.T) {
	DB := setupTestDB(t)
	require.NoError(t, DB.Create(&models.ResellerDiscount{UserID: 42, ProductType: "Widget", Percent: 10}).Error)

	rec := doRequest(GetProductsHandler(DB), http.MethodGet, "/api/products?city=Berlin&type=Widget&user_id=42", nil, 0)
	var resp models.ProductsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Products)
	for _, p := range resp.Products {
		require.Equal(t, 10.0, p.DiscountPercent)
		require.Greater(t, p.OriginalPrice, p.Price)
		require.InDelta(t, p.OriginalPrice*0.9, p.Price, 0.001)
	}
}

func TestGetProductDetailsNotFound(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(GetProductDetailsHandler(DB), http.MethodGet, "/api/product/9999", nil, 0)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBasketRequiresIdentity(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(GetBasketHandler(DB), http.MethodGet, "/api/basket", nil, 0)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasketAddGetClear(t *testing.T) {
	DB := setupTestDB(t)

	rec := doRequest(AddToBasketHandler(DB), http.MethodPost, "/api/basket/add/1", nil, 42)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(GetBasketHandler(DB), http.MethodGet, "/api/basket", nil, 42)
	var basket models.BasketResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&basket))
	require.True(t, basket.Success)
	require.Len(t, basket.Basket, 1)
	require.Equal(t, basket.Basket[0].Price, basket.Total)

	// позиция резервирует остаток
	var product models.Product
	require.NoError(t, DB.First(&product, 1).Error)
	require.Equal(t, 1, product.Reserved)

	rec = doRequest(ClearBasketHandler(DB), http.MethodPost, "/api/basket/clear", nil, 42)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(GetBasketHandler(DB), http.MethodGet, "/api/basket", nil, 42)
	basket = models.BasketResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&basket))
	require.Empty(t, basket.Basket)

	require.NoError(t, DB.First(&product, 1).Error)
	require.Equal(t, 0, product.Reserved)
}

func TestValidateDiscountNormalizes(t *testing.T) {
	DB := setupTestDB(t)

	body := models.DiscountRequest{Code: " save10 ", Total: 100}
	rec := doRequest(ValidateDiscountHandler(DB), http.MethodPost, "/api/discount/validate", body, 42)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DiscountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Valid)
	require.Equal(t, "SAVE10", resp.Code)
	require.Equal(t, 10.0, resp.DiscountAmount)
	require.Equal(t, 90.0, resp.FinalTotal)
}

func TestValidateDiscountUnknownCode(t *testing.T) {
	DB := setupTestDB(t)

	body := models.DiscountRequest{Code: "NOPE", Total: 100}
	rec := doRequest(ValidateDiscountHandler(DB), http.MethodPost, "/api/discount/validate", body, 42)

	var resp models.DiscountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.False(t, resp.Valid)
	require.NotEmpty(t, resp.Message)
}

func TestValidateDiscountBelowMinTotal(t *testing.T) {
	DB := setupTestDB(t)

	body := models.DiscountRequest{Code: "VIP20", Total: 10}
	rec := doRequest(ValidateDiscountHandler(DB), http.MethodPost, "/api/discount/validate", body, 42)

	var resp models.DiscountResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Valid)
}

func TestPlaceOrderWithPaymentBase(t *testing.T) {
	DB := setupTestDB(t)

	body := models.OrderRequest{ProductID: 1, UserID: 42}
	rec := doRequest(PlaceOrderHandler(DB, "https://pay.example", nil), http.MethodPost, "/api/order", body, 42)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Reference)
	require.Contains(t, resp.PaymentURL, "https://pay.example/pay/")

	var product models.Product
	require.NoError(t, DB.First(&product, 1).Error)
	require.Equal(t, 1, product.Reserved)
}

func TestPlaceOrderDeferToBot(t *testing.T) {
	DB := setupTestDB(t)

	body := models.OrderRequest{ProductID: 1, UserID: 42}
	rec := doRequest(PlaceOrderHandler(DB, "", nil), http.MethodPost, "/api/order", body, 42)

	var resp models.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.Empty(t, resp.PaymentURL)
	require.NotEmpty(t, resp.Message)
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	DB := setupTestDB(t)
	require.NoError(t, DB.Model(&models.Product{}).Where("id = ?", 6).
		UpdateColumn("reserved", gorm.Expr("available")).Error)

	body := models.OrderRequest{ProductID: 6, UserID: 42}
	rec := doRequest(PlaceOrderHandler(DB, "", nil), http.MethodPost, "/api/order", body, 42)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.OrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.NotEmpty(t, resp.Message)
}
