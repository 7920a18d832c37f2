package miniapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tg_miniapp/auth"
	"tg_miniapp/models"
)

// Loader - клиент REST API. Каждый запрос несет подписанный
// идентификационный токен хоста; сетевые сбои нефатальны и оставляют
// состояние нетронутым (решает вызывающий).
type Loader struct {
	BaseURL string
	Host    Host
	HTTP    *http.Client
}

func NewLoader(baseURL string, host Host) *Loader {
	return &Loader{
		BaseURL: baseURL,
		Host:    host,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (l *Loader) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, l.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(auth.InitDataHeader, l.Host.InitData())

	resp, err := l.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

func (l *Loader) LoadCities(ctx context.Context) ([]models.CityJSON, error) {
	var resp models.CitiesResponse
	if err := l.do(ctx, http.MethodGet, "/api/cities", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("cities: %s", resp.Error)
	}
	return resp.Cities, nil
}

func (l *Loader) LoadDistricts(ctx context.Context, cityID uint) ([]models.DistrictJSON, error) {
	var resp models.DistrictsResponse
	if err := l.do(ctx, http.MethodGet, fmt.Sprintf("/api/districts/%d", cityID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("districts: %s", resp.Error)
	}
	return resp.Districts, nil
}

func (l *Loader) LoadProductTypes(ctx context.Context) ([]models.ProductTypeJSON, error) {
	var resp models.ProductTypesResponse
	if err := l.do(ctx, http.MethodGet, "/api/product-types", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("product types: %s", resp.Error)
	}
	return resp.Types, nil
}

// LoadProducts - общий запрос каталога; values строит вызывающий,
// незаданные фильтры в него не попадают
func (l *Loader) LoadProducts(ctx context.Context, values url.Values) ([]models.ProductJSON, error) {
	path := "/api/products"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp models.ProductsResponse
	if err := l.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("products: %s", resp.Error)
	}
	return resp.Products, nil
}

func (l *Loader) LoadProduct(ctx context.Context, productID uint) (*models.ProductDetailsJSON, error) {
	var resp models.ProductDetailsResponse
	if err := l.do(ctx, http.MethodGet, fmt.Sprintf("/api/product/%d", productID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Product == nil {
		return nil, fmt.Errorf("product: %s", resp.Error)
	}
	return resp.Product, nil
}

func (l *Loader) LoadBasket(ctx context.Context) ([]models.ProductJSON, error) {
	var resp models.BasketResponse
	if err := l.do(ctx, http.MethodGet, "/api/basket", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("basket: %s", resp.Error)
	}
	return resp.Basket, nil
}

func (l *Loader) AddToBasket(ctx context.Context, productID uint) error {
	var resp models.SimpleResponse
	if err := l.do(ctx, http.MethodPost, fmt.Sprintf("/api/basket/add/%d", productID), nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("basket add: %s", resp.Error)
	}
	return nil
}

func (l *Loader) ClearBasket(ctx context.Context) error {
	var resp models.SimpleResponse
	if err := l.do(ctx, http.MethodPost, "/api/basket/clear", nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("basket clear: %s", resp.Error)
	}
	return nil
}

func (l *Loader) ValidateDiscount(ctx context.Context, code string, total float64) (*models.DiscountResponse, error) {
	var resp models.DiscountResponse
	req := models.DiscountRequest{Code: code, Total: total}
	if err := l.do(ctx, http.MethodPost, "/api/discount/validate", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("discount: %s", resp.Error)
	}
	return &resp, nil
}

func (l *Loader) LoadBalance(ctx context.Context) (float64, error) {
	var resp models.BalanceResponse
	if err := l.do(ctx, http.MethodGet, "/api/user/balance", nil, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("balance: %s", resp.Error)
	}
	return resp.Balance, nil
}

func (l *Loader) PlaceOrder(ctx context.Context, productID uint, userID int64) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	req := models.OrderRequest{ProductID: productID, UserID: userID}
	if err := l.do(ctx, http.MethodPost, "/api/order", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
