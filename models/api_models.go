package models

// Типы JSON для REST API мини-приложения. Используются и сервером
// (internal/api), и клиентским ядром (internal/miniapp).

type CityJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type DistrictJSON struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProductTypeJSON struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// ProductJSON - снимок товара, каким его видит клиент. Неизменяемый:
// клиент никогда не правит поля полученной записи.
type ProductJSON struct {
	ID              uint    `json:"id"`
	City            string  `json:"city"`
	District        string  `json:"district"`
	Type            string  `json:"type"`
	Size            string  `json:"size"`
	Emoji           string  `json:"emoji"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	InStock         int     `json:"in_stock"`
	HasMedia        bool    `json:"has_media,omitempty"`
	MediaType       string  `json:"media_type,omitempty"`
}

type MediaJSON struct {
	Type   string `json:"type"`
	FileID string `json:"file_id"`
}

// ProductDetailsJSON - расширенный снимок для карточки товара
type ProductDetailsJSON struct {
	ProductJSON
	Description string      `json:"description"`
	Media       []MediaJSON `json:"media"`
}

type CitiesResponse struct {
	Success bool       `json:"success"`
	Cities  []CityJSON `json:"cities,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type DistrictsResponse struct {
	Success   bool           `json:"success"`
	Districts []DistrictJSON `json:"districts,omitempty"`
	Error     string         `json:"error,omitempty"`
}

type ProductTypesResponse struct {
	Success bool              `json:"success"`
	Types   []ProductTypeJSON `json:"types,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type ProductsResponse struct {
	Success  bool          `json:"success"`
	Products []ProductJSON `json:"products,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type ProductDetailsResponse struct {
	Success bool                `json:"success"`
	Product *ProductDetailsJSON `json:"product,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type BasketResponse struct {
	Success bool          `json:"success"`
	Basket  []ProductJSON `json:"basket"`
	Total   float64       `json:"total"`
	Error   string        `json:"error,omitempty"`
}

type DiscountRequest struct {
	Code  string  `json:"code"`
	Total float64 `json:"total"`
}

type DiscountResponse struct {
	Success        bool    `json:"success"`
	Valid          bool    `json:"valid"`
	DiscountAmount float64 `json:"discount_amount,omitempty"`
	FinalTotal     float64 `json:"final_total,omitempty"`
	Code           string  `json:"code,omitempty"`
	Message        string  `json:"message,omitempty"`
	Error          string  `json:"error,omitempty"`
}

type BalanceResponse struct {
	Success bool    `json:"success"`
	Balance float64 `json:"balance"`
	Error   string  `json:"error,omitempty"`
}

type OrderRequest struct {
	ProductID uint  `json:"product_id"`
	UserID    int64 `json:"user_id"`
}

type OrderResponse struct {
	Success    bool   `json:"success"`
	Reference  string `json:"reference,omitempty"`
	PaymentURL string `json:"payment_url,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

type SimpleResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
