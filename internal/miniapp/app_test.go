package miniapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tg_miniapp/models"
)

// recordingHost - хост, записывающий уведомления и открытые ссылки
type recordingHost struct {
	NoopHost
	notices []string
	links   []string
}

func (h *recordingHost) Notify(text string)  { h.notices = append(h.notices, text) }
func (h *recordingHost) OpenLink(url string) { h.links = append(h.links, url) }

// fakeBackend - управляемый сервер API для клиентских тестов
type fakeBackend struct {
	mux *http.ServeMux
	srv *httptest.Server

	basket        []models.ProductJSON
	products      []models.ProductJSON
	districts     []models.DistrictJSON
	product       *models.ProductDetailsJSON
	clearCalls    int
	lastCode      string
	discountValid bool
	orderURL      string
	orderFail     string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{mux: http.NewServeMux()}

	b.mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ProductsResponse{Success: true, Products: b.products})
	})
	b.mux.HandleFunc("/api/districts/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.DistrictsResponse{Success: true, Districts: b.districts})
	})
	b.mux.HandleFunc("/api/product/", func(w http.ResponseWriter, r *http.Request) {
		if b.product == nil {
			json.NewEncoder(w).Encode(models.ProductDetailsResponse{Error: "Product not found or out of stock"})
			return
		}
		json.NewEncoder(w).Encode(models.ProductDetailsResponse{Success: true, Product: b.product})
	})
	b.mux.HandleFunc("/api/basket", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.BasketResponse{Success: true, Basket: b.basket})
	})
	b.mux.HandleFunc("/api/basket/clear", func(w http.ResponseWriter, r *http.Request) {
		b.clearCalls++
		b.basket = nil
		json.NewEncoder(w).Encode(models.SimpleResponse{Success: true})
	})
	b.mux.HandleFunc("/api/discount/validate", func(w http.ResponseWriter, r *http.Request) {
		var req models.DiscountRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.lastCode = req.Code
		if !b.discountValid {
			json.NewEncoder(w).Encode(models.DiscountResponse{Success: true, Valid: false, Message: "Промокод не найден"})
			return
		}
		json.NewEncoder(w).Encode(models.DiscountResponse{
			Success: true, Valid: true,
			DiscountAmount: req.Total / 10,
			FinalTotal:     req.Total - req.Total/10,
			Code:           req.Code,
		})
	})
	b.mux.HandleFunc("/api/order", func(w http.ResponseWriter, r *http.Request) {
		if b.orderFail != "" {
			json.NewEncoder(w).Encode(models.OrderResponse{Message: b.orderFail})
			return
		}
		json.NewEncoder(w).Encode(models.OrderResponse{Success: true, Reference: "ref1", PaymentURL: b.orderURL})
	})

	b.srv = httptest.NewServer(b.mux)
	t.Cleanup(b.srv.Close)
	return b
}

func newTestApp(t *testing.T, backend *fakeBackend) (*App, *recordingHost) {
	t.Helper()
	host := &recordingHost{}
	app := NewApp(NewSession(42), NewLoader(backend.srv.URL, host), host)
	return app, host
}

func TestApplyDiscountNormalizesCode(t *testing.T) {
	backend := newFakeBackend(t)
	backend.discountValid = true
	app, _ := newTestApp(t, backend)
	app.Session.Basket = []models.ProductJSON{{Price: 10}}

	app.ApplyDiscount(context.Background(), " save10 ")

	if backend.lastCode != "SAVE10" {
		t.Errorf("code sent to backend = %q, want SAVE10", backend.lastCode)
	}
	if app.Session.Discount == nil {
		t.Fatal("expected discount to be stored")
	}
	if app.Session.Discount.FinalTotal != 9 {
		t.Errorf("final total = %.2f, want 9.00", app.Session.Discount.FinalTotal)
	}
}

func TestApplyDiscountEmptyCodeNeverSent(t *testing.T) {
	backend := newFakeBackend(t)
	app, host := newTestApp(t, backend)

	app.ApplyDiscount(context.Background(), "   ")

	if backend.lastCode != "" {
		t.Errorf("empty code reached backend as %q", backend.lastCode)
	}
	if len(host.notices) == 0 {
		t.Error("expected local validation notice")
	}
}

func TestApplyDiscountEmptyBasketNeverSent(t *testing.T) {
	backend := newFakeBackend(t)
	backend.discountValid = true
	app, host := newTestApp(t, backend)

	app.ApplyDiscount(context.Background(), "SAVE10")

	if backend.lastCode != "" {
		t.Errorf("code for empty basket reached backend as %q", backend.lastCode)
	}
	if app.Session.Discount != nil {
		t.Errorf("discount stored with empty basket: %+v", app.Session.Discount)
	}
	if len(host.notices) == 0 {
		t.Error("expected empty-basket notice")
	}
}

func TestApplyDiscountBackendMessageSurfaced(t *testing.T) {
	backend := newFakeBackend(t)
	app, host := newTestApp(t, backend)
	app.Session.Basket = []models.ProductJSON{{Price: 10}}

	app.ApplyDiscount(context.Background(), "NOPE")

	if app.Session.Discount != nil {
		t.Error("expected no discount on rejection")
	}
	if len(host.notices) != 1 || host.notices[0] != "Промокод не найден" {
		t.Errorf("notices = %v, want backend message verbatim", host.notices)
	}
}

func TestClearBasketDropsDiscountAtomically(t *testing.T) {
	backend := newFakeBackend(t)
	backend.basket = []models.ProductJSON{{ID: 1, Price: 10}}
	app, _ := newTestApp(t, backend)

	app.LoadBasket(context.Background())
	if app.Session.BadgeCount() != 1 {
		t.Fatalf("badge = %d, want 1", app.Session.BadgeCount())
	}
	app.Session.Discount = &Discount{DiscountAmount: 1, FinalTotal: 9}

	app.ClearBasket(context.Background())

	if backend.clearCalls != 1 {
		t.Errorf("clear calls = %d, want 1", backend.clearCalls)
	}
	if app.Session.BadgeCount() != 0 {
		t.Errorf("badge after clear = %d, want 0", app.Session.BadgeCount())
	}
	if app.Session.Discount != nil {
		t.Error("discount survived basket clear")
	}
	if BuildView(app.Session).DiscountRowVisible {
		t.Error("discount row still visible after clear")
	}
}

func TestClearBasketFailureLeavesState(t *testing.T) {
	// сервер без маршрутов - любой запрос отвечает 404 без JSON
	srv := httptest.NewServer(http.NewServeMux())
	defer srv.Close()

	host := &recordingHost{}
	app := NewApp(NewSession(42), NewLoader(srv.URL, host), host)
	app.Session.Basket = []models.ProductJSON{{ID: 1, Price: 10}}
	app.Session.Discount = &Discount{DiscountAmount: 1, FinalTotal: 9}

	app.ClearBasket(context.Background())

	if len(app.Session.Basket) != 1 {
		t.Error("basket changed after failed clear")
	}
	if app.Session.Discount == nil {
		t.Error("discount changed after failed clear")
	}
}

func TestSubmitOrderOpensPaymentURL(t *testing.T) {
	backend := newFakeBackend(t)
	backend.orderURL = "https://pay.example/ref1"
	app, host := newTestApp(t, backend)

	p := models.ProductJSON{ID: 2, City: "Berlin", District: "Mitte", Type: "Widget", Size: "L", Price: 14.99, InStock: 3}
	app.Session.Variation = &p

	app.SubmitOrder(context.Background())

	if len(host.links) != 1 || host.links[0] != backend.orderURL {
		t.Errorf("opened links = %v, want payment url", host.links)
	}
}

func TestSubmitOrderDeferToBot(t *testing.T) {
	backend := newFakeBackend(t)
	app, host := newTestApp(t, backend)

	p := models.ProductJSON{ID: 2, InStock: 3}
	app.Session.Variation = &p

	app.SubmitOrder(context.Background())

	if len(host.links) != 0 {
		t.Errorf("unexpected external links: %v", host.links)
	}
	if len(host.notices) == 0 {
		t.Error("expected defer-to-bot notice")
	}
}

func TestSubmitOrderFailureKeepsVariation(t *testing.T) {
	backend := newFakeBackend(t)
	backend.orderFail = "Product is no longer available"
	app, host := newTestApp(t, backend)

	p := models.ProductJSON{ID: 2, InStock: 3}
	app.Session.Variation = &p

	app.SubmitOrder(context.Background())

	if app.Session.Variation == nil {
		t.Error("variation dropped on failed order")
	}
	if len(host.notices) != 1 || host.notices[0] != backend.orderFail {
		t.Errorf("notices = %v, want backend message", host.notices)
	}
}

func TestSetGridCityLoadsDistricts(t *testing.T) {
	backend := newFakeBackend(t)
	backend.districts = []models.DistrictJSON{{ID: 3, Name: "Mitte"}, {ID: 4, Name: "Kreuzberg"}}
	app, _ := newTestApp(t, backend)

	app.SetGridCity(context.Background(), &models.CityJSON{ID: 1, Name: "Berlin"})

	if len(app.Session.Catalog.Districts) != 2 {
		t.Fatalf("districts = %v, want 2 loaded", app.Session.Catalog.Districts)
	}
	if app.Session.Catalog.Districts[0].Name != "Mitte" {
		t.Errorf("first district = %q, want Mitte", app.Session.Catalog.Districts[0].Name)
	}

	// снятый фильтр города очищает и список районов
	app.SetGridCity(context.Background(), nil)
	if app.Session.Catalog.Districts != nil {
		t.Errorf("districts survived city reset: %v", app.Session.Catalog.Districts)
	}
}

func TestShowProductDetailsOpensCard(t *testing.T) {
	backend := newFakeBackend(t)
	backend.product = &models.ProductDetailsJSON{
		ProductJSON: models.ProductJSON{ID: 2, Type: "Widget", Size: "L", Emoji: "📦", Price: 14.99, InStock: 3},
		Description: "Крупный виджет",
		Media:       []models.MediaJSON{{Type: "photo", FileID: "file1.jpg"}},
	}
	app, _ := newTestApp(t, backend)

	app.ShowProductDetails(context.Background(), 2)

	if app.Session.Details == nil {
		t.Fatal("details not stored after load")
	}
	view := BuildView(app.Session)
	if !view.DetailVisible {
		t.Error("detail card hidden after load")
	}
	if view.DetailText != "Крупный виджет" {
		t.Errorf("detail text = %q", view.DetailText)
	}
	if len(view.DetailMedia) != 1 || view.DetailMedia[0] != "/media/2/file1.jpg" {
		t.Errorf("detail media = %v", view.DetailMedia)
	}

	app.CloseProductDetails()
	if app.Session.Details != nil {
		t.Error("details survived card close")
	}
	if BuildView(app.Session).DetailVisible {
		t.Error("detail card still visible after close")
	}
}

func TestShowProductDetailsUnavailable(t *testing.T) {
	backend := newFakeBackend(t)
	app, host := newTestApp(t, backend)

	app.ShowProductDetails(context.Background(), 9)

	if app.Session.Details != nil {
		t.Errorf("details stored for unavailable product: %+v", app.Session.Details)
	}
	if len(host.notices) == 0 {
		t.Error("expected unavailable-product notice")
	}
}

// Устаревший ответ каталога не должен затирать состояние нового выбора
func TestStaleCatalogResponseDiscarded(t *testing.T) {
	backend := newFakeBackend(t)
	app, _ := newTestApp(t, backend)

	epoch := app.Session.SelectCity(models.CityJSON{ID: 1, Name: "Berlin"})

	// пока ответ "в пути", пользователь выбирает другой город
	app.Session.SelectCity(models.CityJSON{ID: 2, Name: "Hamburg"})

	stale := []models.ProductJSON{{ID: 1, City: "Berlin", InStock: 1}}
	if app.applyProducts(epoch, stale) {
		t.Fatal("stale response was applied")
	}
	if app.Session.Catalog.Products != nil {
		t.Error("stale products overwrote newer state")
	}

	fresh := []models.ProductJSON{{ID: 9, City: "Hamburg", InStock: 1}}
	if !app.applyProducts(app.Session.Epoch(), fresh) {
		t.Fatal("current response was rejected")
	}
}
