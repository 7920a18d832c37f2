package miniapp

import (
	"context"
	"log"
	"strings"

	"tg_miniapp/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// App - связка состояния, загрузчика и хоста. Один экземпляр на запуск;
// все переходы происходят на одной логической нити событий, поэтому
// мьютексов нет. Поток управления всегда один: действие → мутация
// состояния → перерисовка.
type App struct {
	Session *Session
	Loader  *Loader
	Host    Host

	// Present - шаг view-model → отображение. Ядро его только вызывает,
	// само отображение остается снаружи.
	Present func(View)
}

func NewApp(session *Session, loader *Loader, host Host) *App {
	return &App{
		Session: session,
		Loader:  loader,
		Host:    host,
		Present: func(View) {},
	}
}

func (a *App) render() {
	a.Present(BuildView(a.Session))
}

// Init - старт приложения: сигнал хосту и загрузка справочников,
// корзины и баланса. Любой сбой нефатален.
func (a *App) Init(ctx context.Context) {
	a.Host.Ready()
	a.Host.Expand()

	if cities, err := a.Loader.LoadCities(ctx); err != nil {
		log.Printf("Ошибка загрузки городов: %v", err)
		a.Host.Notify("Не удалось загрузить города")
	} else {
		a.Session.Catalog.Cities = cities
	}

	if types, err := a.Loader.LoadProductTypes(ctx); err != nil {
		log.Printf("Ошибка загрузки типов: %v", err)
	} else {
		a.Session.Catalog.Types = types
	}

	a.LoadBasket(ctx)
	a.RefreshBalance(ctx)
	a.render()
}

// applyProducts - принимает ответ загрузки каталога только если он
// относится к текущему поколению выбора; устаревший ответ отбрасывается
func (a *App) applyProducts(epoch uint64, products []models.ProductJSON) bool {
	if epoch != a.Session.Epoch() {
		log.Printf("Отброшен устаревший ответ каталога (поколение %d, текущее %d)", epoch, a.Session.Epoch())
		return false
	}
	a.Session.Catalog.Products = products
	return true
}

// SelectCity - шаг воронки: город. Сбрасывает все нижние уровни и
// перезагружает каталог, ограниченный городом.
func (a *App) SelectCity(ctx context.Context, city models.CityJSON) {
	epoch := a.Session.SelectCity(city)
	a.Host.HapticImpact(ImpactLight)
	a.render()

	values := (&GridFilters{City: &city}).QueryValues(a.Session.UserID)
	products, err := a.Loader.LoadProducts(ctx, values)
	if err != nil {
		log.Printf("Ошибка загрузки каталога: %v", err)
		a.Host.Notify("Не удалось загрузить товары")
		return
	}
	if a.applyProducts(epoch, products) {
		a.render()
	}
}

// SelectProductType - шаг воронки: тип. Районы выводятся фильтрацией уже
// загруженных товаров, без запроса.
func (a *App) SelectProductType(t models.ProductTypeJSON) {
	if !a.Session.SelectProductType(t) {
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify("Для этого типа нет товаров в наличии")
		return
	}
	a.Host.HapticImpact(ImpactLight)
	a.render()
}

func (a *App) SelectDistrict(name string) {
	if !a.Session.SelectDistrict(name) {
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify("В этом районе нет товаров в наличии")
		return
	}
	a.Host.HapticImpact(ImpactLight)
	a.render()
}

func (a *App) SelectVariation(productID uint) {
	if !a.Session.SelectVariation(productID) {
		a.Host.HapticNotify(NotifyError)
		return
	}
	a.Host.HapticImpact(ImpactMedium)
	a.render()
}

// ShowProductDetails - открывает карточку товара (описание + медиа);
// карточка закрывается кнопкой "назад" хоста
func (a *App) ShowProductDetails(ctx context.Context, productID uint) {
	details, err := a.Loader.LoadProduct(ctx, productID)
	if err != nil {
		log.Printf("Ошибка загрузки карточки товара %d: %v", productID, err)
		a.Host.Notify("Товар недоступен")
		return
	}

	a.Session.Details = details
	a.Host.BackButton().Show("Назад")
	a.Host.BackButton().OnClick(a.CloseProductDetails)
	a.render()
}

func (a *App) CloseProductDetails() {
	a.Session.Details = nil
	a.Host.BackButton().Hide()
	a.render()
}

// --- Корзина ---

// AddToBasket - добавление на сервере с обязательной перечиткой
// авторитетной корзины; локально ничего не дописывается без подтверждения
func (a *App) AddToBasket(ctx context.Context, productID uint) {
	if err := a.Loader.AddToBasket(ctx, productID); err != nil {
		log.Printf("Ошибка добавления в корзину: %v", err)
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify("Не удалось добавить товар в корзину")
		return
	}

	a.Host.HapticNotify(NotifySuccess)
	a.Host.Notify("Товар добавлен в корзину")
	a.Session.Discount = nil // корзина изменилась - скидка недействительна
	a.LoadBasket(ctx)
	a.render()
}

// LoadBasket - целиком заменяет кэш корзины ответом сервера
func (a *App) LoadBasket(ctx context.Context) {
	basket, err := a.Loader.LoadBasket(ctx)
	if err != nil {
		log.Printf("Ошибка загрузки корзины: %v", err)
		return
	}
	a.Session.Basket = basket
}

// ClearBasket - серверная очистка; при успехе корзина и скидка
// сбрасываются вместе, скидка не переживает очистку
func (a *App) ClearBasket(ctx context.Context) {
	if err := a.Loader.ClearBasket(ctx); err != nil {
		log.Printf("Ошибка очистки корзины: %v", err)
		a.Host.Notify("Не удалось очистить корзину")
		return
	}

	a.Session.Basket = nil
	a.Session.Discount = nil
	a.Host.HapticNotify(NotifySuccess)
	a.render()
}

// NormalizeCode - промокод перед проверкой: обрезка пробелов и верхний
// регистр
func NormalizeCode(code string) string {
	return upper.String(strings.TrimSpace(code))
}

// ApplyDiscount - проверка промокода. Пустой код и пустая корзина не
// уходят на сервер; отказ сервера показывается его же сообщением.
func (a *App) ApplyDiscount(ctx context.Context, code string) {
	code = NormalizeCode(code)
	if code == "" {
		a.Host.Notify("Введите промокод")
		return
	}
	if len(a.Session.Basket) == 0 {
		a.Host.Notify("Корзина пуста")
		return
	}

	resp, err := a.Loader.ValidateDiscount(ctx, code, a.Session.BasketTotal())
	if err != nil {
		log.Printf("Ошибка проверки промокода: %v", err)
		a.Host.Notify("Не удалось проверить промокод")
		return
	}
	if !resp.Valid {
		message := resp.Message
		if message == "" {
			message = "Промокод недействителен"
		}
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify(message)
		return
	}

	a.Session.Discount = &Discount{
		DiscountAmount: resp.DiscountAmount,
		FinalTotal:     resp.FinalTotal,
	}
	a.Host.HapticNotify(NotifySuccess)
	a.render()
}

func (a *App) RefreshBalance(ctx context.Context) {
	balance, err := a.Loader.LoadBalance(ctx)
	if err != nil {
		log.Printf("Ошибка загрузки баланса: %v", err)
		return
	}
	a.Session.Balance = balance
}

// --- Плиточный вариант ---

// ApplyGridFilters - перезагрузка каталога по текущим фильтрам плитки
func (a *App) ApplyGridFilters(ctx context.Context) {
	epoch := a.Session.bumpEpoch()
	products, err := a.Loader.LoadProducts(ctx, a.Session.Grid.QueryValues(a.Session.UserID))
	if err != nil {
		log.Printf("Ошибка загрузки каталога: %v", err)
		a.Host.Notify("Не удалось загрузить товары")
		return
	}
	if a.applyProducts(epoch, products) {
		a.render()
	}
}

// SetGridCity - смена города плитки: район сброшен редьюсером, список
// районов для нового города перезагружается
func (a *App) SetGridCity(ctx context.Context, city *models.CityJSON) {
	a.Session.Grid.SetCity(city)
	a.loadGridDistricts(ctx)
	a.ApplyGridFilters(ctx)
}

func (a *App) loadGridDistricts(ctx context.Context) {
	if a.Session.Grid.City == nil {
		a.Session.Catalog.Districts = nil
		return
	}

	districts, err := a.Loader.LoadDistricts(ctx, a.Session.Grid.City.ID)
	if err != nil {
		log.Printf("Ошибка загрузки районов: %v", err)
		a.Session.Catalog.Districts = nil
		return
	}
	a.Session.Catalog.Districts = districts
}

func (a *App) SetGridDistrict(ctx context.Context, d *models.DistrictJSON) {
	a.Session.Grid.SetDistrict(d)
	a.ApplyGridFilters(ctx)
}

func (a *App) SetGridType(ctx context.Context, t *models.ProductTypeJSON) {
	a.Session.Grid.SetType(t)
	a.ApplyGridFilters(ctx)
}
