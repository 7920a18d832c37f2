package miniapp

import (
	"tg_miniapp/models"

	"github.com/google/uuid"
)

// SelectedCity - выбранный город (id + имя из каталога)
type SelectedCity struct {
	ID   uint
	Name string
}

// SelectedType - выбранный тип товара (имя + эмодзи)
type SelectedType struct {
	Name  string
	Emoji string
}

// Discount - примененный промокод
type Discount struct {
	DiscountAmount float64
	FinalTotal     float64
}

// Catalog - справочники, загруженные с сервера. Каждый список заменяется
// целиком при очередной загрузке, без слияния. Districts - районы города
// плиточного фильтра (воронка выводит районы из товаров сама).
type Catalog struct {
	Cities    []models.CityJSON
	Districts []models.DistrictJSON
	Types     []models.ProductTypeJSON
	Products  []models.ProductJSON
}

// Session - все состояние одного запуска приложения. Создается один раз
// и передается по ссылке; глобальных переменных нет. Записи каталога -
// неизменяемые снимки: клиент их не правит, только заменяет списки.
type Session struct {
	ID     string
	UserID int64

	// Воронка: город → тип → район → вариация. Установка верхнего уровня
	// сбрасывает все нижние.
	City        *SelectedCity
	ProductType *SelectedType
	District    string
	Variation   *models.ProductJSON

	// Независимые фильтры плиточного варианта
	Grid GridFilters

	Catalog  Catalog
	Basket   []models.ProductJSON
	Discount *Discount
	Balance  float64

	// Details - открытая карточка товара; nil - карточка закрыта
	Details *models.ProductDetailsJSON

	// Номер поколения загрузки каталога. Ответ, выпущенный для старого
	// поколения, отбрасывается по прибытии.
	epoch uint64
}

func NewSession(userID int64) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
	}
}

func (s *Session) Epoch() uint64 { return s.epoch }

func (s *Session) bumpEpoch() uint64 {
	s.epoch++
	return s.epoch
}

// BasketTotal - сумма цен позиций корзины
func (s *Session) BasketTotal() float64 {
	var total float64
	for _, p := range s.Basket {
		total += p.Price
	}
	return total
}

// DisplayTotal - итог к оплате: final_total активного промокода, иначе
// сумма корзины
func (s *Session) DisplayTotal() float64 {
	if s.Discount != nil {
		return s.Discount.FinalTotal
	}
	return s.BasketTotal()
}

// BadgeCount - счетчик на значке корзины
func (s *Session) BadgeCount() int { return len(s.Basket) }
