package miniapp

import (
	"net/url"
	"strconv"

	"tg_miniapp/models"
)

// AllTypes - псевдотип "Все": эквивалентен снятому фильтру типа
const AllTypes = "All"

// GridFilters - независимые фильтры плиточного варианта. В отличие от
// воронки, смена города сбрасывает только район (список районов привязан
// к городу); тип - глобальный и переживает смену города.
type GridFilters struct {
	City     *models.CityJSON
	District *models.DistrictJSON
	Type     *models.ProductTypeJSON
}

// SetCity - смена города: район сбрасывается, тип остается
func (g *GridFilters) SetCity(city *models.CityJSON) {
	g.City = city
	g.District = nil
}

func (g *GridFilters) SetDistrict(d *models.DistrictJSON) {
	g.District = d
}

// SetType - смена типа; "All" или nil снимает фильтр
func (g *GridFilters) SetType(t *models.ProductTypeJSON) {
	if t == nil || t.Name == AllTypes {
		g.Type = nil
		return
	}
	g.Type = t
}

// IsTypeActive - подсветка чипа типа. Сравнение строго по имени, не по
// вхождению подстроки: тип "Pod" не должен подсвечиваться при выбранном
// "iPod".
func (g *GridFilters) IsTypeActive(name string) bool {
	if g.Type == nil {
		return name == AllTypes
	}
	return g.Type.Name == name
}

// QueryValues - параметры общего запроса каталога. Незаданные фильтры
// опускаются, пустые значения никогда не отправляются.
func (g *GridFilters) QueryValues(userID int64) url.Values {
	values := url.Values{}
	if g.City != nil {
		values.Set("city", g.City.Name)
	}
	if g.District != nil {
		values.Set("district", g.District.Name)
	}
	if g.Type != nil {
		values.Set("type", g.Type.Name)
	}
	if userID != 0 {
		values.Set("user_id", strconv.FormatInt(userID, 10))
	}
	return values
}
