package miniapp

import (
	"fmt"
	"html"
	"strings"
)

// Отрисовка разделена на два шага: BuildView - чистое преобразование
// состояния во view-model, RenderHTML - детерминированная разметка по
// view-model. Каждый вызов заменяет содержимое раздела целиком; при
// неизменном состоянии результат побайтово совпадает.

// Item - одна кнопка/карточка раздела
type Item struct {
	Key    string
	Label  string
	Active bool
}

// Section - раздел интерфейса. Виден только когда заполнены все
// вышестоящие уровни воронки и собственный список непуст.
type Section struct {
	Visible bool
	Title   string
	Items   []Item
}

// View - полная view-model одного кадра
type View struct {
	Cities     Section
	Types      Section
	Districts  Section
	Variations Section

	OrderVisible bool
	OrderLabel   string
	// StagedProductID - вариация, подготовленная к отправке заказа
	StagedProductID uint

	// Карточка товара поверх каталога
	DetailVisible bool
	DetailTitle   string
	DetailText    string
	DetailMedia   []string

	BasketBadge        int
	DiscountRowVisible bool
	DiscountAmount     float64
	Total              float64
	Balance            float64
}

func BuildView(s *Session) View {
	view := View{
		BasketBadge: s.BadgeCount(),
		Total:       s.DisplayTotal(),
		Balance:     s.Balance,
	}

	if s.Discount != nil {
		view.DiscountRowVisible = true
		view.DiscountAmount = s.Discount.DiscountAmount
	}

	view.Cities = Section{
		Visible: len(s.Catalog.Cities) > 0,
		Title:   "Город",
	}
	for _, c := range s.Catalog.Cities {
		view.Cities.Items = append(view.Cities.Items, Item{
			Key:    fmt.Sprintf("city:%d", c.ID),
			Label:  c.Name,
			Active: s.City != nil && s.City.ID == c.ID,
		})
	}

	view.Types = Section{
		Visible: s.City != nil && len(s.Catalog.Types) > 0,
		Title:   "Тип товара",
	}
	for _, t := range s.Catalog.Types {
		view.Types.Items = append(view.Types.Items, Item{
			Key:    "type:" + t.Name,
			Label:  strings.TrimSpace(t.Emoji + " " + t.Name),
			Active: s.ProductType != nil && s.ProductType.Name == t.Name,
		})
	}

	districts := s.DeriveDistricts()
	view.Districts = Section{
		Visible: s.City != nil && s.ProductType != nil && len(districts) > 0,
		Title:   "Район",
	}
	for _, name := range districts {
		view.Districts.Items = append(view.Districts.Items, Item{
			Key:    "district:" + name,
			Label:  name,
			Active: s.District == name,
		})
	}

	variations := s.DeriveVariations()
	view.Variations = Section{
		Visible: s.District != "" && len(variations) > 0,
		Title:   "Вариант",
	}
	for _, p := range variations {
		view.Variations.Items = append(view.Variations.Items, Item{
			Key:    fmt.Sprintf("variation:%d", p.ID),
			Label:  fmt.Sprintf("%s %s %s — %.2f", p.Emoji, p.Type, p.Size, p.Price),
			Active: s.Variation != nil && s.Variation.ID == p.ID,
		})
	}

	if s.Variation != nil {
		view.OrderVisible = true
		view.OrderLabel = fmt.Sprintf("Заказать за %.2f", s.Variation.Price)
		view.StagedProductID = s.Variation.ID
	}

	if d := s.Details; d != nil {
		view.DetailVisible = true
		view.DetailTitle = strings.TrimSpace(fmt.Sprintf("%s %s %s — %.2f", d.Emoji, d.Type, d.Size, d.Price))
		view.DetailText = d.Description
		for _, m := range d.Media {
			view.DetailMedia = append(view.DetailMedia, fmt.Sprintf("/media/%d/%s", d.ID, m.FileID))
		}
	}
	return view
}

func renderSection(b *strings.Builder, id string, section Section) {
	if !section.Visible {
		fmt.Fprintf(b, `<div id=%q hidden></div>`, id)
		return
	}
	fmt.Fprintf(b, `<div id=%q><h2>%s</h2>`, id, html.EscapeString(section.Title))
	for _, item := range section.Items {
		class := "item"
		if item.Active {
			class = "item active"
		}
		fmt.Fprintf(b, `<button class=%q data-key=%q>%s</button>`,
			class, item.Key, html.EscapeString(item.Label))
	}
	b.WriteString(`</div>`)
}

// RenderHTML - разметка кадра. Чистая функция view-model: повторный вызов
// с тем же значением дает идентичную строку.
func RenderHTML(view View) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<span id="basket-badge">%d</span>`, view.BasketBadge)

	renderSection(&b, "cities", view.Cities)
	renderSection(&b, "types", view.Types)
	renderSection(&b, "districts", view.Districts)
	renderSection(&b, "variations", view.Variations)

	if view.DiscountRowVisible {
		fmt.Fprintf(&b, `<div id="discount-row">-%.2f</div>`, view.DiscountAmount)
	} else {
		b.WriteString(`<div id="discount-row" hidden></div>`)
	}
	fmt.Fprintf(&b, `<div id="total">%.2f</div>`, view.Total)

	if view.OrderVisible {
		fmt.Fprintf(&b, `<button id="order" data-product="%d">%s</button>`,
			view.StagedProductID, html.EscapeString(view.OrderLabel))
	}

	if view.DetailVisible {
		fmt.Fprintf(&b, `<div id="detail"><h2>%s</h2><p>%s</p>`,
			html.EscapeString(view.DetailTitle), html.EscapeString(view.DetailText))
		for _, src := range view.DetailMedia {
			fmt.Fprintf(&b, `<img src=%q>`, src)
		}
		b.WriteString(`</div>`)
	} else {
		b.WriteString(`<div id="detail" hidden></div>`)
	}
	return b.String()
}
