package miniapp

import (
	"reflect"
	"strings"
	"testing"

	"tg_miniapp/models"
)

func TestRenderIdempotent(t *testing.T) {
	s := funnelSession()
	s.SelectProductType(models.ProductTypeJSON{Name: "Widget", Emoji: "📦"})
	s.SelectDistrict("Mitte")
	s.Basket = []models.ProductJSON{{ID: 1, Price: 9.99}}

	first := BuildView(s)
	second := BuildView(s)
	if !reflect.DeepEqual(first, second) {
		t.Error("view models differ for unchanged state")
	}

	html1 := RenderHTML(first)
	html2 := RenderHTML(second)
	if html1 != html2 {
		t.Error("rendered markup differs for unchanged state")
	}
}

func TestSectionVisibilityFollowsFunnel(t *testing.T) {
	s := NewSession(1)
	view := BuildView(s)
	if view.Cities.Visible {
		t.Error("cities section visible with empty catalog")
	}
	if view.Types.Visible || view.Districts.Visible || view.Variations.Visible {
		t.Error("downstream sections visible with no selections")
	}

	s = funnelSession()
	view = BuildView(s)
	if !view.Cities.Visible {
		t.Error("cities section hidden with loaded catalog")
	}
	if !view.Types.Visible {
		t.Error("types section hidden after city selection")
	}
	if view.Districts.Visible {
		t.Error("districts section visible before type selection")
	}

	s.SelectProductType(models.ProductTypeJSON{Name: "Widget"})
	view = BuildView(s)
	if !view.Districts.Visible {
		t.Error("districts section hidden after type selection")
	}
	if view.Variations.Visible {
		t.Error("variations section visible before district selection")
	}

	s.SelectDistrict("Mitte")
	view = BuildView(s)
	if !view.Variations.Visible {
		t.Error("variations section hidden after district selection")
	}
	if view.OrderVisible {
		t.Error("order visible before variation selection")
	}
}

func TestDisplayTotal(t *testing.T) {
	s := NewSession(1)
	s.Basket = []models.ProductJSON{{Price: 10}, {Price: 15}}

	if got := s.DisplayTotal(); got != 25.00 {
		t.Errorf("total without discount = %.2f, want 25.00", got)
	}

	s.Discount = &Discount{DiscountAmount: 2.50, FinalTotal: 22.50}
	if got := s.DisplayTotal(); got != 22.50 {
		t.Errorf("total with discount = %.2f, want 22.50", got)
	}

	view := BuildView(s)
	if !view.DiscountRowVisible {
		t.Error("discount row hidden with active discount")
	}
	if view.Total != 22.50 {
		t.Errorf("view total = %.2f, want 22.50", view.Total)
	}
}

func TestRenderHiddenSections(t *testing.T) {
	s := NewSession(1)
	markup := RenderHTML(BuildView(s))

	for _, id := range []string{"cities", "types", "districts", "variations", "detail"} {
		if !strings.Contains(markup, `<div id="`+id+`" hidden>`) {
			t.Errorf("expected hidden placeholder for %s section", id)
		}
	}
	if strings.Contains(markup, `id="order"`) {
		t.Error("order button rendered without staged variation")
	}
}
