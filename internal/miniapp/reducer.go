package miniapp

import "tg_miniapp/models"

// Редьюсер последовательного варианта: город → тип → район → вариация.
// Установка уровня сбрасывает все, что ниже него; производные списки
// считаются чистой фильтрацией уже загруженных товаров, без новых
// запросов.

// SelectCity - выбор города. Сбрасывает тип, район, вариацию и весь
// нижестоящий кэш товаров; возвращает новое поколение загрузки, с которым
// вызывающий обязан перезагрузить каталог.
func (s *Session) SelectCity(city models.CityJSON) uint64 {
	s.City = &SelectedCity{ID: city.ID, Name: city.Name}
	s.ProductType = nil
	s.District = ""
	s.Variation = nil
	s.Catalog.Products = nil
	return s.bumpEpoch()
}

// SelectProductType - выбор типа. false - если для типа нет ни одного
// района с товаром в наличии; состояние в этом случае не меняется.
func (s *Session) SelectProductType(t models.ProductTypeJSON) bool {
	if s.City == nil {
		return false
	}

	prev := s.ProductType
	s.ProductType = &SelectedType{Name: t.Name, Emoji: t.Emoji}
	if len(s.DeriveDistricts()) == 0 {
		s.ProductType = prev
		return false
	}
	s.District = ""
	s.Variation = nil
	return true
}

// SelectDistrict - выбор района. false - если в районе нет вариаций.
func (s *Session) SelectDistrict(name string) bool {
	if s.City == nil || s.ProductType == nil {
		return false
	}

	prev := s.District
	s.District = name
	if len(s.DeriveVariations()) == 0 {
		s.District = prev
		return false
	}
	s.Variation = nil
	return true
}

// SelectVariation - терминальный шаг: фиксирует товар и открывает заказ
func (s *Session) SelectVariation(productID uint) bool {
	for i := range s.Catalog.Products {
		p := &s.Catalog.Products[i]
		if p.ID == productID && s.matchesFunnel(*p) {
			s.Variation = p
			return true
		}
	}
	return false
}

func (s *Session) matchesFunnel(p models.ProductJSON) bool {
	if s.City == nil || s.ProductType == nil {
		return false
	}
	return p.City == s.City.Name &&
		p.Type == s.ProductType.Name &&
		p.District == s.District &&
		p.InStock > 0
}

// DeriveDistricts - уникальные районы среди товаров выбранного города и
// типа с остатком. Порядок - первое вхождение в исходном списке.
func (s *Session) DeriveDistricts() []string {
	if s.City == nil || s.ProductType == nil {
		return nil
	}

	seen := make(map[string]bool)
	var districts []string
	for _, p := range s.Catalog.Products {
		if p.City != s.City.Name || p.Type != s.ProductType.Name || p.InStock <= 0 {
			continue
		}
		if !seen[p.District] {
			seen[p.District] = true
			districts = append(districts, p.District)
		}
	}
	return districts
}

// DeriveVariations - товары с остатком для города/типа/района, в порядке
// исходной загрузки. Каждый товар - самостоятельная вариация (размер/цена).
func (s *Session) DeriveVariations() []models.ProductJSON {
	if s.District == "" {
		return nil
	}

	var variations []models.ProductJSON
	for _, p := range s.Catalog.Products {
		if s.matchesFunnel(p) {
			variations = append(variations, p)
		}
	}
	return variations
}
