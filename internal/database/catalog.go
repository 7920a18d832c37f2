package db

import (
	"errors"
	"fmt"

	"tg_miniapp/models"

	"gorm.io/gorm"
)

// Уникальные города
func Get_cities(DB *gorm.DB) ([]models.City, error) {
	var cities []models.City
	err := DB.Order("id ASC").Find(&cities).Error
	return cities, err
}

// Выдает все районы для заданного города
func Get_districts(DB *gorm.DB, cityID uint) ([]models.District, error) {
	var districts []models.District
	err := DB.Where("city_id = ?", cityID).
		Order("id ASC").
		Find(&districts).
		Error
	return districts, err
}

func Get_product_types(DB *gorm.DB) ([]models.ProductType, error) {
	var types []models.ProductType
	err := DB.Order("id ASC").Find(&types).Error
	return types, err
}

// ProductFilter - необязательные фильтры каталога. Пустое поле не попадает в запрос.
type ProductFilter struct {
	City        string
	District    string
	ProductType string
}

// Каталог с фильтрами: только товары в наличии (available > reserved),
// новые первыми, не больше 100 записей
func Get_products(DB *gorm.DB, filter ProductFilter) ([]models.Product, error) {
	query := DB.Model(&models.Product{}).
		Where("available > reserved").
		Preload("Media")

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.District != "" && filter.City != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.ProductType != "" {
		query = query.Where("product_type = ?", filter.ProductType)
	}

	var products []models.Product
	err := query.Order("id DESC").Limit(100).Find(&products).Error
	return products, err
}

// Карточка товара. Возвращает gorm.ErrRecordNotFound если товара нет или он распродан.
func Get_product(DB *gorm.DB, productID uint) (*models.Product, error) {
	var product models.Product
	err := DB.Where("id = ? AND available > reserved", productID).
		Preload("Media").
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Процент скидки реселлера на тип товара; 0 если скидки нет
func Get_reseller_discount(DB *gorm.DB, userID int64, productType string) (float64, error) {
	var discount models.ResellerDiscount
	err := DB.Where("user_id = ? AND product_type = ?", userID, productType).
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("не удалось прочитать скидку реселлера: %v", err)
	}
	return discount.Percent, nil
}

// Уникальные названия городов из каталога товаров (для бота)
func Get_city_names(DB *gorm.DB) ([]string, error) {
	var res []string
	err := DB.Model(&models.Product{}).
		Distinct("city").
		Where("available > reserved").
		Order("city ASC").
		Pluck("city", &res).
		Error
	return res, err
}

// Выдает все районы, где есть товары заданного города и типа
func Get_district_names(DB *gorm.DB, city, productType string) ([]string, error) {
	var res []string
	err := DB.Model(&models.Product{}).
		Distinct("district").
		Where("city = ? AND product_type = ? AND available > reserved", city, productType).
		Order("district ASC").
		Pluck("district", &res).
		Error
	return res, err
}

// Выдает все типы товаров, доступные в заданном городе
func Get_type_names(DB *gorm.DB, city string) ([]string, error) {
	var res []string
	err := DB.Model(&models.Product{}).
		Distinct("product_type").
		Where("city = ? AND available > reserved", city).
		Order("product_type ASC").
		Pluck("product_type", &res).
		Error
	return res, err
}

// Вариации: товары в наличии для города/типа/района
func Get_variations(DB *gorm.DB, city, productType, district string) ([]models.Product, error) {
	var products []models.Product
	err := DB.Where("city = ? AND product_type = ? AND district = ? AND available > reserved",
		city, productType, district).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("не удалось найти товар: %v", err)
	}
	return products, nil
}
