package models

import (
	"time"

	"gorm.io/gorm"
)

// City - город, в котором доступны товары
type City struct {
	gorm.Model
	Name string `gorm:"not null;size:100;uniqueIndex"`

	Districts []District `gorm:"foreignKey:CityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// District - район внутри города
type District struct {
	gorm.Model
	CityID uint   `gorm:"not null;index"`
	Name   string `gorm:"not null;size:100;index"`

	City City `gorm:"foreignKey:CityID"`
}

// ProductType - тип товара с эмодзи для кнопок
type ProductType struct {
	gorm.Model
	Name  string `gorm:"not null;size:100;uniqueIndex"`
	Emoji string `gorm:"size:16"`
}

// Product - конкретный товар (вариация), привязанный к городу/району/типу.
// Остаток на витрине = Available - Reserved.
type Product struct {
	gorm.Model
	City        string  `gorm:"not null;size:100;index:idx_city_type_district"`
	District    string  `gorm:"not null;size:100;index:idx_city_type_district"`
	ProductType string  `gorm:"not null;size:100;index:idx_city_type_district;column:product_type"`
	Size        string  `gorm:"not null;size:50"`
	Price       float64 `gorm:"not null;check:price > 0"`
	Available   int     `gorm:"not null;default:0"`
	Reserved    int     `gorm:"not null;default:0"`
	Description string  `gorm:"type:text;column:original_text"`

	Media []ProductMedia `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// ProductMedia - медиафайлы товара (фото/видео)
type ProductMedia struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index"`
	MediaType string `gorm:"not null;size:20"`
	FileID    string `gorm:"not null;size:255"`
}

// WebAppUser - пользователь мини-приложения (Telegram ID + баланс)
type WebAppUser struct {
	gorm.Model
	UserID  int64   `gorm:"not null;uniqueIndex"`
	Balance float64 `gorm:"not null;default:0"`

	Basket []BasketItem `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// BasketItem - позиция корзины. Резерв истекает через database.BasketTTL
type BasketItem struct {
	gorm.Model
	UserID     int64     `gorm:"not null;index"`
	ProductID  uint      `gorm:"not null;index"`
	ReservedAt time.Time `gorm:"not null"`

	Product Product `gorm:"foreignKey:ProductID"`
}

// DiscountCode - промокод. UsedCount увеличивается атомарно при валидации
type DiscountCode struct {
	gorm.Model
	Code      string  `gorm:"not null;uniqueIndex;size:50"`
	Percent   float64 `gorm:"not null;check:percent > 0"`
	MinTotal  float64 `gorm:"not null;default:0"`
	MaxUses   int     `gorm:"not null;default:0"` // 0 - без ограничения
	UsedCount int     `gorm:"not null;default:0"`
	ExpiresAt *time.Time
}

// ResellerDiscount - персональная скидка реселлера на тип товара
type ResellerDiscount struct {
	gorm.Model
	UserID      int64   `gorm:"not null;index:idx_reseller_user_type"`
	ProductType string  `gorm:"not null;size:100;index:idx_reseller_user_type;column:product_type"`
	Percent     float64 `gorm:"not null;check:percent > 0"`
}

type Order struct {
	gorm.Model
	UserID     int64   `gorm:"not null;index"`
	ProductID  uint    `gorm:"not null"`
	Product    Product `gorm:"foreignKey:ProductID"`
	Reference  string  `gorm:"not null;uniqueIndex;size:32"`
	Status     string  `gorm:"type:varchar(20);not null"`
	PaymentURL string  `gorm:"size:255"`
}
