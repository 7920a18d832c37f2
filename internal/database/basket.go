package db

import (
	"errors"
	"fmt"
	"time"

	"tg_miniapp/models"

	"gorm.io/gorm"
)

// BasketTTL - время жизни резерва позиции корзины
const BasketTTL = 15 * time.Minute

// Корзина пользователя без просроченных позиций. Просроченные позиции
// попутно снимаются с резерва и удаляются.
func Get_basket(DB *gorm.DB, userID int64) ([]models.BasketItem, error) {
	cutoff := time.Now().Add(-BasketTTL)

	err := DB.Transaction(func(tx *gorm.DB) error {
		var expired []models.BasketItem
		if err := tx.Where("user_id = ? AND reserved_at < ?", userID, cutoff).
			Find(&expired).Error; err != nil {
			return err
		}
		for _, item := range expired {
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND reserved > 0", item.ProductID).
				UpdateColumn("reserved", gorm.Expr("reserved - 1")).Error; err != nil {
				return err
			}
		}
		if len(expired) > 0 {
			if err := tx.Where("user_id = ? AND reserved_at < ?", userID, cutoff).
				Delete(&models.BasketItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось очистить просроченные позиции: %v", err)
	}

	var items []models.BasketItem
	err = DB.Where("user_id = ?", userID).
		Preload("Product").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Добавление товара в корзину с резервированием единицы остатка
func AddToBasket(DB *gorm.DB, userID int64, productID uint) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND available > reserved", productID).
			UpdateColumn("reserved", gorm.Expr("reserved + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("товар распродан")
		}

		item := models.BasketItem{
			UserID:     userID,
			ProductID:  productID,
			ReservedAt: time.Now(),
		}
		return tx.Create(&item).Error
	})
}

// Полная очистка корзины со снятием резервов
func ClearBasket(DB *gorm.DB, userID int64) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var items []models.BasketItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Model(&models.Product{}).
				Where("id = ? AND reserved > 0", item.ProductID).
				UpdateColumn("reserved", gorm.Expr("reserved - 1")).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.BasketItem{}).Error
	})
}

// Баланс пользователя; 0 если пользователь еще не заходил
func Get_balance(DB *gorm.DB, userID int64) (float64, error) {
	var user models.WebAppUser
	err := DB.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return user.Balance, nil
}
