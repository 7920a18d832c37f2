package db

import (
	"errors"
	"fmt"
	"log"

	"tg_miniapp/models"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

// (ПОЛЬЗОВАТЕЛЬ) Оформление заказа: резервирует единицу товара и создает
// запись заказа. paymentBase - базовый URL платежного провайдера; если он
// пуст, заказ остается без платежной ссылки и дальше ведется ботом.
func MakeOrder(DB *gorm.DB, userID int64, productID uint, paymentBase string) (*models.Order, error) {
	var order models.Order

	err := DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND available > reserved", productID).
			UpdateColumn("reserved", gorm.Expr("reserved + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("товар распродан")
		}

		order = models.Order{
			UserID:    userID,
			ProductID: productID,
			Reference: xid.New().String(),
			Status:    "created",
		}
		if paymentBase != "" {
			order.PaymentURL = paymentBase + "/pay/" + order.Reference
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		log.Printf("Ошибка при создании заказа: %v", err)
		return nil, fmt.Errorf("ошибка при создании заказа на товар %d", productID)
	}
	return &order, nil
}
