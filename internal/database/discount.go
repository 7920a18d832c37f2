package db

import (
	"errors"
	"fmt"
	"math"
	"time"

	"tg_miniapp/models"

	"gorm.io/gorm"
)

// DiscountResult - итог успешной валидации промокода
type DiscountResult struct {
	DiscountAmount float64
	FinalTotal     float64
}

// ValidateDiscountAtomic - проверяет промокод и атомарно списывает использование.
// Возвращает (false, причина, nil, nil) для невалидного кода; err только при
// ошибке базы. Код должен быть уже нормализован (trim + upper).
func ValidateDiscountAtomic(DB *gorm.DB, code string, total float64) (bool, string, *DiscountResult, error) {
	var result *DiscountResult
	var reason string

	err := DB.Transaction(func(tx *gorm.DB) error {
		var discount models.DiscountCode
		if err := tx.Where("code = ?", code).First(&discount).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reason = "Промокод не найден"
				return nil
			}
			return err
		}

		if discount.ExpiresAt != nil && discount.ExpiresAt.Before(time.Now()) {
			reason = "Срок действия промокода истек"
			return nil
		}
		if total < discount.MinTotal {
			reason = fmt.Sprintf("Минимальная сумма заказа для промокода: %.2f", discount.MinTotal)
			return nil
		}

		if discount.MaxUses > 0 {
			res := tx.Model(&models.DiscountCode{}).
				Where("id = ? AND used_count < max_uses", discount.ID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				reason = "Промокод больше не действует"
				return nil
			}
		} else {
			if err := tx.Model(&models.DiscountCode{}).
				Where("id = ?", discount.ID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}

		amount := round2(total * discount.Percent / 100)
		result = &DiscountResult{
			DiscountAmount: amount,
			FinalTotal:     round2(total - amount),
		}
		return nil
	})
	if err != nil {
		return false, "", nil, err
	}
	if result == nil {
		return false, reason, nil, nil
	}
	return true, "", result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
