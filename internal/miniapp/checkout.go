package miniapp

import (
	"context"
	"log"
)

// Терминальный шаг воронки: вариация выбрана → подтверждение → отправка
// заказа → либо внешняя платежная ссылка, либо продолжение в боте. Сервер -
// единственный владелец резерва и платежной ссылки. Отказ возвращает
// приложение в состояние до отправки, автоповтора нет.

// ConfirmOrder - показывает подтверждение на главной кнопке хоста
func (a *App) ConfirmOrder(ctx context.Context) {
	if a.Session.Variation == nil {
		return
	}

	button := a.Host.MainButton()
	button.Show(BuildView(a.Session).OrderLabel)
	button.OnClick(func() { a.SubmitOrder(ctx) })
}

// SubmitOrder - отправка заказа {product_id, user_id}
func (a *App) SubmitOrder(ctx context.Context) {
	variation := a.Session.Variation
	if variation == nil {
		return
	}

	resp, err := a.Loader.PlaceOrder(ctx, variation.ID, a.Session.UserID)
	if err != nil {
		log.Printf("Ошибка отправки заказа: %v", err)
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify("Не удалось оформить заказ")
		return
	}
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = "Не удалось оформить заказ"
		}
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify(message)
		return
	}

	a.Host.HapticNotify(NotifySuccess)
	if resp.PaymentURL != "" {
		a.Host.OpenLink(resp.PaymentURL)
		return
	}
	a.Host.Notify("Заказ принят, продолжите оформление в боте")
}

// PaymentResult - итог инициации оплаты корзины
type PaymentResult struct {
	Success  bool
	Redirect string
	Message  string
}

// PaymentMethod - способ оплаты корзины в плиточном варианте. Точка
// расширения: конкретные проводки выполняет внешний платежный
// провайдер.
type PaymentMethod interface {
	Name() string
	Initiate(ctx context.Context, basketTotal float64) (PaymentResult, error)
}

// BalancePayment - оплата с внутреннего баланса (проводка на стороне
// провайдера, здесь только заглушка-уведомление)
type BalancePayment struct{}

func (BalancePayment) Name() string { return "balance" }

func (BalancePayment) Initiate(ctx context.Context, basketTotal float64) (PaymentResult, error) {
	return PaymentResult{Message: "Оплата с баланса скоро будет доступна"}, nil
}

// CryptoPayment - оплата через внешний криптопровайдер
type CryptoPayment struct{}

func (CryptoPayment) Name() string { return "crypto" }

func (CryptoPayment) Initiate(ctx context.Context, basketTotal float64) (PaymentResult, error) {
	return PaymentResult{Message: "Криптооплата скоро будет доступна"}, nil
}

// CheckoutBasket - оплата корзины выбранным способом
func (a *App) CheckoutBasket(ctx context.Context, method PaymentMethod) {
	if len(a.Session.Basket) == 0 {
		a.Host.Notify("Корзина пуста")
		return
	}

	result, err := method.Initiate(ctx, a.Session.DisplayTotal())
	if err != nil {
		log.Printf("Ошибка оплаты (%s): %v", method.Name(), err)
		a.Host.HapticNotify(NotifyError)
		a.Host.Notify("Не удалось начать оплату")
		return
	}

	if result.Redirect != "" {
		a.Host.OpenLink(result.Redirect)
		return
	}
	if result.Message != "" {
		a.Host.Notify(result.Message)
	}
}
