package domain

import "github.com/shopspring/decimal"

// vipDiscount множитель цены для VIP покупателей (скидка 10%).
var vipDiscount = decimal.RequireFromString("0.9")

// EffectivePrice возвращает цену, которую фактически спишут с покупателя: базовая цена коробки, для VIP
// умноженная на 0.9, округленная до 2 знаков (половина от нуля).
func EffectivePrice(base decimal.Decimal, isVIP bool) decimal.Decimal {
	if !isVIP {
		return base.Round(2)
	}
	return base.Mul(vipDiscount).Round(2)
}

// OrderState вычисляемое состояние заказа в жизненном цикле Created -> Sent -> Done.
type OrderState string

const (
	OrderStateCreated OrderState = "CREATED"
	OrderStateSent    OrderState = "SENT"
	OrderStateDone    OrderState = "DONE"
)

func (o *Order) State() OrderState {
	switch {
	case o.IsDone:
		return OrderStateDone
	case o.IsSent:
		return OrderStateSent
	default:
		return OrderStateCreated
	}
}
