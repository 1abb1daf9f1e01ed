package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

// OrderPlaced событие о новом заказе, публикуется в очередь после фиксации транзакции покупки.
type OrderPlaced struct {
	OrderID   int64           `json:"orderId"`
	UserID    int64           `json:"userId"`
	BoxID     int64           `json:"boxId"`
	GoodsID   int64           `json:"goodsId"`
	GoodsName string          `json:"goodsName"`
	Money     decimal.Decimal `json:"money"`
	CreatedAt time.Time       `json:"createdAt"`
}

func NewOrderPlaced(order *domain.Order) OrderPlaced {
	return OrderPlaced{
		OrderID:   order.ID,
		UserID:    order.UserID,
		BoxID:     order.BoxID,
		GoodsID:   order.GoodsID,
		GoodsName: order.GoodsName,
		Money:     order.Money,
		CreatedAt: order.CreatedAt,
	}
}
