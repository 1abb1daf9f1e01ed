package repoargs

import "github.com/shopspring/decimal"

type CreateOrder struct {
	UserID    int64
	BoxID     int64
	GoodsID   int64
	GoodsName string
	Money     decimal.Decimal
}

type UpdateDelivery struct {
	OrderID int64
	Address string
	Contact string
}

type CreateComment struct {
	UserID     int64
	BoxID      int64
	Content    *string
	ImagePaths []string
}
