package repoargs

import "github.com/shopspring/decimal"

type CreateBox struct {
	Name      string
	ImagePath string
	Price     decimal.Decimal
	Remaining int64
}

type CreateGoods struct {
	Name      string
	ImagePath string
}

// UpdateStock административная установка остатка коробки. Последняя запись побеждает.
type UpdateStock struct {
	BoxID     int64
	Remaining int64
}

// UpdatePrice административная установка цены коробки.
type UpdatePrice struct {
	BoxID int64
	Price decimal.Decimal
}
