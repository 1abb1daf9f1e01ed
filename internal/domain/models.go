package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Username          string
	EncryptedPassword string
	Balance           decimal.Decimal
	IsVIP             bool
	IsAdmin           bool
	IsSuperAdmin      bool
}

type Goods struct {
	ID        int64
	CreatedAt time.Time
	Name      string
	ImagePath string
}

// BlindBox коробка с конечным остатком и пулом возможных наград. Rewards заполняется только при чтении
// коробки целиком (FindByID).
type BlindBox struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	ImagePath string
	Price     decimal.Decimal
	Remaining int64
	Rewards   []Goods
}

// Order хранит денормализованные GoodsName и Money, поэтому последующие изменения цены или пула наград
// коробки на исторические заказы не влияют.
type Order struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
	BoxID       int64
	GoodsID     int64
	GoodsName   string
	Money       decimal.Decimal
	IsSent      bool
	IsReceived  bool
	IsDone      bool
	Address     string
	Contact     string
	AnnouncedAt *time.Time
}

type Comment struct {
	ID         int64
	CreatedAt  time.Time
	UserID     int64
	BoxID      int64
	Content    *string
	ImagePaths []string
}
