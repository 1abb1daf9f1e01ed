package repoargs

import "github.com/shopspring/decimal"

type CreateUser struct {
	Username     string
	Password     string
	Balance      decimal.Decimal
	IsVIP        bool
	IsAdmin      bool
	IsSuperAdmin bool
}

// DebitBalance списание с баланса. Репозиторий применяет его только если balance >= Amount, иначе
// возвращает domain.ErrInsufficientBalance.
type DebitBalance struct {
	UserID int64
	Amount decimal.Decimal
}
