package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")
)

// Ошибки предусловий. Это ожидаемые бизнес-исходы: возвращаются вызывающему как есть и не оставляют
// частично примененных изменений.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBoxNotFound         = errors.New("blind box not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOutOfStock          = errors.New("blind box is out of stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrEmptyRewardPool     = errors.New("blind box reward pool is empty")
	ErrInvalidTransition   = errors.New("invalid order state transition")
	ErrInvalidInput        = errors.New("invalid input")
	ErrCommentForbidden    = errors.New("user has no order for this blind box")
)

// ErrSystemBusy ошибка конкуренции: блокировка занята либо не получена за отведенное время.
// Клиент может повторить запрос с задержкой, сама система повторов не делает.
var ErrSystemBusy = errors.New("system busy, retry later")
