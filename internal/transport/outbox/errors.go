package outbox

import "errors"

var (
	ErrNoOrders = errors.New("no orders")
)
