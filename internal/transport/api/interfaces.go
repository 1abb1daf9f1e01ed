package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type OrderServicer interface {
	Place(ctx context.Context, buyerName string, boxID int64) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
}

type LifecycleServicer interface {
	MarkSent(ctx context.Context, orderID int64) (*domain.Order, error)
	MarkReceived(ctx context.Context, orderID int64) (*domain.Order, error)
	UpdateDelivery(ctx context.Context, orderID int64, address, contact string) (*domain.Order, error)
	ListUnsent(ctx context.Context, page, pageSize uint) (*service.UnsentOrders, error)
}

type CommentServicer interface {
	Create(ctx context.Context, args service.CreateCommentArgs) (*domain.Comment, error)
	ListByBox(ctx context.Context, boxID int64) ([]domain.Comment, error)
}

type BoxServicer interface {
	GetByID(ctx context.Context, id int64) (*domain.BlindBox, error)
	UpdateStock(ctx context.Context, boxID, remaining int64) (*domain.BlindBox, error)
	UpdatePrice(ctx context.Context, boxID int64, price decimal.Decimal) (*domain.BlindBox, error)
}
