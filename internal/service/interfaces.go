package service

import (
	"context"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

// RewardPicker выбор награды из пула коробки.
type RewardPicker interface {
	Pick(pool []domain.Goods) (domain.Goods, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	DebitBalance(ctx context.Context, args repoargs.DebitBalance) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

type BoxRepository interface {
	CreateBox(ctx context.Context, args repoargs.CreateBox) (*domain.BlindBox, error)
	CreateGoods(ctx context.Context, args repoargs.CreateGoods) (*domain.Goods, error)
	AddReward(ctx context.Context, boxID, goodsID int64) error
	FindByID(ctx context.Context, id int64) (*domain.BlindBox, error)
	DecrementStock(ctx context.Context, boxID int64) (*domain.BlindBox, error)
	UpdateStock(ctx context.Context, args repoargs.UpdateStock) (*domain.BlindBox, error)
	UpdatePrice(ctx context.Context, args repoargs.UpdatePrice) (*domain.BlindBox, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	GetUnsent(ctx context.Context, page repoargs.Page) ([]domain.Order, int64, error)
	MarkSent(ctx context.Context, id int64) (*domain.Order, error)
	MarkReceived(ctx context.Context, id int64) (*domain.Order, error)
	UpdateDelivery(ctx context.Context, args repoargs.UpdateDelivery) (*domain.Order, error)
	ExistsForUserAndBox(ctx context.Context, userID, boxID int64) (bool, error)
	GetForAnnouncement(ctx context.Context, limit uint) ([]domain.Order, error)
	MarkAnnounced(ctx context.Context, ids []int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, args repoargs.CreateComment) (*domain.Comment, error)
	GetByBoxID(ctx context.Context, boxID int64) ([]domain.Comment, error)
}
