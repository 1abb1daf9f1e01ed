package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/guard"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

// OrderService движок покупки коробок и чтение заказов.
type OrderService struct {
	uow       uow.UOW
	guard     guard.Guard
	picker    RewardPicker
	lockScope guard.Scope
	userRepo  UserRepository
	boxRepo   BoxRepository
	orderRepo OrderRepository
	logger    *logrus.Entry
}

type OrderServiceArgs struct {
	UOW       uow.UOW
	Guard     guard.Guard
	Picker    RewardPicker
	LockScope guard.Scope
	Logger    *logrus.Logger
}

func NewOrderService(args OrderServiceArgs) (*OrderService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](args.UOW, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	boxRepo, err := uow.GetRepositoryAs[BoxRepository](args.UOW, uow.RepositoryName(repoargs.BoxRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](args.UOW, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	scope := args.LockScope
	if scope == "" {
		scope = guard.ScopeBox
	}
	return &OrderService{
		uow:       args.UOW,
		guard:     args.Guard,
		picker:    args.Picker,
		lockScope: scope,
		userRepo:  userRepo,
		boxRepo:   boxRepo,
		orderRepo: orderRepo,
		logger:    args.Logger.WithField("component", "service").WithField("module", "order"),
	}, nil
}

// Place покупает коробку boxID для пользователя buyerName.
//
// Алгоритм работы:
//  1. Быстрая проверка предусловий без блокировки (пользователь, коробка, остаток, баланс, пул наград).
//  2. Захват блокировки коробки (или общей, в зависимости от lockScope).
//  3. В одной транзакции: повторное чтение коробки и пользователя, повторная проверка предусловий,
//     выбор награды, создание заказа, списание остатка и баланса.
//  4. Освобождение блокировки после завершения транзакции.
//
// После входа в критическую секцию отмена ctx не прерывает покупку. Возвращает созданный заказ или одну из
// ошибок domain.ErrUserNotFound, domain.ErrBoxNotFound, domain.ErrOutOfStock, domain.ErrInsufficientBalance,
// domain.ErrEmptyRewardPool, domain.ErrSystemBusy. При ошибке никаких изменений не сохраняется.
func (o *OrderService) Place(ctx context.Context, buyerName string, boxID int64) (*domain.Order, error) {
	user, box, err := o.loadParticipants(ctx, o.userRepo, o.boxRepo, buyerName, boxID)
	if err != nil {
		return nil, fmt.Errorf("placing order: %w", err)
	}
	if _, err = checkPreconditions(user, box); err != nil {
		return nil, fmt.Errorf("placing order: %w", err)
	}

	var order *domain.Order
	lockErr := guard.WithLock(ctx, o.guard, guard.LockKey(o.lockScope, boxID), func() error {
		var placeErr error
		order, placeErr = o.placeLocked(context.WithoutCancel(ctx), user.Username, boxID)
		return placeErr
	})
	if lockErr != nil {
		return nil, fmt.Errorf("placing order: %w", lockErr)
	}

	o.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"box_id":   order.BoxID,
		"goods_id": order.GoodsID,
		"money":    order.Money.String(),
	}).Info("order placed")
	return order, nil
}

// placeLocked критическая секция покупки. Вызывается только под блокировкой.
func (o *OrderService) placeLocked(ctx context.Context, buyerName string, boxID int64) (*domain.Order, error) {
	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, err := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		boxRepo, err := uow.GetAs[BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}
		orderRepo, err := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		// состояние перечитывается: предыдущий владелец блокировки мог изменить остаток и баланс.
		user, box, err := o.loadParticipants(c, userRepo, boxRepo, buyerName, boxID)
		if err != nil {
			return err
		}
		price, err := checkPreconditions(user, box)
		if err != nil {
			return err
		}
		goods, err := o.picker.Pick(box.Rewards)
		if err != nil {
			return err //nolint:wrapcheck
		}

		order, err = orderRepo.CreateOrder(c, repoargs.CreateOrder{
			UserID:    user.ID,
			BoxID:     box.ID,
			GoodsID:   goods.ID,
			GoodsName: goods.Name,
			Money:     price,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		if _, err = boxRepo.DecrementStock(c, box.ID); err != nil {
			return err //nolint:wrapcheck
		}
		if _, err = userRepo.DebitBalance(c, repoargs.DebitBalance{UserID: user.ID, Amount: price}); err != nil {
			return err //nolint:wrapcheck
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr //nolint:wrapcheck
	}
	return order, nil
}

func (o *OrderService) loadParticipants(
	ctx context.Context,
	userRepo UserRepository,
	boxRepo BoxRepository,
	buyerName string,
	boxID int64,
) (*domain.User, *domain.BlindBox, error) {
	user, err := userRepo.FindUserByUsername(ctx, buyerName)
	if err != nil {
		return nil, nil, mapNotFound(err, domain.ErrUserNotFound)
	}
	box, err := boxRepo.FindByID(ctx, boxID)
	if err != nil {
		return nil, nil, mapNotFound(err, domain.ErrBoxNotFound)
	}
	return user, box, nil
}

// checkPreconditions проверяет остаток, баланс и пул наград. Возвращает цену для покупателя.
func checkPreconditions(user *domain.User, box *domain.BlindBox) (price decimal.Decimal, err error) {
	if box.Remaining <= 0 {
		return price, domain.ErrOutOfStock
	}
	price = domain.EffectivePrice(box.Price, user.IsVIP)
	if user.Balance.LessThan(price) {
		return price, domain.ErrInsufficientBalance
	}
	if len(box.Rewards) == 0 {
		return price, domain.ErrEmptyRewardPool
	}
	return price, nil
}

func (o *OrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %d: %w", id, mapNotFound(err, domain.ErrOrderNotFound))
	}
	return order, nil
}

// GetByUserID Возвращает заказы от userID отсортированные по дате создания по убыванию.
func (o *OrderService) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

// PendingAnnouncements возвращает заказы, о которых еще не отправлено событие.
func (o *OrderService) PendingAnnouncements(ctx context.Context, limit uint) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetForAnnouncement(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}

func (o *OrderService) MarkAnnounced(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := o.orderRepo.MarkAnnounced(ctx, ids); err != nil {
		return fmt.Errorf("marking orders as announced: %w", err)
	}
	return nil
}

// mapNotFound заменяет domain.ErrRecordNotFound на предметную ошибку target.
func mapNotFound(err error, target error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", target, err.Error())
	}
	return err
}
