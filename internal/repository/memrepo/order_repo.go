package memrepo

import (
	"cmp"
	"context"
	"slices"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
)

type OrderRepository struct {
	s *Session
}

func NewOrderRepository(s *Session) *OrderRepository {
	return &OrderRepository{s: s}
}

func (o *OrderRepository) CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	// внешние ключи не блокируют строки пользователя и коробки, как KEY SHARE в postgres
	var order domain.Order
	id := o.s.store.nextOrderID()
	err := o.s.write(ctx, func() error {
		st := o.s.store
		_, userOk := st.users[args.UserID]
		_, boxOk := st.boxes[args.BoxID]
		_, goodsOk := st.goods[args.GoodsID]
		if !userOk || !boxOk || !goodsOk || args.Money.IsNegative() {
			return invariantViolation("creating order for user %d and blind box %d", args.UserID, args.BoxID)
		}
		now := st.now()
		order = domain.Order{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
			UserID:    args.UserID,
			BoxID:     args.BoxID,
			GoodsID:   args.GoodsID,
			GoodsName: args.GoodsName,
			Money:     args.Money,
		}
		st.orders[order.ID] = order
		o.s.onRollback(func() { delete(st.orders, order.ID) })
		return nil
	}, orderRow(id))
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderRepository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	var (
		order domain.Order
		found bool
	)
	o.s.read(func() {
		order, found = o.s.store.orders[id]
	})
	if !found {
		return nil, notFound("finding order by id %d", id)
	}
	return copyOrder(order), nil
}

func (o *OrderRepository) GetByUserID(_ context.Context, userID int64) ([]domain.Order, error) {
	orders := o.filter(func(order domain.Order) bool { return order.UserID == userID })
	slices.SortFunc(orders, func(a, b domain.Order) int { return -compareByCreation(a, b) })
	return orders, nil
}

func (o *OrderRepository) GetUnsent(_ context.Context, page repoargs.Page) ([]domain.Order, int64, error) {
	orders := o.filter(func(order domain.Order) bool { return !order.IsSent })
	slices.SortFunc(orders, compareByCreation)

	total := int64(len(orders))
	offset := min(page.Offset(), uint(len(orders)))
	end := min(offset+page.PageSize, uint(len(orders)))
	return orders[offset:end], total, nil
}

func (o *OrderRepository) MarkSent(ctx context.Context, id int64) (*domain.Order, error) {
	return o.update(ctx, id, "marking order %d as sent", func(order *domain.Order) error {
		order.IsSent = true
		return nil
	})
}

func (o *OrderRepository) MarkReceived(ctx context.Context, id int64) (*domain.Order, error) {
	return o.update(ctx, id, "marking order %d as received", func(order *domain.Order) error {
		if !order.IsSent {
			return conditionFailed(domain.ErrInvalidTransition, "marking order %d as received", id)
		}
		order.IsReceived = true
		order.IsDone = true
		return nil
	})
}

func (o *OrderRepository) UpdateDelivery(ctx context.Context, args repoargs.UpdateDelivery) (*domain.Order, error) {
	return o.update(ctx, args.OrderID, "updating delivery data of order %d", func(order *domain.Order) error {
		order.Address = args.Address
		order.Contact = args.Contact
		return nil
	})
}

func (o *OrderRepository) ExistsForUserAndBox(_ context.Context, userID, boxID int64) (bool, error) {
	orders := o.filter(func(order domain.Order) bool { return order.UserID == userID && order.BoxID == boxID })
	return len(orders) > 0, nil
}

func (o *OrderRepository) GetForAnnouncement(_ context.Context, limit uint) ([]domain.Order, error) {
	orders := o.filter(func(order domain.Order) bool { return order.AnnouncedAt == nil })
	slices.SortFunc(orders, func(a, b domain.Order) int { return cmp.Compare(a.ID, b.ID) })
	if uint(len(orders)) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (o *OrderRepository) MarkAnnounced(ctx context.Context, ids []int64) error {
	rows := make([]rowKey, 0, len(ids))
	for _, id := range slices.Sorted(slices.Values(ids)) {
		rows = append(rows, orderRow(id))
	}
	return o.s.write(ctx, func() error {
		st := o.s.store
		now := st.now()
		for _, id := range ids {
			prev, ok := st.orders[id]
			if !ok || prev.AnnouncedAt != nil {
				continue
			}
			order := prev
			order.AnnouncedAt = &now
			st.orders[id] = order
			o.s.onRollback(func() { st.orders[id] = prev })
		}
		return nil
	}, rows...)
}

// update применяет mutate к копии заказа и сохраняет её, если mutate не вернул ошибку.
func (o *OrderRepository) update(
	ctx context.Context,
	id int64,
	format string,
	mutate func(*domain.Order) error,
) (*domain.Order, error) {
	var order domain.Order
	err := o.s.write(ctx, func() error {
		st := o.s.store
		prev, ok := st.orders[id]
		if !ok {
			return notFound(format, id)
		}
		order = prev
		if err := mutate(&order); err != nil {
			return err
		}
		order.UpdatedAt = st.now()
		st.orders[id] = order
		o.s.onRollback(func() { st.orders[id] = prev })
		return nil
	}, orderRow(id))
	if err != nil {
		return nil, err
	}
	return copyOrder(order), nil
}

func (o *OrderRepository) filter(keep func(domain.Order) bool) []domain.Order {
	var orders = make([]domain.Order, 0)
	o.s.read(func() {
		for _, order := range o.s.store.orders {
			if keep(order) {
				orders = append(orders, *copyOrder(order))
			}
		}
	})
	return orders
}

func compareByCreation(a, b domain.Order) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func copyOrder(order domain.Order) *domain.Order {
	if order.AnnouncedAt != nil {
		announcedAt := *order.AnnouncedAt
		order.AnnouncedAt = &announcedAt
	}
	return &order
}
