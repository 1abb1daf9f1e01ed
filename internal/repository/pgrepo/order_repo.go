package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

const orderColumns = `id, created_at, updated_at, user_id, box_id, goods_id, goods_name, money,
	is_sent, is_received, is_done, address, contact, announced_at`

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{db: conn}
}

// CreateOrder создает заказ в начальном состоянии (все флаги жизненного цикла false).
func (o *OrderRepository) CreateOrder(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, box_id, goods_id, goods_name, money)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		args.UserID, args.BoxID, args.GoodsID, args.GoodsName, args.Money,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for user %d and blind box %d", args.UserID, args.BoxID)
	}
	return order, nil
}

func (o *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := scanOrder(o.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding order by id %d", id)
	}
	return order, nil
}

// GetByUserID Возвращает список заказов по id юзера, отсортированный по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := o.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, convertErr(err, "getting orders by userID `%d`", userID)
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, convertErr(err, "scanning orders of user %d", userID)
	}
	return orders, nil
}

// GetUnsent возвращает страницу неотправленных заказов (старые первыми) и их общее количество.
// Количество считается оконной функцией в том же запросе, поэтому страница и total согласованы.
// Для страницы за пределами выборки строк нет, и total досчитывается отдельным запросом.
func (o *OrderRepository) GetUnsent(ctx context.Context, page repoargs.Page) ([]domain.Order, int64, error) {
	rows, err := o.db.Query(ctx, `
		SELECT count(*) OVER () AS total, `+orderColumns+` FROM orders
		WHERE NOT is_sent
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2`, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, convertErr(err, "getting unsent orders")
	}

	var total int64
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		var order domain.Order
		scanErr := row.Scan(append([]any{&total}, orderDest(&order)...)...)
		return order, scanErr
	})
	if err != nil {
		return nil, 0, convertErr(err, "scanning unsent orders")
	}
	if len(orders) > 0 || page.Offset() == 0 {
		return orders, total, nil
	}

	if err = o.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE NOT is_sent`).Scan(&total); err != nil {
		return nil, 0, convertErr(err, "counting unsent orders")
	}
	return orders, total, nil
}

func (o *OrderRepository) MarkSent(ctx context.Context, id int64) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		UPDATE orders SET is_sent = true, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "marking order %d as sent", id)
	}
	return order, nil
}

// MarkReceived выставляет is_received и is_done одной командой. Условие is_sent продублировано в запросе:
// для неотправленного заказа вернется domain.ErrInvalidTransition.
func (o *OrderRepository) MarkReceived(ctx context.Context, id int64) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		UPDATE orders SET is_received = true, is_done = true, updated_at = now()
		WHERE id = $1 AND is_sent
		RETURNING `+orderColumns, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertConditionalErr(err, domain.ErrInvalidTransition, "marking order %d as received", id)
	}
	return order, nil
}

func (o *OrderRepository) UpdateDelivery(ctx context.Context, args repoargs.UpdateDelivery) (*domain.Order, error) {
	row := o.db.QueryRow(ctx, `
		UPDATE orders SET address = $2, contact = $3, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns,
		args.OrderID, args.Address, args.Contact,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating delivery data of order %d", args.OrderID)
	}
	return order, nil
}

func (o *OrderRepository) ExistsForUserAndBox(ctx context.Context, userID, boxID int64) (bool, error) {
	var exists bool
	err := o.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE user_id = $1 AND box_id = $2)`, userID, boxID,
	).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking orders of user %d for blind box %d", userID, boxID)
	}
	return exists, nil
}

// GetForAnnouncement возвращает до limit заказов, о которых еще не было опубликовано событие.
func (o *OrderRepository) GetForAnnouncement(ctx context.Context, limit uint) ([]domain.Order, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := o.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE announced_at IS NULL
		ORDER BY id
		LIMIT $1`, safeLimit)
	if err != nil {
		return nil, convertErr(err, "getting orders for announcement")
	}
	orders, err := collectOrders(rows)
	if err != nil {
		return nil, convertErr(err, "scanning orders for announcement")
	}
	return orders, nil
}

func (o *OrderRepository) MarkAnnounced(ctx context.Context, ids []int64) error {
	if _, err := o.db.Exec(ctx,
		`UPDATE orders SET announced_at = now() WHERE id = ANY($1) AND announced_at IS NULL`, ids,
	); err != nil {
		return convertErr(err, "marking orders `%v` as announced", ids)
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) { //nolint:wrapcheck
		order, err := scanOrder(row)
		if err != nil {
			return domain.Order{}, err
		}
		return *order, nil
	})
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	if err := row.Scan(orderDest(&order)...); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &order, nil
}

// orderDest адреса полей заказа в порядке orderColumns.
func orderDest(order *domain.Order) []any {
	return []any{
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&order.BoxID,
		&order.GoodsID,
		&order.GoodsName,
		&order.Money,
		&order.IsSent,
		&order.IsReceived,
		&order.IsDone,
		&order.Address,
		&order.Contact,
		&order.AnnouncedAt,
	}
}
