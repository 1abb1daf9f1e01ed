package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

const boxColumns = `id, created_at, updated_at, name, image_path, price, remaining`

// BoxRepository хранилище коробок и товаров, составляющих их пулы наград.
type BoxRepository struct {
	db uow.DBTX
}

func NewBoxRepository(conn uow.DBTX) *BoxRepository {
	return &BoxRepository{db: conn}
}

func (b *BoxRepository) CreateBox(ctx context.Context, args repoargs.CreateBox) (*domain.BlindBox, error) {
	row := b.db.QueryRow(ctx, `
		INSERT INTO blind_boxes (name, image_path, price, remaining)
		VALUES ($1, $2, $3, $4)
		RETURNING `+boxColumns,
		args.Name, args.ImagePath, args.Price, args.Remaining,
	)
	box, err := scanBox(row)
	if err != nil {
		return nil, convertErr(err, "creating blind box `%s`", args.Name)
	}
	return box, nil
}

func (b *BoxRepository) CreateGoods(ctx context.Context, args repoargs.CreateGoods) (*domain.Goods, error) {
	var goods domain.Goods
	err := b.db.QueryRow(ctx, `
		INSERT INTO goods (name, image_path) VALUES ($1, $2)
		RETURNING id, created_at, name, image_path`,
		args.Name, args.ImagePath,
	).Scan(&goods.ID, &goods.CreatedAt, &goods.Name, &goods.ImagePath)
	if err != nil {
		return nil, convertErr(err, "creating goods `%s`", args.Name)
	}
	return &goods, nil
}

// AddReward добавляет товар в пул наград коробки. Повторное добавление возвращает domain.ErrDuplicateKey.
func (b *BoxRepository) AddReward(ctx context.Context, boxID, goodsID int64) error {
	_, err := b.db.Exec(ctx, `INSERT INTO blind_box_rewards (box_id, goods_id) VALUES ($1, $2)`, boxID, goodsID)
	if err != nil {
		return convertErr(err, "adding goods %d to blind box %d", goodsID, boxID)
	}
	return nil
}

// FindByID возвращает коробку вместе с текущим пулом наград, отсортированным по id товара.
func (b *BoxRepository) FindByID(ctx context.Context, id int64) (*domain.BlindBox, error) {
	box, err := scanBox(b.db.QueryRow(ctx, `SELECT `+boxColumns+` FROM blind_boxes WHERE id = $1`, id))
	if err != nil {
		return nil, convertErr(err, "finding blind box by id %d", id)
	}

	rows, err := b.db.Query(ctx, `
		SELECT g.id, g.created_at, g.name, g.image_path
		FROM blind_box_rewards r
		JOIN goods g ON g.id = r.goods_id
		WHERE r.box_id = $1
		ORDER BY g.id`, id)
	if err != nil {
		return nil, convertErr(err, "getting reward pool of blind box %d", id)
	}
	rewards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Goods, error) {
		var g domain.Goods
		scanErr := row.Scan(&g.ID, &g.CreatedAt, &g.Name, &g.ImagePath)
		return g, scanErr
	})
	if err != nil {
		return nil, convertErr(err, "scanning reward pool of blind box %d", id)
	}
	box.Rewards = rewards
	return box, nil
}

// DecrementStock уменьшает остаток ровно на 1, только если он положительный. Иначе возвращает
// domain.ErrOutOfStock и ничего не меняет.
func (b *BoxRepository) DecrementStock(ctx context.Context, boxID int64) (*domain.BlindBox, error) {
	row := b.db.QueryRow(ctx, `
		UPDATE blind_boxes SET remaining = remaining - 1, updated_at = now()
		WHERE id = $1 AND remaining > 0
		RETURNING `+boxColumns,
		boxID,
	)
	box, err := scanBox(row)
	if err != nil {
		return nil, convertConditionalErr(err, domain.ErrOutOfStock, "decrementing stock of blind box %d", boxID)
	}
	return box, nil
}

// UpdateStock устанавливает остаток коробки. Для несуществующей коробки возвращает domain.ErrRecordNotFound.
func (b *BoxRepository) UpdateStock(ctx context.Context, args repoargs.UpdateStock) (*domain.BlindBox, error) {
	row := b.db.QueryRow(ctx, `
		UPDATE blind_boxes SET remaining = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+boxColumns,
		args.BoxID, args.Remaining,
	)
	box, err := scanBox(row)
	if err != nil {
		return nil, convertErr(err, "updating stock of blind box %d", args.BoxID)
	}
	return box, nil
}

func (b *BoxRepository) UpdatePrice(ctx context.Context, args repoargs.UpdatePrice) (*domain.BlindBox, error) {
	row := b.db.QueryRow(ctx, `
		UPDATE blind_boxes SET price = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+boxColumns,
		args.BoxID, args.Price,
	)
	box, err := scanBox(row)
	if err != nil {
		return nil, convertErr(err, "updating price of blind box %d", args.BoxID)
	}
	return box, nil
}

func scanBox(row pgx.Row) (*domain.BlindBox, error) {
	var box domain.BlindBox
	err := row.Scan(&box.ID, &box.CreatedAt, &box.UpdatedAt, &box.Name, &box.ImagePath, &box.Price, &box.Remaining)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &box, nil
}
