package memrepo

import (
	"context"
	"slices"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
)

type BoxRepository struct {
	s *Session
}

func NewBoxRepository(s *Session) *BoxRepository {
	return &BoxRepository{s: s}
}

func (b *BoxRepository) CreateBox(ctx context.Context, args repoargs.CreateBox) (*domain.BlindBox, error) {
	var box domain.BlindBox
	err := b.s.write(ctx, func() error {
		if !args.Price.IsPositive() || args.Remaining < 0 {
			return invariantViolation("creating blind box `%s`", args.Name)
		}
		st := b.s.store
		st.boxSeq++
		now := st.now()
		box = domain.BlindBox{
			ID:        st.boxSeq,
			CreatedAt: now,
			UpdatedAt: now,
			Name:      args.Name,
			ImagePath: args.ImagePath,
			Price:     args.Price,
			Remaining: args.Remaining,
		}
		st.boxes[box.ID] = box
		b.s.onRollback(func() { delete(st.boxes, box.ID) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (b *BoxRepository) CreateGoods(ctx context.Context, args repoargs.CreateGoods) (*domain.Goods, error) {
	var goods domain.Goods
	_ = b.s.write(ctx, func() error {
		st := b.s.store
		st.goodsSeq++
		goods = domain.Goods{
			ID:        st.goodsSeq,
			CreatedAt: st.now(),
			Name:      args.Name,
			ImagePath: args.ImagePath,
		}
		st.goods[goods.ID] = goods
		b.s.onRollback(func() { delete(st.goods, goods.ID) })
		return nil
	})
	return &goods, nil
}

func (b *BoxRepository) AddReward(ctx context.Context, boxID, goodsID int64) error {
	return b.s.write(ctx, func() error {
		st := b.s.store
		if _, ok := st.boxes[boxID]; !ok {
			return invariantViolation("adding goods %d to blind box %d", goodsID, boxID)
		}
		if _, ok := st.goods[goodsID]; !ok {
			return invariantViolation("adding goods %d to blind box %d", goodsID, boxID)
		}
		prev := st.rewards[boxID]
		if slices.Contains(prev, goodsID) {
			return duplicate("adding goods %d to blind box %d", goodsID, boxID)
		}
		next := append(slices.Clone(prev), goodsID)
		slices.Sort(next)
		st.rewards[boxID] = next
		b.s.onRollback(func() { st.rewards[boxID] = prev })
		return nil
	})
}

func (b *BoxRepository) FindByID(_ context.Context, id int64) (*domain.BlindBox, error) {
	var (
		box   domain.BlindBox
		found bool
	)
	b.s.read(func() {
		st := b.s.store
		box, found = st.boxes[id]
		if !found {
			return
		}
		box.Rewards = make([]domain.Goods, 0, len(st.rewards[id]))
		for _, goodsID := range st.rewards[id] {
			box.Rewards = append(box.Rewards, st.goods[goodsID])
		}
	})
	if !found {
		return nil, notFound("finding blind box by id %d", id)
	}
	return &box, nil
}

func (b *BoxRepository) DecrementStock(ctx context.Context, boxID int64) (*domain.BlindBox, error) {
	var box domain.BlindBox
	err := b.s.write(ctx, func() error {
		st := b.s.store
		prev, ok := st.boxes[boxID]
		if !ok || prev.Remaining <= 0 {
			return conditionFailed(domain.ErrOutOfStock, "decrementing stock of blind box %d", boxID)
		}
		box = prev
		box.Remaining--
		box.UpdatedAt = st.now()
		st.boxes[boxID] = box
		b.s.onRollback(func() { st.boxes[boxID] = prev })
		return nil
	}, boxRow(boxID))
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (b *BoxRepository) UpdateStock(ctx context.Context, args repoargs.UpdateStock) (*domain.BlindBox, error) {
	return b.update(ctx, args.BoxID, "updating stock of blind box %d", func(box *domain.BlindBox) error {
		if args.Remaining < 0 {
			return invariantViolation("updating stock of blind box %d", args.BoxID)
		}
		box.Remaining = args.Remaining
		return nil
	})
}

func (b *BoxRepository) UpdatePrice(ctx context.Context, args repoargs.UpdatePrice) (*domain.BlindBox, error) {
	return b.update(ctx, args.BoxID, "updating price of blind box %d", func(box *domain.BlindBox) error {
		if !args.Price.IsPositive() {
			return invariantViolation("updating price of blind box %d", args.BoxID)
		}
		box.Price = args.Price
		return nil
	})
}

// update меняет строку коробки под её блокировкой. Пул наград не затрагивается.
func (b *BoxRepository) update(
	ctx context.Context,
	boxID int64,
	format string,
	mutate func(*domain.BlindBox) error,
) (*domain.BlindBox, error) {
	var box domain.BlindBox
	err := b.s.write(ctx, func() error {
		st := b.s.store
		prev, ok := st.boxes[boxID]
		if !ok {
			return notFound(format, boxID)
		}
		box = prev
		if err := mutate(&box); err != nil {
			return err
		}
		box.UpdatedAt = st.now()
		st.boxes[boxID] = box
		b.s.onRollback(func() { st.boxes[boxID] = prev })
		return nil
	}, boxRow(boxID))
	if err != nil {
		return nil, err
	}
	return &box, nil
}
