package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

type BoxService struct {
	boxRepo BoxRepository
}

func NewBoxService(u uow.UOW) (*BoxService, error) {
	boxRepo, err := uow.GetRepositoryAs[BoxRepository](u, uow.RepositoryName(repoargs.BoxRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &BoxService{boxRepo: boxRepo}, nil
}

// GetByID коробка с остатком, ценой и пулом наград.
func (b *BoxService) GetByID(ctx context.Context, id int64) (*domain.BlindBox, error) {
	box, err := b.boxRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting blind box: %w", mapNotFound(err, domain.ErrBoxNotFound))
	}
	return box, nil
}

// UpdateStock устанавливает остаток коробки, например при пополнении. Одновременные покупки и
// обновления остатка упорядочивает хранилище, последняя запись побеждает.
func (b *BoxService) UpdateStock(ctx context.Context, boxID, remaining int64) (*domain.BlindBox, error) {
	if remaining < 0 {
		return nil, fmt.Errorf("updating stock: %w", domain.ErrInvalidInput)
	}
	box, err := b.boxRepo.UpdateStock(ctx, repoargs.UpdateStock{BoxID: boxID, Remaining: remaining})
	if err != nil {
		return nil, fmt.Errorf("updating stock: %w", mapNotFound(err, domain.ErrBoxNotFound))
	}
	return box, nil
}

// UpdatePrice устанавливает цену коробки. Цена уже созданных заказов не меняется.
func (b *BoxService) UpdatePrice(ctx context.Context, boxID int64, price decimal.Decimal) (*domain.BlindBox, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("updating price: %w", domain.ErrInvalidInput)
	}
	box, err := b.boxRepo.UpdatePrice(ctx, repoargs.UpdatePrice{BoxID: boxID, Price: price.Round(2)})
	if err != nil {
		return nil, fmt.Errorf("updating price: %w", mapNotFound(err, domain.ErrBoxNotFound))
	}
	return box, nil
}
