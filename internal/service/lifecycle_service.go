package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

const (
	DefaultUnsentPageSize uint = 5
	MaxUnsentPageSize     uint = 100
)

// LifecycleService переводы заказа по состояниям Created -> Sent -> Done и очередь неотправленных заказов.
type LifecycleService struct {
	orderRepo OrderRepository
}

func NewLifecycleService(u uow.UOW) (*LifecycleService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &LifecycleService{orderRepo: orderRepo}, nil
}

// MarkSent выставляет isSent независимо от текущего состояния. Повторный вызов ничего не меняет.
func (l *LifecycleService) MarkSent(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := l.orderRepo.MarkSent(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("marking order %d as sent: %w", orderID, mapNotFound(err, domain.ErrOrderNotFound))
	}
	return order, nil
}

// MarkReceived для отправленного заказа выставляет isReceived и isDone. Для неотправленного возвращает
// domain.ErrInvalidTransition.
func (l *LifecycleService) MarkReceived(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := l.orderRepo.MarkReceived(ctx, orderID)
	if err == nil {
		return order, nil
	}
	// условие is_sent не отличает отсутствующий заказ от неотправленного
	if _, findErr := l.orderRepo.FindByID(ctx, orderID); findErr != nil {
		return nil, fmt.Errorf("marking order %d as received: %w", orderID, mapNotFound(findErr, domain.ErrOrderNotFound))
	}
	return nil, fmt.Errorf("marking order %d as received: %w", orderID, err)
}

// UpdateDelivery задает адрес и контакт. Допустимо на любом этапе жизненного цикла, оба поля обязательны.
func (l *LifecycleService) UpdateDelivery(
	ctx context.Context,
	orderID int64,
	address, contact string,
) (*domain.Order, error) {
	address, contact = strings.TrimSpace(address), strings.TrimSpace(contact)
	if address == "" || contact == "" {
		return nil, fmt.Errorf("updating delivery of order %d: %w", orderID, domain.ErrInvalidInput)
	}
	order, err := l.orderRepo.UpdateDelivery(ctx, repoargs.UpdateDelivery{
		OrderID: orderID,
		Address: address,
		Contact: contact,
	})
	if err != nil {
		return nil, fmt.Errorf("updating delivery of order %d: %w", orderID, mapNotFound(err, domain.ErrOrderNotFound))
	}
	return order, nil
}

type UnsentOrders struct {
	Orders   []domain.Order
	Total    int64
	Page     uint
	PageSize uint
}

// ListUnsent страница неотправленных заказов, старые первыми. page по умолчанию 1, pageSize по умолчанию
// DefaultUnsentPageSize и не больше MaxUnsentPageSize.
func (l *LifecycleService) ListUnsent(ctx context.Context, page, pageSize uint) (*UnsentOrders, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultUnsentPageSize
	}
	pageSize = min(pageSize, MaxUnsentPageSize)

	orders, total, err := l.orderRepo.GetUnsent(ctx, repoargs.Page{Page: page, PageSize: pageSize})
	if err != nil {
		return nil, fmt.Errorf("listing unsent orders: %w", err)
	}
	return &UnsentOrders{
		Orders:   orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
