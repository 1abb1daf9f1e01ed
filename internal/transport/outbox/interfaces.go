package outbox

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/transport/outbox/dto"
)

type Publisher interface {
	Publish(ctx context.Context, event dto.OrderPlaced) error
}

type Servicer interface {
	PendingAnnouncements(ctx context.Context, limit uint) ([]domain.Order, error)
	MarkAnnounced(ctx context.Context, ids []int64) error
}
