package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

const releaseTimeout = time.Second

// удаляет ключ, только если он все еще принадлежит владельцу токена.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard распределенная блокировка: SET key token NX PX lease. Занятый ключ не ждет,
// Acquire сразу возвращает domain.ErrSystemBusy.
type RedisGuard struct {
	client redis.UniversalClient
	lease  time.Duration
	logger *logrus.Entry
}

func NewRedisGuard(client redis.UniversalClient, lease time.Duration, l *logrus.Logger) *RedisGuard {
	return &RedisGuard{
		client: client,
		lease:  lease,
		logger: l.WithField("component", "guard").WithField("module", "redis"),
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (*Handle, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, key, token, g.lease).Result()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("acquiring lock %s: %w", key, domain.ErrSystemBusy)
	}
	return &Handle{key: key, token: token}, nil
}

func (g *RedisGuard) Release(ctx context.Context, h *Handle) error {
	if h == nil || h.released.Swap(true) {
		return ErrNotHeld
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	deleted, err := releaseScript.Run(ctx, g.client, []string{h.key}, h.token).Int()
	if err != nil {
		g.logger.WithError(err).WithField("key", h.key).Error("lock release failed")
		return fmt.Errorf("releasing lock %s: %w", h.key, err)
	}
	if deleted == 0 {
		g.logger.WithField("key", h.key).Warnf("lock lease of %s expired before release", g.lease)
		return fmt.Errorf("releasing lock %s: %w", h.key, ErrLeaseLost)
	}
	return nil
}
