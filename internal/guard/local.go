package guard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

type keyLock struct {
	waiters []chan struct{}
}

// LocalGuard мьютекс на ключ внутри процесса. Ожидающие получают блокировку строго в порядке
// очереди: Release передает владение первому ожидающему, не освобождая ключ.
type LocalGuard struct {
	mu          sync.Mutex
	held        map[string]*keyLock
	waitTimeout time.Duration
	logger      *logrus.Entry
}

// NewLocalGuard создает LocalGuard. waitTimeout ограничивает ожидание в очереди, по истечении Acquire
// возвращает domain.ErrSystemBusy. Нулевое значение - ждать без ограничения.
func NewLocalGuard(waitTimeout time.Duration, l *logrus.Logger) *LocalGuard {
	return &LocalGuard{
		held:        make(map[string]*keyLock),
		waitTimeout: waitTimeout,
		logger:      l.WithField("component", "guard").WithField("module", "local"),
	}
}

func (g *LocalGuard) Acquire(ctx context.Context, key string) (*Handle, error) {
	g.mu.Lock()
	kl, busy := g.held[key]
	if !busy {
		g.held[key] = new(keyLock)
		g.mu.Unlock()
		return &Handle{key: key}, nil
	}
	ready := make(chan struct{})
	kl.waiters = append(kl.waiters, ready)
	g.mu.Unlock()

	var timeout <-chan time.Time
	if g.waitTimeout > 0 {
		timer := time.NewTimer(g.waitTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ready:
		return &Handle{key: key}, nil
	case <-timeout:
		g.abandon(key, ready)
		g.logger.WithField("key", key).Warnf("lock wait timeout after %s", g.waitTimeout)
		return nil, fmt.Errorf("acquiring lock %s: %w", key, domain.ErrSystemBusy)
	case <-ctx.Done():
		g.abandon(key, ready)
		return nil, fmt.Errorf("acquiring lock %s: %w", key, ctx.Err())
	}
}

// abandon убирает ожидающего из очереди. Если владение уже успело перейти к нему, передает его дальше.
func (g *LocalGuard) abandon(key string, ready chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-ready:
		g.handOff(key)
	default:
		if kl, ok := g.held[key]; ok {
			kl.waiters = slices.DeleteFunc(kl.waiters, func(ch chan struct{}) bool { return ch == ready })
		}
	}
}

func (g *LocalGuard) Release(_ context.Context, h *Handle) error {
	if h == nil || h.released.Swap(true) {
		return ErrNotHeld
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.held[h.key]; !ok {
		g.logger.WithField("key", h.key).Warn("release of a free lock")
		return ErrNotHeld
	}
	g.handOff(h.key)
	return nil
}

// handOff вызывается под g.mu владельцем ключа.
func (g *LocalGuard) handOff(key string) {
	kl := g.held[key]
	if len(kl.waiters) == 0 {
		delete(g.held, key)
		return
	}
	next := kl.waiters[0]
	kl.waiters = kl.waiters[1:]
	close(next)
}

// waiting количество ожидающих в очереди ключа.
func (g *LocalGuard) waiting(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if kl, ok := g.held[key]; ok {
		return len(kl.waiters)
	}
	return 0
}
