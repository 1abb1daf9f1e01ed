// Package reward равновероятный выбор награды из пула коробки.
package reward

import (
	"math/rand/v2"
	"sync"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

// Selector выбирает награду с индексом из [0, len(pool)). Источник случайности передается снаружи,
// с одинаковым seed последовательность выборов повторяется.
type Selector struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSelector(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src)} //nolint:gosec
}

// NewSeededSelector селектор на PCG с заданным seed.
func NewSeededSelector(seed1, seed2 uint64) *Selector {
	return NewSelector(rand.NewPCG(seed1, seed2))
}

// Pick возвращает domain.ErrEmptyRewardPool для пустого пула.
func (s *Selector) Pick(pool []domain.Goods) (domain.Goods, error) {
	if len(pool) == 0 {
		return domain.Goods{}, domain.ErrEmptyRewardPool
	}
	s.mu.Lock()
	i := s.rnd.IntN(len(pool))
	s.mu.Unlock()
	return pool[i], nil
}
