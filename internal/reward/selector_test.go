package reward

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

func pool(n int) []domain.Goods {
	goods := make([]domain.Goods, n)
	for i := range goods {
		goods[i] = domain.Goods{ID: int64(i + 1)}
	}
	return goods
}

func TestPick_EmptyPool(t *testing.T) {
	_, err := NewSeededSelector(1, 2).Pick(nil)
	require.ErrorIs(t, err, domain.ErrEmptyRewardPool)
}

func TestPick_SingleItem(t *testing.T) {
	s := NewSeededSelector(1, 2)
	for range 10 {
		g, err := s.Pick(pool(1))
		require.NoError(t, err)
		assert.Equal(t, int64(1), g.ID)
	}
}

func TestPick_Deterministic(t *testing.T) {
	first, second := NewSeededSelector(42, 7), NewSeededSelector(42, 7)
	p := pool(13)
	for range 100 {
		a, err := first.Pick(p)
		require.NoError(t, err)
		b, err := second.Pick(p)
		require.NoError(t, err)
		assert.Equal(t, a.ID, b.ID)
	}
}

func TestPick_MatchesSourceIndex(t *testing.T) {
	p := pool(5)
	expected := rand.New(rand.NewPCG(3, 4)) //nolint:gosec
	s := NewSelector(rand.NewPCG(3, 4))
	for range 20 {
		g, err := s.Pick(p)
		require.NoError(t, err)
		assert.Equal(t, p[expected.IntN(len(p))].ID, g.ID)
	}
}

func TestPick_CoversWholePool(t *testing.T) {
	s := NewSeededSelector(9, 9)
	p := pool(4)
	seen := make(map[int64]int)
	for range 2000 {
		g, err := s.Pick(p)
		require.NoError(t, err)
		seen[g.ID]++
	}
	require.Len(t, seen, 4)
	for id, n := range seen {
		// ожидание 500 на элемент
		assert.InDelta(t, 500, n, 150, "goods %d", id)
	}
}

func TestPick_Concurrent(t *testing.T) {
	s := NewSeededSelector(1, 1)
	p := pool(3)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_, err := s.Pick(p)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
