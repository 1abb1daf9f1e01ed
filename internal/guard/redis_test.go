package guard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
)

type RedisGuardTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	guard  *RedisGuard
}

func TestRedisGuardSuite(t *testing.T) {
	suite.Run(t, new(RedisGuardTestSuite))
}

func (s *RedisGuardTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.guard = NewRedisGuard(s.client, 5*time.Second, newTestLogger())
}

func (s *RedisGuardTestSuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *RedisGuardTestSuite) TestBusyKeyFailsFast() {
	ctx := context.Background()
	key := LockKey(ScopeBox, 1)

	h, err := s.guard.Acquire(ctx, key)
	s.Require().NoError(err)
	s.Equal(key, h.Key())
	s.True(s.mr.Exists(key))
	s.Equal(5*time.Second, s.mr.TTL(key))

	_, err = s.guard.Acquire(ctx, key)
	s.ErrorIs(err, domain.ErrSystemBusy)

	// другой ключ не затронут
	other, err := s.guard.Acquire(ctx, LockKey(ScopeBox, 2))
	s.Require().NoError(err)
	s.Require().NoError(s.guard.Release(ctx, other))

	s.Require().NoError(s.guard.Release(ctx, h))
	s.False(s.mr.Exists(key))

	h, err = s.guard.Acquire(ctx, key)
	s.Require().NoError(err)
	s.Require().NoError(s.guard.Release(ctx, h))
}

func (s *RedisGuardTestSuite) TestLeaseExpiry() {
	ctx := context.Background()
	key := LockKey(ScopeBox, 1)

	stale, err := s.guard.Acquire(ctx, key)
	s.Require().NoError(err)

	s.mr.FastForward(6 * time.Second)

	fresh, err := s.guard.Acquire(ctx, key)
	s.Require().NoError(err)

	// просроченный владелец не может удалить чужой ключ
	s.ErrorIs(s.guard.Release(ctx, stale), ErrLeaseLost)
	s.True(s.mr.Exists(key))

	s.Require().NoError(s.guard.Release(ctx, fresh))
	s.False(s.mr.Exists(key))
}

func (s *RedisGuardTestSuite) TestDoubleRelease() {
	ctx := context.Background()

	h, err := s.guard.Acquire(ctx, "k")
	s.Require().NoError(err)
	s.Require().NoError(s.guard.Release(ctx, h))
	s.ErrorIs(s.guard.Release(ctx, h), ErrNotHeld)
}

func (s *RedisGuardTestSuite) TestWithLock() {
	ctx := context.Background()

	err := WithLock(ctx, s.guard, "k", func() error {
		s.True(s.mr.Exists("k"))
		_, busyErr := s.guard.Acquire(ctx, "k")
		s.ErrorIs(busyErr, domain.ErrSystemBusy)
		return nil
	})
	s.Require().NoError(err)
	s.False(s.mr.Exists("k"))
}

func (s *RedisGuardTestSuite) TestStoreUnavailable() {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	g := NewRedisGuard(client, time.Second, newTestLogger())

	_, err := g.Acquire(context.Background(), "k")
	s.Require().Error(err)
	s.NotErrorIs(err, domain.ErrSystemBusy)
}
