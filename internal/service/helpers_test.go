package service

import (
	"context"
	"io"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/memrepo"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestUOW регистрирует in-memory репозитории. overrides подменяют стандартные фабрики, например
// обертками, которые возвращают ошибку на определенном шаге.
func newTestUOW(
	t *testing.T,
	store *memrepo.Store,
	overrides map[repoargs.RepositoryName]memrepo.RepositoryFactory,
) *memrepo.UnitOfWork {
	t.Helper()
	u := memrepo.NewUnitOfWork(store)
	defaults := map[repoargs.RepositoryName]memrepo.RepositoryFactory{
		repoargs.UserRepoName:    func(s *memrepo.Session) uow.Repository { return memrepo.NewUserRepository(s) },
		repoargs.BoxRepoName:     func(s *memrepo.Session) uow.Repository { return memrepo.NewBoxRepository(s) },
		repoargs.OrderRepoName:   func(s *memrepo.Session) uow.Repository { return memrepo.NewOrderRepository(s) },
		repoargs.CommentRepoName: func(s *memrepo.Session) uow.Repository { return memrepo.NewCommentRepository(s) },
	}
	for name, factory := range defaults {
		if override, ok := overrides[name]; ok {
			factory = override
		}
		require.NoError(t, u.Register(uow.RepositoryName(name), factory))
	}
	return u
}

// fixtures создание тестовых данных напрямую через репозитории хранилища.
type fixtures struct {
	t     *testing.T
	users *memrepo.UserRepository
	boxes *memrepo.BoxRepository
}

func newFixtures(t *testing.T, store *memrepo.Store) *fixtures {
	t.Helper()
	u := memrepo.NewUnitOfWork(store)
	require.NoError(t, memrepo.RegisterRepositories(u))
	users, err := uow.GetRepositoryAs[*memrepo.UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	require.NoError(t, err)
	boxes, err := uow.GetRepositoryAs[*memrepo.BoxRepository](u, uow.RepositoryName(repoargs.BoxRepoName))
	require.NoError(t, err)
	return &fixtures{t: t, users: users, boxes: boxes}
}

func (f *fixtures) user(balance int64, isVIP bool) *domain.User {
	f.t.Helper()
	user, err := f.users.CreateUser(context.Background(), repoargs.CreateUser{
		Username: gofakeit.Username() + gofakeit.DigitN(6),
		Password: "hash",
		Balance:  decimal.NewFromInt(balance),
		IsVIP:    isVIP,
	})
	require.NoError(f.t, err)
	return user
}

func (f *fixtures) box(price, remaining int64, rewards ...string) (*domain.BlindBox, []domain.Goods) {
	f.t.Helper()
	ctx := context.Background()
	box, err := f.boxes.CreateBox(ctx, repoargs.CreateBox{
		Name:      gofakeit.ProductName(),
		Price:     decimal.NewFromInt(price),
		Remaining: remaining,
	})
	require.NoError(f.t, err)

	goods := make([]domain.Goods, 0, len(rewards))
	for _, name := range rewards {
		g, goodsErr := f.boxes.CreateGoods(ctx, repoargs.CreateGoods{Name: name})
		require.NoError(f.t, goodsErr)
		require.NoError(f.t, f.boxes.AddReward(ctx, box.ID, g.ID))
		goods = append(goods, *g)
	}
	return box, goods
}

func (f *fixtures) remaining(boxID int64) int64 {
	f.t.Helper()
	box, err := f.boxes.FindByID(context.Background(), boxID)
	require.NoError(f.t, err)
	return box.Remaining
}

func (f *fixtures) balance(userID int64) decimal.Decimal {
	f.t.Helper()
	user, err := f.users.FindByID(context.Background(), userID)
	require.NoError(f.t, err)
	return user.Balance
}
