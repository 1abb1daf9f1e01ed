package memrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

type StoreTestSuite struct {
	suite.Suite
	uow   *UnitOfWork
	users *UserRepository
	boxes *BoxRepository
	order *OrderRepository
	box   *domain.BlindBox
	goods *domain.Goods
	user  *domain.User
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.uow = NewUnitOfWork(NewStore())
	s.Require().NoError(RegisterRepositories(s.uow))

	var err error
	s.users, err = uow.GetRepositoryAs[*UserRepository](s.uow, uow.RepositoryName(repoargs.UserRepoName))
	s.Require().NoError(err)
	s.boxes, err = uow.GetRepositoryAs[*BoxRepository](s.uow, uow.RepositoryName(repoargs.BoxRepoName))
	s.Require().NoError(err)
	s.order, err = uow.GetRepositoryAs[*OrderRepository](s.uow, uow.RepositoryName(repoargs.OrderRepoName))
	s.Require().NoError(err)

	ctx := context.Background()
	s.user, err = s.users.CreateUser(ctx, repoargs.CreateUser{Username: "1", Balance: decimal.NewFromInt(100)})
	s.Require().NoError(err)
	s.box, err = s.boxes.CreateBox(ctx, repoargs.CreateBox{Name: "box", Price: decimal.NewFromInt(20), Remaining: 1})
	s.Require().NoError(err)
	s.goods, err = s.boxes.CreateGoods(ctx, repoargs.CreateGoods{Name: "G1"})
	s.Require().NoError(err)
	s.Require().NoError(s.boxes.AddReward(ctx, s.box.ID, s.goods.ID))
}

func (s *StoreTestSuite) TestRegisterTwice() {
	err := s.uow.Register(uow.RepositoryName(repoargs.UserRepoName), func(s *Session) uow.Repository {
		return NewUserRepository(s)
	})
	s.ErrorIs(err, uow.ErrRepositoryAlreadyRegistered)

	_, err = s.uow.GetRepository("unknown")
	s.ErrorIs(err, uow.ErrRepositoryNotRegistered)
}

func (s *StoreTestSuite) TestDoRollsBackOnError() {
	ctx := context.Background()
	failure := errors.New("boom")

	err := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		boxes, _ := uow.GetAs[*BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
		users, _ := uow.GetAs[*UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		orders, _ := uow.GetAs[*OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))

		if _, err := boxes.DecrementStock(c, s.box.ID); err != nil {
			return err
		}
		if _, err := users.DebitBalance(c, repoargs.DebitBalance{UserID: s.user.ID, Amount: decimal.NewFromInt(20)}); err != nil {
			return err
		}
		if _, err := orders.CreateOrder(c, repoargs.CreateOrder{
			UserID: s.user.ID, BoxID: s.box.ID, GoodsID: s.goods.ID, GoodsName: s.goods.Name, Money: decimal.NewFromInt(20),
		}); err != nil {
			return err
		}
		return failure
	})
	s.Require().ErrorIs(err, failure)

	box, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), box.Remaining)

	user, err := s.users.FindByID(ctx, s.user.ID)
	s.Require().NoError(err)
	s.True(user.Balance.Equal(decimal.NewFromInt(100)))

	orders, err := s.order.GetByUserID(ctx, s.user.ID)
	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *StoreTestSuite) TestDoRollsBackOnPanic() {
	ctx := context.Background()

	s.Panics(func() {
		_ = s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			boxes, _ := uow.GetAs[*BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
			if _, err := boxes.DecrementStock(c, s.box.ID); err != nil {
				return err
			}
			panic("boom")
		})
	})

	box, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), box.Remaining)

	// хранилище не осталось заблокированным
	_, err = s.boxes.DecrementStock(ctx, s.box.ID)
	s.NoError(err)
}

func (s *StoreTestSuite) TestConditionalUpdates() {
	ctx := context.Background()

	_, err := s.boxes.DecrementStock(ctx, s.box.ID)
	s.Require().NoError(err)
	_, err = s.boxes.DecrementStock(ctx, s.box.ID)
	s.ErrorIs(err, domain.ErrOutOfStock)

	_, err = s.users.DebitBalance(ctx, repoargs.DebitBalance{UserID: s.user.ID, Amount: decimal.NewFromInt(101)})
	s.ErrorIs(err, domain.ErrInsufficientBalance)

	user, err := s.users.DebitBalance(ctx, repoargs.DebitBalance{UserID: s.user.ID, Amount: decimal.NewFromInt(100)})
	s.Require().NoError(err)
	s.True(user.Balance.IsZero())
}

func (s *StoreTestSuite) TestFindReturnsCopies() {
	ctx := context.Background()

	box, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Require().Len(box.Rewards, 1)
	box.Remaining = 100
	box.Rewards[0].Name = "changed"

	again, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), again.Remaining)
	s.Equal("G1", again.Rewards[0].Name)

	_, err = s.boxes.FindByID(ctx, 404)
	s.ErrorIs(err, domain.ErrRecordNotFound)
	_, err = s.users.CreateUser(ctx, repoargs.CreateUser{Username: "1"})
	s.ErrorIs(err, domain.ErrDuplicateKey)
}

func (s *StoreTestSuite) TestUnsentPagination() {
	ctx := context.Background()
	var ids []int64
	for range 7 {
		order, err := s.order.CreateOrder(ctx, repoargs.CreateOrder{
			UserID: s.user.ID, BoxID: s.box.ID, GoodsID: s.goods.ID, GoodsName: s.goods.Name, Money: decimal.NewFromInt(20),
		})
		s.Require().NoError(err)
		ids = append(ids, order.ID)
	}
	_, err := s.order.MarkSent(ctx, ids[0])
	s.Require().NoError(err)

	page, total, err := s.order.GetUnsent(ctx, repoargs.Page{Page: 1, PageSize: 5})
	s.Require().NoError(err)
	s.Equal(int64(6), total)
	s.Require().Len(page, 5)
	s.Equal(ids[1], page[0].ID)

	page, total, err = s.order.GetUnsent(ctx, repoargs.Page{Page: 2, PageSize: 5})
	s.Require().NoError(err)
	s.Equal(int64(6), total)
	s.Require().Len(page, 1)
	s.Equal(ids[6], page[0].ID)

	page, _, err = s.order.GetUnsent(ctx, repoargs.Page{Page: 3, PageSize: 5})
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *StoreTestSuite) TestAnnouncement() {
	ctx := context.Background()
	order, err := s.order.CreateOrder(ctx, repoargs.CreateOrder{
		UserID: s.user.ID, BoxID: s.box.ID, GoodsID: s.goods.ID, GoodsName: s.goods.Name, Money: decimal.NewFromInt(20),
	})
	s.Require().NoError(err)

	pending, err := s.order.GetForAnnouncement(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)

	s.Require().NoError(s.order.MarkAnnounced(ctx, []int64{order.ID}))

	pending, err = s.order.GetForAnnouncement(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)

	found, err := s.order.FindByID(ctx, order.ID)
	s.Require().NoError(err)
	s.NotNil(found.AnnouncedAt)
}

// holdBox начинает транзакцию, которая списывает остаток коробки boxID и ждет release перед фиксацией.
// Возвращает канал с результатом транзакции после того, как блокировка строки уже взята.
func (s *StoreTestSuite) holdBox(boxID int64, release <-chan struct{}) <-chan error {
	locked := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.uow.Do(context.Background(), func(c context.Context, tx uow.TX) error {
			boxes, err := uow.GetAs[*BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
			if err != nil {
				return err
			}
			if _, err = boxes.DecrementStock(c, boxID); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked
	return done
}

func (s *StoreTestSuite) TestTransactionsOnDifferentRowsDoNotBlock() {
	ctx := context.Background()
	other, err := s.boxes.CreateBox(ctx, repoargs.CreateBox{Name: "other", Price: decimal.NewFromInt(20), Remaining: 1})
	s.Require().NoError(err)

	release := make(chan struct{})
	held := s.holdBox(s.box.ID, release)

	done := make(chan error, 1)
	go func() {
		done <- s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
			boxes, _ := uow.GetAs[*BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
			users, _ := uow.GetAs[*UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
			if _, decErr := boxes.DecrementStock(c, other.ID); decErr != nil {
				return decErr
			}
			_, debitErr := users.DebitBalance(c, repoargs.DebitBalance{UserID: s.user.ID, Amount: decimal.NewFromInt(20)})
			return debitErr
		})
	}()
	select {
	case err = <-done:
		s.NoError(err)
	case <-time.After(time.Second):
		s.Fail("transaction on another blind box waited for a foreign row lock")
	}

	// чтение вне транзакции не ждет удерживаемую блокировку строки
	box, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), box.Remaining)

	close(release)
	s.NoError(<-held)
}

func (s *StoreTestSuite) TestSameRowWaitsForCommit() {
	ctx := context.Background()
	_, err := s.boxes.UpdateStock(ctx, repoargs.UpdateStock{BoxID: s.box.ID, Remaining: 2})
	s.Require().NoError(err)

	release := make(chan struct{})
	held := s.holdBox(s.box.ID, release)

	done := make(chan error, 1)
	go func() {
		_, decErr := s.boxes.DecrementStock(ctx, s.box.ID)
		done <- decErr
	}()
	select {
	case <-done:
		s.Fail("stock decrement passed a row lock held by another transaction")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	s.Require().NoError(<-held)
	s.Require().NoError(<-done)

	box, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), box.Remaining)
}

func (s *StoreTestSuite) TestRowLockWaitHonorsContext() {
	release := make(chan struct{})
	held := s.holdBox(s.box.ID, release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.boxes.UpdatePrice(ctx, repoargs.UpdatePrice{BoxID: s.box.ID, Price: decimal.NewFromInt(5)})
	s.ErrorIs(err, context.DeadlineExceeded)

	close(release)
	s.Require().NoError(<-held)

	box, err := s.boxes.FindByID(context.Background(), s.box.ID)
	s.Require().NoError(err)
	s.True(box.Price.Equal(decimal.NewFromInt(20)))
}

func (s *StoreTestSuite) TestRollbackReleasesRowLocks() {
	ctx := context.Background()
	failure := errors.New("boom")
	err := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		boxes, _ := uow.GetAs[*BoxRepository](tx, uow.RepositoryName(repoargs.BoxRepoName))
		users, _ := uow.GetAs[*UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if _, decErr := boxes.DecrementStock(c, s.box.ID); decErr != nil {
			return decErr
		}
		// повторное обращение к своей строке внутри транзакции не ждет
		if _, updErr := boxes.UpdatePrice(c, repoargs.UpdatePrice{BoxID: s.box.ID, Price: decimal.NewFromInt(7)}); updErr != nil {
			return updErr
		}
		if _, debitErr := users.DebitBalance(c, repoargs.DebitBalance{UserID: s.user.ID, Amount: decimal.NewFromInt(1)}); debitErr != nil {
			return debitErr
		}
		return failure
	})
	s.Require().ErrorIs(err, failure)

	timeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	box, err := s.boxes.UpdateStock(timeout, repoargs.UpdateStock{BoxID: s.box.ID, Remaining: 5})
	s.Require().NoError(err)
	s.Equal(int64(5), box.Remaining)
	s.True(box.Price.Equal(decimal.NewFromInt(20)))

	user, err := s.users.DebitBalance(timeout, repoargs.DebitBalance{UserID: s.user.ID, Amount: decimal.NewFromInt(1)})
	s.Require().NoError(err)
	s.True(user.Balance.Equal(decimal.NewFromInt(99)))
}

func (s *StoreTestSuite) TestUpdateStockAndPrice() {
	ctx := context.Background()

	box, err := s.boxes.UpdateStock(ctx, repoargs.UpdateStock{BoxID: s.box.ID, Remaining: 40})
	s.Require().NoError(err)
	s.Equal(int64(40), box.Remaining)

	box, err = s.boxes.UpdatePrice(ctx, repoargs.UpdatePrice{BoxID: s.box.ID, Price: decimal.NewFromInt(35)})
	s.Require().NoError(err)
	s.True(box.Price.Equal(decimal.NewFromInt(35)))
	s.Equal(int64(40), box.Remaining)

	_, err = s.boxes.UpdateStock(ctx, repoargs.UpdateStock{BoxID: 404, Remaining: 1})
	s.ErrorIs(err, domain.ErrRecordNotFound)
	_, err = s.boxes.UpdateStock(ctx, repoargs.UpdateStock{BoxID: s.box.ID, Remaining: -1})
	s.ErrorIs(err, domain.ErrUnknown)
	_, err = s.boxes.UpdatePrice(ctx, repoargs.UpdatePrice{BoxID: s.box.ID, Price: decimal.Zero})
	s.ErrorIs(err, domain.ErrUnknown)

	found, err := s.boxes.FindByID(ctx, s.box.ID)
	s.Require().NoError(err)
	s.Len(found.Rewards, 1)
}
