package memrepo

import (
	"context"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
)

type UserRepository struct {
	s *Session
}

func NewUserRepository(s *Session) *UserRepository {
	return &UserRepository{s: s}
}

func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	var user domain.User
	err := u.s.write(ctx, func() error {
		st := u.s.store
		for _, existing := range st.users {
			if existing.Username == args.Username {
				return duplicate("creating user")
			}
		}
		if args.Balance.IsNegative() {
			return invariantViolation("creating user")
		}
		st.userSeq++
		now := st.now()
		user = domain.User{
			ID:                st.userSeq,
			CreatedAt:         now,
			UpdatedAt:         now,
			Username:          args.Username,
			EncryptedPassword: args.Password,
			Balance:           args.Balance,
			IsVIP:             args.IsVIP,
			IsAdmin:           args.IsAdmin,
			IsSuperAdmin:      args.IsSuperAdmin,
		}
		st.users[user.ID] = user
		u.s.onRollback(func() { delete(st.users, user.ID) })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	var (
		user  domain.User
		found bool
	)
	u.s.read(func() {
		for _, existing := range u.s.store.users {
			if existing.Username == username {
				user, found = existing, true
				return
			}
		}
	})
	if !found {
		return nil, notFound("finding user by username %s", username)
	}
	return &user, nil
}

func (u *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	var (
		user  domain.User
		found bool
	)
	u.s.read(func() {
		user, found = u.s.store.users[id]
	})
	if !found {
		return nil, notFound("finding user by id %d", id)
	}
	return &user, nil
}

func (u *UserRepository) DebitBalance(ctx context.Context, args repoargs.DebitBalance) (*domain.User, error) {
	var user domain.User
	err := u.s.write(ctx, func() error {
		st := u.s.store
		prev, ok := st.users[args.UserID]
		if !ok || prev.Balance.LessThan(args.Amount) {
			return conditionFailed(domain.ErrInsufficientBalance, "debiting user %d", args.UserID)
		}
		user = prev
		user.Balance = prev.Balance.Sub(args.Amount)
		user.UpdatedAt = st.now()
		st.users[user.ID] = user
		u.s.onRollback(func() { st.users[prev.ID] = prev })
		return nil
	}, userRow(args.UserID))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserRepository) Count(_ context.Context) (int64, error) {
	var count int64
	u.s.read(func() {
		count = int64(len(u.s.store.users))
	})
	return count, nil
}
