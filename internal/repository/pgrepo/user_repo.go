package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

const userColumns = `id, created_at, updated_at, username, encrypted_password, balance, is_vip, is_admin, is_super_admin`

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{db: conn}
}

// CreateUser создает юзера в базе данных. В случае конфликта юзернейма возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		INSERT INTO users (username, encrypted_password, balance, is_vip, is_admin, is_super_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.Username, user.Password, user.Balance, user.IsVIP, user.IsAdmin, user.IsSuperAdmin,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return dbUser, nil
}

// FindUserByUsername ищет юзера по его юзернейму. Возвращает ошибку domain.ErrRecordNotFound если запись не найдена,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username %s", username)
	}
	return dbUser, nil
}

func (u *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by id %d", id)
	}
	return dbUser, nil
}

// DebitBalance условное списание: применяется только если на балансе достаточно средств.
// Иначе возвращает domain.ErrInsufficientBalance и ничего не меняет.
func (u *UserRepository) DebitBalance(ctx context.Context, args repoargs.DebitBalance) (*domain.User, error) {
	row := u.db.QueryRow(ctx, `
		UPDATE users SET balance = balance - $2, updated_at = now()
		WHERE id = $1 AND balance >= $2
		RETURNING `+userColumns,
		args.UserID, args.Amount,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertConditionalErr(err, domain.ErrInsufficientBalance, "debiting user %d", args.UserID)
	}
	return dbUser, nil
}

// Count возвращает количество пользователей. Используется при загрузке демо-данных.
func (u *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := u.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return 0, convertErr(err, "counting users")
	}
	return count, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.EncryptedPassword,
		&user.Balance,
		&user.IsVIP,
		&user.IsAdmin,
		&user.IsSuperAdmin,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
