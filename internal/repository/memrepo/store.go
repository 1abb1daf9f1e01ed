// Package memrepo хранилище в памяти процесса. Реализует те же репозитории, что и pgrepo, и UnitOfWork
// с откатом изменений. Используется для запуска в одном экземпляре без postgres и в тестах сервисов.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/repository/repoargs"
	"github.com/fsdevblog/groph-blindbox/pkg/uow"
)

// Store данные хранилища. mu защищает карты и держится только на время одной операции. Изменяемые
// строки (коробка, пользователь, заказ) дополнительно блокируются построчно, как UPDATE в postgres:
// транзакция держит блокировки строк до фиксации или отката, операция вне транзакции до своего
// завершения. Чтение блокировок строк не ждет и видит незафиксированные изменения.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users    map[int64]domain.User
	goods    map[int64]domain.Goods
	boxes    map[int64]domain.BlindBox
	rewards  map[int64][]int64
	orders   map[int64]domain.Order
	comments map[int64]domain.Comment

	userSeq, goodsSeq, boxSeq, orderSeq, commentSeq int64

	locksMu sync.Mutex
	locks   map[rowKey]chan struct{}
}

type StoreOption func(*Store)

// WithClock подменяет источник времени для created_at/updated_at.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		now:      time.Now,
		users:    make(map[int64]domain.User),
		goods:    make(map[int64]domain.Goods),
		boxes:    make(map[int64]domain.BlindBox),
		rewards:  make(map[int64][]int64),
		orders:   make(map[int64]domain.Order),
		comments: make(map[int64]domain.Comment),
		locks:    make(map[rowKey]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type rowKey struct {
	table string
	id    int64
}

func boxRow(id int64) rowKey   { return rowKey{table: "blind_boxes", id: id} }
func userRow(id int64) rowKey  { return rowKey{table: "users", id: id} }
func orderRow(id int64) rowKey { return rowKey{table: "orders", id: id} }

func (s *Store) rowLock(key rowKey) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[key] = l
	}
	return l
}

// nextOrderID резервирует идентификатор заказа. Как и у sequence в postgres, откат его не возвращает.
func (s *Store) nextOrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderSeq++
	return s.orderSeq
}

// Session контекст работы репозиториев: либо внутри транзакции (с журналом отката и удерживаемыми
// блокировками строк), либо без неё. Сессия транзакции используется одной горутиной.
type Session struct {
	store *Store
	inTx  bool
	undo  []func()
	held  map[rowKey]struct{}
}

// read выполняет fn под блокировкой карт на чтение.
func (s *Session) read(fn func()) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	fn()
}

// write блокирует строки rows, затем выполняет fn под блокировкой карт на запись. Вне транзакции
// блокировки строк снимаются сразу после fn.
func (s *Session) write(ctx context.Context, fn func() error, rows ...rowKey) error {
	acquired, err := s.lockRows(ctx, rows)
	if err != nil {
		return err
	}
	if !s.inTx {
		defer s.store.unlockRows(acquired)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn()
}

// lockRows захватывает ещё не удерживаемые сессией блокировки строк. При отмене ctx уже взятые в этом
// вызове блокировки отпускаются.
func (s *Session) lockRows(ctx context.Context, rows []rowKey) ([]rowKey, error) {
	acquired := make([]rowKey, 0, len(rows))
	for _, key := range rows {
		if _, ok := s.held[key]; ok || slices.Contains(acquired, key) {
			continue
		}
		select {
		case s.store.rowLock(key) <- struct{}{}:
			acquired = append(acquired, key)
		case <-ctx.Done():
			s.store.unlockRows(acquired)
			return nil, fmt.Errorf("[repository/waiting for %s row %d] %w", key.table, key.id, ctx.Err())
		}
	}
	if s.inTx {
		for _, key := range acquired {
			s.held[key] = struct{}{}
		}
	}
	return acquired, nil
}

func (s *Store) unlockRows(rows []rowKey) {
	for _, key := range rows {
		<-s.rowLock(key)
	}
}

// onRollback запоминает действие, возвращающее данные в прежнее состояние.
func (s *Session) onRollback(fn func()) {
	if s.inTx {
		s.undo = append(s.undo, fn)
	}
}

// finish откатывает изменения, если транзакция не зафиксирована, и отпускает блокировки строк.
func (s *Session) finish(committed bool) {
	if !committed && len(s.undo) > 0 {
		s.store.mu.Lock()
		for i := len(s.undo) - 1; i >= 0; i-- {
			s.undo[i]()
		}
		s.store.mu.Unlock()
	}
	s.undo = nil

	rows := make([]rowKey, 0, len(s.held))
	for key := range s.held {
		rows = append(rows, key)
	}
	s.held = nil
	s.store.unlockRows(rows)
}

type RepositoryFactory func(*Session) uow.Repository

// UnitOfWork реализация uow.UOW поверх Store.
type UnitOfWork struct {
	store        *Store
	repositories map[uow.RepositoryName]RepositoryFactory
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{
		store:        store,
		repositories: make(map[uow.RepositoryName]RepositoryFactory),
	}
}

func (u *UnitOfWork) Register(name uow.RepositoryName, factory RepositoryFactory) error {
	if _, ok := u.repositories[name]; ok {
		return uow.ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет fn в транзакции. При ошибке или панике все изменения, сделанные через репозитории
// транзакции, откатываются. Транзакции над разными строками выполняются параллельно.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	session := &Session{store: u.store, inTx: true, held: make(map[rowKey]struct{})}
	committed := false
	defer func() {
		session.finish(committed)
	}()

	if err := fn(ctx, &transaction{
		session:      session,
		repositories: u.repositories,
		instances:    make(map[uow.RepositoryName]uow.Repository, len(u.repositories)),
	}); err != nil {
		return err
	}
	committed = true
	return nil
}

func (u *UnitOfWork) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	factory, ok := u.repositories[name]
	if !ok {
		return nil, uow.ErrRepositoryNotRegistered
	}
	return factory(&Session{store: u.store}), nil
}

type transaction struct {
	session      *Session
	repositories map[uow.RepositoryName]RepositoryFactory
	instances    map[uow.RepositoryName]uow.Repository
}

func (t *transaction) Get(name uow.RepositoryName) (uow.Repository, error) {
	if repo, ok := t.instances[name]; ok {
		return repo, nil
	}
	factory, ok := t.repositories[name]
	if !ok {
		return nil, uow.ErrRepositoryNotRegistered
	}
	repo := factory(t.session)
	t.instances[name] = repo
	return repo, nil
}

// RegisterRepositories регистрирует все репозитории хранилища под стандартными именами.
func RegisterRepositories(u *UnitOfWork) error {
	factories := map[repoargs.RepositoryName]RepositoryFactory{
		repoargs.UserRepoName:    func(s *Session) uow.Repository { return NewUserRepository(s) },
		repoargs.BoxRepoName:     func(s *Session) uow.Repository { return NewBoxRepository(s) },
		repoargs.OrderRepoName:   func(s *Session) uow.Repository { return NewOrderRepository(s) },
		repoargs.CommentRepoName: func(s *Session) uow.Repository { return NewCommentRepository(s) },
	}
	for name, factory := range factories {
		if err := u.Register(uow.RepositoryName(name), factory); err != nil {
			return fmt.Errorf("registering %s repository: %w", name, err)
		}
	}
	return nil
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("[repository/%s] %w", fmt.Sprintf(format, args...), domain.ErrRecordNotFound)
}

func conditionFailed(conditionErr error, format string, args ...any) error {
	return fmt.Errorf("[repository/%s] %w", fmt.Sprintf(format, args...), conditionErr)
}

func duplicate(format string, args ...any) error {
	return fmt.Errorf("[repository/%s] %w", fmt.Sprintf(format, args...), domain.ErrDuplicateKey)
}

var errInvariant = errors.New("check constraint violation")

func invariantViolation(format string, args ...any) error {
	return fmt.Errorf("[repository/%s] %w: %w", fmt.Sprintf(format, args...), domain.ErrUnknown, errInvariant)
}
