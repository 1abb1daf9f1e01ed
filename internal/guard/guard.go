// Package guard критическая секция покупки. Две взаимозаменяемые реализации: LocalGuard (мьютекс на ключ
// с FIFO очередью внутри процесса) и RedisGuard (распределенная блокировка с арендой).
package guard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
)

var (
	// ErrNotHeld освобождение блокировки, которой вызывающий не владеет (повторный Release и т.п.).
	ErrNotHeld = errors.New("[guard] lock is not held")
	// ErrLeaseLost аренда истекла и ключ уже занят другим владельцем или удален.
	ErrLeaseLost = errors.New("[guard] lock lease lost")
)

type Scope string

const (
	ScopeBox    Scope = "box"
	ScopeGlobal Scope = "global"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeBox, ScopeGlobal:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown lock scope `%s`", s)
	}
}

const keyPrefix = "blindbox:lock:"

// LockKey ключ блокировки покупки коробки boxID. Для ScopeGlobal все покупки делят один ключ.
func LockKey(scope Scope, boxID int64) string {
	if scope == ScopeGlobal {
		return keyPrefix + "global"
	}
	return keyPrefix + "box:" + strconv.FormatInt(boxID, 10)
}

// Handle владение блокировкой, полученное из Acquire.
type Handle struct {
	key      string
	token    string
	released atomic.Bool
}

func (h *Handle) Key() string {
	return h.key
}

// Guard контракт acquire-then-release. Acquire либо ждет освобождения ключа, либо сразу возвращает
// domain.ErrSystemBusy, в зависимости от реализации.
type Guard interface {
	Acquire(ctx context.Context, key string) (*Handle, error)
	Release(ctx context.Context, h *Handle) error
}

// WithLock выполняет fn под блокировкой key. Блокировка освобождается на любом пути выхода из fn,
// включая панику. Ошибка освобождения логируется реализацией и не подменяет результат fn.
func WithLock(ctx context.Context, g Guard, key string, fn func() error) error {
	h, err := g.Acquire(ctx, key)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer func() {
		_ = g.Release(context.WithoutCancel(ctx), h)
	}()
	return fn()
}
