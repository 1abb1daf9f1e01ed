package service

import (
	"context"
	"sync"
	"time"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/guard"
)

// sectionPicker считает покупки, одновременно находящиеся внутри критической секции, отдельно для
// каждого пула наград (пул определяет коробку). Каждый вызов ждет до wait, пока внутри секции не
// окажется want покупок, чтобы перекрытие было видно без расчета на планировщик.
type sectionPicker struct {
	picker RewardPicker
	want   int
	wait   time.Duration

	mu       sync.Mutex
	inside   map[int64]int
	peak     map[int64]int
	total    int
	peakSeen int
}

func newSectionPicker(picker RewardPicker, want int, wait time.Duration) *sectionPicker {
	return &sectionPicker{
		picker: picker,
		want:   want,
		wait:   wait,
		inside: make(map[int64]int),
		peak:   make(map[int64]int),
	}
}

func (p *sectionPicker) Pick(pool []domain.Goods) (domain.Goods, error) {
	key := pool[0].ID

	p.mu.Lock()
	p.inside[key]++
	p.total++
	p.peak[key] = max(p.peak[key], p.inside[key])
	p.peakSeen = max(p.peakSeen, p.total)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inside[key]--
		p.total--
		p.mu.Unlock()
	}()

	deadline := time.Now().Add(p.wait)
	for time.Now().Before(deadline) && p.current() < p.want {
		time.Sleep(time.Millisecond)
	}
	return p.picker.Pick(pool) //nolint:wrapcheck
}

func (p *sectionPicker) current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *sectionPicker) peakFor(goodsID int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peak[goodsID]
}

func (p *sectionPicker) peakOverall() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.peakSeen
}

// passGuard ничего не блокирует.
type passGuard struct{}

func (passGuard) Acquire(context.Context, string) (*guard.Handle, error) {
	return &guard.Handle{}, nil
}

func (passGuard) Release(context.Context, *guard.Handle) error {
	return nil
}

type purchase struct {
	buyer *domain.User
	boxID int64
}

// placeAll запускает покупки одновременно и возвращает их ошибки.
func (s *OrderServiceTestSuite) placeAll(svc *OrderService, purchases []purchase) []error {
	errs := make([]error, len(purchases))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i, p := range purchases {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Place(context.Background(), p.buyer.Username, p.boxID)
		}()
	}
	close(start)
	wg.Wait()
	return errs
}

// Хранилище не сериализует покупки, поэтому в секции одной коробки одновременно бывает не больше одной
// покупки только благодаря блокировке.
func (s *OrderServiceTestSuite) TestGuardExcludesPurchasesOfSameBox() {
	const buyers = 4
	box, goods := s.fx.box(10, buyers, "G1")
	picker := newSectionPicker(s.selector, 2, 100*time.Millisecond)
	svc := s.newServiceWithPicker(s.guard, picker, guard.ScopeBox)

	purchases := make([]purchase, buyers)
	for i := range purchases {
		purchases[i] = purchase{buyer: s.fx.user(10, false), boxID: box.ID}
	}
	for _, err := range s.placeAll(svc, purchases) {
		s.NoError(err)
	}

	s.Equal(1, picker.peakFor(goods[0].ID))
	s.Equal(int64(0), s.fx.remaining(box.ID))
}

// Без блокировки секции одной коробки перекрываются. Остаток при этом всё равно не уходит в минус за
// счет условного списания в хранилище.
func (s *OrderServiceTestSuite) TestWithoutGuardSectionsOfSameBoxOverlap() {
	box, goods := s.fx.box(10, 2, "G1")
	picker := newSectionPicker(s.selector, 2, time.Second)
	svc := s.newServiceWithPicker(passGuard{}, picker, guard.ScopeBox)

	errs := s.placeAll(svc, []purchase{
		{buyer: s.fx.user(10, false), boxID: box.ID},
		{buyer: s.fx.user(10, false), boxID: box.ID},
	})
	for _, err := range errs {
		s.NoError(err)
	}

	s.Equal(2, picker.peakFor(goods[0].ID))
	s.Equal(int64(0), s.fx.remaining(box.ID))
}

// Покупки разных коробок при блокировке по коробке находятся в своих секциях одновременно.
func (s *OrderServiceTestSuite) TestBoxScopeRunsDifferentBoxesConcurrently() {
	first, firstGoods := s.fx.box(10, 1, "G1")
	second, secondGoods := s.fx.box(20, 1, "G2")
	picker := newSectionPicker(s.selector, 2, time.Second)
	svc := s.newServiceWithPicker(s.guard, picker, guard.ScopeBox)

	firstBuyer, secondBuyer := s.fx.user(10, false), s.fx.user(20, false)
	errs := s.placeAll(svc, []purchase{
		{buyer: firstBuyer, boxID: first.ID},
		{buyer: secondBuyer, boxID: second.ID},
	})
	for _, err := range errs {
		s.NoError(err)
	}

	s.Equal(2, picker.peakOverall())
	s.Equal(1, picker.peakFor(firstGoods[0].ID))
	s.Equal(1, picker.peakFor(secondGoods[0].ID))
	s.True(s.fx.balance(firstBuyer.ID).IsZero())
	s.True(s.fx.balance(secondBuyer.ID).IsZero())
}

// С общей блокировкой покупки разных коробок не пересекаются.
func (s *OrderServiceTestSuite) TestGlobalScopeExcludesDifferentBoxes() {
	first, _ := s.fx.box(10, 1, "G1")
	second, _ := s.fx.box(10, 1, "G2")
	picker := newSectionPicker(s.selector, 2, 100*time.Millisecond)
	svc := s.newServiceWithPicker(s.guard, picker, guard.ScopeGlobal)

	errs := s.placeAll(svc, []purchase{
		{buyer: s.fx.user(10, false), boxID: first.ID},
		{buyer: s.fx.user(10, false), boxID: second.ID},
	})
	for _, err := range errs {
		s.NoError(err)
	}

	s.Equal(1, picker.peakOverall())
}

func (s *OrderServiceTestSuite) newServiceWithPicker(g guard.Guard, picker RewardPicker, scope guard.Scope) *OrderService {
	svc, err := NewOrderService(OrderServiceArgs{
		UOW:       newTestUOW(s.T(), s.store, nil),
		Guard:     g,
		Picker:    picker,
		LockScope: scope,
		Logger:    newTestLogger(),
	})
	s.Require().NoError(err)
	return svc
}
