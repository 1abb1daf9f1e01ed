// Package outbox публикует анонсы новых заказов в очередь сообщений.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-blindbox/internal/domain"
	"github.com/fsdevblog/groph-blindbox/internal/transport/outbox/dto"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultPublishTimeout         = 5 * time.Second
	defaultPollInterval           = time.Second
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 4
)

// Processor пересылает неанонсированные заказы в Publisher.
type Processor struct {
	publisher         Publisher
	svs               Servicer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
	pollInterval      time.Duration
}

func New(svs Servicer, publisher Publisher, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "outbox",
		"module":    "processor",
	})

	return &Processor{
		svs:               svs,
		publisher:         publisher,
		l:                 loggerEntry,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		pollInterval:      defaultPollInterval,
	}
}

// SetLimitPerIteration устанавливает кол-во заказов, обрабатываемых в одной итерации.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	if limit > 0 {
		p.limitPerIteration = limit
	}
	return p
}

// SetWorkers устанавливает кол-во воркеров публикации.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// Run запускает пересылку в цикле до отмены контекста.
//
// Алгоритм работы:
//  1. В каждой итерации запрашивает через сервисный слой самые старые неанонсированные заказы (не больше
//     SetLimitPerIteration).
//  2. N воркеров (SetWorkers) публикуют события параллельно.
//  3. Успешно опубликованные заказы помечаются одним вызовом, остальные попадут в следующую итерацию.
//
// Доставка at-least-once: если пометка не удалась, событие будет опубликовано повторно.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	for {
		err := p.process(ctx)
		if err == nil && ctx.Err() == nil {
			// после успешной итерации сразу берем следующую пачку.
			continue
		}
		if err != nil && !errors.Is(err, ErrNoOrders) && ctx.Err() == nil {
			p.l.WithError(err).Error("process error")
		}

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(p.pollInterval): // пауза, чтоб не заддосить БД.
		}
	}
}

// process выполняет одну итерацию. Возвращает ErrNoOrders, если публиковать нечего.
func (p *Processor) process(ctx context.Context) error {
	orders, ordersErr := p.produce(ctx)
	if ordersErr != nil {
		return fmt.Errorf("process: %w", ordersErr)
	}

	published := p.runWorkers(ctx, orders)
	if len(published) == 0 {
		return fmt.Errorf("process: none of %d orders published", len(orders))
	}

	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultServiceTimeout)
	defer cancel()

	if markErr := p.svs.MarkAnnounced(reqCtx, published); markErr != nil {
		return fmt.Errorf("process: %w", markErr)
	}
	return nil
}

type workerResult struct {
	WorkerID uint
	OrderID  int64
	Error    error
}

// runWorkers fan-out/fan-in публикации. Возвращает id успешно опубликованных заказов.
func (p *Processor) runWorkers(ctx context.Context, orders []domain.Order) []int64 {
	var taskCh = make(chan *domain.Order, len(orders))
	for i := range orders {
		taskCh <- &orders[i]
	}
	close(taskCh)

	var resultCh = make(chan workerResult, len(orders))

	wg := new(sync.WaitGroup)
	for i := range p.workers {
		wg.Add(1)
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	published := make([]int64, 0, len(orders))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":  result.WorkerID,
			"orderID": result.OrderID,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("publish order")
			continue
		}
		l.Debug("Published")
		published = append(published, result.OrderID)
	}
	return published
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.Order,
	resultCh chan<- workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			pubCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
			err := p.publisher.Publish(pubCtx, dto.NewOrderPlaced(task))
			cancel()
			resultCh <- workerResult{WorkerID: workerID, OrderID: task.ID, Error: err}
		}
	}
}

// produce получает заказы для публикации. Возвращает ErrNoOrders, если их нет.
func (p *Processor) produce(ctx context.Context) ([]domain.Order, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	orders, ordersErr := p.svs.PendingAnnouncements(produceCtx, p.limitPerIteration)
	if ordersErr != nil {
		return nil, fmt.Errorf("produce: %w", ordersErr)
	}

	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	return orders, nil
}
