package alarm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/viant/alarmq/service/messaging"
)

var errCapacity = errors.New("capacity reached")

// Queue is a thread-safe queue holding at most one alarm message and an
// unbounded FIFO of normal messages. Receivers always get the pending alarm
// first.
//
// A single mutex guards all state. Senders of an alarm wait on alarmFree while
// the slot is occupied; receivers wait on hasMessages while nothing is pending.
// Every wait re-checks its predicate after waking.
type Queue[T any] struct {
	mu          sync.Mutex
	hasMessages *sync.Cond
	alarmFree   *sync.Cond

	alarm    T
	hasAlarm bool
	normal   ring[T]
	// pending is hasAlarm (0/1) plus normal.len()
	pending int

	logger *logiface.Logger[logiface.Event]
}

// New creates an empty queue
func New[T any](options ...Option) (*Queue[T], error) {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be >= 0, got %d", messaging.ErrInitFailure, cfg.capacity)
	}
	q := &Queue[T]{
		normal: ring[T]{limit: cfg.capacity, reserve: cfg.reserve},
		logger: cfg.logger,
	}
	q.hasMessages = sync.NewCond(&q.mu)
	q.alarmFree = sync.NewCond(&q.mu)
	return q, nil
}

// Send adds payload to the queue. An alarm send blocks while another alarm is
// pending; a normal send never blocks and fails with messaging.ErrNoRoom only
// when the normal buffer can not grow.
func (q *Queue[T]) Send(payload T, kind messaging.Kind) error {
	return q.send(context.Background(), payload, kind)
}

// Receive blocks until a message is pending and returns it, alarm first.
func (q *Queue[T]) Receive() (T, messaging.Kind) {
	payload, kind, _ := q.receive(context.Background())
	return payload, kind
}

// TryReceive returns a pending message without blocking; ok is false when the
// queue is empty.
func (q *Queue[T]) TryReceive() (payload T, kind messaging.Kind, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == 0 {
		return payload, messaging.Normal, false
	}
	payload, kind = q.take()
	return payload, kind, true
}

// Publish is Send that stops waiting for the alarm slot once ctx is done.
func (q *Queue[T]) Publish(ctx context.Context, payload T, kind messaging.Kind) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return q.send(ctx, payload, kind)
}

// Consume is Receive that stops waiting once ctx is done.
func (q *Queue[T]) Consume(ctx context.Context) (*messaging.Message[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, kind, err := q.receive(ctx)
	if err != nil {
		return nil, err
	}
	return messaging.NewMessage(payload, kind), nil
}

// Size returns the number of pending messages. The value may be stale as soon
// as it is returned.
func (q *Queue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// AlarmPresent reports whether an alarm message is pending. The value may be
// stale as soon as it is returned.
func (q *Queue[T]) AlarmPresent() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.hasAlarm
}

// Destroy releases the normal message buffer. The caller must guarantee that
// no goroutine is blocked in, or will later call, any queue method, and that no
// alarm is pending; none of this is checked.
func (q *Queue[T]) Destroy() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.normal.release()
	var zero T
	q.alarm = zero
	q.hasAlarm = false
	q.pending = 0
}

func (q *Queue[T]) send(ctx context.Context, payload T, kind messaging.Kind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %d", messaging.ErrInvalidKind, int(kind))
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	switch kind {
	case messaging.Alarm:
		if err := q.awaitAlarmSlot(ctx); err != nil {
			return err
		}
		q.alarm = payload
		q.hasAlarm = true
	default:
		if err := q.normal.push(payload); err != nil {
			return fmt.Errorf("%w: %w", messaging.ErrNoRoom, err)
		}
	}
	q.pending++
	q.hasMessages.Signal()
	return nil
}

func (q *Queue[T]) receive(ctx context.Context) (T, messaging.Kind, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.awaitMessage(ctx); err != nil {
		var zero T
		return zero, messaging.Normal, err
	}
	payload, kind := q.take()
	return payload, kind, nil
}

// awaitAlarmSlot waits, with q.mu held, until the alarm slot is free or ctx is done.
func (q *Queue[T]) awaitAlarmSlot(ctx context.Context) error {
	if !q.hasAlarm {
		return nil
	}
	q.logger.Debug().Log("alarm slot occupied, sender waiting")
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.alarmFree.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}
	for q.hasAlarm {
		if err := ctx.Err(); err != nil {
			q.logger.Debug().Err(err).Log("alarm sender gave up")
			return err
		}
		q.alarmFree.Wait()
	}
	q.logger.Debug().Log("alarm slot free, sender resumed")
	return nil
}

// awaitMessage waits, with q.mu held, until a message is pending or ctx is done.
func (q *Queue[T]) awaitMessage(ctx context.Context) error {
	if q.pending > 0 {
		return nil
	}
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.hasMessages.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}
	for q.pending == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		q.hasMessages.Wait()
	}
	return nil
}

// take removes the next message, alarm first; q.mu must be held and pending > 0.
func (q *Queue[T]) take() (T, messaging.Kind) {
	if q.hasAlarm {
		payload := q.alarm
		var zero T
		q.alarm = zero
		q.hasAlarm = false
		q.pending--
		q.alarmFree.Signal()
		q.logger.Debug().Int("pending", q.pending).Log("alarm received, slot free")
		return payload, messaging.Alarm
	}
	payload, _ := q.normal.pop()
	q.pending--
	return payload, messaging.Normal
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
