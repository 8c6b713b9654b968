package traced

import (
	"context"

	"github.com/viant/alarmq/service/messaging"
	"github.com/viant/alarmq/tracing"
)

const (
	publishSpan = "alarmq.Publish"
	consumeSpan = "alarmq.Consume"
)

// Queue decorates a messaging.Queue with producer and consumer spans
type Queue[T any] struct {
	queue messaging.Queue[T]
}

// New creates a traced queue
func New[T any](queue messaging.Queue[T]) *Queue[T] {
	return &Queue[T]{queue: queue}
}

// Publish publishes payload within a PRODUCER span
func (q *Queue[T]) Publish(ctx context.Context, payload T, kind messaging.Kind) (err error) {
	ctx, span := tracing.StartSpan(ctx, publishSpan, tracing.KindProducer)
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"message.kind": kind.String()})
	err = q.queue.Publish(ctx, payload, kind)
	span.WithInt("queue.size", q.queue.Size())
	return err
}

// Consume consumes a message within a CONSUMER span
func (q *Queue[T]) Consume(ctx context.Context) (msg *messaging.Message[T], err error) {
	ctx, span := tracing.StartSpan(ctx, consumeSpan, tracing.KindConsumer)
	defer func() { tracing.EndSpan(span, err) }()
	if msg, err = q.queue.Consume(ctx); err != nil {
		return nil, err
	}
	span.WithAttributes(map[string]string{"message.kind": msg.Kind.String()})
	span.WithInt("queue.size", q.queue.Size())
	return msg, nil
}

// Size returns the underlying queue size
func (q *Queue[T]) Size() int {
	return q.queue.Size()
}

// AlarmPresent returns whether the underlying queue has a pending alarm
func (q *Queue[T]) AlarmPresent() bool {
	return q.queue.AlarmPresent()
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
