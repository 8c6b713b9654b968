package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/viant/alarmq/internal/logging"
	"github.com/viant/alarmq/service/messaging"
)

// Config represents processor configuration
type Config struct {
	// WorkerCount is the number of workers consuming messages
	WorkerCount int `json:"workers" yaml:"workers"`

	// Limit is the number of messages each worker consumes; 0 means until stopped
	Limit int `json:"limit" yaml:"limit"`

	// StartDelay is applied before the first receive of each worker
	StartDelay time.Duration `json:"startDelay" yaml:"startDelay"`

	// RetryDelay is the back-off after a failed (non-cancellation) consume
	RetryDelay time.Duration `json:"retryDelay" yaml:"retryDelay"`
}

// DefaultConfig returns the default processor configuration
func DefaultConfig() Config {
	return Config{
		WorkerCount: 1,
		RetryDelay:  100 * time.Millisecond,
	}
}

// Validate returns an error describing invalid settings or nil
func (c Config) Validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("processor.workers must be > 0")
	}
	if c.Limit < 0 {
		return fmt.Errorf("processor.limit must be >= 0")
	}
	if c.StartDelay < 0 || c.RetryDelay < 0 {
		return fmt.Errorf("processor delays must be >= 0")
	}
	return nil
}

var defaultErrorLogRates = map[time.Duration]int{
	time.Second: 5,
	time.Minute: 60,
}

// Handler processes a consumed message
type Handler[T any] func(ctx context.Context, workerID int, msg *messaging.Message[T]) error

// Service runs workers consuming from a queue
type Service[T any] struct {
	config  Config
	queue   messaging.Queue[T]
	handler Handler[T]
	logger  *logging.Logger
	limiter *catrate.Limiter

	mux      sync.Mutex
	workers  []*worker[T]
	workerWg sync.WaitGroup
	cancel   context.CancelFunc
}

type worker[T any] struct {
	id      int
	service *Service[T]
	ctx     context.Context
}

// New creates a processor service
func New[T any](queue messaging.Queue[T], handler Handler[T], options ...Option) (*Service[T], error) {
	s := &settings{config: DefaultConfig(), limiter: catrate.NewLimiter(defaultErrorLogRates)}
	for _, opt := range options {
		opt(s)
	}
	if queue == nil {
		return nil, fmt.Errorf("message queue is required")
	}
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	return &Service[T]{
		config:  s.config,
		queue:   queue,
		handler: handler,
		logger:  s.logger,
		limiter: s.limiter,
	}, nil
}

// Start launches the workers; it fails if the service is already running
func (s *Service[T]) Start(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("processor already started")
	}
	ctx, s.cancel = context.WithCancel(ctx)
	for i := 0; i < s.config.WorkerCount; i++ {
		w := &worker[T]{id: i + 1, service: s, ctx: ctx}
		s.workers = append(s.workers, w)
		s.workerWg.Add(1)
		go w.run()
	}
	return nil
}

// Wait blocks until all workers exit
func (s *Service[T]) Wait() {
	s.workerWg.Wait()
}

// Stop cancels all workers and waits for them to exit
func (s *Service[T]) Stop() {
	s.mux.Lock()
	cancel := s.cancel
	s.mux.Unlock()
	if cancel != nil {
		cancel()
	}
	s.Wait()
}

func (w *worker[T]) run() {
	s := w.service
	defer s.workerWg.Done()

	if !w.sleep(s.config.StartDelay) {
		return
	}
	for consumed := 0; s.config.Limit == 0 || consumed < s.config.Limit; {
		msg, err := s.queue.Consume(w.ctx)
		if err != nil {
			if w.ctx.Err() != nil {
				return
			}
			if _, ok := s.limiter.Allow(w.id); ok {
				s.logger.Err().Err(err).Int("worker", w.id).Log("failed to consume message")
			}
			if !w.sleep(s.config.RetryDelay) {
				return
			}
			continue
		}
		consumed++
		if pErr := s.handler(w.ctx, w.id, msg); pErr != nil {
			s.logger.Err().Err(pErr).Int("worker", w.id).Str("kind", msg.Kind.String()).Log("failed to process message")
		}
	}
}

// sleep returns false when the worker context ends first
func (w *worker[T]) sleep(d time.Duration) bool {
	if d <= 0 {
		return w.ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-w.ctx.Done():
		return false
	}
}
