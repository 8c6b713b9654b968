package scenario

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/viant/alarmq/internal/clock"
	"github.com/viant/alarmq/internal/idgen"
	"github.com/viant/alarmq/internal/logging"
	"github.com/viant/alarmq/progress"
	"github.com/viant/alarmq/service/messaging"
	"github.com/viant/alarmq/service/processor"
)

// Runner executes scenarios against a queue. Producers run in their own
// goroutines; consumers run as processor workers.
type Runner struct {
	queue  messaging.Queue[int]
	logger *logging.Logger
	seed   uint64
}

type run struct {
	scenario  *Scenario
	logger    *logging.Logger
	seed      uint64
	startedAt time.Time

	mux      sync.Mutex
	received []Delivery
}

func (r *run) deliver(delivery Delivery) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.received = append(r.received, delivery)
}

// Run executes scenario and blocks until every producer and consumer
// finished or ctx is done. A report is returned with the context error when
// the run was interrupted.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	runID := idgen.NewRunID(scenario.Name)
	ctx, tracker := progress.WithNewTracker(ctx, runID, scenario.Name, nil)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	aRun := &run{
		scenario:  scenario,
		logger:    r.logger.Clone().Str("run", runID).Logger(),
		seed:      r.seedFor(scenario),
		startedAt: tracker.StartedAt,
	}
	aRun.logger.Info().Str("scenario", scenario.Name).Uint64("seed", aRun.seed).Log("scenario started")

	var consumers *processor.Service[int]
	if scenario.Consumers.Workers > 0 {
		var err error
		consumers, err = processor.New[int](r.queue, r.consumer(aRun),
			processor.WithConfig(processor.Config{
				WorkerCount: scenario.Consumers.Workers,
				Limit:       scenario.Consumers.Receive,
				StartDelay:  scenario.Consumers.StartDelay,
				RetryDelay:  processor.DefaultConfig().RetryDelay,
			}),
			processor.WithLogger(aRun.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create consumers: %w", err)
		}
		if err = consumers.Start(ctx); err != nil {
			return nil, err
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, len(scenario.Producers))
	for i, producer := range scenario.Producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = r.produce(ctx, aRun, producer)
		}()
	}
	wg.Wait()
	runErr := errors.Join(errs...)
	if consumers != nil {
		if runErr != nil {
			consumers.Stop()
		} else {
			r.awaitConsumers(ctx, tracker, consumers)
		}
	}
	if runErr == nil {
		runErr = ctx.Err()
	}

	report := &Report{
		RunID:        runID,
		Scenario:     scenario.Name,
		Seed:         aRun.seed,
		StartedAt:    aRun.startedAt,
		Elapsed:      clock.Since(aRun.startedAt),
		Received:     aRun.received,
		Size:         r.queue.Size(),
		AlarmPresent: r.queue.AlarmPresent(),
		Progress:     tracker.Snapshot(),
	}
	aRun.logger.Info().
		Int("sent", report.Progress.Sent).
		Int("received", report.Progress.Received).
		Int("size", report.Size).
		Bool("alarmPresent", report.AlarmPresent).
		Dur("elapsed", report.Elapsed).
		Log("scenario finished")
	return report, runErr
}

// awaitConsumers waits for consumer workers. Rejected sends leave fewer
// messages than planned receives, so workers are stopped once every sent
// message was received.
func (r *Runner) awaitConsumers(ctx context.Context, tracker *progress.Progress, consumers *processor.Service[int]) {
	done := make(chan struct{})
	go func() {
		consumers.Wait()
		close(done)
	}()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			consumers.Stop()
			return
		case <-ticker.C:
			if tracker.Snapshot().Rejected > 0 && tracker.Pending() == 0 {
				consumers.Stop()
				return
			}
		}
	}
}

func (r *Runner) produce(ctx context.Context, aRun *run, producer *Producer) error {
	rng := rand.New(rand.NewPCG(aRun.seed, uint64(producer.ID)))
	logger := aRun.logger.Clone().Int("producer", producer.ID).Logger()
	for _, step := range producer.Steps {
		if !sleep(ctx, step.Delay.Pick(rng)) {
			return ctx.Err()
		}
		if step.Kind == messaging.Alarm && r.queue.AlarmPresent() {
			progress.UpdateCtx(ctx, progress.Delta{Blocked: 1})
			logger.Info().Int("payload", step.Payload).Log("alarm slot occupied, producer may block")
		}
		logger.Info().Str("kind", step.Kind.String()).Int("payload", step.Payload).Log("producer sending")
		err := r.queue.Publish(ctx, step.Payload, step.Kind)
		if errors.Is(err, messaging.ErrNoRoom) {
			progress.UpdateCtx(ctx, progress.Delta{Rejected: 1})
			logger.Warning().Err(err).Int("payload", step.Payload).Log("producer message rejected")
			continue
		}
		if err != nil {
			return fmt.Errorf("producer %d failed to publish %d: %w", producer.ID, step.Payload, err)
		}
		progress.UpdateCtx(ctx, progress.Delta{Sent: 1})
		logger.Info().Str("kind", step.Kind.String()).Int("payload", step.Payload).Int("size", r.queue.Size()).Log("producer sent")
	}
	return nil
}

func (r *Runner) consumer(aRun *run) processor.Handler[int] {
	return func(ctx context.Context, workerID int, msg *messaging.Message[int]) error {
		delta := progress.Delta{Received: 1, Normals: 1}
		if msg.Kind == messaging.Alarm {
			delta = progress.Delta{Received: 1, Alarms: 1}
		}
		progress.UpdateCtx(ctx, delta)
		aRun.deliver(Delivery{
			Worker:  workerID,
			Payload: msg.Payload,
			Kind:    msg.Kind,
			Elapsed: clock.Since(aRun.startedAt),
		})
		aRun.logger.Info().
			Int("consumer", workerID).
			Str("kind", msg.Kind.String()).
			Int("payload", msg.Payload).
			Int("size", r.queue.Size()).
			Log("consumer received")
		return nil
	}
}

func (r *Runner) seedFor(scenario *Scenario) uint64 {
	switch {
	case r.seed != 0:
		return r.seed
	case scenario.Seed != 0:
		return scenario.Seed
	}
	return uint64(clock.Now().UnixNano())
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// NewRunner creates a scenario runner publishing to and consuming from queue
func NewRunner(queue messaging.Queue[int], options ...Option) *Runner {
	ret := &Runner{queue: queue}
	for _, option := range options {
		option(ret)
	}
	return ret
}
