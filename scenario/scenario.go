package scenario

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/viant/alarmq/service/messaging"
)

// Scenario describes producers publishing to a shared queue and the
// consumers draining it
type Scenario struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Seed        uint64      `json:"seed,omitempty" yaml:"seed,omitempty"`
	Producers   []*Producer `json:"producers" yaml:"producers"`
	Consumers   Consumers   `json:"consumers" yaml:"consumers"`
}

// Producer publishes its steps in order
type Producer struct {
	ID    int     `json:"id" yaml:"id"`
	Steps []*Step `json:"steps" yaml:"steps"`
}

// Step sleeps for Delay and publishes Payload with Kind
type Step struct {
	Kind    messaging.Kind `json:"kind" yaml:"kind"`
	Payload int            `json:"payload" yaml:"payload"`
	Delay   Delay          `json:"delay" yaml:"delay"`
}

// Delay is a random duration in [Min, Max]; Max of zero means a fixed Min
type Delay struct {
	Min time.Duration `json:"min" yaml:"min"`
	Max time.Duration `json:"max,omitempty" yaml:"max,omitempty"`
}

// Consumers defines the consuming side
type Consumers struct {
	Workers int `json:"workers" yaml:"workers"`
	// Receive is the number of messages each worker receives
	Receive    int           `json:"receive" yaml:"receive"`
	StartDelay time.Duration `json:"startDelay,omitempty" yaml:"startDelay,omitempty"`
}

// Pick returns the delay to apply
func (d Delay) Pick(rng *rand.Rand) time.Duration {
	if d.Max <= d.Min || rng == nil {
		return d.Min
	}
	return d.Min + time.Duration(rng.Int64N(int64(d.Max-d.Min)+1))
}

// Sends returns the number of messages all producers publish
func (s *Scenario) Sends() int {
	total := 0
	for _, producer := range s.Producers {
		total += len(producer.Steps)
	}
	return total
}

// Receives returns the number of messages all consumers receive
func (s *Scenario) Receives() int {
	return s.Consumers.Workers * s.Consumers.Receive
}

// Validate checks scenario consistency
func (s *Scenario) Validate() error {
	if s == nil {
		return fmt.Errorf("scenario was nil")
	}
	var errs []error
	if s.Name == "" {
		errs = append(errs, fmt.Errorf("name was empty"))
	}
	if len(s.Producers) == 0 {
		errs = append(errs, fmt.Errorf("producers were empty"))
	}
	ids := map[int]bool{}
	for i, producer := range s.Producers {
		if producer == nil {
			errs = append(errs, fmt.Errorf("producers[%d] was nil", i))
			continue
		}
		if ids[producer.ID] {
			errs = append(errs, fmt.Errorf("producers[%d]: duplicate id %d", i, producer.ID))
		}
		ids[producer.ID] = true
		for j, step := range producer.Steps {
			if step == nil {
				errs = append(errs, fmt.Errorf("producers[%d].steps[%d] was nil", i, j))
				continue
			}
			if !step.Kind.IsValid() {
				errs = append(errs, fmt.Errorf("producers[%d].steps[%d]: %w", i, j, messaging.ErrInvalidKind))
			}
			if step.Delay.Min < 0 || (step.Delay.Max != 0 && step.Delay.Max < step.Delay.Min) {
				errs = append(errs, fmt.Errorf("producers[%d].steps[%d]: invalid delay %v..%v", i, j, step.Delay.Min, step.Delay.Max))
			}
		}
	}
	if s.Consumers.Workers < 0 || s.Consumers.Receive < 0 || s.Consumers.StartDelay < 0 {
		errs = append(errs, fmt.Errorf("consumers: negative value"))
	}
	if s.Consumers.Workers > 0 && s.Consumers.Receive == 0 {
		errs = append(errs, fmt.Errorf("consumers.receive must be > 0 when workers are defined"))
	}
	if len(errs) == 0 && s.Receives() > s.Sends() {
		errs = append(errs, fmt.Errorf("consumers receive %d messages but producers send %d", s.Receives(), s.Sends()))
	}
	return errors.Join(errs...)
}
