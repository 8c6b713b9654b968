package scenario

import (
	"time"

	"github.com/viant/alarmq/progress"
	"github.com/viant/alarmq/service/messaging"
)

// Delivery is a message received by a consumer worker
type Delivery struct {
	Worker  int            `json:"worker"`
	Payload int            `json:"payload"`
	Kind    messaging.Kind `json:"kind"`
	// Elapsed is the time since the run started
	Elapsed time.Duration `json:"elapsed"`
}

// Report summarises a scenario run
type Report struct {
	RunID     string        `json:"runId"`
	Scenario  string        `json:"scenario"`
	Seed      uint64        `json:"seed"`
	StartedAt time.Time     `json:"startedAt"`
	Elapsed   time.Duration `json:"elapsed"`
	Received  []Delivery    `json:"received"`
	// Size and AlarmPresent are the queue state once all goroutines finished
	Size         int               `json:"size"`
	AlarmPresent bool              `json:"alarmPresent"`
	Progress     progress.Progress `json:"progress"`
}

// Payloads returns received payloads in delivery order
func (r *Report) Payloads() []int {
	var result = make([]int, 0, len(r.Received))
	for _, delivery := range r.Received {
		result = append(result, delivery.Payload)
	}
	return result
}
