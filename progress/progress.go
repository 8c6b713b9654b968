package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/alarmq/internal/clock"
)

// Delta represents an incremental counter change emitted by producers or
// consumers. Fields are signed and can be either positive or negative.
type Delta struct {
	Sent     int
	Received int
	Alarms   int
	Normals  int
	Rejected int
	Blocked  int
}

// Progress keeps aggregated counters for one run. It is safe for concurrent use.
type Progress struct {
	RunID     string
	Scenario  string
	StartedAt time.Time

	Sent     int
	Received int
	// Alarms and Normals count received messages per kind
	Alarms   int
	Normals  int
	Rejected int
	// Blocked counts alarm sends that found the slot occupied
	Blocked int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta. If an onChange callback has been
// registered it is invoked with a copy of the updated tracker outside the
// critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.Sent += d.Sent
	p.Received += d.Received
	p.Alarms += d.Alarms
	p.Normals += d.Normals
	p.Rejected += d.Rejected
	p.Blocked += d.Blocked
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Pending returns sent minus received
func (p *Progress) Pending() int {
	if p == nil {
		return 0
	}
	p.Lock()
	defer p.Unlock()
	return p.Sent - p.Received
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// copy must be called with p locked; the returned value has a fresh mutex.
func (p *Progress) copy() Progress {
	return Progress{
		RunID:     p.RunID,
		Scenario:  p.Scenario,
		StartedAt: p.StartedAt,
		Sent:      p.Sent,
		Received:  p.Received,
		Alarms:    p.Alarms,
		Normals:   p.Normals,
		Rejected:  p.Rejected,
		Blocked:   p.Blocked,
	}
}

// OnChange registers a callback that is invoked after every Update. Passing
// nil disables the callback.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both.
func WithNewTracker(ctx context.Context, runID, scenario string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Scenario:  scenario,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx looks up the tracker in ctx (if any) and applies the delta.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
