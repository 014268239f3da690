// Package countdown computes the time left until a fixed target and keeps
// that value fresh once per second.
package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	msPerDay    = 1000 * 60 * 60 * 24
	msPerHour   = 1000 * 60 * 60
	msPerMinute = 1000 * 60
	msPerSecond = 1000

	// TickInterval is how often a running Timer recomputes its value.
	TickInterval = time.Second
)

// Remaining is a day/hour/minute/second breakdown of a duration.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// TotalSeconds folds the breakdown back into whole seconds.
func (r Remaining) TotalSeconds() int64 {
	return int64(r.Days)*86400 + int64(r.Hours)*3600 + int64(r.Minutes)*60 + int64(r.Seconds)
}

// IsZero reports whether nothing is left.
func (r Remaining) IsZero() bool {
	return r == Remaining{}
}

// Until breaks target-now down into days, hours, minutes and seconds.
// Anything at or past the target is the zero value.
func Until(target, now time.Time) Remaining {
	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return Remaining{}
	}
	return Remaining{
		Days:    int(diff / msPerDay),
		Hours:   int(diff % msPerDay / msPerHour),
		Minutes: int(diff % msPerHour / msPerMinute),
		Seconds: int(diff % msPerMinute / msPerSecond),
	}
}

// Timer recomputes the breakdown for a target once per TickInterval.
type Timer struct {
	clock     clockwork.Clock
	target    time.Time
	onArrive  func()
	cancel    context.CancelFunc
	done      chan struct{}
	remaining Remaining
	mu        sync.RWMutex
	lifeMu    sync.Mutex
	arrived   bool
}

// NewTimer creates a stopped timer. A nil clock means the real clock.
func NewTimer(target time.Time, clock clockwork.Clock) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{
		clock:  clock,
		target: target,
	}
}

// OnArrive registers fn to run once, the first time the countdown reaches
// zero. It must be set before Start.
func (t *Timer) OnArrive(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onArrive = fn
}

// Target returns the timestamp being counted down to.
func (t *Timer) Target() time.Time {
	return t.target
}

// Start computes the current value and launches the ticker. Calling Start
// on a running timer is a no-op.
func (t *Timer) Start(ctx context.Context) {
	t.lifeMu.Lock()
	defer t.lifeMu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})

	t.update(t.clock.Now())

	ticker := t.clock.NewTicker(TickInterval)
	go func(done chan struct{}) {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.Chan():
				t.update(now)
			}
		}
	}(t.done)

	log.Debug().Time("target", t.target).Msg("countdown timer started")
}

// Stop halts the ticker and waits for its goroutine to exit.
func (t *Timer) Stop() {
	t.lifeMu.Lock()
	defer t.lifeMu.Unlock()
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.done = nil
	log.Debug().Msg("countdown timer stopped")
}

// Remaining returns the most recently computed breakdown.
func (t *Timer) Remaining() Remaining {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.remaining
}

// Arrived reports whether the target has been reached.
func (t *Timer) Arrived() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arrived
}

func (t *Timer) update(now time.Time) {
	r := Until(t.target, now)

	var fire func()
	t.mu.Lock()
	t.remaining = r
	if r.IsZero() && !t.arrived {
		t.arrived = true
		fire = t.onArrive
	}
	t.mu.Unlock()

	if fire != nil {
		log.Info().Time("target", t.target).Msg("countdown reached target")
		fire()
	}
}
