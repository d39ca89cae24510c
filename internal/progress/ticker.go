// Package progress samples the performance channel on a fixed interval and
// reports position and end-of-track.
package progress

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jscyril/mediacore/api"
)

// Default sampling intervals.
const (
	DefaultInterval = 1000 * time.Millisecond
	KaraokeInterval = 200 * time.Millisecond
)

// Sampler is the channel surface the ticker polls.
type Sampler interface {
	Status() api.ChannelStatus
	SamplePosition() float64
	Position() time.Duration
	HasEnded() bool
}

// Sample is one tick's reading.
type Sample struct {
	Percent  float64
	Position time.Duration
	Ended    bool
}

// Ticker polls a Sampler while it is playing. A stopped Ticker never fires again.
type Ticker struct {
	sampler  Sampler
	onSample func(Sample)
	stopped  atomic.Bool
	ended    atomic.Bool

	mu     sync.Mutex
	cancel func()
}

// Start schedules a new Ticker on s.
func Start(s Scheduler, interval time.Duration, sampler Sampler, onSample func(Sample)) *Ticker {
	t := &Ticker{sampler: sampler, onSample: onSample}
	cancel := s.Every(interval, t.tick)

	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()
	return t
}

// tick samples once. End-of-track is reported a single time.
func (t *Ticker) tick() {
	if t.stopped.Load() || t.sampler.Status() != api.ChannelPlaying {
		return
	}

	sample := Sample{
		Percent:  t.sampler.SamplePosition(),
		Position: t.sampler.Position(),
	}
	if t.sampler.HasEnded() {
		if t.ended.Swap(true) {
			return
		}
		sample.Ended = true
	}

	if t.stopped.Load() {
		return
	}
	t.onSample(sample)
}

// Stop cancels the ticker. It is safe to call more than once.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}
	t.stopped.Store(true)

	t.mu.Lock()
	cancel := t.cancel
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	return t == nil || t.stopped.Load()
}
