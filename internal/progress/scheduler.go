package progress

import (
	"sync"
	"time"
)

// Scheduler runs a task periodically until the returned cancel func is called.
// Cancel must be safe to call more than once.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (cancel func())
}

// WallClock schedules tasks on real time.Tickers.
type WallClock struct{}

// Every starts a goroutine invoking fn on each tick.
func (WallClock) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}

type manualTask struct {
	interval  time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
}

// ManualClock is a Scheduler driven by Advance. Tasks run on the goroutine
// calling Advance, so tests observe their effects deterministically.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

// NewManualClock returns a clock at elapsed time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Every registers fn to run each interval of manual time.
func (c *ManualClock) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Millisecond
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	task := &manualTask{interval: interval, next: c.now + interval, fn: fn}
	c.tasks = append(c.tasks, task)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		task.cancelled = true
		c.prune()
	}
}

// Advance moves the clock forward by d, firing due tasks in time order.
// Tasks may register or cancel other tasks while running.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due *manualTask
		for _, t := range c.tasks {
			if t.cancelled || t.next > target {
				continue
			}
			if due == nil || t.next < due.next {
				due = t
			}
		}
		if due == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = due.next
		due.next += due.interval
		fn := due.fn
		c.mu.Unlock()

		fn()
	}
}

// Now returns the elapsed manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Active returns the number of registered, uncancelled tasks.
func (c *ManualClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// prune drops cancelled tasks. Must be called with lock held.
func (c *ManualClock) prune() {
	live := c.tasks[:0]
	for _, t := range c.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	c.tasks = live
}
