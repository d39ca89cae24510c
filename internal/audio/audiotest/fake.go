// Package audiotest provides in-memory Media and Backend fakes.
package audiotest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jscyril/mediacore/internal/audio"
)

var (
	_ audio.Media   = (*Media)(nil)
	_ audio.Backend = (*Backend)(nil)
)

// ErrStart is returned by Media.Play when the backend is told to fail starts.
var ErrStart = errors.New("media refused to start")

// Media is a controllable fake whose clock only moves when told to.
type Media struct {
	Locator string

	mu       sync.Mutex
	playing  bool
	started  bool
	paused   bool
	closed   bool
	ended    bool
	volume   float64
	position time.Duration
	duration time.Duration
	playErr  error
	plays    int
}

func (m *Media) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plays++
	if m.playErr != nil {
		return m.playErr
	}
	m.started, m.playing, m.paused = true, true, false
	return nil
}

func (m *Media) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing, m.paused = false, true
}

func (m *Media) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playErr != nil {
		return m.playErr
	}
	m.playing, m.paused = true, false
	return nil
}

func (m *Media) SetVolume(percent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = percent
}

func (m *Media) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
	return nil
}

func (m *Media) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Media) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Media) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ended
}

func (m *Media) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed, m.playing = true, false
	return nil
}

// SetPosition moves the fake playback clock.
func (m *Media) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

// Finish marks the media as naturally completed.
func (m *Media) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = m.duration
	m.ended = true
	m.playing = false
}

// Playing reports whether the media is audible.
func (m *Media) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Closed reports whether the handle was released.
func (m *Media) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Volume returns the last applied volume.
func (m *Media) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Plays counts calls to Play.
func (m *Media) Plays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

// Backend hands out fake Media keyed by locator.
type Backend struct {
	// Duration is given to every opened Media.
	Duration time.Duration

	mu        sync.Mutex
	opened    []*Media
	openErr   map[string]error
	playErr   map[string]error
	gates     map[string]chan struct{}
	openCalls int
}

// NewBackend returns a backend whose media last d.
func NewBackend(d time.Duration) *Backend {
	return &Backend{
		Duration: d,
		openErr:  make(map[string]error),
		playErr:  make(map[string]error),
		gates:    make(map[string]chan struct{}),
	}
}

// FailOpen makes Open(locator) fail with err.
func (b *Backend) FailOpen(locator string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openErr[locator] = err
}

// FailPlay makes media opened for locator refuse to start.
func (b *Backend) FailPlay(locator string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playErr[locator] = ErrStart
}

// Gate blocks Open(locator) until the returned release func is called.
func (b *Backend) Gate(locator string) (release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan struct{})
	b.gates[locator] = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (b *Backend) Open(ctx context.Context, locator string) (audio.Media, error) {
	b.mu.Lock()
	b.openCalls++
	gate := b.gates[locator]
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.openErr[locator]; err != nil {
		return nil, err
	}
	m := &Media{Locator: locator, duration: b.Duration, playErr: b.playErr[locator]}
	b.opened = append(b.opened, m)
	return m, nil
}

// Opened returns every Media opened so far, oldest first.
func (b *Backend) Opened() []*Media {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Media(nil), b.opened...)
}

// Last returns the most recently opened Media for locator, or nil.
func (b *Backend) Last(locator string) *Media {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.opened) - 1; i >= 0; i-- {
		if b.opened[i].Locator == locator {
			return b.opened[i]
		}
	}
	return nil
}

// OpenCalls counts calls to Open, including failed ones.
func (b *Backend) OpenCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openCalls
}
