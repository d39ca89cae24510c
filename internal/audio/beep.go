package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/spf13/afero"
)

// Ensure beepMedia implements Media at compile time
var _ Media = (*beepMedia)(nil)

// BeepBackend decodes locators with beep and mixes every opened Media into
// one shared speaker, so the performance and preview channels play together.
type BeepBackend struct {
	fs         afero.Fs
	client     *http.Client
	sampleRate beep.SampleRate

	initOnce sync.Once
	initErr  error
}

// NewBeepBackend creates a backend reading local locators from fs.
func NewBeepBackend(fs afero.Fs) *BeepBackend {
	return &BeepBackend{
		fs:         fs,
		client:     &http.Client{Timeout: 30 * time.Second},
		sampleRate: beep.SampleRate(44100),
	}
}

// initSpeaker initializes the shared speaker once.
func (b *BeepBackend) initSpeaker() error {
	b.initOnce.Do(func() {
		b.initErr = speaker.Init(b.sampleRate, b.sampleRate.N(time.Second/10))
	})
	return b.initErr
}

// Open resolves and decodes locator. Remote locators are buffered in memory.
func (b *BeepBackend) Open(ctx context.Context, locator string) (Media, error) {
	r, err := b.openLocator(ctx, locator)
	if err != nil {
		return nil, err
	}

	streamer, format, err := DecodeAudio(r, locator)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("decode %s: %w", locator, err)
	}

	return &beepMedia{
		backend:  b,
		streamer: streamer,
		format:   format,
		volume:   100,
	}, nil
}

func (b *BeepBackend) openLocator(ctx context.Context, locator string) (io.ReadSeekCloser, error) {
	switch {
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := b.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", locator, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", locator, resp.StatusCode)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", locator, err)
		}
		return nopCloser{bytes.NewReader(data)}, nil

	default:
		path := strings.TrimPrefix(locator, "file://")
		f, err := b.fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return f, nil
	}
}

// beepMedia is one decoded stream routed through pause and volume controls.
type beepMedia struct {
	backend  *BeepBackend
	streamer beep.StreamSeekCloser
	format   beep.Format

	mu     sync.Mutex
	ctrl   *beep.Ctrl
	gain   *effects.Volume
	volume float64
	closed bool
	ended  atomic.Bool
}

func (m *beepMedia) Play() error {
	if err := m.backend.initSpeaker(); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("media closed")
	}
	if m.ctrl != nil {
		return nil
	}

	resampled := beep.Resample(4, m.format.SampleRate, m.backend.sampleRate, m.streamer)
	m.ctrl = &beep.Ctrl{Streamer: resampled}
	m.gain = &effects.Volume{Streamer: m.ctrl, Base: 2}
	applyGain(m.gain, m.volume)

	speaker.Play(beep.Seq(m.gain, beep.Callback(func() {
		m.ended.Store(true)
	})))
	return nil
}

func (m *beepMedia) Pause() {
	m.setPaused(true)
}

func (m *beepMedia) Resume() error {
	m.mu.Lock()
	started := m.ctrl != nil
	m.mu.Unlock()

	if !started {
		return m.Play()
	}
	m.setPaused(false)
	return nil
}

func (m *beepMedia) setPaused(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctrl == nil {
		return
	}
	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
}

func (m *beepMedia) SetVolume(percent float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = percent
	if m.gain == nil {
		return
	}
	speaker.Lock()
	applyGain(m.gain, percent)
	speaker.Unlock()
}

// applyGain maps percent linearly onto amplitude: 2^Volume == percent/100.
func applyGain(v *effects.Volume, percent float64) {
	if percent <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(percent / 100)
}

func (m *beepMedia) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	n := m.format.SampleRate.N(pos)
	if last := m.streamer.Len() - 1; n > last {
		n = last
	}
	if n < 0 {
		n = 0
	}

	speaker.Lock()
	defer speaker.Unlock()
	return m.streamer.Seek(n)
}

func (m *beepMedia) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0
	}
	speaker.Lock()
	pos := m.streamer.Position()
	speaker.Unlock()
	return m.format.SampleRate.D(pos)
}

func (m *beepMedia) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0
	}
	return m.format.SampleRate.D(m.streamer.Len())
}

func (m *beepMedia) Ended() bool {
	return m.ended.Load()
}

// Close detaches the stream from the speaker without clearing other streams.
func (m *beepMedia) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.ctrl != nil {
		speaker.Lock()
		m.ctrl.Streamer = nil
		speaker.Unlock()
	}
	return m.streamer.Close()
}

// nopCloser wraps a bytes.Reader to implement io.ReadSeekCloser.
type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
