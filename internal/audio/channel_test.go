package audio_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/audio"
	"github.com/jscyril/mediacore/internal/audio/audiotest"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
)

var (
	itemA = api.CatalogItem{ID: "a", Title: "A", AudioLocator: "a.mp3"}
	itemB = api.CatalogItem{ID: "b", Title: "B", AudioLocator: "b.mp3"}
)

func newChannel(t *testing.T) (*audio.Channel, *audiotest.Backend) {
	t.Helper()
	backend := audiotest.NewBackend(100 * time.Second)
	return audio.NewChannel("test", backend, 80), backend
}

func TestNewChannel(t *testing.T) {
	ch, _ := newChannel(t)

	state := ch.State()
	if state.Status != api.ChannelIdle {
		t.Errorf("Expected status idle, got %v", state.Status)
	}
	if state.Volume != 80 {
		t.Errorf("Expected volume 80, got %v", state.Volume)
	}
	if state.BoundItemID != "" {
		t.Errorf("Expected no binding, got %q", state.BoundItemID)
	}
}

func TestLoadAndPlay(t *testing.T) {
	ch, backend := newChannel(t)

	if err := ch.Load(context.Background(), itemA); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := ch.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	state := ch.State()
	if state.Status != api.ChannelPlaying || state.BoundItemID != "a" {
		t.Errorf("state = %+v, want playing a", state)
	}
	if m := backend.Last("a.mp3"); m == nil || !m.Playing() || m.Volume() != 80 {
		t.Errorf("media not started at channel volume")
	}
}

func TestBindSupersedes(t *testing.T) {
	ch, backend := newChannel(t)
	ctx := context.Background()

	_ = ch.Load(ctx, itemA)
	_ = ch.Play()
	first := backend.Last("a.mp3")

	_ = ch.Load(ctx, itemB)

	if !first.Closed() {
		t.Error("previous media handle was not released")
	}
	state := ch.State()
	if state.BoundItemID != "b" || state.Status != api.ChannelIdle || state.PositionPercent != 0 {
		t.Errorf("state after rebind = %+v", state)
	}
}

func TestPlayFailureRevertsToIdle(t *testing.T) {
	ch, backend := newChannel(t)
	backend.FailPlay("a.mp3")

	_ = ch.Load(context.Background(), itemA)
	err := ch.Play()

	if !errors.Is(err, playerrors.ErrPlaybackUnavailable) {
		t.Fatalf("Play() error = %v, want PlaybackUnavailable", err)
	}
	if state := ch.State(); state.Status != api.ChannelIdle || state.BoundItemID != "" {
		t.Errorf("state after failure = %+v, want idle and unbound", state)
	}
	if !backend.Last("a.mp3").Closed() {
		t.Error("failed media was not released")
	}
}

func TestLoadFailure(t *testing.T) {
	ch, backend := newChannel(t)
	backend.FailOpen("b.mp3", errors.New("404"))

	_ = ch.Load(context.Background(), itemA)
	err := ch.Load(context.Background(), itemB)

	if !errors.Is(err, playerrors.ErrPlaybackUnavailable) {
		t.Fatalf("Load() error = %v, want PlaybackUnavailable", err)
	}
	if ch.BoundItemID() != "" {
		t.Errorf("BoundItemID() = %q after failed load", ch.BoundItemID())
	}
}

func TestPlayUnbound(t *testing.T) {
	ch, _ := newChannel(t)
	if err := ch.Play(); !errors.Is(err, playerrors.ErrNotBound) {
		t.Errorf("Play() on unbound channel error = %v, want ErrNotBound", err)
	}
}

func TestPauseResume(t *testing.T) {
	ch, backend := newChannel(t)

	ch.Pause()
	if err := ch.Resume(); err != nil {
		t.Errorf("Resume() on unbound channel error = %v", err)
	}

	_ = ch.Load(context.Background(), itemA)
	_ = ch.Play()
	media := backend.Last("a.mp3")

	ch.Pause()
	if ch.Status() != api.ChannelPaused || media.Playing() {
		t.Errorf("Pause() left status %v", ch.Status())
	}

	if err := ch.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if ch.Status() != api.ChannelPlaying || !media.Playing() {
		t.Errorf("Resume() left status %v", ch.Status())
	}
	if media.Plays() != 1 {
		t.Errorf("media restarted %d times, want 1", media.Plays())
	}
}

func TestSetVolumeClamps(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"below zero", -10, 0},
		{"zero", 0, 0},
		{"middle", 55, 55},
		{"full", 100, 100},
		{"above full", 150, 100},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, backend := newChannel(t)
			_ = ch.Load(context.Background(), itemA)

			ch.SetVolume(tt.input)
			if got := ch.State().Volume; got != tt.want {
				t.Errorf("SetVolume(%v) volume = %v, want %v", tt.input, got, tt.want)
			}
			if got := backend.Last("a.mp3").Volume(); got != tt.want {
				t.Errorf("SetVolume(%v) media volume = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetVolumeIdempotentUnderClamping(t *testing.T) {
	a, _ := newChannel(t)
	b, _ := newChannel(t)

	a.SetVolume(-10)
	b.SetVolume(0)
	if a.State() != b.State() {
		t.Errorf("SetVolume(-10) state %+v != SetVolume(0) state %+v", a.State(), b.State())
	}

	a.SetVolume(150)
	b.SetVolume(100)
	if a.State() != b.State() {
		t.Errorf("SetVolume(150) state %+v != SetVolume(100) state %+v", a.State(), b.State())
	}
}

func TestSeekAndSample(t *testing.T) {
	ch, backend := newChannel(t)
	_ = ch.Load(context.Background(), itemA)
	_ = ch.Play()
	media := backend.Last("a.mp3")

	tests := []struct {
		percent float64
		wantPos time.Duration
		want    float64
	}{
		{25, 25 * time.Second, 25},
		{-5, 0, 0},
		{250, 100 * time.Second, 100},
	}
	for _, tt := range tests {
		if err := ch.Seek(tt.percent); err != nil {
			t.Fatalf("Seek(%v) error = %v", tt.percent, err)
		}
		if got := media.Position(); got != tt.wantPos {
			t.Errorf("Seek(%v) position = %v, want %v", tt.percent, got, tt.wantPos)
		}
		if got := ch.SamplePosition(); got != tt.want {
			t.Errorf("SamplePosition() after Seek(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestSamplePositionUnknownDuration(t *testing.T) {
	backend := audiotest.NewBackend(0)
	ch := audio.NewChannel("test", backend, 100)

	if got := ch.SamplePosition(); got != 0 {
		t.Errorf("SamplePosition() unbound = %v, want 0", got)
	}

	_ = ch.Load(context.Background(), itemA)
	_ = ch.Play()
	backend.Last("a.mp3").SetPosition(3 * time.Second)

	if got := ch.SamplePosition(); got != 0 {
		t.Errorf("SamplePosition() with zero duration = %v, want 0", got)
	}
	if err := ch.Seek(50); err != nil {
		t.Errorf("Seek() with zero duration error = %v", err)
	}
}

func TestHasEndedAndStop(t *testing.T) {
	ch, backend := newChannel(t)
	_ = ch.Load(context.Background(), itemA)
	_ = ch.Play()

	if ch.HasEnded() {
		t.Error("HasEnded() true before completion")
	}
	backend.Last("a.mp3").Finish()
	if !ch.HasEnded() {
		t.Error("HasEnded() false after completion")
	}

	ch.Stop()
	ch.Stop()
	if ch.HasEnded() || ch.BoundItemID() != "" || ch.Status() != api.ChannelIdle {
		t.Errorf("state after Stop = %+v", ch.State())
	}
}

func TestChannelsAreIndependent(t *testing.T) {
	backend := audiotest.NewBackend(time.Minute)
	perf := audio.NewChannel("performance", backend, 100)
	preview := audio.NewChannel("preview", backend, 30)
	ctx := context.Background()

	_ = perf.Load(ctx, itemA)
	_ = perf.Play()
	_ = preview.Load(ctx, itemB)
	_ = preview.Play()

	perf.SetVolume(10)
	preview.Stop()

	if perf.Status() != api.ChannelPlaying || perf.BoundItemID() != "a" {
		t.Errorf("performance disturbed by preview: %+v", perf.State())
	}
	if preview.State().Volume != 30 {
		t.Errorf("preview volume changed to %v", preview.State().Volume)
	}
}
