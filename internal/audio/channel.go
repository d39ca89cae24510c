// Package audio binds catalog items to playable outputs.
package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/log"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
)

// Channel binds at most one catalog item to one Media. Channels share no
// state with each other.
type Channel struct {
	name    string
	backend Backend

	mu    sync.RWMutex
	state api.ChannelState
	media Media
}

// NewChannel creates an idle channel at the given volume (0-100).
func NewChannel(name string, backend Backend, volume float64) *Channel {
	return &Channel{
		name:    name,
		backend: backend,
		state: api.ChannelState{
			Status: api.ChannelIdle,
			Volume: ClampPercent(volume),
		},
	}
}

// Name returns the channel's label.
func (c *Channel) Name() string {
	return c.name
}

// Open resolves the item's locator without touching the current binding.
func (c *Channel) Open(ctx context.Context, item api.CatalogItem) (Media, error) {
	media, err := c.backend.Open(ctx, item.AudioLocator)
	if err != nil {
		return nil, playerrors.Unavailable("open", item.ID, err)
	}
	return media, nil
}

// Bind stops the current occupant and binds item to media at position 0.
func (c *Channel) Bind(item api.CatalogItem, media Media) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.media = media
	c.state.BoundItemID = item.ID
	c.state.PositionPercent = 0
	media.SetVolume(c.state.Volume)

	log.WithField("channel", c.name).Debugf("bound %s", item.ID)
}

// Load opens and binds item. On failure the channel is left idle and unbound.
func (c *Channel) Load(ctx context.Context, item api.CatalogItem) error {
	media, err := c.Open(ctx, item)
	if err != nil {
		c.Stop()
		return err
	}
	c.Bind(item, media)
	return nil
}

// Play begins or resumes playback. If the media cannot start, the channel
// reverts to idle and a PlaybackUnavailable error is returned.
func (c *Channel) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.media == nil {
		return playerrors.NewPlayerError("play", "", playerrors.ErrNotBound)
	}

	var err error
	switch c.state.Status {
	case api.ChannelPlaying:
		return nil
	case api.ChannelPaused:
		err = c.media.Resume()
	default:
		err = c.media.Play()
	}
	if err != nil {
		id := c.state.BoundItemID
		c.stopLocked()
		return playerrors.Unavailable("play", id, err)
	}

	c.state.Status = api.ChannelPlaying
	return nil
}

// Pause pauses a playing channel. No-op otherwise.
func (c *Channel) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.media == nil || c.state.Status != api.ChannelPlaying {
		return
	}
	c.media.Pause()
	c.state.Status = api.ChannelPaused
}

// Resume resumes a paused channel. No-op unless paused.
func (c *Channel) Resume() error {
	c.mu.RLock()
	paused := c.media != nil && c.state.Status == api.ChannelPaused
	c.mu.RUnlock()

	if !paused {
		return nil
	}
	return c.Play()
}

// SetVolume clamps v to [0,100] and applies it.
func (c *Channel) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Volume = ClampPercent(v)
	if c.media != nil {
		c.media.SetVolume(c.state.Volume)
	}
}

// Seek moves to percent of the bound item's duration, clamped to [0,100].
// Unknown durations leave the position unchanged.
func (c *Channel) Seek(percent float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.media == nil {
		return nil
	}
	percent = ClampPercent(percent)

	total := c.media.Duration()
	if total <= 0 {
		return nil
	}
	pos := time.Duration(float64(total) * percent / 100)
	if err := c.media.Seek(pos); err != nil {
		return playerrors.NewPlayerError("seek", c.state.BoundItemID, err)
	}
	c.state.PositionPercent = percent
	return nil
}

// Stop halts playback, clears the binding and releases the media handle.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// stopLocked must be called with lock held.
func (c *Channel) stopLocked() {
	if c.media != nil {
		if err := c.media.Close(); err != nil {
			log.WithField("channel", c.name).Warnf("release %s: %v", c.state.BoundItemID, err)
		}
		c.media = nil
	}
	c.state.Status = api.ChannelIdle
	c.state.BoundItemID = ""
	c.state.PositionPercent = 0
}

// SamplePosition returns the position as a percent of duration, or 0 when the
// duration is unknown.
func (c *Channel) SamplePosition() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.media == nil {
		return 0
	}
	total := c.media.Duration()
	if total <= 0 {
		c.state.PositionPercent = 0
		return 0
	}
	c.state.PositionPercent = ClampPercent(float64(c.media.Position()) / float64(total) * 100)
	return c.state.PositionPercent
}

// Position returns the absolute playback position.
func (c *Channel) Position() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.media == nil {
		return 0
	}
	return c.media.Position()
}

// HasEnded reports natural completion of the bound media.
func (c *Channel) HasEnded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.media != nil && c.media.Ended()
}

// Status returns the channel status.
func (c *Channel) Status() api.ChannelStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Status
}

// BoundItemID returns the bound item's id, or "" when unbound.
func (c *Channel) BoundItemID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.BoundItemID
}

// State returns a snapshot of the channel.
func (c *Channel) State() api.ChannelState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// ClampPercent clamps v to [0,100]; NaN becomes 0.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
