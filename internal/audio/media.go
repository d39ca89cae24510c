package audio

import (
	"context"
	"time"
)

// Media is one opened audio source. It owns its underlying handle until Close.
type Media interface {
	Play() error
	Pause()
	Resume() error
	SetVolume(percent float64)
	Seek(pos time.Duration) error
	Position() time.Duration
	Duration() time.Duration
	Ended() bool
	Close() error
}

// Backend resolves a locator to playable Media.
type Backend interface {
	Open(ctx context.Context, locator string) (Media, error)
}
