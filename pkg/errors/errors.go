package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the playback core
var (
	ErrPlaybackUnavailable = errors.New("playback unavailable")
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrInvalidFormat       = errors.New("unsupported audio format")
	ErrNotBound            = errors.New("channel has no bound item")
)

// PlayerError wraps errors with additional context
type PlayerError struct {
	Op   string // Operation that failed
	Item string // Catalog item ID if applicable
	Err  error  // Underlying error
}

func (e *PlayerError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("%s failed for item %s: %v", e.Op, e.Item, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PlayerError) Unwrap() error {
	return e.Err
}

// NewPlayerError creates a new PlayerError
func NewPlayerError(op, item string, err error) *PlayerError {
	return &PlayerError{Op: op, Item: item, Err: err}
}

// Unavailable marks err as a PlaybackUnavailable failure of op on item.
func Unavailable(op, item string, err error) *PlayerError {
	if err == nil {
		err = ErrPlaybackUnavailable
	} else if !errors.Is(err, ErrPlaybackUnavailable) {
		err = fmt.Errorf("%w: %w", ErrPlaybackUnavailable, err)
	}
	return NewPlayerError(op, item, err)
}

// ScanError represents an error during catalog scanning
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at %s: %v", e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
