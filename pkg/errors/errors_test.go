package errors

import (
	"errors"
	"io"
	"testing"
)

func TestUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"nil cause", nil},
		{"plain cause", io.ErrUnexpectedEOF},
		{"already unavailable", ErrPlaybackUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unavailable("play", "item-1", tt.err)
			if !errors.Is(err, ErrPlaybackUnavailable) {
				t.Errorf("Unavailable(%v) does not match ErrPlaybackUnavailable", tt.err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("Unavailable(%v) lost its cause", tt.err)
			}
			if err.Item != "item-1" || err.Op != "play" {
				t.Errorf("Unavailable context = %q/%q, want play/item-1", err.Op, err.Item)
			}
		})
	}
}

func TestPlayerErrorMessage(t *testing.T) {
	err := NewPlayerError("seek", "", io.EOF)
	if got, want := err.Error(), "seek failed: EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = NewPlayerError("seek", "abc", io.EOF)
	if got, want := err.Error(), "seek failed for item abc: EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
