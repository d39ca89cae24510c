package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
)

// SupportedFormats returns list of supported audio formats
func SupportedFormats() []string {
	return []string{".mp3", ".wav", ".flac", ".ogg"}
}

// IsSupported checks if a locator's format is supported
func IsSupported(locator string) bool {
	ext := formatOf(locator)
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// DecodeAudio decodes an audio stream based on its locator's extension
func DecodeAudio(r io.ReadSeekCloser, locator string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := formatOf(locator)

	switch ext {
	case ".mp3":
		return mp3.Decode(r)
	case ".wav":
		return wav.Decode(r)
	case ".flac":
		return flac.Decode(r)
	case ".ogg":
		return vorbis.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", playerrors.ErrInvalidFormat, ext)
	}
}

// formatOf returns the lower-cased extension, ignoring any URL query or fragment.
func formatOf(locator string) string {
	if i := strings.IndexAny(locator, "?#"); i >= 0 {
		locator = locator[:i]
	}
	return strings.ToLower(filepath.Ext(locator))
}
