package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jscyril/mediacore/api"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
	"github.com/spf13/afero"
)

func newMusicFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/music/b/beta.mp3":     "not really audio",
		"/music/a/alpha.flac":   "not really audio",
		"/music/a/alpha.lrc":    "[00:01.00]first line\n[00:03.50]second line\n",
		"/music/a/cover.jpg":    "img",
		"/music/notes.txt":      "ignored",
		"/music/nested/x/z.wav": "not really audio",
		"/other/outside.mp3":    "not scanned",
	}
	for path, body := range files {
		if err := afero.WriteFile(fs, path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fs
}

func TestScanAll(t *testing.T) {
	fs := newMusicFs(t)
	scanner := NewScanner(fs, 2)

	items, errs := scanner.ScanAll(context.Background(), []string{"/music"})
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	// Untagged files sort by title under the default artist
	wantTitles := []string{"alpha", "beta", "z"}
	for i, want := range wantTitles {
		if items[i].Title != want {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, want)
		}
		if items[i].Artist != "Unknown Artist" {
			t.Errorf("items[%d].Artist = %q", i, items[i].Artist)
		}
		if !strings.HasPrefix(items[i].ID, "item-") {
			t.Errorf("items[%d].ID = %q", i, items[i].ID)
		}
	}

	alpha := items[0]
	if !alpha.IsKaraoke() || len(alpha.Cues) != 2 {
		t.Fatalf("alpha should carry 2 cues, got %+v", alpha.Cues)
	}
	if alpha.Cues[1] != (api.LyricCue{Time: 3.5, Text: "second line"}) {
		t.Errorf("unexpected cue %+v", alpha.Cues[1])
	}
	if alpha.Cover != "/music/a/cover.jpg" {
		t.Errorf("Cover = %q", alpha.Cover)
	}
	if items[1].IsKaraoke() {
		t.Error("beta has no lyrics file")
	}
}

func TestScanStableIDs(t *testing.T) {
	fs := newMusicFs(t)
	first, _ := NewScanner(fs, 1).ScanAll(context.Background(), []string{"/music"})
	second, _ := NewScanner(fs, 4).ScanAll(context.Background(), []string{"/music"})

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("id changed between scans: %s vs %s", first[i].ID, second[i].ID)
		}
	}
	if ItemID("/a.mp3") == ItemID("/b.mp3") {
		t.Error("different locators should not share an id")
	}
}

func TestScanMissingRoot(t *testing.T) {
	scanner := NewScanner(afero.NewMemMapFs(), 0)

	items, errs := scanner.ScanAll(context.Background(), []string{"/nope"})
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
	if len(errs) == 0 {
		t.Fatal("expected a scan error for a missing root")
	}
	var scanErr *playerrors.ScanError
	if !errors.As(errs[0], &scanErr) {
		t.Errorf("expected ScanError, got %T", errs[0])
	}
}

func TestScanFile(t *testing.T) {
	fs := newMusicFs(t)
	scanner := NewScanner(fs, 1)

	if _, err := scanner.ScanFile("/music/notes.txt"); !errors.Is(err, playerrors.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
	item, err := scanner.ScanFile("/music/b/beta.mp3")
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if item.AudioLocator != "/music/b/beta.mp3" {
		t.Errorf("AudioLocator = %q", item.AudioLocator)
	}
}

func TestReadUntaggedFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]int{
		"/music/empty.mp3":   0,
		"/music/tiny.mp3":    19,
		"/music/trailer.mp3": 128,
		"/music/long.flac":   4096,
	}
	for path, size := range files {
		if err := afero.WriteFile(fs, path, []byte(strings.Repeat("x", size)), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	reader := NewMetadataReader(fs)
	for path := range files {
		t.Run(path, func(t *testing.T) {
			item, err := reader.Read(path)
			if err != nil {
				t.Fatalf("Read(%s): %v", path, err)
			}
			want := strings.TrimSuffix(path[len("/music/"):], filepath.Ext(path))
			if item.Title != want || item.Artist != "Unknown Artist" {
				t.Errorf("Read(%s) = %q by %q, want %q by Unknown Artist", path, item.Title, item.Artist, want)
			}
		})
	}
}

// panicFs panics when one file is opened, as a broken tag reader would.
type panicFs struct {
	afero.Fs
	target string
}

func (p panicFs) Open(name string) (afero.File, error) {
	if name == p.target {
		panic("corrupt header")
	}
	return p.Fs.Open(name)
}

func TestScanRecoversFromReaderPanic(t *testing.T) {
	fs := panicFs{Fs: newMusicFs(t), target: "/music/b/beta.mp3"}
	scanner := NewScanner(fs, 2)

	items, errs := scanner.ScanAll(context.Background(), []string{"/music"})
	if len(items) != 2 {
		t.Errorf("expected the 2 healthy files, got %d", len(items))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 scan error, got %v", errs)
	}
	var scanErr *playerrors.ScanError
	if !errors.As(errs[0], &scanErr) || scanErr.Path != "/music/b/beta.mp3" {
		t.Errorf("expected ScanError for beta.mp3, got %v", errs[0])
	}

	if _, err := scanner.ScanFile("/music/b/beta.mp3"); err == nil {
		t.Error("ScanFile should report the panic as an error")
	}
}

func TestCategoryFromGenre(t *testing.T) {
	if got := categoryFromGenre(" Sleep "); got != api.CategorySleep {
		t.Errorf("got %q", got)
	}
	if got := categoryFromGenre("Bollywood"); got != api.CategoryNone {
		t.Errorf("got %q", got)
	}
}
