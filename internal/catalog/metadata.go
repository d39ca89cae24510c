package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/lyrics"
	"github.com/spf13/afero"
)

// id3v1Size is the ID3v1 trailer length. Shorter files cannot carry tags and
// some readers seek before the start of them.
const id3v1Size = 128

// MetadataReader builds catalog items from audio files and their sidecars
type MetadataReader struct {
	fs afero.Fs
}

// NewMetadataReader creates a new metadata reader
func NewMetadataReader(fs afero.Fs) *MetadataReader {
	return &MetadataReader{fs: fs}
}

// Read extracts tags from an audio file. A sibling .lrc file makes the item a
// karaoke song; a sibling or folder image becomes its cover.
func (r *MetadataReader) Read(filePath string) (api.CatalogItem, error) {
	file, err := r.fs.Open(filePath)
	if err != nil {
		return api.CatalogItem{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	item := api.CatalogItem{
		ID:           ItemID(filePath),
		Title:        base,
		Artist:       "Unknown Artist",
		AudioLocator: filePath,
	}

	info, err := file.Stat()
	if err != nil {
		return api.CatalogItem{}, fmt.Errorf("stat file: %w", err)
	}

	// Files without tags keep the filename as title
	if info.Size() >= id3v1Size {
		if metadata, err := tag.ReadFrom(file); err == nil {
			item.Title = getOrDefault(metadata.Title(), base)
			item.Artist = getOrDefault(metadata.Artist(), item.Artist)
			item.Category = categoryFromGenre(metadata.Genre())
		}
	}

	cues, err := r.readCues(filePath)
	if err != nil {
		return api.CatalogItem{}, err
	}
	item.Cues = cues
	item.Cover = r.findCover(filePath)

	return item, nil
}

// readCues loads <name>.lrc next to the audio file, if present.
func (r *MetadataReader) readCues(filePath string) ([]api.LyricCue, error) {
	lrcPath := strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ".lrc"
	f, err := r.fs.Open(lrcPath)
	if err != nil {
		return nil, nil
	}
	defer f.Close()

	cues, err := lyrics.ParseLRC(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lrcPath, err)
	}
	return cues, nil
}

func (r *MetadataReader) findCover(filePath string) string {
	stem := strings.TrimSuffix(filePath, filepath.Ext(filePath))
	dir := filepath.Dir(filePath)
	candidates := []string{
		stem + ".jpg", stem + ".png",
		filepath.Join(dir, "cover.jpg"), filepath.Join(dir, "cover.png"),
		filepath.Join(dir, "folder.jpg"),
	}
	for _, c := range candidates {
		if ok, _ := afero.Exists(r.fs, c); ok {
			return c
		}
	}
	return ""
}

// ItemID derives a stable id from a locator, so rescans keep ids unchanged.
func ItemID(locator string) string {
	return "item-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(locator)).String()
}

// categoryFromGenre maps a genre tag naming a category onto it.
func categoryFromGenre(genre string) api.Category {
	g := api.Category(strings.ToLower(strings.TrimSpace(genre)))
	for _, c := range api.Categories() {
		if g == c {
			return c
		}
	}
	return api.CategoryNone
}

// getOrDefault returns the value if non-empty, otherwise returns the default
func getOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
