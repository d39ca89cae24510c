// Package catalog holds the playable items of one activation and searches them.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/log"
	"github.com/jscyril/mediacore/internal/lyrics"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
	"github.com/samber/lo"
)

// Origin records which tier supplied the loaded catalog.
type Origin int

const (
	OriginNone Origin = iota
	OriginLocal
	OriginRemote
	OriginBuiltin
)

func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginRemote:
		return "remote"
	case OriginBuiltin:
		return "builtin"
	default:
		return "none"
	}
}

// Options configures a Store.
type Options struct {
	// Local is the primary list. The source is consulted only when it is empty.
	Local []api.CatalogItem
	// Source is the external provider; may be nil.
	Source api.CatalogSource
	// Query is passed to Source.Fetch.
	Query string
	// Fallback replaces the built-in sample set when non-nil.
	Fallback []api.CatalogItem
	// Tagger fills missing tags; nil leaves tags as loaded.
	Tagger Tagger
	// Karaoke keeps only items that carry lyric cues.
	Karaoke bool
}

// Store is the catalog of one activation. It is read-only after Load.
type Store struct {
	opts Options

	mu      sync.RWMutex
	items   []api.CatalogItem
	index   map[string]int
	origin  Origin
	lastErr error
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	return &Store{opts: opts, index: make(map[string]int)}
}

// Load fills the store from the local list, then the source, then the
// built-in set. It never fails: source errors are kept in Err and the
// built-in set is used instead.
func (s *Store) Load(ctx context.Context) []api.CatalogItem {
	var loadErr error
	origin := OriginLocal
	items := s.prepare(s.opts.Local)

	if len(items) == 0 && s.opts.Source != nil {
		origin = OriginRemote
		fetched, err := s.opts.Source.Fetch(ctx, s.opts.Query)
		switch {
		case err != nil:
			loadErr = wrapUnavailable(err)
		default:
			items = s.prepare(fetched)
			if len(items) == 0 {
				loadErr = fmt.Errorf("%w: source returned no playable items", playerrors.ErrCatalogUnavailable)
			}
		}
		if loadErr != nil {
			log.WithError(loadErr).Warnf("catalog source failed, using built-in catalog")
		}
	}

	if len(items) == 0 {
		origin = OriginBuiltin
		items = s.prepare(s.fallback())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
	s.origin = origin
	s.lastErr = loadErr
	s.index = make(map[string]int, len(items))
	for i, item := range items {
		s.index[item.ID] = i
	}

	log.WithField("origin", origin).Infof("catalog loaded with %d items", len(items))
	return s.snapshot()
}

func (s *Store) fallback() []api.CatalogItem {
	switch {
	case s.opts.Fallback != nil:
		return s.opts.Fallback
	case s.opts.Karaoke:
		return BuiltinKaraoke()
	default:
		return append(Builtin(), BuiltinKaraoke()...)
	}
}

// prepare drops id-less and duplicate items, applies tagging, enforces cue
// order and the karaoke filter.
func (s *Store) prepare(in []api.CatalogItem) []api.CatalogItem {
	items := lo.Filter(in, func(item api.CatalogItem, _ int) bool {
		return item.ID != "" && item.AudioLocator != ""
	})
	items = lo.UniqBy(items, func(item api.CatalogItem) string { return item.ID })

	for i := range items {
		if !lyrics.Sorted(items[i].Cues) {
			cues := append([]api.LyricCue(nil), items[i].Cues...)
			sort.SliceStable(cues, func(a, b int) bool { return cues[a].Time < cues[b].Time })
			items[i].Cues = cues
		}
		if s.opts.Tagger != nil {
			items[i] = s.opts.Tagger.Tag(items[i])
		}
	}

	if s.opts.Karaoke {
		items = lo.Filter(items, func(item api.CatalogItem, _ int) bool { return item.IsKaraoke() })
	}
	return items
}

func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %w", playerrors.ErrCatalogUnavailable, err)
}

// Items returns the loaded catalog in order.
func (s *Store) Items() []api.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// snapshot must be called with lock held.
func (s *Store) snapshot() []api.CatalogItem {
	return append([]api.CatalogItem(nil), s.items...)
}

// Len returns the number of loaded items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns the item with id, or ErrInvalidSelection.
func (s *Store) Get(id string) (api.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return api.CatalogItem{}, fmt.Errorf("%w: %s", playerrors.ErrInvalidSelection, id)
	}
	return s.items[i], nil
}

// IndexOf returns the position of id, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Origin reports which tier supplied the catalog.
func (s *Store) Origin() Origin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}

// Err returns the source failure recovered from during the last Load, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Search matches query case-insensitively against title or artist, then
// restricts by exact category and mood. Catalog order is preserved.
// A blank query with no filters returns the whole catalog.
func (s *Store) Search(query string, filters api.Filters) []api.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Filter(s.items, query, filters)
}

// Filter applies the Search rules to items.
func Filter(items []api.CatalogItem, query string, filters api.Filters) []api.CatalogItem {
	q := strings.ToLower(strings.TrimSpace(query))

	return lo.Filter(items, func(item api.CatalogItem, _ int) bool {
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Title), q) &&
			!strings.Contains(strings.ToLower(item.Artist), q) {
			return false
		}
		if filters.Category != api.CategoryNone && item.Category != filters.Category {
			return false
		}
		if filters.Mood != api.MoodNone && item.Mood != filters.Mood {
			return false
		}
		return true
	})
}
