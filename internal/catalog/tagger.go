package catalog

import (
	"hash/fnv"
	"strings"

	"github.com/jscyril/mediacore/api"
)

// Tagger assigns category and mood tags to an item. Implementations must be
// deterministic for a given item.
type Tagger interface {
	Tag(item api.CatalogItem) api.CatalogItem
}

// TaggerFunc adapts a function to Tagger.
type TaggerFunc func(api.CatalogItem) api.CatalogItem

func (f TaggerFunc) Tag(item api.CatalogItem) api.CatalogItem { return f(item) }

// KeywordTagger matches keywords against title and artist. Items that already
// carry a tag keep it. Items matching no keyword get a fallback derived from
// their id, so the same item is always tagged the same way.
type KeywordTagger struct {
	Categories map[api.Category][]string
	Moods      map[api.Mood][]string
}

// DefaultTagger returns a KeywordTagger with wellness-oriented keywords.
func DefaultTagger() *KeywordTagger {
	return &KeywordTagger{
		Categories: map[api.Category][]string{
			api.CategoryMeditation: {"meditat", "breath", "mindful", "om", "chakra", "zen"},
			api.CategorySleep:      {"sleep", "night", "dream", "lullaby", "rain"},
			api.CategoryFocus:      {"focus", "study", "concentrat", "alpha", "work"},
			api.CategoryRelax:      {"relax", "calm", "chill", "raga", "lofi", "acoustic"},
			api.CategoryEnergy:     {"energy", "power", "workout", "run", "morning", "dance"},
		},
		Moods: map[api.Mood][]string{
			api.MoodCalm:      {"calm", "peace", "ocean", "rain", "soft", "quiet"},
			api.MoodHappy:     {"happy", "sun", "joy", "smile", "bright"},
			api.MoodSad:       {"sad", "tears", "alone", "lost", "blue"},
			api.MoodEnergetic: {"power", "run", "fire", "beat", "dance"},
			api.MoodRomantic:  {"love", "heart", "ishq", "pyaar", "tum"},
		},
	}
}

// Tag fills in missing category and mood.
func (t *KeywordTagger) Tag(item api.CatalogItem) api.CatalogItem {
	text := strings.ToLower(item.Title + " " + item.Artist)

	if item.Category == api.CategoryNone {
		if item.IsKaraoke() {
			item.Category = api.CategoryKaraoke
		} else {
			item.Category = matchKeyword(text, t.Categories, categoryOrder(), fallbackCategory(item.ID))
		}
	}
	if item.Mood == api.MoodNone {
		item.Mood = matchKeyword(text, t.Moods, api.Moods(), fallbackMood(item.ID))
	}
	return item
}

// matchKeyword walks order so that ties resolve the same way every run.
func matchKeyword[T comparable](text string, table map[T][]string, order []T, fallback T) T {
	for _, tag := range order {
		for _, kw := range table[tag] {
			if containsWord(text, kw) {
				return tag
			}
		}
	}
	return fallback
}

// containsWord matches kw at the start of a word.
func containsWord(text, kw string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			return false
		}
		pos := i + j
		if pos == 0 || !isLetter(text[pos-1]) {
			return true
		}
		i = pos + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func categoryOrder() []api.Category {
	return []api.Category{api.CategoryMeditation, api.CategorySleep, api.CategoryFocus, api.CategoryRelax, api.CategoryEnergy}
}

func fallbackCategory(id string) api.Category {
	order := categoryOrder()
	return order[hashID(id)%uint32(len(order))]
}

func fallbackMood(id string) api.Mood {
	order := api.Moods()
	return order[hashID(id)%uint32(len(order))]
}

func hashID(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32()
}
