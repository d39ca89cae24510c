package catalog

import (
	"testing"

	"github.com/jscyril/mediacore/api"
)

func TestKeywordTagger(t *testing.T) {
	tagger := DefaultTagger()

	tests := []struct {
		name         string
		item         api.CatalogItem
		wantCategory api.Category
		wantMood     api.Mood
	}{
		{
			name:         "keywords in title",
			item:         api.CatalogItem{ID: "1", Title: "Deep Sleep Rain"},
			wantCategory: api.CategorySleep,
			wantMood:     api.MoodCalm,
		},
		{
			name:         "existing tags are kept",
			item:         api.CatalogItem{ID: "2", Title: "Sleep", Category: api.CategoryFocus, Mood: api.MoodSad},
			wantCategory: api.CategoryFocus,
			wantMood:     api.MoodSad,
		},
		{
			name:         "items with lyrics are karaoke",
			item:         api.CatalogItem{ID: "3", Title: "Love Song", Cues: []api.LyricCue{{Time: 0, Text: "la"}}},
			wantCategory: api.CategoryKaraoke,
			wantMood:     api.MoodRomantic,
		},
		{
			name:         "keyword must start a word",
			item:         api.CatalogItem{ID: "4", Title: "Morning Run", Artist: "Pulse"},
			wantCategory: api.CategoryEnergy,
			wantMood:     api.MoodEnergetic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tagger.Tag(tt.item)
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Mood != tt.wantMood {
				t.Errorf("Mood = %q, want %q", got.Mood, tt.wantMood)
			}
		})
	}
}

func TestKeywordTaggerFallbackIsDeterministic(t *testing.T) {
	tagger := DefaultTagger()
	it := api.CatalogItem{ID: "no-keywords-here", Title: "Xyzzy", Artist: "Plugh"}

	first := tagger.Tag(it)
	if first.Category == api.CategoryNone || first.Mood == api.MoodNone {
		t.Fatalf("fallback left tags empty: %+v", first)
	}
	for i := 0; i < 10; i++ {
		again := tagger.Tag(it)
		if again.Category != first.Category || again.Mood != first.Mood {
			t.Fatalf("tagging changed between runs: %+v vs %+v", first, again)
		}
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text, kw string
		want     bool
	}{
		{"om shanti", "om", true},
		{"welcome home", "om", false},
		{"deep meditation", "meditat", true},
		{"rain-drops", "drops", true},
	}
	for _, tt := range tests {
		if got := containsWord(tt.text, tt.kw); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.kw, got, tt.want)
		}
	}
}
