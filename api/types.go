package api

import (
	"context"
	"time"
)

// Category tags a catalog item by intended use.
type Category string

const (
	CategoryNone       Category = ""
	CategoryMeditation Category = "meditation"
	CategorySleep      Category = "sleep"
	CategoryFocus      Category = "focus"
	CategoryRelax      Category = "relax"
	CategoryEnergy     Category = "energy"
	CategoryKaraoke    Category = "karaoke"
)

// Categories lists every assignable category in display order.
func Categories() []Category {
	return []Category{CategoryMeditation, CategorySleep, CategoryFocus, CategoryRelax, CategoryEnergy, CategoryKaraoke}
}

// Mood tags a catalog item by emotional tone.
type Mood string

const (
	MoodNone      Mood = ""
	MoodCalm      Mood = "calm"
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodEnergetic Mood = "energetic"
	MoodRomantic  Mood = "romantic"
)

// Moods lists every assignable mood in display order.
func Moods() []Mood {
	return []Mood{MoodCalm, MoodHappy, MoodSad, MoodEnergetic, MoodRomantic}
}

// LyricCue is a lyric line stamped with its offset from track start.
type LyricCue struct {
	Time float64 `json:"time"` // seconds
	Text string  `json:"text"`
}

// CatalogItem is one playable entry. Items carrying cues are karaoke songs.
type CatalogItem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Artist       string     `json:"artist"`
	Cover        string     `json:"cover"`
	AudioLocator string     `json:"audio_locator"`
	Category     Category   `json:"category,omitempty"`
	Mood         Mood       `json:"mood,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	Cues         []LyricCue `json:"cues,omitempty"`
}

// IsKaraoke reports whether the item has time-stamped lyrics.
func (i CatalogItem) IsKaraoke() bool {
	return len(i.Cues) > 0
}

// Filters restricts a catalog search by exact tag equality. Zero values match everything.
type Filters struct {
	Category Category
	Mood     Mood
}

// CatalogSource fetches items from an external provider.
type CatalogSource interface {
	Fetch(ctx context.Context, query string) ([]CatalogItem, error)
}

// ChannelStatus is the state of a single Channel.
type ChannelStatus int

const (
	ChannelIdle ChannelStatus = iota
	ChannelPlaying
	ChannelPaused
)

func (s ChannelStatus) String() string {
	switch s {
	case ChannelPlaying:
		return "playing"
	case ChannelPaused:
		return "paused"
	default:
		return "idle"
	}
}

// ChannelState is a snapshot of a Channel.
type ChannelState struct {
	Status          ChannelStatus `json:"status"`
	BoundItemID     string        `json:"bound_item_id,omitempty"`
	Volume          float64       `json:"volume"`
	PositionPercent float64       `json:"position_percent"`
}

// SessionState is the controller-level lifecycle of the performance session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionLoading
	SessionPlaying
	SessionPaused
	SessionEnded
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionPlaying:
		return "playing"
	case SessionPaused:
		return "paused"
	case SessionEnded:
		return "ended"
	default:
		return "idle"
	}
}

// LyricTriple is the three-line karaoke window around the active cue.
type LyricTriple struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
	Next     string `json:"next"`
}

// PerformanceSession is a snapshot of the performance channel and its session.
type PerformanceSession struct {
	Channel         ChannelState  `json:"channel"`
	State           SessionState  `json:"state"`
	Item            *CatalogItem  `json:"item,omitempty"`
	CatalogIndex    int           `json:"catalog_index"`
	Position        time.Duration `json:"position"`
	CurrentCueIndex int           `json:"current_cue_index"`
	Lyrics          LyricTriple   `json:"lyrics"`
	Volume          float64       `json:"volume"`
}

// PreviewSession is a snapshot of the preview channel.
type PreviewSession struct {
	Channel ChannelState `json:"channel"`
	Item    *CatalogItem `json:"item,omitempty"`
}

// Progress is emitted on every tick of the performance session.
type Progress struct {
	ItemID   string        `json:"item_id"`
	Percent  float64       `json:"percent"`
	Position time.Duration `json:"position"`
}

// LyricUpdate is emitted when the active cue changes.
type LyricUpdate struct {
	ItemID string      `json:"item_id"`
	Index  int         `json:"index"`
	Lines  LyricTriple `json:"lines"`
}

// NoticeLevel grades a user-facing notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

// Notice is a user-facing message raised by the playback core.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// EventType identifies the kind of Event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventTrackEnded  EventType = "track_ended"
	EventLyrics      EventType = "lyrics"
	EventPreview     EventType = "preview"
	EventNotice      EventType = "notice"
)

// EventTypes lists every event type the bus can carry.
func EventTypes() []EventType {
	return []EventType{EventStateChange, EventProgress, EventTrackEnded, EventLyrics, EventPreview, EventNotice}
}

// Event carries a snapshot payload. Payload types per EventType:
// state_change PerformanceSession, progress Progress, track_ended CatalogItem,
// lyrics LyricUpdate, preview PreviewSession, notice Notice.
type Event struct {
	Type    EventType
	Payload any
	At      time.Time
}
