package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jscyril/mediacore/api"
	playerrors "github.com/jscyril/mediacore/pkg/errors"
)

// DefaultClient is used by HTTPSource when no client is set.
var DefaultClient = &http.Client{Timeout: 15 * time.Second}

// HTTPSource fetches catalog items from GET <BaseURL>?q=<query>.
// The body is either a JSON array of items or an object with an "items" array.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

type remoteCue struct {
	Time float64 `json:"time"`
	Text string  `json:"text"`
}

type remoteItem struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Artist   string      `json:"artist"`
	Cover    string      `json:"cover"`
	Audio    string      `json:"audio"`
	Category string      `json:"category"`
	Mood     string      `json:"mood"`
	Duration string      `json:"duration"`
	Lyrics   []remoteCue `json:"lyrics"`
}

// Fetch implements api.CatalogSource.
func (s *HTTPSource) Fetch(ctx context.Context, query string) ([]api.CatalogItem, error) {
	if s.BaseURL == "" {
		return nil, fmt.Errorf("%w: no catalog url configured", playerrors.ErrCatalogUnavailable)
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", playerrors.ErrCatalogUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapUnavailable(fmt.Errorf("read catalog response: %w", err))
	}

	raw, err := decodeItems(body)
	if err != nil {
		return nil, wrapUnavailable(fmt.Errorf("parse catalog response: %w", err))
	}

	items := make([]api.CatalogItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, r.toItem())
	}
	return items, nil
}

func decodeItems(body []byte) ([]remoteItem, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []remoteItem
		err := json.Unmarshal(body, &list)
		return list, err
	}

	var wrapped struct {
		Items []remoteItem `json:"items"`
	}
	err := json.Unmarshal(body, &wrapped)
	return wrapped.Items, err
}

func (r remoteItem) toItem() api.CatalogItem {
	item := api.CatalogItem{
		ID:           r.ID,
		Title:        r.Title,
		Artist:       r.Artist,
		Cover:        r.Cover,
		AudioLocator: r.Audio,
		Category:     categoryFromGenre(r.Category),
		Mood:         moodFromName(r.Mood),
		Duration:     r.Duration,
	}
	for _, c := range r.Lyrics {
		item.Cues = append(item.Cues, api.LyricCue{Time: c.Time, Text: c.Text})
	}
	return item
}

// moodFromName drops unknown moods so the tagger can fill them in.
func moodFromName(name string) api.Mood {
	m := api.Mood(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range api.Moods() {
		if m == known {
			return known
		}
	}
	return api.MoodNone
}
