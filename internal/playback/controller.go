// Package playback drives the performance and preview channels.
//
// The performance channel plays the item the user chose and advances through
// the catalog on its own. The preview channel plays whatever the user is
// hovering at a fixed low volume. The two never share volume, position or
// binding. Every asynchronous callback (media ready, ticker sample) carries
// the session token it was issued under and is dropped once that session has
// been superseded.
package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/audio"
	"github.com/jscyril/mediacore/internal/catalog"
	"github.com/jscyril/mediacore/internal/log"
	"github.com/jscyril/mediacore/internal/lyrics"
	"github.com/jscyril/mediacore/internal/notify"
	"github.com/jscyril/mediacore/internal/playlist"
	"github.com/jscyril/mediacore/internal/progress"
	"github.com/jscyril/mediacore/pkg/events"
)

// Default volumes on the 0-100 scale.
const (
	DefaultVolume        = 50
	DefaultPreviewVolume = 30
)

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Backend   audio.Backend
	Scheduler progress.Scheduler
	Notifier  notify.Notifier
	// Volume is the initial performance volume; nil selects DefaultVolume.
	Volume              *float64
	PreviewVolume       float64
	TickInterval        time.Duration
	KaraokeTickInterval time.Duration
}

// Controller orchestrates both channels, the progress ticker and catalog order.
type Controller struct {
	perf     *audio.Channel
	preview  *audio.Channel
	queue    *playlist.Queue
	sched    progress.Scheduler
	notifier notify.Notifier
	bus      *events.EventBus

	tickInterval    time.Duration
	karaokeInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	token    uint64 // performance session generation
	tickerID uint64
	ticker   *progress.Ticker
	state    api.SessionState
	item     *api.CatalogItem
	lyrics   *lyrics.Tracker
	volume   float64

	previewToken uint64
	previewItem  *api.CatalogItem

	outbox []api.Event
}

// New creates an idle controller with an empty catalog.
func New(opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = progress.WallClock{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Log{}
	}
	volume := float64(DefaultVolume)
	if opts.Volume != nil {
		volume = audio.ClampPercent(*opts.Volume)
	}
	if opts.PreviewVolume <= 0 {
		opts.PreviewVolume = DefaultPreviewVolume
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = progress.DefaultInterval
	}
	if opts.KaraokeTickInterval <= 0 {
		opts.KaraokeTickInterval = progress.KaraokeInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		perf:            audio.NewChannel("performance", opts.Backend, volume),
		preview:         audio.NewChannel("preview", opts.Backend, opts.PreviewVolume),
		queue:           playlist.NewQueue(),
		sched:           opts.Scheduler,
		notifier:        opts.Notifier,
		bus:             events.NewEventBus(),
		tickInterval:    opts.TickInterval,
		karaokeInterval: opts.KaraokeTickInterval,
		ctx:             ctx,
		cancel:          cancel,
		volume:          volume,
	}
}

// Bus returns the event bus carrying state, progress, lyrics, preview and notice events.
func (c *Controller) Bus() *events.EventBus {
	return c.bus
}

// SetCatalog replaces the play order. A bound item that is still present keeps its place.
func (c *Controller) SetCatalog(items []api.CatalogItem) {
	c.mu.Lock()
	defer c.release()

	c.queue.Set(items)
	if c.item != nil {
		c.queue.Select(c.item.ID)
	}
}

// LoadCatalog loads store and installs the result. A source failure is
// reported as a notice; the store has already fallen back to built-in items.
func (c *Controller) LoadCatalog(ctx context.Context, store *catalog.Store) []api.CatalogItem {
	items := store.Load(ctx)
	c.SetCatalog(items)

	if err := store.Err(); err != nil {
		c.mu.Lock()
		c.noticeLocked(api.NoticeWarning, "Catalog unavailable", "Showing the built-in catalog instead.")
		c.release()
	}
	return items
}

// Catalog returns the current play order.
func (c *Controller) Catalog() []api.CatalogItem {
	return c.queue.Items()
}

// Select starts performance playback of id. Selecting the bound item toggles
// between playing and paused. Unknown ids are ignored.
func (c *Controller) Select(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.release()
		return nil
	}

	item, ok := c.queue.Lookup(id)
	if !ok {
		c.release()
		log.WithField("item", id).Debugf("ignoring selection of unknown item")
		return nil
	}

	if c.item != nil && c.item.ID == id {
		switch c.state {
		case api.SessionPlaying:
			c.pauseLocked()
			c.release()
			return nil
		case api.SessionPaused:
			err := c.resumeLocked()
			c.release()
			return err
		case api.SessionLoading:
			c.release()
			return nil
		}
	}

	c.queue.Select(id)
	token := c.beginLocked(item)
	c.release()

	return c.load(ctx, token, item)
}

// Play resumes a paused session or, when idle, starts the item under the
// cursor (the first item if nothing has been selected).
func (c *Controller) Play(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.release()
		return nil
	}

	switch c.state {
	case api.SessionPaused:
		err := c.resumeLocked()
		c.release()
		return err
	case api.SessionPlaying, api.SessionLoading:
		c.release()
		return nil
	}

	item, ok := c.queue.Current()
	if !ok {
		if c.queue.Len() == 0 {
			c.release()
			return nil
		}
		c.queue.JumpTo(0)
		item, _ = c.queue.Current()
	}
	token := c.beginLocked(item)
	c.release()

	return c.load(ctx, token, item)
}

// Pause pauses the performance and cancels its ticker. No-op unless playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.release()

	if c.state == api.SessionPlaying {
		c.pauseLocked()
	}
}

// Resume continues a paused performance. No-op unless paused.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.release()

	if c.state != api.SessionPaused {
		return nil
	}
	return c.resumeLocked()
}

// TogglePause pauses a playing session or resumes a paused one.
func (c *Controller) TogglePause() error {
	c.mu.Lock()
	defer c.release()

	switch c.state {
	case api.SessionPlaying:
		c.pauseLocked()
	case api.SessionPaused:
		return c.resumeLocked()
	}
	return nil
}

// Next plays the item after the current one, wrapping to the first.
func (c *Controller) Next(ctx context.Context) error {
	return c.step(ctx, func() (api.CatalogItem, bool) {
		item, _, ok := c.queue.Next()
		return item, ok
	})
}

// Previous plays the item before the current one, wrapping to the last.
func (c *Controller) Previous(ctx context.Context) error {
	return c.step(ctx, c.queue.Previous)
}

func (c *Controller) step(ctx context.Context, move func() (api.CatalogItem, bool)) error {
	c.mu.Lock()
	if c.closed {
		c.release()
		return nil
	}

	item, ok := move()
	if !ok {
		c.release()
		return nil
	}
	token := c.beginLocked(item)
	c.release()

	return c.load(ctx, token, item)
}

// Stop ends the performance session. The preview channel is untouched.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.release()

	if c.closed {
		return
	}
	c.token++
	c.endSessionLocked()
}

// SetVolume sets the performance volume, clamped to [0,100]. The preview
// channel keeps its own volume.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.release()

	c.volume = audio.ClampPercent(v)
	c.perf.SetVolume(c.volume)
	c.stateLocked()
}

// Volume returns the performance volume.
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Seek moves the performance to percent of its duration and re-syncs lyrics.
func (c *Controller) Seek(percent float64) error {
	c.mu.Lock()
	defer c.release()

	if c.item == nil || (c.state != api.SessionPlaying && c.state != api.SessionPaused) {
		return nil
	}
	if err := c.perf.Seek(percent); err != nil {
		return err
	}

	pos := c.perf.Position()
	c.emit(api.EventProgress, api.Progress{
		ItemID:   c.item.ID,
		Percent:  c.perf.SamplePosition(),
		Position: pos,
	})
	c.syncLyricsLocked(pos)
	return nil
}

// StartPreview plays id on the preview channel, superseding any earlier
// preview. It does nothing while id is the playing (or loading) performance.
func (c *Controller) StartPreview(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.release()
		return nil
	}

	item, ok := c.queue.Lookup(id)
	if !ok {
		c.release()
		log.WithField("item", id).Debugf("ignoring preview of unknown item")
		return nil
	}
	if c.suppressPreviewLocked(id) {
		c.release()
		return nil
	}
	if c.previewItem != nil && c.previewItem.ID == id {
		c.release()
		return nil
	}

	c.stopPreviewLocked()
	token := c.previewToken
	c.release()

	media, err := c.preview.Open(ctx, item)

	c.mu.Lock()
	defer c.release()

	if c.closed || token != c.previewToken {
		if media != nil {
			media.Close()
		}
		log.WithField("item", id).Debugf("discarding superseded preview")
		return nil
	}
	if err != nil {
		log.WithError(err).WithField("item", id).Warnf("preview unavailable")
		return err
	}
	if c.suppressPreviewLocked(id) {
		media.Close()
		return nil
	}

	c.preview.Bind(item, media)
	if err := c.preview.Play(); err != nil {
		log.WithError(err).WithField("item", id).Warnf("preview unavailable")
		return err
	}

	c.previewItem = &item
	c.previewLocked()
	return nil
}

// StopPreview stops the preview channel. It is always safe to call.
func (c *Controller) StopPreview() {
	c.mu.Lock()
	defer c.release()
	c.stopPreviewLocked()
}

// Performance returns a snapshot of the performance session.
func (c *Controller) Performance() api.PerformanceSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.performanceLocked()
}

// Preview returns a snapshot of the preview session.
func (c *Controller) Preview() api.PreviewSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previewSnapshotLocked()
}

// Close stops both channels, cancels in-flight loads and closes the bus.
// The controller ignores every call afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.token++
	c.previewToken++
	c.stopTickerLocked()
	c.perf.Stop()
	c.preview.Stop()
	c.state = api.SessionIdle
	c.item = nil
	c.previewItem = nil
	c.outbox = nil
	c.mu.Unlock()

	c.cancel()
	c.bus.Close()
}

// beginLocked tears down the current session and enters Loading for item.
// The previous occupant's ticker and media are released before it returns.
func (c *Controller) beginLocked(item api.CatalogItem) uint64 {
	c.stopPreviewLocked()

	c.token++
	c.stopTickerLocked()
	c.perf.Stop()

	c.item = &item
	c.lyrics = lyrics.NewTracker(item.Cues)
	c.state = api.SessionLoading
	c.stateLocked()

	log.WithField("item", item.ID).Debugf("loading")
	return c.token
}

// load opens item outside the lock and binds it if the session is still current.
func (c *Controller) load(ctx context.Context, token uint64, item api.CatalogItem) error {
	media, err := c.perf.Open(ctx, item)

	c.mu.Lock()
	defer c.release()

	if c.closed || token != c.token {
		if media != nil {
			media.Close()
		}
		log.WithField("item", item.ID).Debugf("discarding superseded load")
		return nil
	}
	if err != nil {
		c.failLocked(item, err)
		return err
	}

	c.perf.Bind(item, media)
	if err := c.perf.Play(); err != nil {
		c.failLocked(item, err)
		return err
	}

	c.state = api.SessionPlaying
	c.startTickerLocked()
	c.stateLocked()
	if item.IsKaraoke() {
		c.emit(api.EventLyrics, api.LyricUpdate{ItemID: item.ID, Index: c.lyrics.Index(), Lines: c.lyrics.Lines()})
	}
	return nil
}

// onSample handles one ticker reading for the session identified by token and id.
func (c *Controller) onSample(token, id uint64, s progress.Sample) {
	c.mu.Lock()
	if c.closed || token != c.token || id != c.tickerID || c.item == nil {
		c.release()
		log.Debugf("discarding stale tick")
		return
	}

	item := *c.item
	c.emit(api.EventProgress, api.Progress{ItemID: item.ID, Percent: s.Percent, Position: s.Position})
	c.syncLyricsLocked(s.Position)

	if !s.Ended {
		c.release()
		return
	}

	c.stopTickerLocked()
	c.state = api.SessionEnded
	c.stateLocked()
	c.emit(api.EventTrackEnded, item)
	log.WithField("item", item.ID).Debugf("ended")

	next, wrapped, ok := c.queue.Next()
	if !ok {
		c.endSessionLocked()
		c.release()
		return
	}
	if wrapped {
		c.noticeLocked(api.NoticeInfo, "Session complete", "Reached the end of the catalog. Starting again from the top.")
	}
	nextToken := c.beginLocked(next)
	c.release()

	c.load(c.ctx, nextToken, next)
}

func (c *Controller) pauseLocked() {
	c.perf.Pause()
	c.stopTickerLocked()
	c.state = api.SessionPaused
	c.stateLocked()
}

func (c *Controller) resumeLocked() error {
	if err := c.perf.Resume(); err != nil {
		c.failLocked(*c.item, err)
		return err
	}
	c.state = api.SessionPlaying
	// A paused item may have been previewed; it cannot stay there once playing.
	if c.previewItem != nil && c.previewItem.ID == c.item.ID {
		c.stopPreviewLocked()
	}
	c.startTickerLocked()
	c.stateLocked()
	return nil
}

// failLocked reverts to Idle and tells the user.
func (c *Controller) failLocked(item api.CatalogItem, err error) {
	log.WithError(err).WithField("item", item.ID).Errorf("playback unavailable")
	c.endSessionLocked()

	title := item.Title
	if title == "" {
		title = item.ID
	}
	c.noticeLocked(api.NoticeError, "Playback unavailable", fmt.Sprintf("Could not play %q.", title))
}

func (c *Controller) endSessionLocked() {
	c.stopTickerLocked()
	c.perf.Stop()
	c.item = nil
	c.lyrics = nil
	c.state = api.SessionIdle
	c.stateLocked()
}

func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()

	c.tickerID++
	token, id := c.token, c.tickerID
	interval := c.tickInterval
	if c.item != nil && c.item.IsKaraoke() {
		interval = c.karaokeInterval
	}
	c.ticker = progress.Start(c.sched, interval, c.perf, func(s progress.Sample) {
		c.onSample(token, id, s)
	})
}

func (c *Controller) stopTickerLocked() {
	c.ticker.Stop()
	c.ticker = nil
}

func (c *Controller) syncLyricsLocked(pos time.Duration) {
	if c.item == nil || c.lyrics == nil || !c.item.IsKaraoke() {
		return
	}
	index, lines, changed := c.lyrics.Update(pos.Seconds())
	if changed {
		c.emit(api.EventLyrics, api.LyricUpdate{ItemID: c.item.ID, Index: index, Lines: lines})
	}
}

func (c *Controller) suppressPreviewLocked(id string) bool {
	if c.item == nil || c.item.ID != id {
		return false
	}
	return c.state == api.SessionPlaying || c.state == api.SessionLoading
}

func (c *Controller) stopPreviewLocked() {
	c.previewToken++
	active := c.previewItem != nil || c.preview.Status() != api.ChannelIdle
	c.preview.Stop()
	c.previewItem = nil
	if active {
		c.previewLocked()
	}
}

func (c *Controller) performanceLocked() api.PerformanceSession {
	s := api.PerformanceSession{
		Channel:      c.perf.State(),
		State:        c.state,
		CatalogIndex: c.queue.Index(),
		Volume:       c.volume,
	}
	if c.item != nil {
		item := *c.item
		s.Item = &item
		s.Position = c.perf.Position()
	}
	if c.lyrics != nil {
		s.CurrentCueIndex = c.lyrics.Index()
		s.Lyrics = c.lyrics.Lines()
	}
	return s
}

func (c *Controller) previewSnapshotLocked() api.PreviewSession {
	s := api.PreviewSession{Channel: c.preview.State()}
	if c.previewItem != nil {
		item := *c.previewItem
		s.Item = &item
	}
	return s
}

func (c *Controller) stateLocked() {
	c.emit(api.EventStateChange, c.performanceLocked())
}

func (c *Controller) previewLocked() {
	c.emit(api.EventPreview, c.previewSnapshotLocked())
}

func (c *Controller) noticeLocked(level api.NoticeLevel, title, message string) {
	c.emit(api.EventNotice, api.Notice{Level: level, Title: title, Message: message})
}

// emit queues an event; release delivers it once the lock is dropped.
func (c *Controller) emit(t api.EventType, payload any) {
	if c.closed {
		return
	}
	c.outbox = append(c.outbox, api.Event{Type: t, Payload: payload, At: time.Now()})
}

// release unlocks and then publishes queued events and notices.
func (c *Controller) release() {
	pending := c.outbox
	c.outbox = nil
	c.mu.Unlock()

	for _, e := range pending {
		c.bus.Publish(e.Type, e.Payload)
		if n, ok := e.Payload.(api.Notice); ok {
			c.notifier.Notify(n)
		}
	}
}
