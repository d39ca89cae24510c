// Package notify delivers user-facing notices such as playback failures.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/log"
)

// Notifier shows a notice to the user. Implementations must not block.
type Notifier interface {
	Notify(n api.Notice)
}

// Func adapts a function to Notifier.
type Func func(api.Notice)

func (f Func) Notify(n api.Notice) { f(n) }

// Desktop raises an OS notification.
type Desktop struct {
	send func(title, message string) error
}

// NewDesktop creates a desktop notifier. appName labels the notification where the OS supports it.
func NewDesktop(appName string) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{send: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

// Notify sends in the background; delivery failures are only logged.
func (d *Desktop) Notify(n api.Notice) {
	go func() {
		if err := d.send(n.Title, n.Message); err != nil {
			log.WithError(err).Warnf("desktop notification failed")
		}
	}()
}

// Log writes notices to the application log.
type Log struct{}

func (Log) Notify(n api.Notice) {
	entry := log.WithField("title", n.Title)
	switch n.Level {
	case api.NoticeError:
		entry.Errorf("%s", n.Message)
	case api.NoticeWarning:
		entry.Warnf("%s", n.Message)
	default:
		entry.Infof("%s", n.Message)
	}
}

// Multi fans a notice out to every notifier.
type Multi []Notifier

func (m Multi) Notify(n api.Notice) {
	for _, target := range m {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Recorder keeps notices in memory for display or inspection.
type Recorder struct {
	mu      sync.Mutex
	notices []api.Notice
}

func (r *Recorder) Notify(n api.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []api.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]api.Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (api.Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return api.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}
