package notify

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jscyril/mediacore/api"
	"github.com/jscyril/mediacore/internal/log"
	"github.com/sirupsen/logrus"
)

func TestMultiFansOut(t *testing.T) {
	var a, b Recorder
	m := Multi{&a, nil, &b}

	n := api.Notice{Level: api.NoticeError, Title: "Playback", Message: "could not start"}
	m.Notify(n)

	for name, r := range map[string]*Recorder{"a": &a, "b": &b} {
		got, ok := r.Last()
		if !ok || got != n {
			t.Errorf("%s: got %+v, %v", name, got, ok)
		}
	}
}

func TestRecorderNoticesIsCopy(t *testing.T) {
	var r Recorder
	if _, ok := r.Last(); ok {
		t.Fatal("empty recorder should have no last notice")
	}
	r.Notify(api.Notice{Title: "one"})
	out := r.Notices()
	out[0].Title = "changed"
	if r.Notices()[0].Title != "one" {
		t.Error("Notices should return a copy")
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf, logrus.DebugLevel)
	t.Cleanup(func() { log.SetOutput(io.Discard, logrus.PanicLevel) })

	Log{}.Notify(api.Notice{Level: api.NoticeWarning, Title: "Catalog", Message: "using built-in catalog"})

	out := buf.String()
	if !strings.Contains(out, "using built-in catalog") || !strings.Contains(out, "level=warning") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestDesktopSendsInBackground(t *testing.T) {
	sent := make(chan string, 1)
	d := &Desktop{send: func(title, message string) error {
		sent <- title + ": " + message
		return errors.New("no notification daemon")
	}}

	d.Notify(api.Notice{Title: "Session", Message: "complete"})

	select {
	case got := <-sent:
		if got != "Session: complete" {
			t.Errorf("got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatal("desktop notification was not sent")
	}
}

func TestFunc(t *testing.T) {
	var got api.Notice
	Func(func(n api.Notice) { got = n }).Notify(api.Notice{Title: "x"})
	if got.Title != "x" {
		t.Errorf("got %+v", got)
	}
}
