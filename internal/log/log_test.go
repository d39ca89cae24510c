package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDiscardByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, logrus.DebugLevel)
	if _, err := Setup(Options{Enabled: false}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	Infof("hidden")
	if buf.Len() != 0 {
		t.Error("disabled logger wrote output")
	}
}

func TestSetOutputLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, logrus.WarnLevel)
	defer SetOutput(&bytes.Buffer{}, logrus.InfoLevel)

	Infof("quiet")
	WithField("channel", "preview").Warnf("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "channel=preview") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "player.log")

	closer, err := Setup(Options{Enabled: true, Level: "debug", JSON: true, File: path})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	Debugf("to file")
	closer.Close()
	defer Setup(Options{Enabled: false})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Errorf("log file = %q", data)
	}
}
