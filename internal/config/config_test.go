package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestLoadConfig(t *testing.T) {
	Convey("Given an in-memory filesystem", t, func() {
		fs := afero.NewMemMapFs()
		path := "/home/user/.config/mediacore/config.json"

		Convey("When no config file exists", func() {
			cfg, err := LoadConfigFs(fs, path)

			Convey("Then the defaults are returned", func() {
				So(err, ShouldBeNil)
				So(cfg.PreviewVolume, ShouldEqual, 30.0)
				So(cfg.DefaultVolume, ShouldEqual, 50.0)
				So(cfg.TickInterval(), ShouldEqual, time.Second)
				So(cfg.KaraokeTickInterval(), ShouldEqual, 200*time.Millisecond)
				So(cfg.KeyBindings.Preview, ShouldEqual, "v")
			})
		})

		Convey("When the file overrides some keys", func() {
			data := `{"preview_volume": 20, "karaoke": true, "music_directories": ["/music"], "log": {"level": "debug"}}`
			So(afero.WriteFile(fs, path, []byte(data), 0644), ShouldBeNil)

			cfg, err := LoadConfigFs(fs, path)

			Convey("Then file values win and the rest keep defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.PreviewVolume, ShouldEqual, 20.0)
				So(cfg.Karaoke, ShouldBeTrue)
				So(cfg.MusicDirectories, ShouldResemble, []string{"/music"})
				So(cfg.Log.Level, ShouldEqual, "debug")
				So(cfg.DefaultVolume, ShouldEqual, 50.0)
			})
		})

		Convey("When volumes are out of range", func() {
			data := `{"default_volume": 180, "preview_volume": -4, "tick_interval_ms": 0}`
			So(afero.WriteFile(fs, path, []byte(data), 0644), ShouldBeNil)

			cfg, err := LoadConfigFs(fs, path)

			Convey("Then they are clamped", func() {
				So(err, ShouldBeNil)
				So(cfg.DefaultVolume, ShouldEqual, 100.0)
				So(cfg.PreviewVolume, ShouldEqual, 0.0)
				So(cfg.TickIntervalMS, ShouldEqual, 1000)
			})
		})

		Convey("When the file is not valid JSON", func() {
			So(afero.WriteFile(fs, path, []byte("{nope"), 0644), ShouldBeNil)

			_, err := LoadConfigFs(fs, path)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("MEDIACORE_PREVIEW_VOLUME", "15")
	t.Setenv("MEDIACORE_LOG_LEVEL", "warn")

	cfg, err := LoadConfigFs(afero.NewMemMapFs(), "/config.json")
	if err != nil {
		t.Fatalf("LoadConfigFs() error = %v", err)
	}
	if cfg.PreviewVolume != 15 {
		t.Errorf("PreviewVolume = %v, want 15", cfg.PreviewVolume)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadOrCreate(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/cfg/mediacore/config.json"

	if _, err := LoadOrCreate(fs, path); err != nil {
		t.Fatalf("LoadOrCreate() error = %v", err)
	}
	exists, _ := afero.Exists(fs, path)
	if !exists {
		t.Fatal("LoadOrCreate did not write the default config")
	}

	cfg, err := LoadConfigFs(fs, path)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if cfg.Notifications.AppName != "mediacore" {
		t.Errorf("AppName = %q after round trip", cfg.Notifications.AppName)
	}
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("MEDIACORE_CONFIG", "/explicit.json")
	if got := GetConfigPath(); got != "/explicit.json" {
		t.Errorf("GetConfigPath() = %q, want /explicit.json", got)
	}

	t.Setenv("MEDIACORE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got, want := GetConfigPath(), filepath.Join("/xdg", "mediacore", "config.json"); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("MEDIACORE_TEST_DOTENV=loaded\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEDIACORE_TEST_DOTENV", "")
	os.Unsetenv("MEDIACORE_TEST_DOTENV")

	if err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("MEDIACORE_TEST_DOTENV"); got != "loaded" {
		t.Errorf("MEDIACORE_TEST_DOTENV = %q, want loaded", got)
	}
}
