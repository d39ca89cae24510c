package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. MEDIACORE_PREVIEW_VOLUME.
const EnvPrefix = "MEDIACORE"

// Config holds application configuration
type Config struct {
	MusicDirectories      []string           `json:"music_directories" mapstructure:"music_directories"`
	CatalogURL            string             `json:"catalog_url" mapstructure:"catalog_url"`
	Karaoke               bool               `json:"karaoke" mapstructure:"karaoke"`
	DefaultVolume         float64            `json:"default_volume" mapstructure:"default_volume"`
	PreviewVolume         float64            `json:"preview_volume" mapstructure:"preview_volume"`
	TickIntervalMS        int                `json:"tick_interval_ms" mapstructure:"tick_interval_ms"`
	KaraokeTickIntervalMS int                `json:"karaoke_tick_interval_ms" mapstructure:"karaoke_tick_interval_ms"`
	Notifications         NotificationConfig `json:"notifications" mapstructure:"notifications"`
	Log                   LogConfig          `json:"log" mapstructure:"log"`
	KeyBindings           KeyMap             `json:"key_bindings" mapstructure:"key_bindings"`
}

// NotificationConfig selects where user-facing notices go
type NotificationConfig struct {
	Desktop bool   `json:"desktop" mapstructure:"desktop"`
	AppName string `json:"app_name" mapstructure:"app_name"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Level   string `json:"level" mapstructure:"level"`
	JSON    bool   `json:"json" mapstructure:"json"`
	File    string `json:"file" mapstructure:"file"`
}

// KeyMap defines keyboard shortcuts
type KeyMap struct {
	PlayPause   string `json:"play_pause" mapstructure:"play_pause"`
	Stop        string `json:"stop" mapstructure:"stop"`
	Next        string `json:"next" mapstructure:"next"`
	Previous    string `json:"previous" mapstructure:"previous"`
	VolumeUp    string `json:"volume_up" mapstructure:"volume_up"`
	VolumeDown  string `json:"volume_down" mapstructure:"volume_down"`
	SeekForward string `json:"seek_forward" mapstructure:"seek_forward"`
	SeekBack    string `json:"seek_back" mapstructure:"seek_back"`
	Preview     string `json:"preview" mapstructure:"preview"`
	Quit        string `json:"quit" mapstructure:"quit"`
	Search      string `json:"search" mapstructure:"search"`
	Category    string `json:"category" mapstructure:"category"`
	Mood        string `json:"mood" mapstructure:"mood"`
}

// GetDefaultConfig returns default configuration
func GetDefaultConfig() *Config {
	return &Config{
		MusicDirectories:      []string{},
		DefaultVolume:         50,
		PreviewVolume:         30,
		TickIntervalMS:        1000,
		KaraokeTickIntervalMS: 200,
		Notifications: NotificationConfig{
			Desktop: false,
			AppName: "mediacore",
		},
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
		},
		KeyBindings: KeyMap{
			PlayPause:   " ",
			Stop:        "s",
			Next:        "n",
			Previous:    "p",
			VolumeUp:    "+",
			VolumeDown:  "-",
			SeekForward: "right",
			SeekBack:    "left",
			Preview:     "v",
			Quit:        "q",
			Search:      "/",
			Category:    "c",
			Mood:        "m",
		},
	}
}

// setDefaults registers every key so env overrides reach Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("music_directories", cfg.MusicDirectories)
	v.SetDefault("catalog_url", cfg.CatalogURL)
	v.SetDefault("karaoke", cfg.Karaoke)
	v.SetDefault("default_volume", cfg.DefaultVolume)
	v.SetDefault("preview_volume", cfg.PreviewVolume)
	v.SetDefault("tick_interval_ms", cfg.TickIntervalMS)
	v.SetDefault("karaoke_tick_interval_ms", cfg.KaraokeTickIntervalMS)
	v.SetDefault("notifications.desktop", cfg.Notifications.Desktop)
	v.SetDefault("notifications.app_name", cfg.Notifications.AppName)
	v.SetDefault("log.enabled", cfg.Log.Enabled)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.json", cfg.Log.JSON)
	v.SetDefault("log.file", cfg.Log.File)

	keys := cfg.KeyBindings
	v.SetDefault("key_bindings.play_pause", keys.PlayPause)
	v.SetDefault("key_bindings.stop", keys.Stop)
	v.SetDefault("key_bindings.next", keys.Next)
	v.SetDefault("key_bindings.previous", keys.Previous)
	v.SetDefault("key_bindings.volume_up", keys.VolumeUp)
	v.SetDefault("key_bindings.volume_down", keys.VolumeDown)
	v.SetDefault("key_bindings.seek_forward", keys.SeekForward)
	v.SetDefault("key_bindings.seek_back", keys.SeekBack)
	v.SetDefault("key_bindings.preview", keys.Preview)
	v.SetDefault("key_bindings.quit", keys.Quit)
	v.SetDefault("key_bindings.search", keys.Search)
	v.SetDefault("key_bindings.category", keys.Category)
	v.SetDefault("key_bindings.mood", keys.Mood)
}

// LoadConfig reads configuration from path on the OS filesystem
func LoadConfig(path string) (*Config, error) {
	return LoadConfigFs(afero.NewOsFs(), path)
}

// LoadConfigFs reads configuration from path on fs, layered over defaults and
// MEDIACORE_* environment variables. A missing file yields the defaults.
func LoadConfigFs(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, GetDefaultConfig())

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.normalize()

	return &config, nil
}

// normalize clamps values that would break playback invariants
func (c *Config) normalize() {
	c.DefaultVolume = clamp(c.DefaultVolume, 0, 100)
	c.PreviewVolume = clamp(c.PreviewVolume, 0, 100)
	if c.TickIntervalMS <= 0 {
		c.TickIntervalMS = 1000
	}
	if c.KaraokeTickIntervalMS <= 0 {
		c.KaraokeTickIntervalMS = 200
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TickInterval is the progress sampling interval for regular tracks
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// KaraokeTickInterval is the progress sampling interval for karaoke songs
func (c *Config) KaraokeTickInterval() time.Duration {
	return time.Duration(c.KaraokeTickIntervalMS) * time.Millisecond
}

// SaveConfig marshals and saves configuration to file
func SaveConfig(config *Config, path string) error {
	return SaveConfigFs(afero.NewOsFs(), config, path)
}

// SaveConfigFs marshals and saves configuration to path on fs
func SaveConfigFs(fs afero.Fs, config *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrCreate loads config from path or creates default if not exists
func LoadOrCreate(fs afero.Fs, path string) (*Config, error) {
	config, err := LoadConfigFs(fs, path)
	if err != nil {
		return nil, err
	}

	// Save default config if file didn't exist
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		if err := SaveConfigFs(fs, config, path); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return config, nil
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	// Use XDG config directory if available
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mediacore", "config.json")
	}

	// Fall back to home directory
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(home, ".config", "mediacore", "config.json")
}
