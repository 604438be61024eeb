package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "roonpipe-launcher"

// Settings holds all configuration options.
type Settings struct {
	// SocketPath is the RoonPipe daemon's unix socket.
	SocketPath string `koanf:"socket_path"`

	// TimeoutSeconds bounds one daemon round trip.
	TimeoutSeconds float64 `koanf:"timeout_seconds"`

	// DebounceMs is the keystroke debounce used by interactive frontends.
	DebounceMs int `koanf:"debounce_ms"`

	// MaxResults truncates the result list; 0 means unlimited.
	MaxResults int `koanf:"max_results"`

	// Trigger is the launcher keyword that precedes the query ("roon ").
	Trigger string `koanf:"trigger"`

	// DefaultAction is the action title used when the host offers no
	// action picker (e.g. plain Enter in the TUI).
	DefaultAction string `koanf:"default_action"`

	// Icons controls artwork handling for result icons.
	Icons IconSettings `koanf:"icons"`
}

// IconSettings holds artwork/icon configuration.
type IconSettings struct {
	// Fallback is the icon shown when a record has no usable artwork.
	Fallback string `koanf:"fallback"`

	// Resize scales artwork down to Size pixels for launcher display.
	// Disabled by default; daemon artwork is used as-is.
	Resize bool `koanf:"resize"`

	// Size is the maximum icon edge in pixels when resizing.
	Size int `koanf:"size"`
}

// DefaultSettings returns settings with default values.
//
// The defaults mirror the daemon's own conventions: socket at
// /tmp/roonpipe.sock, a 5 second timeout and a 200ms input debounce.
func DefaultSettings() *Settings {
	return &Settings{
		SocketPath:     "/tmp/roonpipe.sock",
		TimeoutSeconds: 5,
		DebounceMs:     200,
		MaxResults:     0,
		Trigger:        "roon ",
		DefaultAction:  "Play Now",
		Icons: IconSettings{
			Resize: false,
			Size:   128,
		},
	}
}

// Load reads settings from the standard config locations.
//
// Files are merged in order, last wins:
//  1. $XDG_CONFIG_HOME/roonpipe-launcher/config.toml
//  2. ./config.toml
//
// Missing files are skipped; defaults fill everything a file does not set.
func Load() (*Settings, error) {
	return load(configPaths())
}

// LoadFile reads settings from a single explicit config file, bypassing
// the standard locations. Used by the --config flag.
func LoadFile(path string) (*Settings, error) {
	return load([]string{path})
}

func load(paths []string) (*Settings, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	settings := DefaultSettings()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, err
	}

	settings.applyDefaults()
	settings.SocketPath = expandPath(settings.SocketPath)
	settings.Icons.Fallback = expandPath(settings.Icons.Fallback)

	return settings, nil
}

// applyDefaults fixes up zero and out-of-range values after unmarshal.
func (s *Settings) applyDefaults() {
	if s.SocketPath == "" {
		s.SocketPath = "/tmp/roonpipe.sock"
	}
	if s.TimeoutSeconds <= 0 {
		s.TimeoutSeconds = 5
	}
	if s.DebounceMs < 0 {
		s.DebounceMs = 200
	}
	if s.MaxResults < 0 {
		s.MaxResults = 0
	}
	if s.DefaultAction == "" {
		s.DefaultAction = "Play Now"
	}
	if s.Icons.Size <= 0 {
		s.Icons.Size = 128
	}
}

// Timeout returns the daemon round-trip timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds * float64(time.Second))
}

// Debounce returns the input debounce as a duration.
func (s *Settings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// IconCacheDir returns the directory for resized artwork.
func IconCacheDir() string {
	return filepath.Join(xdg.CacheHome, appName, "icons")
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
