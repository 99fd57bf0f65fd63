package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/Mavwarf/appicon/internal/icon"
)

// ICNS modes.
const (
	ICNSIconutil = "iconutil" // stage an iconset and run iconutil (macOS only)
	ICNSNative   = "native"   // encode in-process on any platform
	ICNSOff      = "off"      // never write icon.icns
)

// DefaultFilter is the resampling filter name used when none is configured.
const DefaultFilter = "lanczos3"

// Config holds the settings for one icon generation run.
type Config struct {
	Root        string `json:"root,omitempty"`
	ICNSMode    string `json:"icns_mode,omitempty"`
	Filter      string `json:"filter,omitempty"`
	KeepIconset bool   `json:"keep_iconset"`
	// Platform replaces runtime.GOOS for the macOS check.
	Platform string `json:"platform,omitempty"`
}

// Default returns the configuration used when no file is given: the
// current directory, iconutil on macOS, Lanczos resampling, and the
// iconset staging directory left in place.
func Default() Config {
	return Config{
		ICNSMode:    ICNSIconutil,
		Filter:      DefaultFilter,
		KeepIconset: true,
		Platform:    runtime.GOOS,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Validate rejects unknown modes and filters.
func (c Config) Validate() error {
	switch c.ICNSMode {
	case ICNSIconutil, ICNSNative, ICNSOff:
	default:
		return fmt.Errorf("unknown icns_mode %q (want %s, %s or %s)", c.ICNSMode, ICNSIconutil, ICNSNative, ICNSOff)
	}
	if _, err := icon.ParseFilter(c.Filter); err != nil {
		return err
	}
	return nil
}

// Load returns Default() when path is empty, otherwise the parsed file.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
