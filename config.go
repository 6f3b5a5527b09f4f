package pinchview

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config tunes gesture thresholds, zoom limits and viewer layout.
// Start from DefaultConfig and override fields as needed.
type Config struct {
	// MaxZoom is the upper zoom bound relative to the fit width (>= 1).
	MaxZoom float64
	// Gap is the horizontal spacing in pixels between neighbouring images.
	Gap float64

	// TapMaxDuration is the longest single-finger touch treated as a tap.
	TapMaxDuration time.Duration
	// TapSlop is the per-axis movement in pixels that cancels a tap.
	TapSlop float64
	// PageChangeMaxDY is the vertical drag in pixels beyond which a release
	// no longer allows switching images.
	PageChangeMaxDY float64
	// MomentumDuration is the settle animation length. Releases faster than
	// half of it start a momentum animation.
	MomentumDuration time.Duration

	// PageThreshold is the fraction of the screen width a drag must cover
	// to page to the neighbouring image.
	PageThreshold float64
	// PageSnapDuration is how long the strip takes to settle after a drag.
	PageSnapDuration time.Duration

	// MaxTextureSize bounds the longer side of decoded images; larger
	// images are downscaled on load.
	MaxTextureSize int

	// Background is the fill color behind the images.
	Background Color
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxZoom:          4,
		Gap:              10,
		TapMaxDuration:   100 * time.Millisecond,
		TapSlop:          5,
		PageChangeMaxDY:  30,
		MomentumDuration: 1000 * time.Millisecond,
		PageThreshold:    0.25,
		PageSnapDuration: 300 * time.Millisecond,
		MaxTextureSize:   4096,
		Background:       ColorBlack,
	}
}

// configFile is the JSON form of Config. Durations are Go duration strings
// ("100ms", "1s").
type configFile struct {
	MaxZoom          *float64 `json:"max_zoom"`
	Gap              *float64 `json:"gap"`
	TapMaxDuration   string   `json:"tap_max_duration"`
	TapSlop          *float64 `json:"tap_slop"`
	PageChangeMaxDY  *float64 `json:"page_change_max_dy"`
	MomentumDuration string   `json:"momentum_duration"`
	PageThreshold    *float64 `json:"page_threshold"`
	PageSnapDuration string   `json:"page_snap_duration"`
	MaxTextureSize   *int     `json:"max_texture_size"`
	Background       *Color   `json:"background"`
}

// LoadConfig reads a JSON configuration file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses JSON configuration over DefaultConfig. Missing fields
// keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	var f configFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if f.MaxZoom != nil {
		cfg.MaxZoom = *f.MaxZoom
	}
	if f.Gap != nil {
		cfg.Gap = *f.Gap
	}
	if f.TapSlop != nil {
		cfg.TapSlop = *f.TapSlop
	}
	if f.PageChangeMaxDY != nil {
		cfg.PageChangeMaxDY = *f.PageChangeMaxDY
	}
	if f.PageThreshold != nil {
		cfg.PageThreshold = *f.PageThreshold
	}
	if f.MaxTextureSize != nil {
		cfg.MaxTextureSize = *f.MaxTextureSize
	}
	if f.Background != nil {
		cfg.Background = *f.Background
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"tap_max_duration", f.TapMaxDuration, &cfg.TapMaxDuration},
		{"momentum_duration", f.MomentumDuration, &cfg.MomentumDuration},
		{"page_snap_duration", f.PageSnapDuration, &cfg.PageSnapDuration},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: %s: %w", d.name, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.MaxZoom < 1:
		return fmt.Errorf("config: max_zoom %v must be >= 1", c.MaxZoom)
	case c.Gap < 0:
		return fmt.Errorf("config: gap %v must be >= 0", c.Gap)
	case c.TapMaxDuration < 0:
		return fmt.Errorf("config: tap_max_duration %v must be >= 0", c.TapMaxDuration)
	case c.TapSlop < 0:
		return fmt.Errorf("config: tap_slop %v must be >= 0", c.TapSlop)
	case c.PageChangeMaxDY < 0:
		return fmt.Errorf("config: page_change_max_dy %v must be >= 0", c.PageChangeMaxDY)
	case c.MomentumDuration <= 0:
		return fmt.Errorf("config: momentum_duration %v must be > 0", c.MomentumDuration)
	case c.PageThreshold < 0 || c.PageThreshold > 1:
		return fmt.Errorf("config: page_threshold %v must be within [0, 1]", c.PageThreshold)
	case c.PageSnapDuration <= 0:
		return fmt.Errorf("config: page_snap_duration %v must be > 0", c.PageSnapDuration)
	case c.MaxTextureSize < 0:
		return fmt.Errorf("config: max_texture_size %d must be >= 0", c.MaxTextureSize)
	}
	return nil
}
