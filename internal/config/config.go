// Package config loads gosolid settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gosolid/internal/command"
	"github.com/philipparndt/gosolid/internal/editor"
	"github.com/philipparndt/gosolid/internal/selector"
	"github.com/philipparndt/gosolid/internal/viewport"
)

// Config holds all gosolid configuration.
type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Picker    PickerConfig    `yaml:"picker"`
	Viewports int             `yaml:"viewports"`
	Logging   LoggingConfig   `yaml:"logging"`
	Watch     WatchConfig     `yaml:"watch"`
}

// SelectionConfig tunes gesture recognition and hit testing.
type SelectionConfig struct {
	DragThreshold float64       `yaml:"drag_threshold"` // pixels
	Raycast       RaycastConfig `yaml:"raycast"`
}

// RaycastConfig holds per-category hit tolerances.
type RaycastConfig struct {
	LineThreshold   float64 `yaml:"line_threshold"`   // world units
	PointsThreshold float64 `yaml:"points_threshold"` // pixels
}

// PickerConfig configures object picking sessions.
type PickerConfig struct {
	EmptyClick string   `yaml:"empty_click"` // finish, clear, ignore
	Modes      []string `yaml:"modes"`       // solid, curve, face, edge, control_point
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// WatchConfig configures script watching.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Selection: SelectionConfig{
			DragThreshold: selector.DefaultDragThreshold,
			Raycast: RaycastConfig{
				LineThreshold:   0.1,
				PointsThreshold: 10,
			},
		},
		Picker: PickerConfig{
			EmptyClick: command.EmptyFinish.String(),
			Modes:      []string{editor.KindSolid.String(), editor.KindCurve.String()},
		},
		Viewports: 2,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// Load reads a YAML file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("GOSOLID_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Selection.DragThreshold <= 0 {
		return fmt.Errorf("selection.drag_threshold must be > 0")
	}
	if c.Selection.Raycast.LineThreshold < 0 || c.Selection.Raycast.PointsThreshold < 0 {
		return fmt.Errorf("selection.raycast thresholds must be >= 0")
	}
	if c.Viewports < 1 {
		return fmt.Errorf("viewports must be >= 1")
	}
	if _, err := c.EmptyClick(); err != nil {
		return fmt.Errorf("picker.empty_click: %w", err)
	}
	if _, err := c.PickerKinds(); err != nil {
		return fmt.Errorf("picker.modes: %w", err)
	}
	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("watch.debounce: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: json, console)", c.Logging.Format)
	}
	return nil
}

// SelectorOptions returns the gesture options for viewport selectors.
func (c *Config) SelectorOptions() selector.Options {
	return selector.Options{
		DragThreshold: c.Selection.DragThreshold,
		Raycast: viewport.RaycastParams{
			LineThreshold:   c.Selection.Raycast.LineThreshold,
			PointsThreshold: c.Selection.Raycast.PointsThreshold,
		},
	}
}

// EmptyClick returns the picker policy for clicks that hit nothing.
func (c *Config) EmptyClick() (command.EmptyClick, error) {
	return command.ParseEmptyClick(c.Picker.EmptyClick)
}

// PickerKinds returns the kinds a picker may select.
func (c *Config) PickerKinds() ([]editor.Kind, error) {
	kinds := make([]editor.Kind, 0, len(c.Picker.Modes))
	for _, name := range c.Picker.Modes {
		kind, ok := editor.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown selection mode %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// GetDebounce returns the watch debounce as a duration.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// NewPicker creates an object picker configured by c.
func (c *Config) NewPicker(ed *command.Editor) (*command.ObjectPicker, error) {
	kinds, err := c.PickerKinds()
	if err != nil {
		return nil, err
	}
	empty, err := c.EmptyClick()
	if err != nil {
		return nil, err
	}
	picker := command.NewObjectPicker(ed, kinds...)
	picker.Options = c.SelectorOptions()
	picker.EmptyClick = empty
	return picker, nil
}
