package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/mindchord/internal/logging"
)

// AppName names the per-user config and data directories.
const AppName = "mindchord"

// Config is the fully resolved configuration.
type Config struct {
	Gesture GestureConfig
	Hint    HintConfig
	Recent  RecentConfig
	Storage StorageConfig
	Plugins PluginsConfig
	Log     LogConfig
}

// GestureConfig holds recognizer thresholds in terminal cells.
type GestureConfig struct {
	MinDistance     float64
	ScrollThreshold float64
}

// HintConfig controls the gesture hint overlay.
type HintConfig struct {
	PromotionDelay time.Duration
	DowngradeDelay time.Duration
	Color          colorful.Color
	CancelLabel    string
	TrainingMode   bool
}

// RecentConfig controls the recently used command list.
type RecentConfig struct {
	Enabled bool
	Max     int
}

// StorageConfig locates persisted data.
type StorageConfig struct {
	Dir string
}

// PluginsConfig lists Lua command files.
type PluginsConfig struct {
	Paths []string
}

// LogConfig controls logging.
type LogConfig struct {
	Level logging.Level
	// File is where logs go. Empty means discard, since the terminal is
	// owned by the UI.
	File string
}

// Default returns the built-in configuration.
func Default() Config {
	color, _ := colorful.Hex("#7aa2f7")
	return Config{
		Gesture: GestureConfig{
			MinDistance:     2,
			ScrollThreshold: 3,
		},
		Hint: HintConfig{
			PromotionDelay: 800 * time.Millisecond,
			DowngradeDelay: 10 * time.Millisecond,
			Color:          color,
			CancelLabel:    "✗ Cancel gesture",
			TrainingMode:   true,
		},
		Recent: RecentConfig{
			Enabled: true,
			Max:     20,
		},
		Storage: StorageConfig{
			Dir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: logging.LevelInfo,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.toml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, ".local", "share", AppName)
}

// fileConfig mirrors the TOML layout. Durations and colors stay strings
// until Load converts them.
type fileConfig struct {
	Gesture struct {
		MinDistance     float64 `toml:"min_distance"`
		ScrollThreshold float64 `toml:"scroll_threshold"`
	} `toml:"gesture"`
	Hint struct {
		PromotionDelay string `toml:"promotion_delay"`
		DowngradeDelay string `toml:"downgrade_delay"`
		Color          string `toml:"color"`
		CancelLabel    string `toml:"cancel_label"`
		TrainingMode   bool   `toml:"training_mode"`
	} `toml:"hint"`
	Recent struct {
		Enabled bool `toml:"enabled"`
		Max     int  `toml:"max"`
	} `toml:"recent"`
	Storage struct {
		Dir string `toml:"dir"`
	} `toml:"storage"`
	Plugins struct {
		Paths []string `toml:"paths"`
	} `toml:"plugins"`
	Log struct {
		Level string `toml:"level"`
		File  string `toml:"file"`
	} `toml:"log"`
}

func toFile(c Config) fileConfig {
	var f fileConfig
	f.Gesture.MinDistance = c.Gesture.MinDistance
	f.Gesture.ScrollThreshold = c.Gesture.ScrollThreshold
	f.Hint.PromotionDelay = c.Hint.PromotionDelay.String()
	f.Hint.DowngradeDelay = c.Hint.DowngradeDelay.String()
	f.Hint.Color = c.Hint.Color.Hex()
	f.Hint.CancelLabel = c.Hint.CancelLabel
	f.Hint.TrainingMode = c.Hint.TrainingMode
	f.Recent.Enabled = c.Recent.Enabled
	f.Recent.Max = c.Recent.Max
	f.Storage.Dir = c.Storage.Dir
	f.Plugins.Paths = c.Plugins.Paths
	f.Log.Level = strings.ToLower(c.Log.Level.String())
	f.Log.File = c.Log.File
	return f
}

// Load reads the file at path over the defaults. A missing file yields
// the defaults. The result is validated.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML data over the defaults. source names the data in
// errors.
func Parse(source string, data []byte) (Config, error) {
	f := toFile(Default())
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Config{}, newParseError(source, err)
	}

	c, err := fromFile(f)
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	var se *toml.StrictMissingError
	if errors.As(err, &se) && len(se.Errors) > 0 {
		pe.Line, pe.Column = se.Errors[0].Position()
		pe.Message = "unknown key " + strings.Join(se.Errors[0].Key(), ".")
	}
	return pe
}

func fromFile(f fileConfig) (Config, error) {
	c := Config{
		Gesture: GestureConfig{
			MinDistance:     f.Gesture.MinDistance,
			ScrollThreshold: f.Gesture.ScrollThreshold,
		},
		Hint: HintConfig{
			CancelLabel:  f.Hint.CancelLabel,
			TrainingMode: f.Hint.TrainingMode,
		},
		Recent: RecentConfig{
			Enabled: f.Recent.Enabled,
			Max:     f.Recent.Max,
		},
		Storage: StorageConfig{Dir: expandHome(f.Storage.Dir)},
		Log: LogConfig{
			Level: logging.ParseLevel(f.Log.Level),
			File:  expandHome(f.Log.File),
		},
	}
	for _, p := range f.Plugins.Paths {
		c.Plugins.Paths = append(c.Plugins.Paths, expandHome(p))
	}

	var err error
	if c.Hint.PromotionDelay, err = time.ParseDuration(f.Hint.PromotionDelay); err != nil {
		return Config{}, &ValidationError{Path: "hint.promotion_delay", Message: "invalid duration", Value: f.Hint.PromotionDelay}
	}
	if c.Hint.DowngradeDelay, err = time.ParseDuration(f.Hint.DowngradeDelay); err != nil {
		return Config{}, &ValidationError{Path: "hint.downgrade_delay", Message: "invalid duration", Value: f.Hint.DowngradeDelay}
	}
	if c.Hint.Color, err = colorful.Hex(f.Hint.Color); err != nil {
		return Config{}, &ValidationError{Path: "hint.color", Message: "expected #rrggbb", Value: f.Hint.Color}
	}
	return c, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Gesture.MinDistance <= 0:
		return &ValidationError{Path: "gesture.min_distance", Message: "must be positive", Value: c.Gesture.MinDistance}
	case c.Gesture.ScrollThreshold <= 0:
		return &ValidationError{Path: "gesture.scroll_threshold", Message: "must be positive", Value: c.Gesture.ScrollThreshold}
	case c.Hint.PromotionDelay < 0:
		return &ValidationError{Path: "hint.promotion_delay", Message: "must not be negative", Value: c.Hint.PromotionDelay}
	case c.Hint.DowngradeDelay < 0:
		return &ValidationError{Path: "hint.downgrade_delay", Message: "must not be negative", Value: c.Hint.DowngradeDelay}
	case !c.Hint.Color.IsValid():
		return &ValidationError{Path: "hint.color", Message: "out of gamut", Value: c.Hint.Color.Hex()}
	case c.Recent.Max <= 0:
		return &ValidationError{Path: "recent.max", Message: "must be positive", Value: c.Recent.Max}
	case c.Storage.Dir == "":
		return &ValidationError{Path: "storage.dir", Message: "must not be empty", Value: c.Storage.Dir}
	}
	return nil
}

// Marshal renders c as TOML, suitable for writing a starter file.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(toFile(c))
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
