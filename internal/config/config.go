package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keyline/internal/config/loader"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "KEYLINE_"

// Config holds every setting keyline reads.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Editor  EditorConfig  `toml:"editor"`
	UI      UIConfig      `toml:"ui"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// File is where logs are written. Empty disables logging.
	File string `toml:"file"`
}

// EditorConfig controls editing behavior.
type EditorConfig struct {
	TabWidth   int  `toml:"tab_width"`
	ExpandTabs bool `toml:"expand_tabs"`

	// InitScript is a Lua file run against the buffer after it loads.
	InitScript string `toml:"init_script"`

	// RememberPositions restores the cursor when a file is reopened.
	RememberPositions bool   `toml:"remember_positions"`
	PositionsFile     string `toml:"positions_file"`
}

// UIConfig controls the terminal layout.
type UIConfig struct {
	StatusLine bool `toml:"status_line"`
}

// Default returns the built-in settings.
func Default() Config {
	state := StateDir()
	cfg := Config{
		Logging: LoggingConfig{Level: "info"},
		Editor: EditorConfig{
			TabWidth:          8,
			RememberPositions: true,
		},
		UI: UIConfig{StatusLine: true},
	}
	if state != "" {
		cfg.Logging.File = filepath.Join(state, "keyline.log")
		cfg.Editor.PositionsFile = filepath.Join(state, "positions.json")
	}
	return cfg
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks every setting and returns the first problem found.
func (c Config) Validate() error {
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return &ValidationError{Key: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"}
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return &ValidationError{Key: "editor.tab_width", Value: c.Editor.TabWidth, Message: "must be between 1 and 16"}
	}
	return nil
}

// options configures Load.
type options struct {
	fs     loader.FileSystem
	useEnv bool
}

// Option configures Load.
type Option func(*options)

// WithFileSystem reads the config file through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnv enables or disables KEYLINE_* overrides. Enabled by default.
func WithEnv(enable bool) Option {
	return func(o *options) {
		o.useEnv = enable
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment. An empty path or a missing file leaves the defaults in place.
// Paths in the result have a leading ~ expanded.
func Load(path string, opts ...Option) (Config, error) {
	o := options{fs: loader.DefaultFS(), useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged, err := toMap(Default())
	if err != nil {
		return Config{}, err
	}

	fileData, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
	if err != nil {
		return Config{}, err
	}
	merged = loader.DeepMerge(merged, fileData)

	if o.useEnv {
		envData, err := loader.NewEnvLoader(EnvPrefix).Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, envData)
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Logging.File = ExpandHome(cfg.Logging.File)
	cfg.Editor.InitScript = ExpandHome(cfg.Editor.InitScript)
	cfg.Editor.PositionsFile = ExpandHome(cfg.Editor.PositionsFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// toMap converts a Config into the generic form the loaders produce.
func toMap(cfg Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromMap decodes merged loader output into a Config. Unknown keys are
// ignored.
func fromMap(m map[string]any) (Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrNoConfigDir, err)
	}
	return filepath.Join(dir, "keyline", "config.toml"), nil
}

// StateDir returns the directory for logs and saved positions, or "" if no
// home directory is known.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "keyline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "keyline")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
