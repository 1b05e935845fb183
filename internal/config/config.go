package config

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/history"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config is the complete engine configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Lists   ListsConfig   `toml:"lists" yaml:"lists"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// HistoryConfig configures the undo history.
type HistoryConfig struct {
	// MaxEntries is the number of undo steps kept.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`
	// MergeEdits lets consecutive edits of the same field undo as one step.
	MergeEdits bool `toml:"merge_edits" yaml:"merge_edits"`
}

// ListsConfig configures edited lists.
type ListsConfig struct {
	// MaxSize caps the number of items in a list. Zero means unbounded.
	MaxSize int `toml:"max_size" yaml:"max_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MaxEntries: history.DefaultMaxEntries,
			MergeEdits: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatConsole,
		},
	}
}

// Validate checks every setting and returns all problems found, each
// matching ErrValidationFailed.
func (c Config) Validate() error {
	var errs []error

	if c.History.MaxEntries <= 0 {
		errs = append(errs, &ValidationError{
			Path:    "history.max_entries",
			Message: "must be positive",
			Value:   c.History.MaxEntries,
		})
	}
	if c.Lists.MaxSize < 0 {
		errs = append(errs, &ValidationError{
			Path:    "lists.max_size",
			Message: "must not be negative",
			Value:   c.Lists.MaxSize,
		})
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "unknown level",
			Value:   c.Log.Level,
		})
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		errs = append(errs, &ValidationError{
			Path:    "log.format",
			Message: `must be "console" or "json"`,
			Value:   c.Log.Format,
		})
	}

	return errors.Join(errs...)
}

// HistoryOptions returns the history options for these settings.
func (c Config) HistoryOptions(logger *zap.Logger) []history.Option {
	return []history.Option{
		history.WithMaxEntries(c.History.MaxEntries),
		history.WithMerging(c.History.MergeEdits),
		history.WithLogger(logger),
	}
}
