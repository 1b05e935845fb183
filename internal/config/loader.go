package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads the file at path on top of Default, applies LISTEDIT_
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return LoadFS(os.DirFS(dir), name, os.LookupEnv)
}

// LoadFS is Load reading name from fsys and environment variables through
// lookup. A nil lookup skips the environment.
func LoadFS(fsys fs.FS, name string, lookup func(string) (string, bool)) (Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return Config{}, fmt.Errorf("read config %s: %w", name, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".toml":
		err = parseTOML(name, data, &cfg)
	case ".yaml", ".yml":
		err = parseYAML(name, data, &cfg)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Config{}, err
	}

	if lookup != nil {
		if err := ApplyEnv(&cfg, lookup); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func parseTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err := dec.Decode(cfg)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: path, Message: err.Error(), Err: err}

	var strict *toml.StrictMissingError
	var derr *toml.DecodeError
	switch {
	case errors.As(err, &strict) && len(strict.Errors) > 0:
		pe.Line, pe.Column = strict.Errors[0].Position()
		pe.Message = "unknown setting " + strings.Join(strict.Errors[0].Key(), ".")
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
	}
	return pe
}

func parseYAML(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}
