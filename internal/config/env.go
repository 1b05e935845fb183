package config

import (
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LISTEDIT_"

// envSetters maps each environment variable to the setting it overrides.
var envSetters = map[string]func(c *Config, value string) error{
	EnvPrefix + "HISTORY_MAX_ENTRIES": func(c *Config, v string) error {
		return parseInt(v, &c.History.MaxEntries)
	},
	EnvPrefix + "HISTORY_MERGE_EDITS": func(c *Config, v string) error {
		return parseBool(v, &c.History.MergeEdits)
	},
	EnvPrefix + "LISTS_MAX_SIZE": func(c *Config, v string) error {
		return parseInt(v, &c.Lists.MaxSize)
	},
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	},
	EnvPrefix + "LOG_FORMAT": func(c *Config, v string) error {
		c.Log.Format = strings.ToLower(v)
		return nil
	},
}

// ApplyEnv overrides settings of cfg from environment variables read
// through lookup, normally os.LookupEnv. Empty values are ignored.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	names := make([]string, 0, len(envSetters))
	for name := range envSetters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := envSetters[name](cfg, strings.TrimSpace(value)); err != nil {
			return &ParseError{Path: name, Message: err.Error(), Err: err}
		}
	}
	return nil
}

func parseInt(s string, dst *int) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = i
	return nil
}

func parseBool(s string, dst *bool) error {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return strconv.ErrSyntax
	}
	return nil
}
