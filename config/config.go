// Package config loads settings for the spellbound command.
//
// Values are layered, later sources overriding earlier ones: built-in
// defaults, a YAML file (spellbound.yaml in the working directory, or the
// file named by --config), SPELLBOUND_* environment variables, then flags
// that were set explicitly.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/wippyai/spellbound/dict"
	"github.com/wippyai/spellbound/engine"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "SPELLBOUND_"

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "warn"

// Config holds the command's settings.
type Config struct {
	// Backend is a registry name; empty selects the platform default.
	Backend  string   `koanf:"backend"`
	Language string   `koanf:"language"`
	DictDir  string   `koanf:"dict_dir"`
	LogLevel string   `koanf:"log_level"`
	Ignore   []string `koanf:"ignore"`
	JSON     bool     `koanf:"json"`
	Fail     bool     `koanf:"fail"`
}

// flagKeys maps flag names whose config key is not the snake_case name.
var flagKeys = map[string]string{
	"config":      "",
	"interactive": "",
}

// listKeys are the keys whose environment value is a comma separated list.
var listKeys = map[string]bool{
	"ignore": true,
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// findConfigFile returns explicit, or the first default file that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"spellbound.yaml", "spellbound.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads the configuration. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"backend":   "",
		"language":  engine.DefaultLanguage,
		"dict_dir":  dict.DefaultDir,
		"log_level": DefaultLogLevel,
		"json":      false,
		"fail":      false,
	}, "."), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// SPELLBOUND_DICT_DIR -> dict_dir, SPELLBOUND_IGNORE=a,b -> ignore: [a, b]
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil); err != nil {
		return nil, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[f.Name]; ok {
				key = mapped
			}
			if key == "" {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// Validate checks values that cannot be checked by a backend.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if c.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	return nil
}
