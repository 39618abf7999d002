// Package config loads application configuration for the VitalFlux widget
// service. Precedence, lowest to highest: defaults, vitalflux.yaml, env
// vars (VITALFLUX_ prefix), command-line flags.
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
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "vitalflux.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "vitalflux.yml"

// Config holds the service configuration.
type Config struct {
	Port       int    `koanf:"port"`       // HTTP listen port
	APIKey     string `koanf:"api_key"`    // Gemini API key
	Model      string `koanf:"model"`      // model name, validated by the gateway
	Endpoint   string `koanf:"endpoint"`   // model API endpoint override
	Catalog    string `koanf:"catalog"`    // schema catalog YAML path; empty = builtin VitalFlux
	Datasource string `koanf:"datasource"` // datasource title override, applied once at startup
	Verbose    bool   `koanf:"verbose"`
}

// Load builds a Config. cfgFile may be empty, in which case vitalflux.yaml
// / vitalflux.yml in the working directory is used if present. flags may
// be nil; only flags the user actually set are applied.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"port":    8080,
		"model":   "gemini-2.5-flash-lite",
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			if _, err := os.Stat(name); err == nil {
				cfgFile = name
				break
			}
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment (VITALFLUX_API_KEY -> api_key)
	if err := k.Load(env.Provider("VITALFLUX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VITALFLUX_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// The key the rest of the tooling already uses.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return &cfg, nil
}
