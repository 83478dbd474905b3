package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/lychee-technology/schemalens"
)

const (
	// EnvPrefix scopes the environment variables read as configuration.
	EnvPrefix = "SCHEMALENS_"

	// ConfigPathEnvVar points at a YAML configuration file.
	ConfigPathEnvVar = "SCHEMALENS_CONFIG"
)

// DefaultConfigPaths are searched in order when no file is given explicitly.
var DefaultConfigPaths = []string{
	"schemalens.yaml",
	"schemalens.yml",
	".schemalens.yaml",
}

// loadConfig layers struct defaults, an optional YAML file and SCHEMALENS_*
// environment variables, in increasing priority.
//
// Environment names map onto keys case-insensitively with "_" as the
// separator, e.g. SCHEMALENS_NEARDUPLICATE_THRESHOLD -> nearDuplicate.threshold.
func loadConfig(explicitPath string) (*schemalens.Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(schemalens.DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	knownKeys := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		knownKeys[strings.ToLower(key)] = key
	}

	configPath, err := findConfigFile(explicitPath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", envTransformFunc(knownKeys))
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &schemalens.Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// envTransformFunc maps SCHEMALENS_SECTION_FIELD onto a known koanf key.
// Unknown variables are dropped.
func envTransformFunc(knownKeys map[string]string) func(string) string {
	return func(name string) string {
		if name == ConfigPathEnvVar {
			return ""
		}
		path := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		path = strings.ReplaceAll(path, "_", ".")
		return knownKeys[path]
	}
}

// findConfigFile returns explicitPath if set, then $SCHEMALENS_CONFIG, then
// the first default path that exists. An explicit path that does not exist
// is an error; a missing default is not.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}
