package schemalens

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.NearDuplicate.Threshold != 0.8 {
		t.Errorf("Expected near-duplicate threshold 0.8, got %v", config.NearDuplicate.Threshold)
	}
	if config.NearDuplicate.MinOverlap != 3 {
		t.Errorf("Expected min overlap 3, got %d", config.NearDuplicate.MinOverlap)
	}
	if config.InlineDuplication.MinParentCount != 3 {
		t.Errorf("Expected min parent count 3, got %d", config.InlineDuplication.MinParentCount)
	}
	if config.Suggestions.CentralityThreshold != 3 {
		t.Errorf("Expected centrality threshold 3, got %d", config.Suggestions.CentralityThreshold)
	}
	if w := config.Suggestions.SeverityWeights; w.High != 8 || w.Medium != 4 || w.Low != 2 {
		t.Errorf("Expected severity weights 8/4/2, got %+v", w)
	}
	if !config.Cache.Enabled {
		t.Error("Expected result cache to be enabled by default")
	}
	if config.Parse.MaxDepth != 64 {
		t.Errorf("Expected parse max depth 64, got %d", config.Parse.MaxDepth)
	}
	if config.Metrics.Enabled {
		t.Error("Expected metrics to be disabled by default")
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestConfigValidationDetailed(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorField  string
	}{
		{
			name:        "valid config",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "threshold above one",
			mutate:      func(c *Config) { c.NearDuplicate.Threshold = 1.2 },
			expectError: true,
			errorField:  "nearDuplicate.threshold",
		},
		{
			name:        "negative overlap",
			mutate:      func(c *Config) { c.NearDuplicate.MinOverlap = -1 },
			expectError: true,
			errorField:  "nearDuplicate.minOverlap",
		},
		{
			name:        "group size below two",
			mutate:      func(c *Config) { c.NameSimilarity.MinGroupSize = 1 },
			expectError: true,
			errorField:  "nameSimilarity.minGroupSize",
		},
		{
			name:        "negative complexity weight",
			mutate:      func(c *Config) { c.Complexity.DepthWeight = -5 },
			expectError: true,
			errorField:  "complexity.depthWeight",
		},
		{
			name:        "negative severity weight",
			mutate:      func(c *Config) { c.Suggestions.SeverityWeights.Low = -1 },
			expectError: true,
			errorField:  "suggestions.severityWeights.low",
		},
		{
			name:        "zero parse depth",
			mutate:      func(c *Config) { c.Parse.MaxDepth = 0 },
			expectError: true,
			errorField:  "parse.maxDepth",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.Logging.Level = "trace" },
			expectError: true,
			errorField:  "logging.level",
		},
		{
			name: "metrics without namespace",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Namespace = ""
			},
			expectError: true,
			errorField:  "metrics.namespace",
		},
		{
			name:        "disabled metrics without namespace",
			mutate:      func(c *Config) { c.Metrics.Namespace = "" },
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.expectError {
				var configErr *ConfigError
				if err == nil {
					t.Error("Expected validation error but got none")
				} else if errors.As(err, &configErr) {
					if configErr.Field != tt.errorField {
						t.Errorf("Expected error field %s, got %s", tt.errorField, configErr.Field)
					}
				} else {
					t.Errorf("Expected ConfigError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("Expected no validation error but got: %v", err)
			}
		})
	}
}

func TestNilConfigValidation(t *testing.T) {
	var config *Config
	if err := config.Validate(); err == nil {
		t.Error("Expected nil config to fail validation")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "test.field",
		Message: "test message",
	}

	expected := "config validation error for field 'test.field': test message"
	if err.Error() != expected {
		t.Errorf("Expected error message %s, got %s", expected, err.Error())
	}
}

func TestConfigErrorMessage(t *testing.T) {
	config := DefaultConfig()
	config.NearDuplicate.Threshold = 2

	err := config.Validate()
	expected := "config validation error for field 'nearDuplicate.threshold': must be less than or equal to 1"
	if err == nil || err.Error() != expected {
		t.Errorf("Expected %q, got %v", expected, err)
	}
}
