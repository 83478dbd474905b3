package schemalens

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config consolidates the tunables of every analysis pass.
type Config struct {
	NearDuplicate     NearDuplicateConfig     `json:"nearDuplicate" koanf:"nearDuplicate"`
	NameSimilarity    NameSimilarityConfig    `json:"nameSimilarity" koanf:"nameSimilarity"`
	InlineDuplication InlineDuplicationConfig `json:"inlineDuplication" koanf:"inlineDuplication"`
	Complexity        ComplexityConfig        `json:"complexity" koanf:"complexity"`
	Suggestions       SuggestionConfig        `json:"suggestions" koanf:"suggestions"`
	Cache             CacheConfig             `json:"cache" koanf:"cache"`
	Parse             ParseConfig             `json:"parse" koanf:"parse"`
	Logging           LoggingConfig           `json:"logging" koanf:"logging"`
	Metrics           MetricsConfig           `json:"metrics" koanf:"metrics"`
}

// NearDuplicateConfig contains the near-duplicate pairing thresholds
type NearDuplicateConfig struct {
	Threshold  float64 `json:"threshold" koanf:"threshold" validate:"gte=0,lte=1"`
	MinOverlap int     `json:"minOverlap" koanf:"minOverlap" validate:"gte=0"`
}

// NameSimilarityConfig filters name-similarity groups
type NameSimilarityConfig struct {
	MinAverageSimilarity float64 `json:"minAverageSimilarity" koanf:"minAverageSimilarity" validate:"gte=0,lte=1"`
	MinGroupSize         int     `json:"minGroupSize" koanf:"minGroupSize" validate:"gte=2"`
}

// InlineDuplicationConfig contains inline structure mining thresholds
type InlineDuplicationConfig struct {
	MinParentCount      int `json:"minParentCount" koanf:"minParentCount" validate:"gte=2"`
	CentralityThreshold int `json:"centralityThreshold" koanf:"centralityThreshold" validate:"gte=0"`
}

// ComplexityConfig contains the weights of the complexity score.
// Every weight must be non-negative so the score never decreases as an input grows.
type ComplexityConfig struct {
	PropertyWeight  float64 `json:"propertyWeight" koanf:"propertyWeight" validate:"gte=0"`
	DepthWeight     float64 `json:"depthWeight" koanf:"depthWeight" validate:"gte=0"`
	ReferenceWeight float64 `json:"referenceWeight" koanf:"referenceWeight" validate:"gte=0"`
	SizeWeight      float64 `json:"sizeWeight" koanf:"sizeWeight" validate:"gte=0"` // per kilobyte
}

// SuggestionConfig contains suggestion generation and maturity settings
type SuggestionConfig struct {
	CentralityThreshold int             `json:"centralityThreshold" koanf:"centralityThreshold" validate:"gte=0"`
	TopComplexSchemas   int             `json:"topComplexSchemas" koanf:"topComplexSchemas" validate:"gte=1"`
	SeverityWeights     SeverityWeights `json:"severityWeights" koanf:"severityWeights"`
}

// SeverityWeights are the maturity penalties per suggestion severity
type SeverityWeights struct {
	High   int `json:"high" koanf:"high" validate:"gte=0"`
	Medium int `json:"medium" koanf:"medium" validate:"gte=0"`
	Low    int `json:"low" koanf:"low" validate:"gte=0"`
}

// CacheConfig contains result cache settings
type CacheConfig struct {
	Enabled    bool `json:"enabled" koanf:"enabled"`
	MaxEntries int  `json:"maxEntries" koanf:"maxEntries" validate:"gte=1"`
}

// ParseConfig bounds the schema node parser
type ParseConfig struct {
	MaxDepth int `json:"maxDepth" koanf:"maxDepth" validate:"gte=1,lte=4096"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level" koanf:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" koanf:"format" validate:"oneof=json console"`
}

// MetricsConfig contains metrics collection settings
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" koanf:"enabled"`
	Namespace string `json:"namespace" koanf:"namespace" validate:"required_if=Enabled true"`
	Textfile  string `json:"textfile" koanf:"textfile"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		NearDuplicate: NearDuplicateConfig{
			Threshold:  0.8,
			MinOverlap: 3,
		},
		NameSimilarity: NameSimilarityConfig{
			MinAverageSimilarity: 0,
			MinGroupSize:         2,
		},
		InlineDuplication: InlineDuplicationConfig{
			MinParentCount:      3,
			CentralityThreshold: 3,
		},
		Complexity: ComplexityConfig{
			PropertyWeight:  0.3,
			DepthWeight:     5,
			ReferenceWeight: 2,
			SizeWeight:      0.1,
		},
		Suggestions: SuggestionConfig{
			CentralityThreshold: 3,
			TopComplexSchemas:   5,
			SeverityWeights: SeverityWeights{
				High:   8,
				Medium: 4,
				Low:    2,
			},
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 32,
		},
		Parse: ParseConfig{
			MaxDepth: 64,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "schemalens",
		},
	}
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigError{Field: "config", Message: "must not be nil"}
	}

	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	return &ConfigError{Field: field, Message: describeRule(fe)}
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "required_if":
		return "is required when enabled"
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}
