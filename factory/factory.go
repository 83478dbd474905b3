package factory

import (
	"fmt"

	"github.com/lychee-technology/schemalens"
	"github.com/lychee-technology/schemalens/internal"
)

// NewAnalyzerWithConfig creates a new Analyzer with the provided configuration.
// This is the primary way for external projects to create an Analyzer instance.
// A nil config uses schemalens.DefaultConfig().
//
// Usage:
//
//	import (
//	    "github.com/lychee-technology/schemalens"
//	    "github.com/lychee-technology/schemalens/factory"
//	)
//
//	config := schemalens.DefaultConfig()
//	config.NearDuplicate.Threshold = 0.7
//	analyzer, err := factory.NewAnalyzerWithConfig(config)
//	if err != nil {
//	    // handle error
//	}
//	result, err := analyzer.Analyze(ctx, schemas)
func NewAnalyzerWithConfig(config *schemalens.Config) (schemalens.Analyzer, error) {
	if config == nil {
		config = schemalens.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, schemalens.NewConfigInvalidError(err)
	}
	return internal.NewAnalyticsService(config), nil
}

// NewSchemaRegistryFromDirectory loads every *.json, *.yaml and *.yml schema
// document under dir. References between documents are extracted from $ref
// values and validation status is computed per document.
func NewSchemaRegistryFromDirectory(dir string) (schemalens.SchemaRegistry, error) {
	registry, err := internal.NewFileSchemaRegistryFromDirectory(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas from %s: %w", dir, err)
	}
	return registry, nil
}
