package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lychee-technology/schemalens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnalyzerWithConfig(t *testing.T) {
	analyzer, err := NewAnalyzerWithConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, analyzer)
	assert.Equal(t, schemalens.CacheStats{Keys: []string{}}, analyzer.CacheStats())
}

func TestNewAnalyzerWithConfigRejectsInvalidConfig(t *testing.T) {
	config := schemalens.DefaultConfig()
	config.NearDuplicate.Threshold = 1.5

	analyzer, err := NewAnalyzerWithConfig(config)
	assert.Nil(t, analyzer)
	require.Error(t, err)

	var ae *schemalens.AnalyticsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, schemalens.ErrCodeConfigInvalid, ae.Code)

	var configErr *schemalens.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "nearDuplicate.threshold", configErr.Field)
}

func TestRegistryAndAnalyzerTogether(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Order.json":    `{"type": "object", "properties": {"customer": {"$ref": "Customer.json"}, "id": {"type": "string"}}}`,
		"Customer.json": `{"type": "object", "properties": {"orders": {"type": "array", "items": {"$ref": "Order.json"}}, "id": {"type": "integer"}}}`,
		"Tag.yaml":      "type: object\nproperties:\n  label:\n    type: string\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	registry, err := NewSchemaRegistryFromDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer", "Order", "Tag"}, registry.ListSchemas())

	analyzer, err := NewAnalyzerWithConfig(schemalens.DefaultConfig())
	require.NoError(t, err)

	result, err := analyzer.Analyze(context.Background(), registry.Schemas())
	require.NoError(t, err)

	require.Len(t, result.CircularReferences, 1)
	assert.Equal(t, []string{"Customer", "Order"}, result.CircularReferences[0].Path)
	assert.Equal(t, []string{"Tag"}, result.ProjectMetrics.OrphanedSchemas)

	id, ok := result.FieldAnalysis.Field("id")
	require.True(t, ok)
	assert.True(t, id.Conflicts.Type)
	assert.Equal(t, 1, analyzer.CacheStats().Size)
}

func TestNewSchemaRegistryFromDirectoryMissing(t *testing.T) {
	_, err := NewSchemaRegistryFromDirectory(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "failed to load schemas from")
}
