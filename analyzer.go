package schemalens

import (
	"context"
)

// Analyzer runs the analysis passes over an in-memory schema collection.
//
// Analyze runs every pass and memoizes the result by schema identity and
// last-modified timestamps. The granular methods run one pass each and are
// never cached. Implementations must be safe for concurrent use; a second
// Analyze call while one is running fails with ErrCodeAnalysisInProgress.
type Analyzer interface {
	Analyze(ctx context.Context, schemas []Schema) (*AnalyticsResult, error)

	DetectCircularReferences(schemas []Schema) []CircularReference
	CalculateComplexityMetrics(schemas []Schema) map[string]ComplexityMetrics
	BuildReferenceGraph(schemas []Schema) ReferenceGraph
	DetectDuplicateSchemas(schemas []Schema) []DuplicateGroup
	DetectNearDuplicateSchemas(schemas []Schema, opts NearDuplicateConfig) []NearDuplicatePair
	DetectNameSimilarGroups(schemas []Schema, opts NameSimilarityConfig) []NameSimilarGroup
	AnalyzeFields(schemas []Schema) FieldAnalysis
	DetectInlineDuplicates(schemas []Schema) []InlineDuplicate
	CalculateProjectMetrics(schemas []Schema) ProjectMetrics

	CacheStats() CacheStats
	ClearCache()
}
