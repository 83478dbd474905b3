package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lychee-technology/schemalens"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService runs every analysis pass over a schema collection and
// memoizes full results. One service admits a single full analysis at a time.
type AnalyticsService struct {
	config *schemalens.Config
	cache  *analyticsCache

	mu        sync.Mutex
	analyzing bool

	// beforePass runs at the start of each pass; tests use it to inject failures.
	beforePass func(pass string)
}

var _ schemalens.Analyzer = (*AnalyticsService)(nil)

// NewAnalyticsService creates a service. A nil config uses schemalens.DefaultConfig().
func NewAnalyticsService(config *schemalens.Config) *AnalyticsService {
	if config == nil {
		config = schemalens.DefaultConfig()
	}
	s := &AnalyticsService{config: config}
	if config.Cache.Enabled {
		s.cache = newAnalyticsCache(config.Cache.MaxEntries)
	}
	return s
}

// Config returns the configuration the service was built with.
func (s *AnalyticsService) Config() *schemalens.Config {
	return s.config
}

func (s *AnalyticsService) corpus(schemas []schemalens.Schema) *corpus {
	return newCorpus(schemas, s.config.Parse.MaxDepth)
}

// Analyze runs the full pipeline. A cached result for the same fingerprint is
// returned unchanged. While another Analyze call is running on this service,
// it fails with an ANALYSIS_IN_PROGRESS error.
func (s *AnalyticsService) Analyze(ctx context.Context, schemas []schemalens.Schema) (*schemalens.AnalyticsResult, error) {
	if err := ctx.Err(); err != nil {
		EmitAnalysisOutcome(ctx, "cancelled")
		return nil, schemalens.NewAnalysisCancelledError(err)
	}

	key := cacheKey(schemas)
	if s.cache != nil {
		if cached, ok := s.cache.get(key); ok {
			zap.S().Debugw("analysis cache hit", "key", key)
			EmitCacheLookup(ctx, true)
			EmitAnalysisOutcome(ctx, "cached")
			return cached, nil
		}
		zap.S().Debugw("analysis cache miss", "key", key)
		EmitCacheLookup(ctx, false)
	}

	if !s.tryAcquire() {
		EmitAnalysisOutcome(ctx, "conflict")
		return nil, schemalens.NewAnalysisInProgressError()
	}
	defer s.release()

	result, err := s.run(ctx, schemas)
	if err != nil {
		if ctx.Err() != nil {
			EmitAnalysisOutcome(ctx, "cancelled")
			return nil, schemalens.NewAnalysisCancelledError(ctx.Err())
		}
		EmitAnalysisOutcome(ctx, "failed")
		return nil, err
	}

	if s.cache != nil {
		s.cache.put(key, result)
	}
	EmitAnalysisOutcome(ctx, "success")
	return result, nil
}

func (s *AnalyticsService) tryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return false
	}
	s.analyzing = true
	return true
}

func (s *AnalyticsService) release() {
	s.mu.Lock()
	s.analyzing = false
	s.mu.Unlock()
}

func (s *AnalyticsService) runPass(ctx context.Context, pass string, fn func()) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("analysis pass panicked", "pass", pass, "panic", r)
			err = schemalens.NewPassFailedError(pass, fmt.Errorf("panic: %v", r))
		}
	}()
	start := time.Now()
	if s.beforePass != nil {
		s.beforePass(pass)
	}
	fn()
	EmitStageLatency(ctx, pass, time.Since(start).Milliseconds())
	return nil
}

func (s *AnalyticsService) run(ctx context.Context, schemas []schemalens.Schema) (*schemalens.AnalyticsResult, error) {
	start := time.Now()
	cfg := s.config

	var c *corpus
	if err := s.runPass(ctx, "parse", func() { c = s.corpus(schemas) }); err != nil {
		return nil, err
	}

	var (
		cycles     []schemalens.CircularReference
		complexity map[string]schemalens.ComplexityMetrics
		graph      schemalens.ReferenceGraph
		duplicates []schemalens.DuplicateGroup
		nearPairs  []schemalens.NearDuplicatePair
		nameGroups []schemalens.NameSimilarGroup
		fields     schemalens.FieldAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.runPass(gctx, "cycles", func() { cycles = detectCircularReferences(c) })
	})
	g.Go(func() error {
		return s.runPass(gctx, "complexity", func() { complexity = calculateComplexityMetrics(c, cfg.Complexity) })
	})
	g.Go(func() error {
		return s.runPass(gctx, "graph", func() { graph = buildReferenceGraph(c) })
	})
	g.Go(func() error {
		return s.runPass(gctx, "duplicates", func() { duplicates = detectDuplicateSchemas(c) })
	})
	g.Go(func() error {
		return s.runPass(gctx, "near-duplicates", func() { nearPairs = detectNearDuplicateSchemas(c, cfg.NearDuplicate) })
	})
	g.Go(func() error {
		return s.runPass(gctx, "names", func() { nameGroups = detectNameSimilarGroups(c, cfg.NameSimilarity) })
	})
	g.Go(func() error {
		return s.runPass(gctx, "fields", func() { fields = analyzeFields(c) })
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		inline      []schemalens.InlineDuplicate
		project     schemalens.ProjectMetrics
		suggestions []schemalens.Suggestion
		maturity    int
	)
	if err := s.runPass(ctx, "inline", func() { inline = mineInlineDuplicates(c, graph, cfg.InlineDuplication) }); err != nil {
		return nil, err
	}
	if err := s.runPass(ctx, "project", func() {
		project = calculateProjectMetrics(c, complexity, graph, cycles, cfg.Suggestions.TopComplexSchemas)
	}); err != nil {
		return nil, err
	}
	if err := s.runPass(ctx, "suggestions", func() {
		suggestions = generateSuggestions(suggestionInputs{
			nameGroups: nameGroups,
			duplicates: duplicates,
			nearPairs:  nearPairs,
			inline:     inline,
			fields:     fields,
			cycles:     cycles,
			complexity: complexity,
			graph:      graph,
		}, cfg.Suggestions)
		maturity = maturityScore(suggestions, cfg.Suggestions.SeverityWeights)
	}); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	result := &schemalens.AnalyticsResult{
		CircularReferences: cycles,
		ComplexityMetrics:  complexity,
		ReferenceGraph:     graph,
		DuplicateGroups:    duplicates,
		NearDuplicates:     nearPairs,
		NameSimilarGroups:  nameGroups,
		FieldAnalysis:      fields,
		InlineDuplicates:   inline,
		Suggestions:        suggestions,
		ProjectMetrics:     project,
		Performance: schemalens.PerformanceMetrics{
			AnalysisDuration: duration,
			MemoryUsageBytes: int64(project.TotalSizeBytes),
			Timestamp:        time.Now(),
		},
		MaturityScore: maturity,
	}

	EmitStageLatency(ctx, "total", duration.Milliseconds())
	EmitMaturityScore(ctx, int64(maturity))
	for category, count := range countByCategory(suggestions) {
		EmitSuggestionCount(ctx, string(category), int64(count))
	}
	zap.S().Infow("schema analysis completed",
		"schemas", len(schemas),
		"duration", duration,
		"cycles", len(cycles),
		"suggestions", len(suggestions),
		"maturityScore", maturity,
	)
	return result, nil
}

func countByCategory(suggestions []schemalens.Suggestion) map[schemalens.SuggestionCategory]int {
	counts := map[schemalens.SuggestionCategory]int{
		schemalens.SuggestionCategoryNaming:           0,
		schemalens.SuggestionCategoryReuse:            0,
		schemalens.SuggestionCategoryFieldConsistency: 0,
		schemalens.SuggestionCategoryReferences:       0,
		schemalens.SuggestionCategoryComplexity:       0,
	}
	for _, s := range suggestions {
		counts[s.Category]++
	}
	return counts
}

// DetectCircularReferences reports every unique reference cycle.
func (s *AnalyticsService) DetectCircularReferences(schemas []schemalens.Schema) []schemalens.CircularReference {
	return detectCircularReferences(s.corpus(schemas))
}

// CalculateComplexityMetrics returns structural metrics keyed by schema id.
func (s *AnalyticsService) CalculateComplexityMetrics(schemas []schemalens.Schema) map[string]schemalens.ComplexityMetrics {
	return calculateComplexityMetrics(s.corpus(schemas), s.config.Complexity)
}

// BuildReferenceGraph builds the directed graph of resolved references.
func (s *AnalyticsService) BuildReferenceGraph(schemas []schemalens.Schema) schemalens.ReferenceGraph {
	return buildReferenceGraph(s.corpus(schemas))
}

// DetectDuplicateSchemas groups structurally identical schemas.
func (s *AnalyticsService) DetectDuplicateSchemas(schemas []schemalens.Schema) []schemalens.DuplicateGroup {
	return detectDuplicateSchemas(s.corpus(schemas))
}

// DetectNearDuplicateSchemas pairs schemas whose field signatures overlap.
func (s *AnalyticsService) DetectNearDuplicateSchemas(schemas []schemalens.Schema, opts schemalens.NearDuplicateConfig) []schemalens.NearDuplicatePair {
	return detectNearDuplicateSchemas(s.corpus(schemas), opts)
}

// DetectNameSimilarGroups clusters schemas by shared name tokens.
func (s *AnalyticsService) DetectNameSimilarGroups(schemas []schemalens.Schema, opts schemalens.NameSimilarityConfig) []schemalens.NameSimilarGroup {
	return detectNameSimilarGroups(s.corpus(schemas), opts)
}

// AnalyzeFields aggregates property declarations across schemas.
func (s *AnalyticsService) AnalyzeFields(schemas []schemalens.Schema) schemalens.FieldAnalysis {
	return analyzeFields(s.corpus(schemas))
}

// DetectInlineDuplicates finds repeated inline structures worth extracting.
func (s *AnalyticsService) DetectInlineDuplicates(schemas []schemalens.Schema) []schemalens.InlineDuplicate {
	c := s.corpus(schemas)
	return mineInlineDuplicates(c, buildReferenceGraph(c), s.config.InlineDuplication)
}

// CalculateProjectMetrics computes project-wide totals and rankings.
func (s *AnalyticsService) CalculateProjectMetrics(schemas []schemalens.Schema) schemalens.ProjectMetrics {
	c := s.corpus(schemas)
	return calculateProjectMetrics(
		c,
		calculateComplexityMetrics(c, s.config.Complexity),
		buildReferenceGraph(c),
		detectCircularReferences(c),
		s.config.Suggestions.TopComplexSchemas,
	)
}

// CacheStats returns the number of cached results and their keys.
func (s *AnalyticsService) CacheStats() schemalens.CacheStats {
	if s.cache == nil {
		return schemalens.CacheStats{Keys: []string{}}
	}
	return s.cache.stats()
}

// ClearCache drops every cached result.
func (s *AnalyticsService) ClearCache() {
	if s.cache != nil {
		s.cache.clear()
	}
}
