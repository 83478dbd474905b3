package internal

import (
	"context"
	"sync"
)

// telemetry.go
// Lightweight telemetry hook layer for the analysis engine. Callers register an
// emitter (the Prometheus emitter, or a test stub) via RegisterTelemetryEmitter.
// By default the emitter is a no-op.

const (
	MetricStageLatency    = "schemalens_stage_latency_ms"
	MetricCacheLookup     = "schemalens_cache_lookup"
	MetricSuggestionCount = "schemalens_suggestion_count"
	MetricMaturityScore   = "schemalens_maturity_score"
	MetricAnalysisOutcome = "schemalens_analysis_outcome"
)

// TelemetryEmitter receives every emitted measurement.
type TelemetryEmitter func(ctx context.Context, name string, labels map[string]string, value any)

var (
	teleMu   sync.Mutex
	teleImpl TelemetryEmitter = func(ctx context.Context, name string, labels map[string]string, value any) {}
)

// RegisterTelemetryEmitter registers a custom emitter function. Passing nil restores the no-op.
func RegisterTelemetryEmitter(fn TelemetryEmitter) {
	teleMu.Lock()
	defer teleMu.Unlock()
	if fn == nil {
		teleImpl = func(ctx context.Context, name string, labels map[string]string, value any) {}
		return
	}
	teleImpl = fn
}

func emitter() TelemetryEmitter {
	teleMu.Lock()
	defer teleMu.Unlock()
	return teleImpl
}

// EmitStageLatency records the latency (milliseconds) of one analysis stage.
// label {"stage": "<parse|cycles|complexity|graph|...|total>"}
func EmitStageLatency(ctx context.Context, stage string, ms int64) {
	emitter()(ctx, MetricStageLatency, map[string]string{"stage": stage}, ms)
}

// EmitCacheLookup records one result cache lookup.
// label {"result": "hit"|"miss"}
func EmitCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	emitter()(ctx, MetricCacheLookup, map[string]string{"result": result}, int64(1))
}

// EmitSuggestionCount records the number of suggestions produced per category.
func EmitSuggestionCount(ctx context.Context, category string, count int64) {
	emitter()(ctx, MetricSuggestionCount, map[string]string{"category": category}, count)
}

// EmitMaturityScore records the latest project maturity score.
func EmitMaturityScore(ctx context.Context, score int64) {
	emitter()(ctx, MetricMaturityScore, nil, score)
}

// EmitAnalysisOutcome records how a full analysis ended.
// label {"outcome": "success"|"cached"|"conflict"|"cancelled"|"failed"}
func EmitAnalysisOutcome(ctx context.Context, outcome string) {
	emitter()(ctx, MetricAnalysisOutcome, map[string]string{"outcome": outcome}, int64(1))
}
