package internal

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// PrometheusEmitter maps telemetry emissions onto Prometheus collectors.
type PrometheusEmitter struct {
	StageDuration *prometheus.HistogramVec
	CacheLookups  *prometheus.CounterVec
	Suggestions   *prometheus.GaugeVec
	MaturityScore prometheus.Gauge
	Analyses      *prometheus.CounterVec
}

// NewPrometheusEmitter registers the engine collectors on reg under namespace.
func NewPrometheusEmitter(reg prometheus.Registerer, namespace string) *PrometheusEmitter {
	factory := promauto.With(reg)
	return &PrometheusEmitter{
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of analysis stages in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of analysis result cache lookups",
			},
			[]string{"result"},
		),
		Suggestions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "suggestions",
				Help:      "Number of suggestions produced by the latest analysis",
			},
			[]string{"category"},
		),
		MaturityScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "maturity_score",
				Help:      "Project maturity score of the latest analysis",
			},
		),
		Analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of full analyses by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Emit satisfies TelemetryEmitter.
func (p *PrometheusEmitter) Emit(_ context.Context, name string, labels map[string]string, value any) {
	v, ok := toFloat(value)
	if !ok {
		zap.S().Debugw("dropping non-numeric telemetry value", "metric", name)
		return
	}
	switch name {
	case MetricStageLatency:
		p.StageDuration.WithLabelValues(labels["stage"]).Observe(v / 1000)
	case MetricCacheLookup:
		p.CacheLookups.WithLabelValues(labels["result"]).Add(v)
	case MetricSuggestionCount:
		p.Suggestions.WithLabelValues(labels["category"]).Set(v)
	case MetricMaturityScore:
		p.MaturityScore.Set(v)
	case MetricAnalysisOutcome:
		p.Analyses.WithLabelValues(labels["outcome"]).Add(v)
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
