package main

import (
	"fmt"

	"github.com/lychee-technology/schemalens"
	"github.com/lychee-technology/schemalens/factory"
	"github.com/lychee-technology/schemalens/internal"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		format        string
		outputFile    string
		nearThreshold float64
		minOverlap    int
		metricsFile   string
	)
	cmd := &cobra.Command{
		Use:   "analyze <dir>",
		Short: "Run every analysis pass and print the full report",
		Long: `Analyze every *.json, *.yaml and *.yml schema under <dir>.

Output formats:
  text  - Human-readable summary (default)
  json  - Full result as JSON
  yaml  - Full result as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.config
			if cmd.Flags().Changed("near-threshold") {
				cfg.NearDuplicate.Threshold = nearThreshold
			}
			if cmd.Flags().Changed("min-overlap") {
				cfg.NearDuplicate.MinOverlap = minOverlap
			}
			if cmd.Flags().Changed("metrics-file") {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Textfile = metricsFile
			}

			analyzer, err := factory.NewAnalyzerWithConfig(&cfg)
			if err != nil {
				return err
			}

			var registry *prometheus.Registry
			if cfg.Metrics.Enabled {
				registry = prometheus.NewRegistry()
				emitter := internal.NewPrometheusEmitter(registry, cfg.Metrics.Namespace)
				internal.RegisterTelemetryEmitter(emitter.Emit)
				defer internal.RegisterTelemetryEmitter(nil)
			}

			schemas, err := loadSchemas(args[0])
			if err != nil {
				return err
			}
			result, err := analyzer.Analyze(cmd.Context(), schemas)
			if err != nil {
				return err
			}

			if registry != nil && cfg.Metrics.Textfile != "" {
				if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, registry); err != nil {
					return fmt.Errorf("failed to write metrics file: %w", err)
				}
				zap.S().Debugw("wrote metrics textfile", "path", cfg.Metrics.Textfile)
			}

			return writeOutput(outputFile, func(w writer) error {
				return writeResult(w, format, result)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().Float64Var(&nearThreshold, "near-threshold", 0, "minimum Jaccard similarity of near-duplicate pairs")
	cmd.Flags().IntVar(&minOverlap, "min-overlap", 0, "minimum shared field signatures of near-duplicate pairs")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this textfile")
	return cmd
}

func newFieldsCommand(a *app) *cobra.Command {
	var (
		format        string
		conflictsOnly bool
	)
	cmd := &cobra.Command{
		Use:   "fields <dir>",
		Short: "Report field declarations and their inconsistencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, schemas, err := a.prepare(args[0])
			if err != nil {
				return err
			}
			analysis := analyzer.AnalyzeFields(schemas)
			if conflictsOnly {
				analysis.Fields = filterConflicting(analysis.Fields)
			}
			return writeOutput("", func(w writer) error {
				if format == "text" {
					internal.WriteFieldsText(w, analysis, false)
					return nil
				}
				return writeStructured(w, format, analysis)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&conflictsOnly, "conflicts-only", false, "only list fields with at least one conflict")
	return cmd
}

func newGraphCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph <dir>",
		Short: "Print the schema reference graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, schemas, err := a.prepare(args[0])
			if err != nil {
				return err
			}
			graph := analyzer.BuildReferenceGraph(schemas)
			return writeOutput("", func(w writer) error {
				if format == "dot" {
					internal.WriteDOT(w, graph)
					return nil
				}
				return writeStructured(w, format, graph)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, json, yaml")
	return cmd
}

func newCyclesCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "cycles <dir>",
		Short: "List circular references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, schemas, err := a.prepare(args[0])
			if err != nil {
				return err
			}
			cycles := analyzer.DetectCircularReferences(schemas)
			return writeOutput("", func(w writer) error {
				if format == "text" {
					internal.WriteCyclesText(w, cycles)
					return nil
				}
				return writeStructured(w, format, cycles)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	return cmd
}

func newConfigCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOutput("", func(w writer) error {
				return writeStructured(w, format, a.config)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json, yaml")
	return cmd
}

func (a *app) prepare(dir string) (schemalens.Analyzer, []schemalens.Schema, error) {
	analyzer, err := factory.NewAnalyzerWithConfig(a.config)
	if err != nil {
		return nil, nil, err
	}
	schemas, err := loadSchemas(dir)
	if err != nil {
		return nil, nil, err
	}
	return analyzer, schemas, nil
}

func filterConflicting(fields []schemalens.FieldInsight) []schemalens.FieldInsight {
	out := make([]schemalens.FieldInsight, 0, len(fields))
	for _, f := range fields {
		if f.Conflicts.Any() {
			out = append(out, f)
		}
	}
	return out
}
