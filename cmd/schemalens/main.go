package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lychee-technology/schemalens"
	"github.com/lychee-technology/schemalens/factory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	configPath string
	logLevel   string
	config     *schemalens.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		zap.S().Errorw("command failed", "error", err)
		_ = zap.L().Sync()
		os.Exit(1)
	}
	_ = zap.L().Sync()
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "schemalens",
		Short: "Static analytics for collections of JSON Schema documents",
		Long: `schemalens inspects a directory of JSON Schema documents and reports
reference cycles, complexity, duplication, field inconsistencies and
prioritized refactoring suggestions.

Configuration is layered: built-in defaults, then a YAML file
(--config, $SCHEMALENS_CONFIG or ./schemalens.yaml), then SCHEMALENS_*
environment variables, then command flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newAnalyzeCommand(a),
		newFieldsCommand(a),
		newGraphCommand(a),
		newCyclesCommand(a),
		newConfigCommand(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	a.config = cfg
	return nil
}

func newLogger(cfg schemalens.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level
	return zc.Build()
}

// loadSchemas reads every schema document under dir.
func loadSchemas(dir string) ([]schemalens.Schema, error) {
	registry, err := factory.NewSchemaRegistryFromDirectory(dir)
	if err != nil {
		return nil, err
	}
	return registry.Schemas(), nil
}
