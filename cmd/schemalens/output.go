package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/lychee-technology/schemalens"
	"github.com/lychee-technology/schemalens/internal"
	"gopkg.in/yaml.v3"
)

type writer = io.Writer

// writeOutput runs fn against outputFile, or stdout when it is empty.
func writeOutput(outputFile string, fn func(w writer) error) error {
	if outputFile == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeResult(w io.Writer, format string, result *schemalens.AnalyticsResult) error {
	if format == "text" {
		internal.WriteText(w, result)
		return nil
	}
	return writeStructured(w, format, result)
}

// writeStructured encodes v as indented JSON or as YAML. YAML is produced from
// the JSON encoding so both formats share field names.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
