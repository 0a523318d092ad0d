// Package commands provides CLI command handlers for oas2puml.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oas2puml"
	"github.com/erraggy/oas2puml/internal/cliutil"
	"github.com/erraggy/oas2puml/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatPUML = "puml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat returns an error unless format is one of valid.
func ValidateOutputFormat(format string, valid ...string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %v", format, valid)
}

// MarshalStructured marshals data as indented JSON or as YAML.
func MarshalStructured(data any, format string) ([]byte, error) {
	var out []byte
	var err error
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("marshaling to %s: %w", format, err)
	}
	return out, nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	out, err := MarshalStructured(data, format)
	if err != nil {
		return err
	}
	if format == FormatJSON {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// OutputSpecHeader writes the oas2puml version, specification path and
// swagger version to w.
func OutputSpecHeader(w io.Writer, specPath, version string) {
	cliutil.Writef(w, "oas2puml version: %s\n", oas2puml.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "Swagger Version: %s\n", version)
}

// OutputSpecStats writes the document statistics to w.
func OutputSpecStats(w io.Writer, sourceSize int64, stats parser.DocumentStats, loadTime any) {
	cliutil.Writef(w, "Source Size: %s\n", parser.FormatBytes(sourceSize))
	cliutil.Writef(w, "Paths: %d\n", stats.PathCount)
	cliutil.Writef(w, "Operations: %d\n", stats.OperationCount)
	cliutil.Writef(w, "Definitions: %d\n", stats.SchemaCount)
	cliutil.Writef(w, "Load Time: %v\n", loadTime)
}

// NewLogger returns a debug-level logger writing to stderr when verbose is
// set, and nil otherwise.
func NewLogger(verbose bool) parser.Logger {
	if !verbose {
		return nil
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return parser.NewSlogAdapter(slog.New(handler))
}

// ParseSpec parses the document at specPath, reading stdin for "-".
func ParseSpec(specPath string, logger parser.Logger) (*parser.ParseResult, error) {
	opts := []parser.Option{parser.WithLogger(logger)}
	if specPath == StdinFilePath {
		opts = append(opts, parser.WithReader(os.Stdin))
	} else {
		opts = append(opts, parser.WithFilePath(specPath))
	}
	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	return result, nil
}
