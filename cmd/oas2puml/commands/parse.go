package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/internal/cliutil"
	"github.com/erraggy/oas2puml/parser"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Format  string
	Verbose bool
}

// ParseSummary is the structured output of the parse command.
type ParseSummary struct {
	Swagger     string   `json:"swagger" yaml:"swagger"`
	Title       string   `json:"title" yaml:"title"`
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Host        string   `json:"host,omitempty" yaml:"host,omitempty"`
	BasePath    string   `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Paths       int      `json:"paths" yaml:"paths"`
	Operations  int      `json:"operations" yaml:"operations"`
	Definitions []string `json:"definitions" yaml:"definitions"`
}

var parseUsage = heredoc.Doc(`
	Usage: oas2puml parse [flags] <file|url|->

	Parse a Swagger 2.0 document and print its structure.

	Flags:
`)

var parseExamples = heredoc.Doc(`

	Examples:
	  oas2puml parse swagger.yaml
	  oas2puml parse --format json https://example.com/api/swagger.json
	  cat swagger.yaml | oas2puml parse -

	Output:
	  text output goes to stderr; json and yaml go to stdout for pipelining.
`)

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug output to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "%s", parseUsage)
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "%s", parseExamples)
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	return handleParse(args, os.Stdout, os.Stderr)
}

func handleParse(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupParseFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	result, err := ParseSpec(specPath, NewLogger(flags.Verbose))
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, summarize(result), flags.Format)
	}

	cliutil.Writef(stderr, "Swagger Document Parser\n")
	cliutil.Writef(stderr, "=======================\n\n")
	OutputSpecHeader(stderr, specPath, result.Version)
	OutputSpecStats(stderr, result.SourceSize, result.Stats, result.LoadTime)

	doc := result.Document
	cliutil.Writef(stderr, "\nTitle: %s\n", doc.Title())
	cliutil.Writef(stderr, "Version: %s\n", doc.Version())
	if doc.Host != "" || doc.BasePath != "" {
		cliutil.Writef(stderr, "Base URL: %s%s\n", doc.Host, doc.BasePath)
	}
	if doc.Definitions.Len() > 0 {
		cliutil.Writef(stderr, "\nDefinitions:\n")
		for name, schema := range doc.Definitions.All() {
			cliutil.Writef(stderr, "  - %s (%s)\n", name, schemaKind(schema))
		}
	}
	if doc.Paths.Len() > 0 {
		cliutil.Writef(stderr, "\nOperations:\n")
		for uri, item := range doc.Paths.All() {
			for method, op := range item.Operations() {
				cliutil.Writef(stderr, "  - %-7s %s  [%s]\n", method, uri, diagram.InterfaceName(op, uri))
			}
		}
	}
	return nil
}

func summarize(result *parser.ParseResult) ParseSummary {
	doc := result.Document
	s := ParseSummary{
		Swagger:     result.Version,
		Title:       doc.Title(),
		Version:     doc.Version(),
		Host:        doc.Host,
		BasePath:    doc.BasePath,
		Paths:       result.Stats.PathCount,
		Operations:  result.Stats.OperationCount,
		Definitions: doc.Definitions.Keys(),
	}
	if doc.Info != nil {
		s.Description = doc.Info.Description
	}
	if s.Definitions == nil {
		s.Definitions = []string{}
	}
	return s
}

// schemaKind describes how a definition will be drawn.
func schemaKind(s parser.Schema) string {
	switch v := s.(type) {
	case *parser.ObjectSchema:
		if v.IsEnum() {
			return "enum"
		}
		return "object"
	case *parser.ArraySchema:
		return "array"
	case *parser.ComposedSchema:
		return "allOf"
	case *parser.RefSchema:
		return "ref " + v.SimpleRef()
	}
	return "unknown"
}
