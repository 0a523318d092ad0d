package parser

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oas2puml"
	"github.com/erraggy/oas2puml/oaserrors"
)

// Parser loads Swagger 2.0 documents
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "oas2puml/<version>" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: oas2puml.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed document and metadata about its source.
//
// Callers should treat ParseResult as read-only: diagram builders share the
// schema values it holds.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the swagger version string ("2.0")
	Version string
	// Document is the parsed document
	Document *Document
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Parse parses a Swagger document from a file path or an http(s) URL
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	var data []byte
	var err error
	var format SourceFormat

	loadStart := time.Now()
	if isURL(specPath) {
		var contentType string
		data, contentType, err = p.fetchURL(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		data, err = os.ReadFile(specPath) //nolint:gosec // path is user input by design of the CLI
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(specPath)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}

	res.SourcePath = specPath
	res.LoadTime = loadTime
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses a Swagger document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parseBytes(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses a Swagger document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

// parseBytes decodes data. source names the input in error messages.
func (p *Parser) parseBytes(data []byte, source string) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	if format == SourceFormatUnknown {
		return nil, &oaserrors.ParseError{Path: source, Message: "empty document"}
	}

	// JSON is a subset of YAML, so one node decoder serves both formats.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "failed to parse YAML/JSON", Cause: err}
	}

	dec := &decoder{path: source, log: p.log()}
	doc, err := dec.document(&root)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		SourceFormat: format,
		Version:      doc.Swagger,
		Document:     doc,
		SourceSize:   int64(len(data)),
		Stats:        GetDocumentStats(doc),
	}
	p.log().Info("parsed document",
		"source", source,
		"size", FormatBytes(result.SourceSize),
		"paths", result.Stats.PathCount,
		"operations", result.Stats.OperationCount,
		"schemas", result.Stats.SchemaCount)
	return result, nil
}
