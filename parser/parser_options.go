package parser

import (
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/oas2puml"
	"github.com/erraggy/oas2puml/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	userAgent  string
	httpClient *http.Client
	logger     Logger

	// sourceName overrides SourcePath in the result
	sourceName *string
}

// ParseWithOptions parses a Swagger document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("swagger.yaml"),
//	    parser.WithLogger(logger),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		UserAgent:  cfg.userAgent,
		HTTPClient: cfg.httpClient,
		Logger:     cfg.logger,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	default:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		userAgent: oas2puml.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oas2puml/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// If the client is nil, this option has no effect (default client is used).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithSourceName overrides ParseResult.SourcePath, which is useful when
// parsing from a reader or bytes.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
