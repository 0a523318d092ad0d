package generator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/internal/options"
	"github.com/erraggy/oas2puml/parser"
	"github.com/erraggy/oas2puml/puml"
	"github.com/erraggy/oas2puml/render"
)

// BaseName is the file name, without extension, of every generated file.
const BaseName = "swagger"

// SourceFile is the name of the generated PlantUML source file.
const SourceFile = BaseName + ".puml"

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "swagger.puml", "swagger.svg")
	Name string
	// Content is the file content
	Content []byte
}

// GenerateResult contains the results of generating diagrams from a Swagger document
type GenerateResult struct {
	// Files holds swagger.puml followed by one image per requested format
	Files []GeneratedFile
	// SourcePath is the path or URL the document was read from
	SourcePath string
	// SourceVersion is the swagger version string of the source document
	SourceVersion string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// DiagramType is the projection that was generated
	DiagramType diagram.Type
	// View is the projected diagram model
	View diagram.View
	// Properties is the property map the PlantUML source was rendered from
	Properties diagram.Properties
	// DiagramCount is the number of classes and interfaces, or of entities
	DiagramCount int
	// RelationCount is the number of document-level relations
	RelationCount int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to project and template the diagram
	GenerateTime time.Duration
	// RenderTime is the time taken to render images, zero without images
	RenderTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the source document
	Stats parser.DocumentStats
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Source returns the generated PlantUML source.
func (r *GenerateResult) Source() []byte {
	if f := r.GetFile(SourceFile); f != nil {
		return f.Content
	}
	return nil
}

// Generator turns Swagger documents into PlantUML diagrams
type Generator struct {
	// DiagramType selects the projection.
	// Default: diagram.TypeFull
	DiagramType diagram.Type

	// IncludeCardinality labels class diagram relations with 1..* or 0..*.
	// Default: true
	IncludeCardinality bool

	// ImageFormats lists the images to render next to the PlantUML source.
	// Rendering needs a PlantUML server.
	// Default: none
	ImageFormats []render.Format

	// Renderer renders images. If nil, render.New() is used.
	Renderer *render.Renderer

	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string

	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		DiagramType:        diagram.TypeFull,
		IncludeCardinality: true,
	}
}

func (g *Generator) log() parser.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return parser.NopLogger{}
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	diagramType        diagram.Type
	includeCardinality bool
	imageFormats       []render.Format
	renderer           *render.Renderer
	userAgent          string
	logger             parser.Logger
}

// GenerateWithOptions generates diagrams from a Swagger document using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(ctx,
//	    generator.WithFilePath("swagger.yaml"),
//	    generator.WithDiagramType(diagram.TypeEntity),
//	)
func GenerateWithOptions(ctx context.Context, opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		DiagramType:        cfg.diagramType,
		IncludeCardinality: cfg.includeCardinality,
		ImageFormats:       cfg.imageFormats,
		Renderer:           cfg.renderer,
		UserAgent:          cfg.userAgent,
		Logger:             cfg.logger,
	}

	if cfg.filePath != nil {
		return g.Generate(ctx, *cfg.filePath)
	}
	return g.GenerateParsed(ctx, *cfg.parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		diagramType:        diagram.TypeFull,
		includeCardinality: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithDiagramType selects the projection
// Default: diagram.TypeFull
func WithDiagramType(typ diagram.Type) Option {
	return func(cfg *generateConfig) error {
		parsed, err := diagram.ParseType(string(typ))
		if err != nil {
			return err
		}
		cfg.diagramType = parsed
		return nil
	}
}

// WithCardinality enables or disables cardinality labels
// Default: true
func WithCardinality(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeCardinality = enabled
		return nil
	}
}

// WithSVG enables or disables rendering swagger.svg
// Default: false
func WithSVG(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.imageFormats = slices.DeleteFunc(cfg.imageFormats, func(f render.Format) bool {
			return f == render.FormatSVG
		})
		if enabled {
			cfg.imageFormats = append(cfg.imageFormats, render.FormatSVG)
		}
		return nil
	}
}

// WithImageFormat adds an image format ("svg" or "png") to render
func WithImageFormat(format string) Option {
	return func(cfg *generateConfig) error {
		f, err := render.ParseFormat(format)
		if err != nil {
			return err
		}
		if !slices.Contains(cfg.imageFormats, f) {
			cfg.imageFormats = append(cfg.imageFormats, f)
		}
		return nil
	}
}

// WithRenderer sets the renderer used for images
// Default: render.New()
func WithRenderer(r *render.Renderer) Option {
	return func(cfg *generateConfig) error {
		cfg.renderer = r
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the structured logger for debug output
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// Generate parses the document at specPath, a file path or URL, and
// generates its diagram.
func (g *Generator) Generate(ctx context.Context, specPath string) (*GenerateResult, error) {
	p := parser.New()
	if g.UserAgent != "" {
		p.UserAgent = g.UserAgent
	}
	p.Logger = g.Logger

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse specification: %w", err)
	}
	return g.GenerateParsed(ctx, *parseResult)
}

// GenerateParsed generates the diagram of an already parsed document.
func (g *Generator) GenerateParsed(ctx context.Context, parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()

	typ := g.DiagramType
	if typ == "" {
		typ = diagram.TypeFull
	}
	result := &GenerateResult{
		Files:         make([]GeneratedFile, 0, 1+len(g.ImageFormats)),
		SourcePath:    parseResult.SourcePath,
		SourceVersion: parseResult.Version,
		SourceFormat:  parseResult.SourceFormat,
		DiagramType:   typ,
		LoadTime:      parseResult.LoadTime,
		SourceSize:    parseResult.SourceSize,
		Stats:         parseResult.Stats,
	}

	b := diagram.NewBuilder()
	b.IncludeCardinality = g.IncludeCardinality
	b.Logger = g.Logger
	view, err := b.Build(parseResult.Document, typ)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to build %s diagram: %w", typ, err)
	}
	result.View = view
	result.Properties = view.Properties()
	result.DiagramCount, result.RelationCount = counts(view)

	src, err := puml.Source(result.Properties)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.Files = append(result.Files, GeneratedFile{Name: SourceFile, Content: src})
	result.GenerateTime = time.Since(startTime)
	g.log().Info("generated diagram",
		"type", typ,
		"diagrams", result.DiagramCount,
		"relations", result.RelationCount,
		"elapsed", result.GenerateTime)

	if len(g.ImageFormats) > 0 {
		renderStart := time.Now()
		images, err := g.renderImages(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		result.Files = append(result.Files, images...)
		result.RenderTime = time.Since(renderStart)
	}
	return result, nil
}

// renderImages renders every requested format concurrently. The files keep
// the order of ImageFormats.
func (g *Generator) renderImages(ctx context.Context, src []byte) ([]GeneratedFile, error) {
	renderer := g.Renderer
	if renderer == nil {
		renderer = render.New()
		if g.UserAgent != "" {
			renderer.UserAgent = g.UserAgent
		}
		renderer.Logger = g.Logger
	}

	files := make([]GeneratedFile, len(g.ImageFormats))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, format := range g.ImageFormats {
		eg.Go(func() error {
			img, err := renderer.Render(egCtx, src, format)
			if err != nil {
				return err
			}
			files[i] = GeneratedFile{Name: BaseName + format.Ext(), Content: img}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// counts returns the number of diagrams and document-level relations.
func counts(view diagram.View) (diagrams, relations int) {
	switch v := view.(type) {
	case *diagram.ClassView:
		return len(v.ClassDiagrams) + len(v.InterfaceDiagrams), len(v.ClassRelations)
	case *diagram.EntityView:
		return len(v.EntityDiagrams), len(v.EntityRelations)
	}
	return 0, 0
}
