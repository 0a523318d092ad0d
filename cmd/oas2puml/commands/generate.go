package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/generator"
	"github.com/erraggy/oas2puml/internal/cliutil"
	"github.com/erraggy/oas2puml/internal/config"
	"github.com/erraggy/oas2puml/parser"
	"github.com/erraggy/oas2puml/render"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output         string
	Type           string
	Cardinality    bool
	SVG            bool
	ImageFormats   string
	PlantUMLServer string
	Format         string
	Stdout         bool
	Config         string
	Verbose        bool
	Watch          bool
	Quiet          bool
}

var generateUsage = heredoc.Doc(`
	Usage: oas2puml generate [flags] <file|url|->

	Generate a PlantUML diagram (swagger.puml) from a Swagger 2.0 document.

	Flags:
`)

var generateExamples = heredoc.Docf(`

	Diagram Types:
	  full     one class per definition plus one interface per API tag
	  model    classes only
	  entity   entity-relationship diagram

	Examples:
	  oas2puml generate -o ./docs swagger.yaml
	  oas2puml generate -o ./docs --type entity --svg swagger.yaml
	  oas2puml generate -o ./docs --image-format svg,png https://example.com/swagger.json
	  oas2puml generate --stdout --type model swagger.yaml > model.puml
	  oas2puml generate --format json swagger.yaml | jq .classRelations
	  oas2puml generate -o ./docs --watch swagger.yaml

	Configuration:
	  Defaults are read from %s in the working directory (or --config),
	  then from the %s, %s, %s and %s
	  environment variables. Flags given on the command line win.

	Notes:
	  - The output directory must already exist
	  - Images are rendered by a PlantUML server and need network access
	  - --watch regenerates whenever the document file changes (local files only)
`, config.DefaultFileName, config.EnvType, config.EnvCardinality, config.EnvSVG, config.EnvPlantUMLServer)

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}
	defaults := config.Default()

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files")
	fs.StringVar(&flags.Type, "type", defaults.Type, "diagram type: full, model, or entity")
	fs.BoolVar(&flags.Cardinality, "cardinality", defaults.Cardinality, "label class relations with 1..* or 0..*")
	fs.BoolVar(&flags.SVG, "svg", defaults.SVG, "also render swagger.svg through the PlantUML server")
	fs.StringVar(&flags.ImageFormats, "image-format", "", "comma-separated image formats to render: svg, png")
	fs.StringVar(&flags.PlantUMLServer, "plantuml-server", defaults.PlantUMLServer, "PlantUML server used to render images")
	fs.StringVar(&flags.Format, "format", FormatPUML, "output: puml (write files), json or yaml (print the diagram model)")
	fs.BoolVar(&flags.Stdout, "stdout", false, "print the PlantUML source instead of writing files")
	fs.StringVar(&flags.Config, "config", "", "config file (default: "+config.DefaultFileName+" if present)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug output to stderr")
	fs.BoolVar(&flags.Watch, "watch", false, "regenerate whenever the document file changes")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "%s", generateUsage)
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "%s", generateExamples)
	}

	return fs, flags
}

// generateJob is a validated generate invocation.
type generateJob struct {
	specPath  string
	outputDir string
	format    string
	stdout    bool
	quiet     bool
	settings  config.Settings
	logger    parser.Logger
	out       io.Writer
	diag      io.Writer
}

// HandleGenerate executes the generate command
func HandleGenerate(ctx context.Context, args []string) error {
	return handleGenerate(ctx, args, os.Stdout, os.Stderr)
}

func handleGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}

	job, err := newGenerateJob(fs, flags)
	if err != nil {
		return err
	}
	job.out, job.diag = stdout, stderr

	if !flags.Watch {
		return job.run(ctx)
	}
	if job.specPath == StdinFilePath || isRemote(job.specPath) {
		return fmt.Errorf("--watch requires a local file")
	}
	if err := job.run(ctx); err != nil {
		cliutil.Writef(stderr, "Error: %v\n", err)
	}
	cliutil.Writef(stderr, "Watching %s for changes (Ctrl+C to stop)\n", job.specPath)
	return WatchFile(ctx, job.specPath, func() {
		if err := job.run(ctx); err != nil {
			cliutil.Writef(stderr, "Error: %v\n", err)
		}
	})
}

// newGenerateJob resolves settings with the precedence flags > environment >
// config file > defaults, and validates the combination.
func newGenerateJob(fs *flag.FlagSet, flags *GenerateFlags) (*generateJob, error) {
	settings, used, err := config.Load(flags.Config)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o", "output":
			settings.Output = flags.Output
		case "type":
			settings.Type = flags.Type
		case "cardinality":
			settings.Cardinality = flags.Cardinality
		case "svg":
			settings.SVG = flags.SVG
		case "image-format":
			settings.ImageFormats = splitList(flags.ImageFormats)
		case "plantuml-server":
			settings.PlantUMLServer = flags.PlantUMLServer
		}
	})
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w (valid types: %v, valid image formats: %v)", err, diagram.ValidTypes(), render.ValidFormats())
	}

	if err := ValidateOutputFormat(flags.Format, FormatPUML, FormatJSON, FormatYAML); err != nil {
		return nil, err
	}

	job := &generateJob{
		specPath:  fs.Arg(0),
		outputDir: settings.Output,
		format:    flags.Format,
		stdout:    flags.Stdout,
		quiet:     flags.Quiet,
		settings:  settings,
		logger:    NewLogger(flags.Verbose),
	}
	if job.logger != nil && used != "" {
		job.logger.Debug("loaded config file", "path", used)
	}

	printing := job.stdout || job.format != FormatPUML
	switch {
	case printing && (settings.SVG || len(settings.ImageFormats) > 0):
		return nil, fmt.Errorf("image output requires writing files; drop --svg/--image-format or --stdout/--format")
	case printing:
	case job.outputDir == "":
		fs.Usage()
		return nil, fmt.Errorf("output directory is required (use -o or --output)")
	default:
		info, err := os.Stat(job.outputDir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("output directory %s does not exist", job.outputDir)
		}
	}
	return job, nil
}

// options translates the settings into generator options.
func (j *generateJob) options(parsed *parser.ParseResult) []generator.Option {
	renderer := render.New()
	renderer.Server = j.settings.PlantUMLServer
	renderer.Logger = j.logger

	opts := []generator.Option{
		generator.WithParsed(*parsed),
		generator.WithDiagramType(j.settings.DiagramType()),
		generator.WithCardinality(j.settings.Cardinality),
		generator.WithSVG(j.settings.SVG),
		generator.WithRenderer(renderer),
		generator.WithLogger(j.logger),
	}
	for _, f := range j.settings.ImageFormats {
		opts = append(opts, generator.WithImageFormat(f))
	}
	return opts
}

// run generates once and writes or prints the result.
func (j *generateJob) run(ctx context.Context) error {
	startTime := time.Now()
	parsed, err := ParseSpec(j.specPath, j.logger)
	if err != nil {
		return err
	}
	result, err := generator.GenerateWithOptions(ctx, j.options(parsed)...)
	if err != nil {
		return fmt.Errorf("generating diagram: %w", err)
	}

	switch {
	case j.format != FormatPUML:
		return OutputStructured(j.out, result.Properties, j.format)
	case j.stdout:
		_, err := j.out.Write(result.Source())
		return err
	}

	if err := result.WriteFiles(j.outputDir); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}
	if j.quiet {
		return nil
	}

	cliutil.Writef(j.diag, "Swagger Diagram Generator\n")
	cliutil.Writef(j.diag, "=========================\n\n")
	OutputSpecHeader(j.diag, j.specPath, result.SourceVersion)
	cliutil.Writef(j.diag, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	cliutil.Writef(j.diag, "Diagram Type: %s\n", result.DiagramType)
	cliutil.Writef(j.diag, "Contents: %s, %s\n",
		cliutil.Count(result.DiagramCount, "diagram", "diagrams"),
		cliutil.Count(result.RelationCount, "relation", "relations"))
	if result.RenderTime > 0 {
		cliutil.Writef(j.diag, "Render Time: %v\n", result.RenderTime)
	}
	cliutil.Writef(j.diag, "Total Time: %v\n\n", time.Since(startTime))

	cliutil.Writef(j.diag, "Generated Files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		cliutil.Writef(j.diag, "  - %s (%d bytes)\n", filepath.Join(j.outputDir, file.Name), len(file.Content))
	}
	cliutil.Writef(j.diag, "\n✓ Generation successful\n")
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
