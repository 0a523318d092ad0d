package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"

	"github.com/erraggy/oas2puml/internal/cliutil"
	"github.com/erraggy/oas2puml/internal/mcpserver"
)

var mcpUsage = heredoc.Doc(`
	Usage: oas2puml mcp

	Serve the parse, diagram and plantuml_url tools over the Model Context
	Protocol on stdin/stdout.

	Environment:
	  OAS2PUML_CACHE_ENABLED, OAS2PUML_CACHE_MAX_SIZE, OAS2PUML_CACHE_FILE_TTL,
	  OAS2PUML_CACHE_URL_TTL, OAS2PUML_CACHE_CONTENT_TTL,
	  OAS2PUML_CACHE_SWEEP_INTERVAL, OAS2PUML_MAX_INLINE_SIZE,
	  OAS2PUML_ALLOW_PRIVATE_IPS, OAS2PUML_LIST_LIMIT, OAS2PUML_MAX_LIMIT
	  and the diagram defaults OAS2PUML_TYPE, OAS2PUML_CARDINALITY,
	  OAS2PUML_SVG, OAS2PUML_PLANTUML_SERVER.
`)

// HandleMCP executes the mcp command
func HandleMCP(ctx context.Context, args []string) error {
	return handleMCP(ctx, args, os.Stderr, mcpserver.Run)
}

func handleMCP(ctx context.Context, args []string, stderr io.Writer, run func(context.Context) error) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "%s", mcpUsage)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
