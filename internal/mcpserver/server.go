// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oas2puml capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oas2puml"
)

const serverInstructions = `oas2puml MCP server: summarizes Swagger 2.0 documents and turns them into PlantUML class or entity-relationship diagrams.

Configuration: defaults come from OAS2PUML_* environment variables set in your MCP client config.

Key settings:
- OAS2PUML_TYPE (default: full) - default diagram type: full, model or entity
- OAS2PUML_CARDINALITY (default: true) - label class edges with 1..* / 0..*
- OAS2PUML_PLANTUML_SERVER (default: https://www.plantuml.com/plantuml) - server used for image URLs
- OAS2PUML_CACHE_FILE_TTL (default: 15m) - cache TTL for local file documents
- OAS2PUML_CACHE_URL_TTL (default: 5m) - cache TTL for URL-fetched documents
- OAS2PUML_CACHE_ENABLED (default: true) - disable document caching entirely
- OAS2PUML_LIST_LIMIT (default: 100) - default page size of the parse tool's definition list

Caching: parsed documents are cached per session. File entries use path+mtime as key, so edits are picked up. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oas2puml", Version: oas2puml.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse a Swagger 2.0 document. Returns a structural summary: title, API version, host, base path, path/operation/definition counts, the interface names the full diagram would contain, and a page of definition names. Use offset/limit to page through definitions on large documents.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diagram",
		Description: "Generate a PlantUML diagram from a Swagger 2.0 document. Types: full (classes for definitions plus one interface per operation), model (classes only), entity (entity-relationship diagram). Returns the PlantUML source by default, or the projected diagram model with format=json. Also returns a PlantUML server URL that renders the diagram as SVG or PNG. Defaults are configurable via OAS2PUML_TYPE and OAS2PUML_CARDINALITY env vars.",
	}, handleDiagram)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plantuml_url",
		Description: "Encode PlantUML source into a PlantUML server image URL (svg or png). Use it to preview diagram source that was edited after generation.",
	}, handlePlantUMLURL)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute paths under common system roots.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// so MCP clients never see the server's directory layout.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
