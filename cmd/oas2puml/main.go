package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"

	"github.com/erraggy/oas2puml/cmd/oas2puml/commands"
	"github.com/erraggy/oas2puml/internal/cliutil"
)

// commandNames lists the commands suggestCommand can offer.
var commandNames = []string{"generate", "parse", "mcp", "version", "help"}

var usage = heredoc.Doc(`
	oas2puml - Swagger 2.0 to PlantUML diagrams

	Usage:
	  oas2puml <command> [flags] <file|url|->

	Commands:
	  generate  Write a PlantUML class or entity-relationship diagram
	  parse     Parse a Swagger 2.0 document and print its structure
	  mcp       Serve the diagram tools over the Model Context Protocol
	  version   Print version information (-v for build details)
	  help      Print this message

	Run 'oas2puml <command> --help' for the flags of a command.
`)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1], os.Args[2:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, command string, args []string) int {
	var err error
	switch command {
	case "version", "-v", "--version":
		commands.HandleVersion(os.Stdout, len(args) > 0 && (args[0] == "-v" || args[0] == "--verbose"))
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		err = commands.HandleGenerate(ctx, args)
	case "parse":
		err = commands.HandleParse(args)
	case "mcp":
		err = commands.HandleMCP(ctx, args)
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		return 1
	}
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	cliutil.Writef(os.Stderr, "%s", usage)
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
