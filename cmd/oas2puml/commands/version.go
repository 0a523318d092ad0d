package commands

import (
	"io"

	"github.com/erraggy/oas2puml"
	"github.com/erraggy/oas2puml/internal/cliutil"
)

// HandleVersion prints the version line, followed by the build details when
// verbose is set.
func HandleVersion(w io.Writer, verbose bool) {
	cliutil.Writef(w, "oas2puml v%s\n", oas2puml.Version())
	if verbose {
		cliutil.Writef(w, "%s\n", oas2puml.BuildInfo())
	}
}
