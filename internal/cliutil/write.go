// Package cliutil provides output helpers shared by the oas2puml commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A failed write is reported on stderr
// since the commands have no better place to surface it.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Count formats n with the singular or plural noun, e.g. "1 diagram" or
// "6 relations".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
