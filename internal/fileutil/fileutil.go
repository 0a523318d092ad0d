// Package fileutil holds file permission modes for generated output.
package fileutil

import "os"

// ReadableByAll is the file permission mode for generated diagram sources
// and images, which are meant to be shared.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for output directories created on
// demand.
const DirReadableByAll os.FileMode = 0o755
