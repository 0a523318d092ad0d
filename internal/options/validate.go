// Package options provides shared utilities for option validation across packages.
package options

import "github.com/erraggy/oas2puml/oaserrors"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources lists whether each possible source is set. The returned error is
// an *oaserrors.ConfigError for the "input" option carrying noSourceMsg or
// multiSourceMsg.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &oaserrors.ConfigError{Option: "input", Message: noSourceMsg}
	case sourceCount > 1:
		return &oaserrors.ConfigError{Option: "input", Message: multiSourceMsg}
	}
	return nil
}
