package render

import (
	"strings"

	"github.com/erraggy/oas2puml/internal/httputil"
	"github.com/erraggy/oas2puml/oaserrors"
)

// Format is an image format a PlantUML server can produce.
type Format string

const (
	// FormatSVG renders scalable vector graphics.
	FormatSVG Format = "svg"
	// FormatPNG renders a bitmap.
	FormatPNG Format = "png"
)

// ValidFormats lists the supported image formats.
func ValidFormats() []Format {
	return []Format{FormatSVG, FormatPNG}
}

// ParseFormat parses an image format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", &oaserrors.ConfigError{
			Option:  "image-format",
			Value:   s,
			Message: "must be one of svg, png",
		}
	}
}

// Ext returns the file extension of f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// MediaType returns the media type a server answers with for f.
func (f Format) MediaType() string {
	switch f {
	case FormatSVG:
		return httputil.MediaTypeSVG
	case FormatPNG:
		return httputil.MediaTypePNG
	}
	return ""
}
