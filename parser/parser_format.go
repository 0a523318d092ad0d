package parser

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oas2puml"
)

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file extension
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent guesses the format from the first non-blank byte:
// JSON documents open with '{' or '[', anything else is treated as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oas2puml.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	p.log().Debug("fetching document", "url", urlStr)
	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// detectFormatFromURL detects the format from a URL path, falling back to the Content-Type header
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	if parsedURL, err := url.Parse(urlStr); err == nil && parsedURL.Path != "" {
		if format := detectFormatFromPath(parsedURL.Path); format != SourceFormatUnknown {
			return format
		}
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return SourceFormatUnknown
	}
	switch mediaType {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}
