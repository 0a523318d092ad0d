package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/erraggy/oas2puml"
	"github.com/erraggy/oas2puml/internal/httputil"
	"github.com/erraggy/oas2puml/oaserrors"
	"github.com/erraggy/oas2puml/parser"
)

// DefaultServer is the public PlantUML server.
const DefaultServer = "https://www.plantuml.com/plantuml"

// maxImageSize bounds the size of an image read from the server.
const maxImageSize = 32 << 20

// diagramErrorHeader carries the server's description of a syntax error.
const diagramErrorHeader = "X-PlantUML-Diagram-Error"

// Renderer fetches images from a PlantUML server.
type Renderer struct {
	// Server is the base URL of the PlantUML server.
	// Defaults to DefaultServer if not set
	Server string
	// HTTPClient is the HTTP client used for requests.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// UserAgent is the User-Agent string sent to the server
	// Defaults to "oas2puml/<version>" if not set
	UserAgent string
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a Renderer with default settings.
func New() *Renderer {
	return &Renderer{
		Server:    DefaultServer,
		UserAgent: oas2puml.UserAgent(),
	}
}

func (r *Renderer) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

// URL returns the address of the image of source in format.
func (r *Renderer) URL(source []byte, format Format) (string, error) {
	server := r.Server
	if server == "" {
		server = DefaultServer
	}
	base, err := url.Parse(server)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", &oaserrors.ConfigError{Option: "plantuml-server", Value: server, Message: "must be an absolute http(s) URL", Cause: err}
	}
	encoded, err := Encode(source)
	if err != nil {
		return "", &oaserrors.RenderError{Format: string(format), Message: "failed to encode source", Cause: err}
	}
	return strings.TrimSuffix(base.String(), "/") + "/" + string(format) + "/" + encoded, nil
}

// Render returns the image of source in format.
func (r *Renderer) Render(ctx context.Context, source []byte, format Format) ([]byte, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	target, err := r.URL(source, format)
	if err != nil {
		return nil, err
	}

	client := r.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &oaserrors.RenderError{Format: string(format), Message: "failed to create request", Cause: err}
	}
	userAgent := r.UserAgent
	if userAgent == "" {
		userAgent = oas2puml.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", format.MediaType())

	start := time.Now()
	r.log().Debug("requesting image", "format", format, "bytes", len(source))
	resp, err := client.Do(req) //nolint:gosec // server URL is user configuration
	if err != nil {
		return nil, &oaserrors.RenderError{Format: string(format), Message: "request failed", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if !httputil.IsSuccessCode(resp.StatusCode) {
		msg := resp.Header.Get(diagramErrorHeader)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &oaserrors.RenderError{Format: string(format), StatusCode: resp.StatusCode, Message: msg}
	}
	if got := httputil.MediaType(resp.Header.Get("Content-Type")); got != "" && got != format.MediaType() {
		return nil, &oaserrors.RenderError{
			Format:     string(format),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected content type %q", got),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize+1))
	if err != nil {
		return nil, &oaserrors.RenderError{Format: string(format), StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	if len(data) > maxImageSize {
		return nil, &oaserrors.RenderError{Format: string(format), StatusCode: resp.StatusCode, Message: "image exceeds 32 MiB"}
	}

	r.log().Info("rendered image", "format", format, "bytes", len(data), "elapsed", time.Since(start))
	return data, nil
}
