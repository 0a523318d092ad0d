package parser

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oas2puml"
)

func TestApplyOptions_Defaults(t *testing.T) {
	cfg, err := applyOptions(WithBytes([]byte(petstoreYAML)))
	require.NoError(t, err)

	assert.Equal(t, oas2puml.UserAgent(), cfg.userAgent)
	assert.Nil(t, cfg.httpClient)
	assert.Nil(t, cfg.logger)
	assert.Nil(t, cfg.sourceName)
	assert.Nil(t, cfg.filePath)
	assert.Nil(t, cfg.reader)
}

func TestApplyOptions_OverrideDefaults(t *testing.T) {
	client := &http.Client{}
	logger := NopLogger{}

	cfg, err := applyOptions(
		WithFilePath("swagger.yaml"),
		WithUserAgent("diagrammer/2.0"),
		WithHTTPClient(client),
		WithLogger(logger),
		WithSourceName("api.yaml"),
	)
	require.NoError(t, err)

	require.NotNil(t, cfg.filePath)
	assert.Equal(t, "swagger.yaml", *cfg.filePath)
	assert.Equal(t, "diagrammer/2.0", cfg.userAgent)
	assert.Same(t, client, cfg.httpClient)
	assert.Equal(t, logger, cfg.logger)
	require.NotNil(t, cfg.sourceName)
	assert.Equal(t, "api.yaml", *cfg.sourceName)
}

func TestParseWithOptions_FilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreYAML), 0o600))

	result, err := ParseWithOptions(WithFilePath(path))
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "2.0", result.Version)
}

func TestParseWithOptions_Reader(t *testing.T) {
	result, err := ParseWithOptions(WithReader(strings.NewReader(petstoreYAML)))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
}

func TestWithSourceName_AppliedToResult(t *testing.T) {
	result, err := ParseWithOptions(
		WithReader(strings.NewReader(petstoreYAML)),
		WithSourceName("content"),
	)
	require.NoError(t, err)
	assert.Equal(t, "content", result.SourcePath)
}

// countingTransport counts round trips made through it.
type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.next.RoundTrip(req)
}

func TestParseWithOptions_HTTPClient_CustomTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(petstoreYAML))
	}))
	defer server.Close()

	transport := &countingTransport{next: http.DefaultTransport}
	result, err := ParseWithOptions(
		WithFilePath(server.URL+"/swagger.yaml"),
		WithHTTPClient(&http.Client{Transport: transport}),
	)
	require.NoError(t, err)
	assert.Equal(t, int32(1), transport.calls.Load())
	assert.Equal(t, "Pet Store", result.Document.Title())
}

func TestParseWithOptions_UserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(petstoreYAML))
	}))
	defer server.Close()

	_, err := ParseWithOptions(WithFilePath(server.URL + "/swagger.yaml"))
	require.NoError(t, err)
	assert.Equal(t, oas2puml.UserAgent(), gotUA)
}
