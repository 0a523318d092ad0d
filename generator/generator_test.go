package generator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/oaserrors"
	"github.com/erraggy/oas2puml/parser"
	"github.com/erraggy/oas2puml/render"
)

const petstore = `swagger: "2.0"
info:
  title: Pet Store
  version: 1.0.0
paths:
  /pets:
    get:
      tags: [Pets]
      operationId: listPets
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: '#/definitions/Pet'
        default:
          description: error
          schema:
            $ref: '#/definitions/Error'
definitions:
  Pet:
    type: object
    required: [id]
    properties:
      id:
        type: integer
        format: int64
      owner:
        $ref: '#/definitions/Owner'
  Owner:
    type: object
    properties:
      name:
        type: string
  Error:
    type: object
    properties:
      message:
        type: string
`

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swagger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func parsed(t *testing.T, content string) parser.ParseResult {
	t.Helper()
	result, err := parser.New().ParseBytes([]byte(content))
	require.NoError(t, err)
	return *result
}

// imageServer answers every request with a fake image of the requested
// format and counts the requests.
func imageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch {
		case strings.Contains(r.URL.Path, "/svg/"):
			w.Header().Set("Content-Type", "image/svg+xml")
			_, _ = w.Write([]byte("<svg/>"))
		case strings.Contains(r.URL.Path, "/png/"):
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("PNG"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateFromFile(t *testing.T) {
	path := writeSpec(t, petstore)

	result, err := New().Generate(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, "2.0", result.SourceVersion)
	assert.Equal(t, parser.SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, diagram.TypeFull, result.DiagramType)
	require.Len(t, result.Files, 1)
	assert.Equal(t, SourceFile, result.Files[0].Name)

	src := string(result.Source())
	assert.True(t, strings.HasPrefix(src, "@startuml\n"))
	assert.True(t, strings.HasSuffix(src, "@enduml\n"))
	assert.Contains(t, src, "class Pet {")
	assert.Contains(t, src, "interface PetsApi {")
	assert.Contains(t, src, `Pet o-- "0..*" Owner : owner`)
	assert.Contains(t, src, "PetsApi --|> Error")

	// Pet, Owner, Error and PetsApi.
	assert.Equal(t, 4, result.DiagramCount)
	assert.Equal(t, 3, result.RelationCount)
	assert.Contains(t, result.Properties, diagram.KeyInterfaceDiagrams)
}

func TestGenerateWithOptionsTypes(t *testing.T) {
	pr := parsed(t, petstore)

	tests := []struct {
		typ      diagram.Type
		contains string
		absent   string
	}{
		{diagram.TypeFull, "interface PetsApi", "entity "},
		{diagram.TypeModel, "class Pet {", "interface "},
		{diagram.TypeEntity, "entity Pet {", "class "},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			result, err := GenerateWithOptions(context.Background(),
				WithParsed(pr),
				WithDiagramType(tt.typ),
			)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, result.DiagramType)
			src := string(result.Source())
			assert.Contains(t, src, tt.contains)
			assert.NotContains(t, src, tt.absent)
		})
	}
}

func TestGenerateWithoutCardinality(t *testing.T) {
	result, err := GenerateWithOptions(context.Background(),
		WithParsed(parsed(t, petstore)),
		WithCardinality(false),
	)
	require.NoError(t, err)
	assert.Contains(t, string(result.Source()), "Pet o-- Owner : owner")
	assert.NotContains(t, string(result.Source()), "0..*")
}

func TestGenerateWithOptionsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := GenerateWithOptions(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	assert.Contains(t, err.Error(), "must specify an input source")

	_, err = GenerateWithOptions(ctx, WithFilePath("a.yaml"), WithParsed(parsed(t, petstore)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one input source")

	_, err = GenerateWithOptions(ctx, WithParsed(parsed(t, petstore)), WithDiagramType("sequence"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = GenerateWithOptions(ctx, WithParsed(parsed(t, petstore)), WithImageFormat("gif"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestGenerateMissingFile(t *testing.T) {
	_, err := New().Generate(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse specification")
}

func TestGenerateUnsupportedShape(t *testing.T) {
	_, err := New().GenerateParsed(context.Background(), parsed(t, `swagger: "2.0"
info:
  title: Bad
  version: "1"
paths: {}
definitions:
  Grid:
    type: object
    properties:
      cells:
        type: array
        items:
          type: integer
`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrUnsupportedShape))
}

func TestGenerateNilDocument(t *testing.T) {
	_, err := New().GenerateParsed(context.Background(), parser.ParseResult{})
	assert.Error(t, err)
}

func TestGenerateImages(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)

	result, err := GenerateWithOptions(context.Background(),
		WithParsed(parsed(t, petstore)),
		WithImageFormat("png"),
		WithSVG(true),
		WithImageFormat("png"),
		WithRenderer(&render.Renderer{Server: srv.URL}),
	)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())

	require.Len(t, result.Files, 3)
	assert.Equal(t, SourceFile, result.Files[0].Name)
	assert.Equal(t, "swagger.png", result.Files[1].Name)
	assert.Equal(t, []byte("PNG"), result.Files[1].Content)
	assert.Equal(t, "swagger.svg", result.Files[2].Name)
	assert.Equal(t, []byte("<svg/>"), result.GetFile("swagger.svg").Content)
	assert.Nil(t, result.GetFile("swagger.jpg"))
}

func TestGenerateSVGToggle(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)

	result, err := GenerateWithOptions(context.Background(),
		WithParsed(parsed(t, petstore)),
		WithSVG(true),
		WithSVG(false),
		WithRenderer(&render.Renderer{Server: srv.URL}),
	)
	require.NoError(t, err)
	assert.Len(t, result.Files, 1)
	assert.Zero(t, hits.Load())
	assert.Zero(t, result.RenderTime)
}

func TestGenerateRenderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := New()
	g.ImageFormats = []render.Format{render.FormatSVG}
	g.Renderer = &render.Renderer{Server: srv.URL}

	result, err := g.GenerateParsed(context.Background(), parsed(t, petstore))
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrRender))
}

func TestGenerateIsDeterministic(t *testing.T) {
	pr := parsed(t, petstore)
	first, err := New().GenerateParsed(context.Background(), pr)
	require.NoError(t, err)
	second, err := New().GenerateParsed(context.Background(), pr)
	require.NoError(t, err)
	assert.Equal(t, first.Source(), second.Source())
}
