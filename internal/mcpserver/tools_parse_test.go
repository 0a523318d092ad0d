package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storeYAML = `swagger: "2.0"
info:
  title: Store
  description: A sample store API
  version: "3.2"
host: api.example.com
basePath: /store
paths:
  /orders:
    get:
      tags: [Order Book]
      operationId: listOrders
      responses:
        "200":
          description: OK
  /orders/{id}:
    get:
      operationId: getOrder
      responses:
        "200":
          description: OK
    delete:
      tags: [Order Book]
      responses:
        "204":
          description: gone
  /health:
    get:
      responses:
        "200":
          description: OK
definitions:
  Order:
    type: object
    properties:
      id:
        type: string
  Line:
    type: object
    properties:
      sku:
        type: string
  Status:
    type: string
    enum: [OPEN]
`

func TestParseTool_Summary(t *testing.T) {
	specCache.reset()
	res, output, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{
		Spec: specInput{Content: storeYAML},
	})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "2.0", output.Version)
	assert.Equal(t, "Store", output.Title)
	assert.Equal(t, "3.2", output.APIVersion)
	assert.Equal(t, "A sample store API", output.Description)
	assert.Equal(t, "api.example.com", output.Host)
	assert.Equal(t, "/store", output.BasePath)
	assert.Equal(t, "yaml", output.Format)
	assert.Equal(t, 3, output.PathCount)
	assert.Equal(t, 4, output.OperationCount)
	assert.Equal(t, 3, output.DefinitionCount)
	assert.Equal(t, []string{"OrderBookApi", "GetOrderApi", "/healthApi"}, output.Interfaces)
	assert.Equal(t, []string{"Order", "Line", "Status"}, output.Definitions)
}

func TestParseTool_DefinitionPage(t *testing.T) {
	specCache.reset()
	_, output, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{
		Spec:   specInput{Content: storeYAML},
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Line"}, output.Definitions)
	assert.Equal(t, 3, output.DefinitionCount)
}

func TestParseTool_File(t *testing.T) {
	specCache.reset()
	_, output, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{
		Spec: specInput{File: petstoreFile},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pet Store", output.Title)
	assert.Equal(t, "petstore.example.com", output.Host)
	assert.Equal(t, []string{"PetsApi"}, output.Interfaces)
	assert.Equal(t, []string{"Pet", "Order", "Status", "Error", "Pets", "PetMap"}, output.Definitions)
}

func TestParseTool_InvalidDocument(t *testing.T) {
	specCache.reset()
	res, _, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{
		Spec: specInput{Content: `openapi: "3.0.0"`},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestParseTool_MissingSpec(t *testing.T) {
	res, _, err := handleParse(context.Background(), &mcp.CallToolRequest{}, parseInput{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
	assert.Contains(t, textContent(t, res), "exactly one of file, url, or content")
}
