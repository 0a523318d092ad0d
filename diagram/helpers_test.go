package diagram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oas2puml/parser"
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
      parameters:
        - name: limit
          in: query
          type: integer
        - name: X-Trace
          in: header
          type: string
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: '#/definitions/Pet'
        default:
          description: unexpected error
          schema:
            $ref: '#/definitions/Error'
    post:
      tags: [Pets]
      operationId: addPet
      parameters:
        - name: body
          in: body
          schema:
            $ref: '#/definitions/Pet'
      responses:
        "201":
          description: created
          schema:
            $ref: '#/definitions/Pet'
        "400":
          description: bad request
          schema:
            $ref: '#/definitions/Error'
definitions:
  Pet:
    type: object
    description: A pet for sale
    required: [id, name]
    properties:
      id:
        type: integer
        format: int64
      name:
        type: string
      tags:
        type: array
        items:
          type: string
      status:
        $ref: '#/definitions/Status'
  Order:
    type: object
    required: [pet]
    properties:
      id:
        type: integer
        format: int64
      pet:
        $ref: '#/definitions/Pet'
      pets:
        type: array
        items:
          $ref: '#/definitions/Pet'
  Status:
    type: string
    enum: [OPEN, CLOSED]
  Error:
    type: object
    properties:
      code:
        type: integer
        format: int32
      message:
        type: string
  Pets:
    type: array
    items:
      $ref: '#/definitions/Pet'
  PetMap:
    type: object
    additionalProperties:
      $ref: '#/definitions/Pet'
`

const composed = `swagger: "2.0"
info:
  title: Kennel
  version: "2"
paths: {}
definitions:
  Base:
    type: object
    required: [id]
    properties:
      id:
        type: string
      name:
        type: integer
  Named:
    type: object
    required: [name]
    properties:
      name:
        type: string
      owner:
        $ref: '#/definitions/Base'
  Dog:
    description: A good dog
    allOf:
      - $ref: '#/definitions/Base'
      - $ref: '#/definitions/Named'
      - type: object
        properties:
          name:
            type: boolean
          bark:
            type: string
`

// mustParse parses a Swagger 2.0 document held in src.
func mustParse(t *testing.T, src string) *parser.Document {
	t.Helper()
	result, err := parser.New().ParseBytes([]byte(src))
	require.NoError(t, err)
	require.NotNil(t, result.Document)
	return result.Document
}

// definitionDoc wraps definitions YAML (indented by two spaces) into a
// minimal document.
func definitionDoc(t *testing.T, definitions string) *parser.Document {
	t.Helper()
	return mustParse(t, "swagger: \"2.0\"\ninfo:\n  title: T\n  version: \"1\"\npaths: {}\ndefinitions:\n"+definitions)
}

func findClass(t *testing.T, classes []ClassDiagram, name string) ClassDiagram {
	t.Helper()
	for _, c := range classes {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "class not found", "no class diagram named %q", name)
	return ClassDiagram{}
}

func findEntity(t *testing.T, entities []EntityDiagram, name string) EntityDiagram {
	t.Helper()
	for _, e := range entities {
		if e.Name == name {
			return e
		}
	}
	require.Failf(t, "entity not found", "no entity diagram named %q", name)
	return EntityDiagram{}
}

func memberNames(members []Member) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}
