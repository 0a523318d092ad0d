package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDefinitions(t *testing.T, definitions string) *Document {
	t.Helper()
	result, err := New().ParseBytes([]byte("swagger: \"2.0\"\ndefinitions:\n" + definitions))
	require.NoError(t, err)
	return result.Document
}

func TestDecodeSchemaVariants(t *testing.T) {
	doc := parseDefinitions(t, `
  Ref:
    $ref: '#/definitions/Pet'
    description: ignored next to $ref
  List:
    type: array
    items:
      $ref: '#/definitions/Pet'
  Untyped:
    items:
      type: string
  Dictionary:
    type: object
    additionalProperties:
      $ref: '#/definitions/Pet'
  Open:
    type: object
    additionalProperties: true
  Priority:
    type: integer
    enum: [1, 2, 3]
  Empty: {}
`)

	ref, _ := doc.Definition("Ref")
	require.IsType(t, &RefSchema{}, ref)
	assert.Equal(t, "Pet", ref.(*RefSchema).SimpleRef())

	list, _ := doc.Definition("List")
	require.IsType(t, &ArraySchema{}, list)
	assert.Equal(t, "Pet", ItemsRef(list).SimpleRef())

	untyped, _ := doc.Definition("Untyped")
	require.IsType(t, &ArraySchema{}, untyped, "items without type still makes an array")
	assert.Nil(t, ItemsRef(untyped))

	dict, _ := doc.Definition("Dictionary")
	require.IsType(t, &ObjectSchema{}, dict)
	assert.Equal(t, "#/definitions/Pet", dict.(*ObjectSchema).AdditionalProperties.(*RefSchema).Ref)

	open, _ := doc.Definition("Open")
	assert.Nil(t, open.(*ObjectSchema).AdditionalProperties)

	priority, _ := doc.Definition("Priority")
	assert.Equal(t, []string{"1", "2", "3"}, priority.(*ObjectSchema).Enum)
	assert.True(t, priority.(*ObjectSchema).IsEnum())

	empty, _ := doc.Definition("Empty")
	assert.False(t, empty.(*ObjectSchema).HasProperties())
}

func TestDecodeComposed(t *testing.T) {
	doc := parseDefinitions(t, `
  Dog:
    description: a dog
    allOf:
      - $ref: '#/definitions/Pet'
      - type: object
        required: [bark]
        properties:
          bark:
            type: boolean
          name:
            type: string
            format: nickname
      - $ref: '#/definitions/Animal'
    properties:
      name:
        type: string
      color:
        type: string
`)

	dog, ok := doc.Definition("Dog")
	require.True(t, ok)
	cs, ok := dog.(*ComposedSchema)
	require.True(t, ok)
	assert.Equal(t, "a dog", cs.Description())

	require.Len(t, cs.Parents, 2)
	assert.Equal(t, "Pet", cs.Parents[0].SimpleRef())
	assert.Equal(t, "Animal", cs.Parents[1].SimpleRef())

	require.NotNil(t, cs.Child)
	assert.Equal(t, []string{"bark", "name", "color"}, cs.Child.Properties.Keys())
	name, _ := cs.Child.Properties.Get("name")
	assert.Equal(t, "nickname", name.(*ObjectSchema).Format, "first declaration wins")
	assert.True(t, cs.Child.IsRequired("bark"))
}

func TestDecodeNestedInlineAllOf(t *testing.T) {
	doc := parseDefinitions(t, `
  Cat:
    allOf:
      - allOf:
          - $ref: '#/definitions/Pet'
          - properties:
              purr:
                type: boolean
`)
	cat, _ := doc.Definition("Cat")
	cs := cat.(*ComposedSchema)
	require.Len(t, cs.Parents, 1)
	assert.Equal(t, "Pet", cs.Parents[0].SimpleRef())
	assert.Equal(t, []string{"purr"}, cs.Child.Properties.Keys())
}

func TestDecodeAliases(t *testing.T) {
	doc := parseDefinitions(t, `
  Base: &base
    type: object
    properties:
      id:
        type: string
  Copy: *base
`)
	cp, ok := doc.Definition("Copy")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, cp.(*ObjectSchema).Properties.Keys())
}

func TestDecodeMergedProperties(t *testing.T) {
	result, err := New().ParseBytes([]byte(`swagger: "2.0"
x-common: &common
  id:
    type: string
  name:
    type: integer
x-audit: &audit
  created:
    type: string
    format: date-time
  id:
    type: integer
definitions:
  Pet:
    type: object
    properties:
      <<: *common
      name:
        type: string
  Order:
    type: object
    properties:
      <<: [*audit, *common]
      total:
        type: number
`))
	require.NoError(t, err)
	doc := result.Document

	pet, ok := doc.Definition("Pet")
	require.True(t, ok)
	props := pet.(*ObjectSchema).Properties
	assert.Equal(t, []string{"id", "name"}, props.Keys(), "no member named <<")
	name, _ := props.Get("name")
	assert.Equal(t, "string", name.(*ObjectSchema).Type, "declared keys win over merged ones")

	order, ok := doc.Definition("Order")
	require.True(t, ok)
	props = order.(*ObjectSchema).Properties
	assert.Equal(t, []string{"created", "id", "name", "total"}, props.Keys())
	id, _ := props.Get("id")
	assert.Equal(t, "integer", id.(*ObjectSchema).Type, "first merged mapping wins")
}

func TestDecodeMergedDefinitions(t *testing.T) {
	result, err := New().ParseBytes([]byte(`swagger: "2.0"
x-shared: &shared
  Error:
    type: object
    properties:
      message:
        type: string
definitions:
  Pet:
    type: object
    properties:
      id:
        type: string
  <<: *shared
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet", "Error"}, result.Document.Definitions.Keys())
	assert.Equal(t, 2, result.Stats.SchemaCount)
}

func TestDecodeQuotedMergeKeyIsAProperty(t *testing.T) {
	doc := parseDefinitions(t, `
  Odd:
    type: object
    properties:
      "<<":
        type: string
`)
	odd, _ := doc.Definition("Odd")
	assert.Equal(t, []string{"<<"}, odd.(*ObjectSchema).Properties.Keys())
}

func TestSimpleRef(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"#/definitions/Pet", "Pet"},
		{"other.yaml#/definitions/Order", "Order"},
		{"Pet", "Pet"},
		{"#/definitions/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, (&RefSchema{Ref: tt.ref}).SimpleRef())
		})
	}
	var nilRef *RefSchema
	assert.Equal(t, "", nilRef.SimpleRef())
}

func TestDecodePathItemSkipsUnknownFields(t *testing.T) {
	result, err := New().ParseBytes([]byte(`swagger: "2.0"
paths:
  x-internal: true
  /a:
    summary: not a swagger 2 field
    x-owner: team
    get:
      responses:
        x-note: extension
        "200":
          description: ok
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a"}, result.Document.Paths.Keys())
	item, _ := result.Document.Paths.Get("/a")
	require.NotNil(t, item.Get)
	assert.Equal(t, []string{"200"}, item.Get.Responses.Keys())
}
