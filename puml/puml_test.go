package puml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oas2puml/diagram"
	"github.com/erraggy/oas2puml/parser"
)

const shop = `swagger: "2.0"
info:
  title: Shop
  version: "2.1"
paths:
  /orders:
    get:
      tags: [Orders]
      operationId: listOrders
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              $ref: '#/definitions/Order'
        "404":
          description: not found
          schema:
            $ref: '#/definitions/Error'
        "500":
          description: failure
          schema:
            $ref: '#/definitions/Fault'
    post:
      tags: [Orders]
      operationId: createOrder
      parameters:
        - name: body
          in: body
          schema:
            $ref: '#/definitions/Order'
      responses:
        "201":
          description: created
          schema:
            $ref: '#/definitions/Order'
definitions:
  Order:
    type: object
    description: "An order\n  placed online"
    required: [item]
    properties:
      orderId:
        type: string
      item:
        $ref: '#/definitions/Item'
  Item:
    type: object
    properties:
      sku:
        type: string
  Kind:
    type: string
    enum: [A, B]
  Items:
    type: array
    items:
      $ref: '#/definitions/Item'
  Error:
    type: object
    properties:
      message:
        type: string
  Fault:
    type: object
    properties:
      code:
        type: integer
`

const shopClasses = `@startuml
title Shop 2.1
skinparam classAttributeIconSize 0
hide empty members

class Order {
  {field} orderId : String
  {field} item : Item [1..*]
}
note top of Order : An order placed online

class Item {
  {field} sku : String
}

enum Kind {
  A
  B
}

class Items <<ArrayList[Item]>> {
}

class Error {
  {field} message : String
}

class Fault {
  {field} code : Integer
}
`

const shopClassView = shopClasses + `
interface OrdersApi {
  {method} listOrders() : Order[]
  {method} createOrder(Order body) : Order
}

Order o-- "1..*" Item : item
Items --|> Item
OrdersApi o-- Order
OrdersApi --|> "Error,Fault"

@enduml
`

const shopModelView = shopClasses + `
Order o-- "1..*" Item : item
Items --|> Item

@enduml
`

const shopEntityView = `@startuml
title Shop 2.1
hide circle
skinparam linetype ortho

entity Order {
  orderId : String
  --
  * item : Item
}
note top of Order : An order placed online

entity Item {
  sku : String
}

entity Kind {
  A
  B
}

entity Items {
}

entity Error {
  message : String
}

entity Fault {
  code : Integer
}

Order }o--|| Item : item
Items }o--o| Item

@enduml
`

func properties(t *testing.T, src string, typ diagram.Type) diagram.Properties {
	t.Helper()
	result, err := parser.New().ParseBytes([]byte(src))
	require.NoError(t, err)
	view, err := diagram.NewBuilder().Build(result.Document, typ)
	require.NoError(t, err)
	return view.Properties()
}

func TestSource(t *testing.T) {
	tests := []struct {
		typ  diagram.Type
		want string
	}{
		{diagram.TypeFull, shopClassView},
		{diagram.TypeModel, shopModelView},
		{diagram.TypeEntity, shopEntityView},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, err := Source(properties(t, shop, tt.typ))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestSourceEmptyDocument(t *testing.T) {
	props := properties(t, "swagger: \"2.0\"\ninfo:\n  title: Empty\n  version: \"0\"\npaths: {}\n", diagram.TypeFull)
	got, err := Source(props)
	require.NoError(t, err)
	assert.Equal(t, "@startuml\ntitle Empty 0\nskinparam classAttributeIconSize 0\nhide empty members\n\n@enduml\n", string(got))
}

func TestSourceWithoutTitle(t *testing.T) {
	props := diagram.Properties{
		diagram.KeyEntityDiagrams:  []diagram.EntityDiagram{},
		diagram.KeyEntityRelations: []diagram.EntityRelation{},
	}
	got, err := Source(props)
	require.NoError(t, err)
	assert.Equal(t, "@startuml\nhide circle\nskinparam linetype ortho\n\n@enduml\n", string(got))
}

func TestSourceIsDeterministic(t *testing.T) {
	props := properties(t, shop, diagram.TypeFull)
	first, err := Source(props)
	require.NoError(t, err)
	second, err := Source(props)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSourceErrors(t *testing.T) {
	tests := []struct {
		name  string
		props diagram.Properties
		msg   string
	}{
		{
			name:  "no diagrams",
			props: diagram.Properties{diagram.KeyTitle: "x"},
			msg:   "neither",
		},
		{
			name:  "wrong class type",
			props: diagram.Properties{diagram.KeyClassDiagrams: "nope"},
			msg:   `property "classDiagrams" has type string`,
		},
		{
			name: "wrong title type",
			props: diagram.Properties{
				diagram.KeyTitle:          42,
				diagram.KeyEntityDiagrams: []diagram.EntityDiagram{},
			},
			msg: `property "title" has type int`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Source(tt.props)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestGroupInterfaces(t *testing.T) {
	got := groupInterfaces([]diagram.InterfaceDiagram{
		{Name: "PetsApi", Methods: []diagram.MethodDefinition{{Signature: "a()"}}},
		{Name: "StoreApi", Methods: []diagram.MethodDefinition{{Signature: "b()"}}},
		{Name: "PetsApi", Methods: []diagram.MethodDefinition{{Signature: "c()"}}},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "PetsApi", got[0].Name)
	assert.Equal(t, []diagram.MethodDefinition{{Signature: "a()"}, {Signature: "c()"}}, got[0].Methods)
	assert.Equal(t, "StoreApi", got[1].Name)
	assert.Empty(t, groupInterfaces(nil))
}
