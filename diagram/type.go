package diagram

import (
	"strings"

	"github.com/erraggy/oas2puml/oaserrors"
)

// Type selects which projection is generated.
type Type string

const (
	// TypeFull generates class diagrams for definitions plus interface
	// diagrams for operations.
	TypeFull Type = "full"
	// TypeModel generates class diagrams for definitions only.
	TypeModel Type = "model"
	// TypeEntity generates entity-relationship diagrams.
	TypeEntity Type = "entity"
)

// ValidTypes lists the accepted Type values.
func ValidTypes() []Type {
	return []Type{TypeFull, TypeModel, TypeEntity}
}

// ParseType parses a diagram type name case-insensitively. An empty name
// selects TypeFull.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TypeFull, nil
	case TypeFull, TypeModel, TypeEntity:
		return t, nil
	default:
		return "", &oaserrors.ConfigError{
			Option:  "type",
			Value:   s,
			Message: "must be one of full, model, entity",
		}
	}
}
