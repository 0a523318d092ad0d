package puml

import (
	"embed"
	"regexp"
	"strings"
	"text/template"

	"github.com/erraggy/oas2puml/diagram"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(templateFuncs).
	ParseFS(templateFS, "templates/*.tmpl"))

// templateFuncs provides custom functions for templates
var templateFuncs = template.FuncMap{
	"ident":          ident,
	"oneLine":        oneLine,
	"classField":     classField,
	"classRelation":  classRelation,
	"entityField":    entityField,
	"entityRelation": entityRelation,
}

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ident returns name as a PlantUML element name, quoting it unless it is a
// plain identifier.
func ident(name string) string {
	if plainIdent.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `'`) + `"`
}

// oneLine collapses runs of whitespace, newlines included, into one space.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// classField renders a class attribute: "{field} name : Type [card]".
func classField(m diagram.ClassMember) string {
	var b strings.Builder
	b.WriteString("{field} ")
	b.WriteString(m.Name)
	if m.DataType != "" {
		b.WriteString(" : ")
		b.WriteString(m.DataType)
	}
	if m.Cardinality != "" {
		b.WriteString(" [" + m.Cardinality + "]")
	}
	return b.String()
}

// classRelation renders an edge line. Inheritance is drawn --|> and
// aggregation o--; a cardinality is quoted next to the target and the
// originating field becomes the label.
func classRelation(r diagram.ClassRelation) string {
	arrow := "o--"
	if r.IsInheritance() {
		arrow = "--|>"
	}
	var b strings.Builder
	b.WriteString(ident(r.Source))
	b.WriteString(" " + arrow)
	if r.Cardinality != "" {
		b.WriteString(` "` + r.Cardinality + `"`)
	}
	b.WriteString(" " + ident(r.Target))
	if r.FieldName != "" {
		b.WriteString(" : " + r.FieldName)
	}
	return b.String()
}

// entityField renders an entity attribute; required fields are starred.
func entityField(f diagram.EntityField) string {
	line := f.Name
	if f.DataType != "" {
		line += " : " + f.DataType
	}
	if f.Required {
		return "* " + line
	}
	return line
}

// entityRelation renders a crow's-foot edge. The target end shows how many
// targets a source holds: exactly one, zero or one, one or more, or zero or
// more.
func entityRelation(r diagram.EntityRelation) string {
	var end string
	switch {
	case r.Many && r.Required:
		end = "|{"
	case r.Many:
		end = "o{"
	case r.Required:
		end = "||"
	default:
		end = "o|"
	}
	line := ident(r.Source) + " }o--" + end + " " + ident(r.Target)
	if r.SourceField != "" {
		line += " : " + r.SourceField
	}
	return line
}
