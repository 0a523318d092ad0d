package puml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/erraggy/oas2puml/diagram"
)

// Source renders props as PlantUML source. props must come from a
// diagram.ClassView or diagram.EntityView.
func Source(props diagram.Properties) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, props); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes the PlantUML source of props to w.
func Render(w io.Writer, props diagram.Properties) error {
	var (
		name string
		data any
		err  error
	)
	switch {
	case props.Has(diagram.KeyEntityDiagrams):
		name = "entity"
		data, err = entityData(props)
	case props.Has(diagram.KeyClassDiagrams):
		name = "class"
		data, err = classData(props)
	default:
		return fmt.Errorf("puml: properties hold neither %s nor %s", diagram.KeyClassDiagrams, diagram.KeyEntityDiagrams)
	}
	if err != nil {
		return err
	}
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("puml: executing %s template: %w", name, err)
	}
	return nil
}

func classData(props diagram.Properties) (*ClassData, error) {
	data := &ClassData{}
	var err error
	if data.Title, data.Version, err = heading(props); err != nil {
		return nil, err
	}
	if data.Classes, err = lookup[[]diagram.ClassDiagram](props, diagram.KeyClassDiagrams); err != nil {
		return nil, err
	}
	if data.Relations, err = lookup[[]diagram.ClassRelation](props, diagram.KeyClassRelations); err != nil {
		return nil, err
	}
	// Model-only views carry no interfaces.
	if props.Has(diagram.KeyInterfaceDiagrams) {
		interfaces, err := lookup[[]diagram.InterfaceDiagram](props, diagram.KeyInterfaceDiagrams)
		if err != nil {
			return nil, err
		}
		data.Interfaces = groupInterfaces(interfaces)
	}
	return data, nil
}

func entityData(props diagram.Properties) (*EntityData, error) {
	data := &EntityData{}
	var err error
	if data.Title, data.Version, err = heading(props); err != nil {
		return nil, err
	}
	if data.Entities, err = lookup[[]diagram.EntityDiagram](props, diagram.KeyEntityDiagrams); err != nil {
		return nil, err
	}
	if data.Relations, err = lookup[[]diagram.EntityRelation](props, diagram.KeyEntityRelations); err != nil {
		return nil, err
	}
	return data, nil
}

func heading(props diagram.Properties) (title, version string, err error) {
	if title, err = lookup[string](props, diagram.KeyTitle); err != nil {
		return "", "", err
	}
	if version, err = lookup[string](props, diagram.KeyVersion); err != nil {
		return "", "", err
	}
	return title, version, nil
}

// lookup returns props[key] as a T. A missing key yields the zero value.
func lookup[T any](props diagram.Properties, key string) (T, error) {
	var zero T
	v, ok := props[key]
	if !ok || v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("puml: property %q has type %T, want %T", key, v, zero)
	}
	return t, nil
}
