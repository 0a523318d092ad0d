package diagram

// Property map keys.
const (
	KeyTitle             = "title"
	KeyVersion           = "version"
	KeyClassDiagrams     = "classDiagrams"
	KeyInterfaceDiagrams = "interfaceDiagrams"
	KeyClassRelations    = "classRelations"
	KeyEntityDiagrams    = "entityDiagrams"
	KeyEntityRelations   = "entityRelations"
)

// Properties is the flat map handed to templates.
type Properties map[string]any

// Properties returns title, version, classDiagrams, classRelations and,
// unless the view is model-only, interfaceDiagrams.
func (v *ClassView) Properties() Properties {
	props := Properties{
		KeyTitle:          v.Title,
		KeyVersion:        v.Version,
		KeyClassDiagrams:  nonNil(v.ClassDiagrams),
		KeyClassRelations: nonNil(v.ClassRelations),
	}
	if !v.ModelOnly {
		props[KeyInterfaceDiagrams] = nonNil(v.InterfaceDiagrams)
	}
	return props
}

// Properties returns title, version, entityDiagrams and entityRelations.
func (v *EntityView) Properties() Properties {
	return Properties{
		KeyTitle:           v.Title,
		KeyVersion:         v.Version,
		KeyEntityDiagrams:  nonNil(v.EntityDiagrams),
		KeyEntityRelations: nonNil(v.EntityRelations),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Has reports whether key is set.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}
