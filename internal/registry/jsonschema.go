package registry

import (
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/domain"
)

var enumType = reflect.TypeFor[domain.Enum]()

// SchemaFor reflects the JSON Schema mirror of input type T. The mirror is
// derived from the same struct the typed validator decodes into, so both
// describe one contract: required members come from json tags, enumerations
// from the domain.Enum value lists, and additionalProperties from the type's
// object mode.
func SchemaFor[T any]() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
		Mapper:                    enumSchema,
	}
	s := r.ReflectFromType(reflect.TypeFor[T]())
	s.Version = ""
	return s
}

// enumSchema maps every domain.Enum to a closed value list.
func enumSchema(t reflect.Type) *jsonschema.Schema {
	if !t.Implements(enumType) {
		return nil
	}
	e := reflect.Zero(t).Interface().(domain.Enum)
	s := &jsonschema.Schema{Type: "string", Enum: e.Values()}
	if jsonKind(t) == "number" {
		s.Type = "number"
	}
	return s
}
