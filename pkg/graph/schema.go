package graph

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// GenerateSchema creates a JSON Schema from the given Go type with all
// definitions inlined and no additional properties allowed.
func GenerateSchema(value any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	v := reflect.New(t).Interface()
	return reflector.Reflect(v)
}

// EventSchema describes one line of a traversal event stream.
func EventSchema() *jsonschema.Schema {
	return GenerateSchema(Event{})
}
