package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/isaacphi/rendertools/internal/domain"
)

var (
	objectType = reflect.TypeFor[object]()
	rawType    = reflect.TypeFor[json.RawMessage]()
)

// field is a declared JSON member of an object type, flattened through
// embedded structs.
type field struct {
	name     string
	index    []int
	required bool
}

// objectFields lists the JSON members of t in declaration order. A member is
// required when its json tag has no omitempty, which is also how the JSON
// Schema mirror decides.
func objectFields(t reflect.Type) []field {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup("json")
		if f.Anonymous && !hasTag && f.Type.Kind() == reflect.Struct {
			for _, inner := range objectFields(f.Type) {
				inner.index = append([]int{i}, inner.index...)
				fields = append(fields, inner)
			}
			continue
		}
		if !f.IsExported() || tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields = append(fields, field{
			name:     name,
			index:    []int{i},
			required: !slices.Contains(strings.Split(opts, ","), "omitempty"),
		})
	}
	return fields
}

func isObjectType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(objectType)
}

// decodeObject decodes raw into the struct dst points to, collecting every
// violation instead of stopping at the first one.
func decodeObject(raw json.RawMessage, dst reflect.Value, path string) []domain.FieldError {
	if isNull(raw) {
		return []domain.FieldError{{Path: path, Reason: "expected object, got null"}}
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return []domain.FieldError{{Path: path, Reason: "expected object, got " + jsonKindOf(raw)}}
	}

	var errs []domain.FieldError
	declared := make(map[string]bool)
	for _, f := range objectFields(dst.Type()) {
		declared[f.name] = true
		member, ok := members[f.name]
		if !ok {
			if f.required {
				errs = append(errs, domain.FieldError{Path: joinPath(path, f.name), Reason: "required"})
			}
			continue
		}
		errs = append(errs, decodeValue(member, dst.FieldByIndex(f.index), joinPath(path, f.name))...)
	}

	obj := dst.Addr().Interface().(object)
	for _, name := range sortedKeys(members) {
		if declared[name] {
			continue
		}
		switch obj.objectMode() {
		case openObject:
			extras := obj.(openInput).extras()
			if *extras == nil {
				*extras = make(Extras)
			}
			(*extras)[name] = members[name]
		case strictObject:
			errs = append(errs, domain.FieldError{Path: joinPath(path, name), Reason: "unrecognized field"})
		}
	}
	return errs
}

func decodeValue(raw json.RawMessage, v reflect.Value, path string) []domain.FieldError {
	t := v.Type()
	if isNull(raw) {
		if t.Kind() == reflect.Interface || t == rawType {
			return nil
		}
		return []domain.FieldError{{Path: path, Reason: fmt.Sprintf("expected %s, got null", jsonKind(t))}}
	}

	switch {
	case isObjectType(t):
		return decodeObject(raw, v, path)
	case t.Kind() == reflect.Pointer:
		target := reflect.New(t.Elem())
		errs := decodeValue(raw, target.Elem(), path)
		v.Set(target)
		return errs
	case t.Kind() == reflect.Slice && t != rawType && t.Elem().Kind() != reflect.Interface:
		// Items are decoded one by one; encoding/json would turn a null item
		// into the element's zero value.
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return []domain.FieldError{{Path: path, Reason: "expected array, got " + jsonKindOf(raw)}}
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		var errs []domain.FieldError
		for i, item := range items {
			errs = append(errs, decodeValue(item, out.Index(i), fmt.Sprintf("%s[%d]", path, i))...)
		}
		v.Set(out)
		return errs
	}

	if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
		return []domain.FieldError{{Path: path, Reason: decodeReason(err)}}
	}
	return nil
}

func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		got, _, _ := strings.Cut(typeErr.Value, " ")
		if got == "bool" {
			got = "boolean"
		}
		return fmt.Sprintf("expected %s, got %s", jsonKind(typeErr.Type), got)
	}
	return err.Error()
}

// jsonKind names the JSON type a Go type decodes from.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return "value"
}

// jsonKindOf names the JSON type of an encoded value.
func jsonKindOf(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch c := trimmed[0]; {
	case c == '{':
		return "object"
	case c == '[':
		return "array"
	case c == '"':
		return "string"
	case c == 't' || c == 'f':
		return "boolean"
	case c == 'n':
		return "null"
	}
	return "number"
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
