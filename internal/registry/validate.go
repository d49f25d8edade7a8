package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/isaacphi/rendertools/internal/domain"
)

// Schema turns raw tool arguments into a typed Input, or reports every
// violation it finds.
type Schema interface {
	Parse(raw json.RawMessage) (Input, []domain.FieldError)
}

// objectSchema validates arguments of input type T in two passes: a
// structural decode (types, required members, unknown members) followed by
// the validate tags (enumerations, literals, lengths).
type objectSchema[T any, P interface {
	*T
	Input
}] struct{}

func (objectSchema[T, P]) Parse(raw json.RawMessage) (Input, []domain.FieldError) {
	in := P(new(T))
	errs := decodeObject(raw, reflect.ValueOf(in).Elem(), "")
	if !rootRejected(errs) {
		errs = mergeViolations(errs, check(in))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return in, nil
}

// embeddedSegment stands in for embedded structs in validator namespaces so
// they can be dropped from field paths.
const embeddedSegment = "~"

// validate is safe for concurrent use; its struct cache is internal to the library.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if f.Anonymous {
			return embeddedSegment
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("enum", validEnum); err != nil {
		panic(err)
	}
	return v
}

func validEnum(fl validator.FieldLevel) bool {
	e, ok := fl.Field().Interface().(domain.Enum)
	return ok && e.Valid()
}

func check(in any) []domain.FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Reason: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Path: fieldPath(fe.Namespace()), Reason: reason(fe)})
	}
	return out
}

// fieldPath converts "RenderPromptInput.~.theme" into "theme".
func fieldPath(namespace string) string {
	_, rest, _ := strings.Cut(namespace, ".")
	parts := strings.Split(rest, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p != embeddedSegment {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "enum":
		if e, ok := fe.Value().(domain.Enum); ok {
			return "must be one of " + joinValues(e.Values())
		}
		return "not an allowed value"
	case "eq":
		return fmt.Sprintf("must be %q", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func rootRejected(errs []domain.FieldError) bool {
	for _, e := range errs {
		if e.Path == "" {
			return true
		}
	}
	return false
}

// mergeViolations appends rule violations that are not about a value the
// decoder already rejected (or one nested inside it).
func mergeViolations(decoded, rules []domain.FieldError) []domain.FieldError {
	out := decoded
	for _, r := range rules {
		if !covered(decoded, r.Path) {
			out = append(out, r)
		}
	}
	return out
}

func covered(decoded []domain.FieldError, path string) bool {
	for _, d := range decoded {
		if path == d.Path ||
			strings.HasPrefix(path, d.Path+".") ||
			strings.HasPrefix(path, d.Path+"[") {
			return true
		}
	}
	return false
}
