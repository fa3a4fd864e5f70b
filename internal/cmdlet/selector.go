package cmdlet

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	pinerrors "pinctl/pkg/errors"
)

// SelectorKind tells the translator what to emit
type SelectorKind int

const (
	// SelectAll emits the whole response
	SelectAll SelectorKind = iota
	// SelectField emits one top-level response field
	SelectField
	// SelectParam echoes an input parameter without calling the service
	SelectParam
)

// Selector is a parsed projection expression: "*", "Field" or "^Param"
type Selector struct {
	Kind SelectorKind
	// Name is the resolved response field or canonical parameter name
	Name string
}

// String renders the selector back into its expression form
func (s Selector) String() string {
	switch s.Kind {
	case SelectField:
		return s.Name
	case SelectParam:
		return "^" + s.Name
	default:
		return "*"
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// hiddenFields are response fields that carry SDK plumbing rather than data
var hiddenFields = map[string]bool{
	"ResultMetadata": true,
}

// ParseSelector resolves expr against the command's parameters and the response type.
// An empty expr falls back to the command's default selector. Invalid expressions are
// rejected here, before any remote call.
func ParseSelector(expr string, spec *Spec, out reflect.Type) (Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = spec.DefaultSelector
	}
	if expr == "" || expr == "*" {
		return Selector{Kind: SelectAll}, nil
	}

	if strings.HasPrefix(expr, "^") {
		name := strings.TrimPrefix(expr, "^")
		p, ok := spec.Param(name)
		if !ok {
			return Selector{}, pinerrors.NewValidationError(fmt.Sprintf(
				"invalid selector %q: %s has no parameter named %q", expr, spec.Command, name))
		}
		return Selector{Kind: SelectParam, Name: p.Name}, nil
	}

	if !identifierPattern.MatchString(expr) {
		return Selector{}, pinerrors.NewValidationError(fmt.Sprintf(
			"invalid selector %q: use '*', a response field name, or '^ParameterName'", expr))
	}

	fields := ResponseFields(out)
	for _, f := range fields {
		if strings.EqualFold(f, expr) {
			return Selector{Kind: SelectField, Name: f}, nil
		}
	}
	return Selector{}, pinerrors.NewValidationError(fmt.Sprintf(
		"invalid selector %q: response has no field %q (available: %s)", expr, expr, strings.Join(fields, ", ")))
}

// ResponseFields lists the selectable top-level fields of a response type, sorted
func ResponseFields(t reflect.Type) []string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous || hiddenFields[f.Name] {
			continue
		}
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Project applies a field or whole-response selector to a response value
func Project(out interface{}, sel Selector) (interface{}, error) {
	if sel.Kind == SelectAll {
		return out, nil
	}
	if sel.Kind != SelectField {
		return nil, fmt.Errorf("selector %s cannot project a response", sel)
	}

	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	f := v.FieldByName(sel.Name)
	if !f.IsValid() {
		return nil, fmt.Errorf("response %s has no field %q", v.Type(), sel.Name)
	}
	return f.Interface(), nil
}
