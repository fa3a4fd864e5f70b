package cmdlet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	pinerrors "pinctl/pkg/errors"
)

// Build constructs a request of type In from the invocation. Values are written at
// their parameter paths; intermediate records are allocated only on the way to a
// written value, so a nested record exists only when one of its fields is set.
func Build[In any](ctx context.Context, inv *Invocation) (*In, error) {
	in := new(In)
	root := reflect.ValueOf(in).Elem()

	for _, p := range inv.spec.Params {
		value, ok := inv.values[p.Name]
		if !ok {
			continue
		}

		if ref, isRef := value.(StreamRef); isRef {
			data, err := inv.readStream(ctx, ref)
			if err != nil {
				return nil, err
			}
			value = data
		}

		field, err := walk(root, p.Path)
		if err != nil {
			return nil, err
		}
		if err := assign(field, value); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
	}

	return in, nil
}

func (inv *Invocation) readStream(ctx context.Context, ref StreamRef) ([]byte, error) {
	r, err := inv.open(ctx, ref)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pinerrors.NewPayloadError(fmt.Sprintf("failed to read %s", ref), err)
	}
	return data, nil
}

// walk follows a dotted path from root, allocating nil struct pointers on the way,
// and returns the settable leaf field.
func walk(root reflect.Value, path string) (reflect.Value, error) {
	v := root
	segments := strings.Split(path, ".")
	for i, name := range segments {
		f := v.FieldByName(name)
		if !f.IsValid() {
			return reflect.Value{}, fmt.Errorf("%s has no field %q (path %s)", v.Type(), name, path)
		}
		if i == len(segments)-1 {
			return f, nil
		}

		switch f.Kind() {
		case reflect.Ptr:
			if f.Type().Elem().Kind() != reflect.Struct {
				return reflect.Value{}, fmt.Errorf("path %s: %s is not a record", path, name)
			}
			if f.IsNil() {
				f.Set(reflect.New(f.Type().Elem()))
			}
			v = f.Elem()
		case reflect.Struct:
			v = f
		default:
			return reflect.Value{}, fmt.Errorf("path %s: %s is not a record", path, name)
		}
	}
	return reflect.Value{}, fmt.Errorf("empty path")
}

// FieldType resolves a dotted path against a struct type without allocating anything
func FieldType(t reflect.Type, path string) (reflect.Type, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	segments := strings.Split(path, ".")
	for i, name := range segments {
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("path %s: %s is not a record", path, t)
		}
		f, ok := t.FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, fmt.Errorf("%s has no field %q (path %s)", t, name, path)
		}
		if i == len(segments)-1 {
			return f.Type, nil
		}
		t = f.Type
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
	}
	return nil, fmt.Errorf("empty path")
}

// Compatible reports whether a parameter kind can be written to a field type
func Compatible(k Kind, t reflect.Type) bool {
	if k == Object {
		return true
	}
	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	switch k {
	case String, Int32, Bool:
		return isScalar(base.Kind())
	case Bytes:
		return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8
	case StringList:
		return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String
	case StringMap:
		return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String && t.Elem().Kind() == reflect.String
	case StringListMap:
		return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String &&
			t.Elem().Kind() == reflect.Slice && t.Elem().Elem().Kind() == reflect.String
	}
	return false
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int32, reflect.Int64, reflect.Float64:
		return true
	}
	return false
}

// assign writes a collected value into a request field, converting to the field's type
func assign(field reflect.Value, value interface{}) error {
	t := field.Type()

	switch v := value.(type) {
	case json.RawMessage:
		if err := json.Unmarshal(v, field.Addr().Interface()); err != nil {
			return fmt.Errorf("cannot decode JSON into %s: %w", t, err)
		}
		return nil

	case []byte:
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot assign bytes to %s", t)
		}
		field.SetBytes(v)
		return nil

	case []string:
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.String {
			return fmt.Errorf("cannot assign list to %s", t)
		}
		out := reflect.MakeSlice(t, len(v), len(v))
		for i, s := range v {
			out.Index(i).SetString(s)
		}
		field.Set(out)
		return nil

	case map[string]string:
		if t.Kind() != reflect.Map || t.Elem().Kind() != reflect.String {
			return fmt.Errorf("cannot assign map to %s", t)
		}
		out := reflect.MakeMapWithSize(t, len(v))
		for k, s := range v {
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), reflect.ValueOf(s).Convert(t.Elem()))
		}
		field.Set(out)
		return nil

	case map[string][]string:
		if t.Kind() != reflect.Map || t.Elem().Kind() != reflect.Slice || t.Elem().Elem().Kind() != reflect.String {
			return fmt.Errorf("cannot assign list map to %s", t)
		}
		out := reflect.MakeMapWithSize(t, len(v))
		for k, list := range v {
			elem := reflect.Zero(t.Elem()) // explicit null entry
			if list != nil {
				elem = reflect.MakeSlice(t.Elem(), len(list), len(list))
				for i, s := range list {
					elem.Index(i).SetString(s)
				}
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
		}
		field.Set(out)
		return nil
	}

	if t.Kind() == reflect.Ptr {
		elem, err := convertScalar(value, t.Elem())
		if err != nil {
			return err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		field.Set(ptr)
		return nil
	}

	converted, err := convertScalar(value, t)
	if err != nil {
		return err
	}
	field.Set(converted)
	return nil
}

// convertScalar converts a string, int32 or bool into a scalar of type t.
// Numbers travel as strings for fields the remote schema declares as strings.
func convertScalar(value interface{}, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	var text string
	switch v := value.(type) {
	case string:
		text = v
	case int32:
		text = strconv.FormatInt(int64(v), 10)
	case bool:
		text = strconv.FormatBool(v)
	default:
		return reflect.Value{}, fmt.Errorf("unsupported value type %T", value)
	}

	switch t.Kind() {
	case reflect.String:
		out.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert %q to bool", text)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert %q to %s", text, t)
		}
		out.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert %q to %s", text, t)
		}
		out.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("cannot assign scalar to %s", t)
	}
	return out, nil
}
