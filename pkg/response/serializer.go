package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
)

// Serializer encodes a payload into a JSON body.
type Serializer interface {
	Marshal(v any) ([]byte, error)
}

// ErrCircularReference is returned by Marshal when the payload contains
// itself and a Fallback had to walk it.
var ErrCircularReference = errors.New("circular reference detected")

// FallbackFunc converts a value that encoding/json cannot encode (a func, a
// channel, a complex number, NaN, ...) into one it can.
type FallbackFunc func(v any) (any, error)

// JSONSerializer encodes payloads with encoding/json.
//
// When the encoder rejects a value and Fallback is set, the payload is walked
// and every rejected value is replaced by what Fallback returns for it.
type JSONSerializer struct {
	Indent   string
	Fallback FallbackFunc
}

// DefaultSerializer returns the serializer used when none is configured:
// four-space indentation and no fallback.
func DefaultSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "    "}
}

// StringFallback renders unsupported values with fmt.Sprint.
func StringFallback(v any) (any, error) {
	return fmt.Sprint(v), nil
}

// Marshal implements Serializer.
func (s *JSONSerializer) Marshal(v any) ([]byte, error) {
	data, err := s.encode(v)
	if err == nil || s.Fallback == nil || !isUnsupported(err) {
		return data, err
	}

	normalized, err := s.normalize(reflect.ValueOf(v), make(map[visit]struct{}))
	if err != nil {
		return nil, fmt.Errorf("fallback serializer: %w", err)
	}
	return s.encode(normalized)
}

func (s *JSONSerializer) encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if s.Indent != "" {
		enc.SetIndent("", s.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var jsonMarshalerType = reflect.TypeFor[json.Marshaler]()

// visit identifies a map, slice or pointer on the current walk path.
type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// enter records rv on the walk path. It fails when rv is already on it.
func enter(rv reflect.Value, seen map[visit]struct{}) (visit, error) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}
	if _, ok := seen[key]; ok {
		return key, fmt.Errorf("%w: %s", ErrCircularReference, rv.Type())
	}
	seen[key] = struct{}{}
	return key, nil
}

// normalize rebuilds v out of maps, slices and leaves, passing unsupported
// leaves through the fallback. seen holds the containers on the current path
// so a self-referencing payload fails instead of recursing forever.
func (s *JSONSerializer) normalize(rv reflect.Value, seen map[visit]struct{}) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Type().Implements(jsonMarshalerType) {
		return rv.Interface(), nil
	}

	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Kind() == reflect.Interface {
			return s.normalize(rv.Elem(), seen)
		}
		key, err := enter(rv, seen)
		if err != nil {
			return nil, err
		}
		defer delete(seen, key)
		return s.normalize(rv.Elem(), seen)

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		key, err := enter(rv, seen)
		if err != nil {
			return nil, err
		}
		defer delete(seen, key)
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val, err := s.normalize(iter.Value(), seen)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(iter.Key().Interface())] = val
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface(), nil
		}
		if rv.Kind() == reflect.Slice {
			key, err := enter(rv, seen)
			if err != nil {
				return nil, err
			}
			defer delete(seen, key)
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			val, err := s.normalize(rv.Index(i), seen)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil

	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return s.Fallback(interfaceOf(rv))

	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return s.Fallback(interfaceOf(rv))
		}
		return interfaceOf(rv), nil

	case reflect.Struct:
		v := interfaceOf(rv)
		if _, err := json.Marshal(v); err != nil {
			return s.Fallback(v)
		}
		return v, nil

	default:
		return interfaceOf(rv), nil
	}
}

// interfaceOf returns the value behind rv, or its string form when rv was
// reached through an unexported struct field.
func interfaceOf(rv reflect.Value) any {
	if rv.CanInterface() {
		return rv.Interface()
	}
	return rv.String()
}

func isUnsupported(err error) bool {
	var typeErr *json.UnsupportedTypeError
	var valueErr *json.UnsupportedValueError
	return errors.As(err, &typeErr) || errors.As(err, &valueErr)
}
