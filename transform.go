// FILE: lixenwraith/deconfig/transform.go
package deconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Transformer converts a resolved value into the shape the caller wants.
// Transformers receive the previous transformer's output and never see nil.
type Transformer func(value any) (any, error)

// TransformFunc wraps an arbitrary function as a transformer.
func TransformFunc(fn func(any) (any, error)) Transformer {
	if fn == nil {
		return nil
	}
	return Transformer(fn)
}

// Map wraps a typed function. The input must already be of type In.
func Map[In, Out any](fn func(In) (Out, error)) Transformer {
	if fn == nil {
		return nil
	}
	return func(v any) (any, error) {
		in, ok := v.(In)
		if !ok {
			return nil, &TransformError{
				Transformer: "map",
				Value:       v,
				Err:         fmt.Errorf("expected %s", reflect.TypeFor[In]()),
			}
		}
		return fn(in)
	}
}

// Compose runs transformers in order as a single transformer.
func Compose(transformers ...Transformer) Transformer {
	return func(v any) (any, error) {
		var err error
		for _, t := range transformers {
			if v, err = t(v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
}

// String converts the value to a string. Slices are converted element-wise.
func String() Transformer {
	return caster("string", cast.ToStringE)
}

// Integer converts the value to an int. Strings are parsed as base 10
// after trimming spaces. Slices are converted element-wise to []int.
func Integer() Transformer {
	return caster("integer", func(v any) (int, error) {
		if s, ok := v.(string); ok {
			i, err := strconv.ParseInt(strings.TrimSpace(s), 10, strconv.IntSize)
			return int(i), err
		}
		return cast.ToIntE(v)
	})
}

// Int64 converts the value to an int64. Slices become []int64.
func Int64() Transformer {
	return caster("int64", func(v any) (int64, error) {
		if s, ok := v.(string); ok {
			return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		}
		return cast.ToInt64E(v)
	})
}

// Float converts the value to a float64. Slices become []float64.
func Float() Transformer {
	return caster("float", func(v any) (float64, error) {
		if s, ok := v.(string); ok {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		}
		return cast.ToFloat64E(v)
	})
}

// Boolean converts the value to a bool using strconv.ParseBool rules for
// strings and non-zero for numbers. Slices become []bool.
func Boolean() Transformer {
	return caster("boolean", cast.ToBoolE)
}

// Duration converts the value to a time.Duration. Slices become []time.Duration.
func Duration() Transformer {
	return caster("duration", cast.ToDurationE)
}

// TrimSpace removes surrounding white space from strings.
func TrimSpace() Transformer {
	return caster("trim", func(v any) (string, error) {
		s, err := cast.ToStringE(v)
		return strings.TrimSpace(s), err
	})
}

// Split splits a string on sep into a []string, trimming every element.
// An empty string yields an empty slice. Values that already are lists,
// such as arrays from TOML or YAML files, pass through unchanged.
func Split(sep string) Transformer {
	return func(v any) (any, error) {
		if _, ok := elements(v); ok {
			return v, nil
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, &TransformError{Transformer: "split", Value: v, Err: err}
		}
		if s == "" {
			return []string{}, nil
		}
		parts := strings.Split(s, sep)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	}
}

// Each applies t to every element of a slice and returns a []any.
func Each(t Transformer) Transformer {
	return func(v any) (any, error) {
		elems, ok := elements(v)
		if !ok {
			return nil, &TransformError{Transformer: "each", Value: v, Err: fmt.Errorf("not a slice")}
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			x, err := t(e)
			if err != nil {
				return nil, &TransformError{Transformer: "each", Value: e, Err: fmt.Errorf("element %d: %w", i, err)}
			}
			out[i] = x
		}
		return out, nil
	}
}

// CommaSeparated splits on commas and applies elem to every element.
// With a nil elem it behaves like Split(",").
func CommaSeparated(elem Transformer) Transformer {
	if elem == nil {
		return Split(",")
	}
	return Compose(Split(","), elem)
}

// As decodes the value into T with weak typing and the package decode hooks,
// the same conversions Scan applies to struct fields.
func As[T any]() Transformer {
	return asType(reflect.TypeFor[T]())
}

func asType(t reflect.Type) Transformer {
	kind := "as " + t.String()
	return func(v any) (any, error) {
		ptr := reflect.New(t)
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           ptr.Interface(),
			WeaklyTypedInput: true,
			DecodeHook:       decodeHook(),
		})
		if err != nil {
			return nil, &TransformError{Transformer: kind, Value: v, Err: err}
		}
		if err := decoder.Decode(v); err != nil {
			return nil, &TransformError{Transformer: kind, Value: v, Err: err}
		}
		return ptr.Elem().Interface(), nil
	}
}

// caster lifts a scalar conversion into a transformer that also maps slices.
func caster[T any](kind string, fn func(any) (T, error)) Transformer {
	return func(v any) (any, error) {
		if elems, ok := elements(v); ok {
			out := make([]T, len(elems))
			for i, e := range elems {
				x, err := fn(e)
				if err != nil {
					return nil, &TransformError{Transformer: kind, Value: e, Err: fmt.Errorf("element %d: %w", i, err)}
				}
				out[i] = x
			}
			return out, nil
		}
		x, err := fn(v)
		if err != nil {
			return nil, &TransformError{Transformer: kind, Value: v, Err: err}
		}
		return x, nil
	}
}

// elements returns the items of a slice or array. []byte counts as a scalar.
func elements(v any) ([]any, bool) {
	if _, isBytes := v.([]byte); isBytes {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
