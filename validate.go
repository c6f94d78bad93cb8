// FILE: lixenwraith/deconfig/validate.go
package deconfig

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator asserts a constraint on the transformed value. It must not
// modify the value and reports failure by returning an error.
type Validator func(value any) error

// ValidateFunc wraps an arbitrary function as a validator.
func ValidateFunc(fn func(any) error) Validator {
	if fn == nil {
		return nil
	}
	return Validator(fn)
}

// Check wraps a typed predicate. Values not of type T fail validation.
func Check[T any](fn func(T) error) Validator {
	if fn == nil {
		return nil
	}
	return func(v any) error {
		t, ok := v.(T)
		if !ok {
			return fmt.Errorf("value %v (%T) is not a %s", v, v, reflect.TypeFor[T]())
		}
		return fn(t)
	}
}

// IsType requires the value to be of type T.
func IsType[T any]() Validator {
	return func(v any) error {
		if _, ok := v.(T); !ok {
			return fmt.Errorf("value %v (%T) is not a %s", v, v, reflect.TypeFor[T]())
		}
		return nil
	}
}

// NotEmpty rejects zero values and empty strings, slices and maps.
func NotEmpty() Validator {
	return func(v any) error {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
			if rv.Len() == 0 {
				return errors.New("value is empty")
			}
		default:
			if !rv.IsValid() || rv.IsZero() {
				return errors.New("value is empty")
			}
		}
		return nil
	}
}

// RangeOption adjusts InRange bounds.
type RangeOption func(*rangeBounds)

type rangeBounds struct {
	exclusiveMin bool
	exclusiveMax bool
}

// ExclusiveMin excludes the lower bound from the range.
func ExclusiveMin() RangeOption { return func(b *rangeBounds) { b.exclusiveMin = true } }

// ExclusiveMax excludes the upper bound from the range.
func ExclusiveMax() RangeOption { return func(b *rangeBounds) { b.exclusiveMax = true } }

// InRange requires min <= value <= max. Bounds are inclusive unless
// ExclusiveMin or ExclusiveMax is given.
func InRange[T cmp.Ordered](min, max T, opts ...RangeOption) Validator {
	var b rangeBounds
	for _, opt := range opts {
		opt(&b)
	}
	return Check(func(v T) error {
		switch c := cmp.Compare(v, min); {
		case c < 0:
			return fmt.Errorf("value %v is less than %v", v, min)
		case c == 0 && b.exclusiveMin:
			return fmt.Errorf("value %v is less than or equal to %v", v, min)
		}
		switch c := cmp.Compare(v, max); {
		case c > 0:
			return fmt.Errorf("value %v is greater than %v", v, max)
		case c == 0 && b.exclusiveMax:
			return fmt.Errorf("value %v is greater than or equal to %v", v, max)
		}
		return nil
	})
}

// MatchesPattern requires a string value matching re.
func MatchesPattern(re *regexp.Regexp) Validator {
	if re == nil {
		return nil
	}
	return Check(func(s string) error {
		if !re.MatchString(s) {
			return fmt.Errorf("value %q does not match %s", s, re)
		}
		return nil
	})
}

// MinLength requires a string, slice or map of at least n elements.
// Strings are measured in runes.
func MinLength(n int) Validator {
	return func(v any) error {
		l, err := length(v)
		if err != nil {
			return err
		}
		if l < n {
			return fmt.Errorf("length %d is less than %d", l, n)
		}
		return nil
	}
}

// MaxLength requires a string, slice or map of at most n elements.
func MaxLength(n int) Validator {
	return func(v any) error {
		l, err := length(v)
		if err != nil {
			return err
		}
		if l > n {
			return fmt.Errorf("length %d is greater than %d", l, n)
		}
		return nil
	}
}

// OneOf requires the value to equal one of values.
func OneOf[T comparable](values ...T) Validator {
	return Check(func(v T) error {
		if !slices.Contains(values, v) {
			return fmt.Errorf("value %v is not one of %v", v, values)
		}
		return nil
	})
}

var (
	tagValidatorOnce sync.Once
	tagValidator     *validator.Validate
)

// Tag validates the value against a go-playground/validator tag such as
// "required,gt=0" or "oneof=debug info warn error".
func Tag(tag string) Validator {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return func(v any) error {
		if err := tagValidator.Var(v, tag); err != nil {
			return fmt.Errorf("tag %q: %w", tag, err)
		}
		return nil
	}
}

func length(v any) (int, error) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len(), nil
	}
	return 0, fmt.Errorf("value %v (%T) has no length", v, v)
}
