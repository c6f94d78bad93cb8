// File: lixenwraith/deconfig/type.go
package deconfig

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// String resolves a field and converts the result to a string.
// Non-string values are converted with the usual formatting rules.
func (c *Container) String(name string) (string, error) {
	return convert(c, name, "string", cast.ToStringE)
}

// Int resolves a field and converts the result to an int.
func (c *Container) Int(name string) (int, error) {
	return convert(c, name, "int", cast.ToIntE)
}

// Int64 resolves a field and converts the result to an int64.
// Parsable strings, other numeric types and booleans are accepted.
func (c *Container) Int64(name string) (int64, error) {
	return convert(c, name, "int64", cast.ToInt64E)
}

// Float64 resolves a field and converts the result to a float64.
func (c *Container) Float64(name string) (float64, error) {
	return convert(c, name, "float64", cast.ToFloat64E)
}

// Bool resolves a field and converts the result to a bool.
// Numbers map to false when zero, strings use strconv.ParseBool rules.
func (c *Container) Bool(name string) (bool, error) {
	return convert(c, name, "bool", cast.ToBoolE)
}

// Strings resolves a field and converts the result to a []string.
func (c *Container) Strings(name string) ([]string, error) {
	return convert(c, name, "[]string", cast.ToStringSliceE)
}

// Duration resolves a field and converts the result to a time.Duration.
// Strings use time.ParseDuration syntax, bare numbers are nanoseconds.
func (c *Container) Duration(name string) (time.Duration, error) {
	return convert(c, name, "duration", cast.ToDurationE)
}

func convert[T any](c *Container, name, kind string, fn func(any) (T, error)) (T, error) {
	var zero T
	val, err := c.Value(name)
	if err != nil || val == nil {
		return zero, err
	}
	out, err := fn(val)
	if err != nil {
		return zero, fmt.Errorf("deconfig: cannot convert field %q (%T) to %s: %w", name, val, kind, err)
	}
	return out, nil
}
