// FILE: lixenwraith/deconfig/adapter.go
package deconfig

import (
	"errors"
	"fmt"
)

// SourceDefault is reported as the source of a value produced by a field's provider.
const SourceDefault = "default"

// Adapter wraps one configuration source.
//
// GetField returns the raw value for the named field, or an error wrapping
// ErrNotFound when the source has nothing for it. Any other error aborts
// resolution of the field. The field descriptor gives access to the provider
// (field.Default) and to per-field adapter options (field.Option); an adapter
// may call the provider to fabricate a value but is not required to.
type Adapter interface {
	GetField(name string, field *Field, args ...any) (any, error)
}

// Named is implemented by adapters that want a readable name in logs and errors.
type Named interface {
	Name() string
}

// AdapterFunc adapts an ordinary function to the Adapter interface.
type AdapterFunc func(name string, field *Field, args ...any) (any, error)

// GetField calls f.
func (f AdapterFunc) GetField(name string, field *Field, args ...any) (any, error) {
	return f(name, field, args...)
}

// Chain is an ordered list of adapters queried left to right.
type Chain []Adapter

// Resolve returns the raw value of field and the name of its source.
// Adapters reporting ErrNotFound are skipped; the first value wins. When every
// adapter reports ErrNotFound the provider is invoked and its result, which
// may be nil, is returned with source SourceDefault.
func (ch Chain) Resolve(field *Field, args ...any) (any, string, error) {
	for _, a := range ch {
		val, err := a.GetField(field.name, field, args...)
		if err == nil {
			return val, AdapterName(a), nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return nil, "", &AdapterError{Field: field.name, Adapter: AdapterName(a), Err: err}
	}
	return field.Default(args...), SourceDefault, nil
}

// AdapterName returns a's Name if it implements Named, otherwise its type.
func AdapterName(a Adapter) string {
	if n, ok := a.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}

// checkAdapters rejects nil entries, which would panic on first access.
func checkAdapters(adapters []Adapter) error {
	for i, a := range adapters {
		if a == nil {
			return fmt.Errorf("adapter %d is nil", i)
		}
	}
	return nil
}
