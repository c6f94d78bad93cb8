// FILE: lixenwraith/deconfig/container.go
package deconfig

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Schema is a frozen set of field declarations produced by Builder.Build.
type Schema struct {
	name     string
	fields   []*Field
	byName   map[string]*Field
	adapters Chain
	registry *Registry
	logger   *slog.Logger
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []*Field {
	return append([]*Field(nil), s.fields...)
}

// Field returns the field declared under name.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Option configures a Container.
type Option func(c *Container)

// Adapters binds an explicit adapter chain to the container, taking
// precedence over the schema's adapters and the registry.
func Adapters(adapters ...Adapter) Option {
	return func(c *Container) {
		if err := checkAdapters(adapters); err != nil {
			c.err = fmt.Errorf("deconfig: invalid container adapters: %w", err)
			return
		}
		c.adapters = append(Chain(nil), adapters...)
	}
}

// LogHandler sets the handler used for the container's debug records.
func LogHandler(h slog.Handler) Option {
	return func(c *Container) {
		if h != nil {
			c.log = slog.New(h)
		}
	}
}

// Container is an instance of a schema bound to an adapter chain.
// Creating one resolves nothing; every access runs the full pipeline again,
// so changes in the underlying sources are observed immediately.
//
// A Container holds no locks. Concurrent accesses are safe when the bound
// adapters are safe for concurrent reads.
type Container struct {
	schema   *Schema
	adapters Chain
	log      *slog.Logger
	err      error
}

// New creates a container. Binding errors surface on first access.
func (s *Schema) New(opts ...Option) *Container {
	c := &Container{
		schema: s,
		log:    s.logger,
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schema returns the container's schema.
func (c *Container) Schema() *Schema { return c.schema }

// chain returns the adapters bound to this container at the time of the call.
func (c *Container) chain() (Chain, string, error) {
	if c.err != nil {
		return nil, "", c.err
	}
	if len(c.adapters) > 0 {
		return c.adapters, "container", nil
	}
	if len(c.schema.adapters) > 0 {
		return c.schema.adapters, "schema", nil
	}
	if reg := c.schema.registry.Adapters(); len(reg) > 0 {
		return reg, "registry", nil
	}
	return nil, "", fmt.Errorf("deconfig: %w for schema %s", ErrNoAdapters, c.schema.name)
}

// resolve runs the pipeline for name and reports the value's source.
func (c *Container) resolve(name string, args ...any) (any, string, error) {
	f, ok := c.schema.byName[name]
	if !ok {
		return nil, "", fmt.Errorf("deconfig: %w %q in schema %s", ErrUnknownField, name, c.schema.name)
	}

	chain, binding, err := c.chain()
	if err != nil {
		return nil, "", err
	}

	val, source, err := f.Resolve(chain, args...)
	if err != nil {
		c.log.Debug("field resolution failed",
			"schema", c.schema.name, "field", name, "binding", binding, "error", err)
		return nil, source, err
	}

	if source == SourceDefault {
		c.log.Debug("field fell back to provider",
			"schema", c.schema.name, "field", name, "nil", val == nil)
	} else {
		c.log.Debug("field resolved",
			"schema", c.schema.name, "field", name, "source", source, "binding", binding)
	}
	return val, source, nil
}

// Value resolves the named field. Optional fields without a value yield nil.
func (c *Container) Value(name string, args ...any) (any, error) {
	val, _, err := c.resolve(name, args...)
	return val, err
}

// Accessor returns a zero-argument function resolving the named field.
func (c *Container) Accessor(name string) func() (any, error) {
	return func() (any, error) {
		return c.Value(name)
	}
}

// Get resolves the named field and asserts it to T.
// An optional field without a value yields the zero value of T.
func Get[T any](c *Container, name string, args ...any) (T, error) {
	var zero T
	val, err := c.Value(name, args...)
	if err != nil || val == nil {
		return zero, err
	}
	t, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("deconfig: field %q resolved to %T, not %s", name, val, reflect.TypeFor[T]())
	}
	return t, nil
}

// Bind returns a typed zero-argument accessor for the named field.
func Bind[T any](c *Container, name string) func() (T, error) {
	return func() (T, error) {
		return Get[T](c, name)
	}
}
