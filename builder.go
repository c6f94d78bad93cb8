// File: lixenwraith/deconfig/builder.go
package deconfig

import (
	"errors"
	"fmt"
	"log/slog"
)

// Builder provides a fluent interface for declaring a schema
type Builder struct {
	name     string
	methods  []*MethodBuilder
	adapters Chain
	registry *Registry
	logger   *slog.Logger
	err      error
}

// NewBuilder creates a builder for a schema called name
func NewBuilder(name string) *Builder {
	b := &Builder{
		name:     name,
		registry: defaultRegistry,
	}
	if name == "" {
		b.err = &DeclarationError{Schema: "<unnamed>", Err: errors.New("schema name cannot be empty")}
	}
	return b
}

// WithAdapters sets the schema's explicit adapter chain.
// Without it (or with an empty list) containers use the registry's adapters.
func (b *Builder) WithAdapters(adapters ...Adapter) *Builder {
	if err := checkAdapters(adapters); err != nil {
		b.setErr(&DeclarationError{Schema: b.name, Err: err})
		return b
	}
	b.adapters = append(Chain(nil), adapters...)
	return b
}

// WithRegistry sets the registry consulted when no explicit adapters are given
func (b *Builder) WithRegistry(r *Registry) *Builder {
	if r == nil {
		b.setErr(&DeclarationError{Schema: b.name, Err: errors.New("registry cannot be nil")})
		return b
	}
	b.registry = r
	return b
}

// WithLogger sets the logger inherited by containers of this schema
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Method adds field declarations
func (b *Builder) Method(methods ...*MethodBuilder) *Builder {
	for _, m := range methods {
		if m == nil {
			b.setErr(&DeclarationError{Schema: b.name, Err: errors.New("method declaration is nil")})
			continue
		}
		b.methods = append(b.methods, m)
	}
	return b
}

// Build freezes every declaration into an immutable Schema.
// All declaration problems are reported together.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}

	s := &Schema{
		name:     b.name,
		byName:   make(map[string]*Field, len(b.methods)),
		adapters: b.adapters,
		registry: b.registry,
		logger:   b.logger,
	}

	var errs []error
	methods := make(map[string]bool, len(b.methods))

	for _, m := range b.methods {
		if methods[m.method] {
			errs = append(errs, &DeclarationError{Schema: b.name, Method: m.method,
				Err: errors.New("method declared twice")})
			continue
		}
		methods[m.method] = true

		f, err := m.freeze(b.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if prev, exists := s.byName[f.name]; exists {
			errs = append(errs, &DeclarationError{Schema: b.name, Method: m.method,
				Err: fmt.Errorf("field %q already declared by %s", f.name, prev.method)})
			continue
		}

		s.byName[f.name] = f
		s.fields = append(s.fields, f)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return s, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("deconfig: schema build failed: %v", err))
	}
	return s
}

// setErr keeps the first error, later ones are usually consequences of it
func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}
