// FILE: lixenwraith/deconfig/field.go
package deconfig

import (
	"errors"
	"fmt"
)

// Provider is the declaring method of a field. It is invoked when no adapter
// has a value and returns the default, or nil when there is none.
type Provider func(args ...any) any

// Default returns a Provider that always yields v.
func Default(v any) Provider {
	return func(...any) any { return v }
}

// NoDefault returns a Provider without a default value.
func NoDefault() Provider {
	return Default(nil)
}

// Modifier is a reusable declaration step, typically an adapter specific
// per-field setting such as EnvName or IniField.
type Modifier func(m *MethodBuilder)

// MethodBuilder collects the modifiers declared on one method.
// Field must be the first modifier applied, exactly once. Every later modifier
// builds on the descriptor without replacing what came before: transformers and
// validators are appended and run in the order they were declared.
type MethodBuilder struct {
	method       string
	provider     Provider
	name         string
	hasField     bool
	optional     bool
	transformers []Transformer
	validators   []Validator
	adapters     []Adapter
	options      map[any]any
	errs         []error
}

// Method starts the declaration of a field backed by provider.
// methodName identifies the declaration in errors and must be unique in a schema.
func Method(methodName string, provider Provider) *MethodBuilder {
	m := &MethodBuilder{
		method:   methodName,
		provider: provider,
		options:  make(map[any]any),
	}
	if methodName == "" {
		m.fail("method name cannot be empty")
	}
	if provider == nil {
		m.fail("provider cannot be nil")
	}
	return m
}

// Field is the resolution modifier. It names the field looked up in adapters.
func (m *MethodBuilder) Field(name string) *MethodBuilder {
	if m.hasField {
		m.fail("field modifier applied twice (%q, then %q)", m.name, name)
		return m
	}
	if name == "" {
		m.fail("field name cannot be empty")
	}
	m.name = name
	m.hasField = true
	return m
}

// Optional marks the field as optional: a missing value resolves to nil and
// skips transformers and validators.
func (m *MethodBuilder) Optional() *MethodBuilder {
	if m.requireField("optional") {
		m.optional = true
	}
	return m
}

// Required reverts Optional. Fields are required by default.
func (m *MethodBuilder) Required() *MethodBuilder {
	if m.requireField("required") {
		m.optional = false
	}
	return m
}

// Transform appends transformers to the field.
func (m *MethodBuilder) Transform(transformers ...Transformer) *MethodBuilder {
	if !m.requireField("transform") {
		return m
	}
	for i, t := range transformers {
		if t == nil {
			m.fail("transformer %d is nil", len(m.transformers)+i)
			return m
		}
	}
	m.transformers = append(m.transformers, transformers...)
	return m
}

// Validate appends validators to the field.
func (m *MethodBuilder) Validate(validators ...Validator) *MethodBuilder {
	if !m.requireField("validate") {
		return m
	}
	for i, v := range validators {
		if v == nil {
			m.fail("validator %d is nil", len(m.validators)+i)
			return m
		}
	}
	m.validators = append(m.validators, validators...)
	return m
}

// Adapter adds field level adapters, queried before the container's chain.
// Each call places its adapters in front of those added by earlier calls.
func (m *MethodBuilder) Adapter(adapters ...Adapter) *MethodBuilder {
	if !m.requireField("adapter") {
		return m
	}
	if err := checkAdapters(adapters); err != nil {
		m.errs = append(m.errs, err)
		return m
	}
	m.adapters = append(append([]Adapter{}, adapters...), m.adapters...)
	return m
}

// Option stores an adapter specific setting, read back with Field.Option.
func (m *MethodBuilder) Option(key, value any) *MethodBuilder {
	if m.requireField("option") {
		m.options[key] = value
	}
	return m
}

// With applies reusable modifiers in order.
func (m *MethodBuilder) With(mods ...Modifier) *MethodBuilder {
	for _, mod := range mods {
		if mod == nil {
			m.fail("modifier is nil")
			continue
		}
		mod(m)
	}
	return m
}

func (m *MethodBuilder) requireField(modifier string) bool {
	if m.hasField {
		return true
	}
	m.fail("%s modifier applied before field", modifier)
	return false
}

func (m *MethodBuilder) fail(format string, args ...any) {
	m.errs = append(m.errs, fmt.Errorf(format, args...))
}

// freeze validates the declaration and produces an immutable descriptor.
func (m *MethodBuilder) freeze(schema string) (*Field, error) {
	errs := m.errs
	if !m.hasField {
		errs = append(errs, errors.New("method has no field modifier"))
	}
	if len(errs) > 0 {
		return nil, &DeclarationError{Schema: schema, Method: m.method, Err: errors.Join(errs...)}
	}

	options := make(map[any]any, len(m.options))
	for k, v := range m.options {
		options[k] = v
	}

	return &Field{
		name:         m.name,
		method:       m.method,
		optional:     m.optional,
		provider:     m.provider,
		transformers: append([]Transformer(nil), m.transformers...),
		validators:   append([]Validator(nil), m.validators...),
		adapters:     append(Chain(nil), m.adapters...),
		options:      options,
	}, nil
}

// Field is the immutable descriptor of one declared configuration field.
type Field struct {
	name         string
	method       string
	optional     bool
	provider     Provider
	transformers []Transformer
	validators   []Validator
	adapters     Chain
	options      map[any]any
}

// Name returns the name looked up in adapters.
func (f *Field) Name() string { return f.name }

// Method returns the declaring method name.
func (f *Field) Method() string { return f.method }

// IsOptional reports whether the field may resolve to nil.
func (f *Field) IsOptional() bool { return f.optional }

// Default invokes the provider.
func (f *Field) Default(args ...any) any {
	return f.provider(args...)
}

// Option returns an adapter specific setting stored with MethodBuilder.Option.
func (f *Field) Option(key any) (any, bool) {
	v, ok := f.options[key]
	return v, ok
}

// Transformers returns a copy of the transformer chain.
func (f *Field) Transformers() []Transformer {
	return append([]Transformer(nil), f.transformers...)
}

// Validators returns a copy of the validator chain.
func (f *Field) Validators() []Validator {
	return append([]Validator(nil), f.validators...)
}

// Adapters returns a copy of the field level adapters.
func (f *Field) Adapters() Chain {
	return append(Chain(nil), f.adapters...)
}

// Resolve runs the full pipeline against the field adapters followed by bound:
// adapter chain, provider fallback, optional/required check, transformers,
// validators. It returns the value and the name of the source that supplied it.
func (f *Field) Resolve(bound Chain, args ...any) (any, string, error) {
	chain := bound
	if len(f.adapters) > 0 {
		chain = append(append(Chain(nil), f.adapters...), bound...)
	}

	raw, source, err := chain.Resolve(f, args...)
	if err != nil {
		return nil, "", err
	}

	if raw == nil {
		if f.optional {
			return nil, source, nil
		}
		return nil, source, &MissingFieldError{Field: f.name}
	}

	val, err := f.transform(raw)
	if err != nil {
		return nil, source, err
	}

	if err := f.validate(val); err != nil {
		return nil, source, err
	}

	return val, source, nil
}

func (f *Field) transform(val any) (any, error) {
	for _, t := range f.transformers {
		out, err := t(val)
		if err != nil {
			// The error may be shared, fill in the field on a copy.
			if te, ok := err.(*TransformError); ok {
				named := *te
				if named.Field == "" {
					named.Field = f.name
				}
				return nil, &named
			}
			var te *TransformError
			if errors.As(err, &te) {
				return nil, err
			}
			return nil, &TransformError{Field: f.name, Transformer: "custom", Value: val, Err: err}
		}
		val = out
	}
	return val, nil
}

func (f *Field) validate(val any) error {
	for i, v := range f.validators {
		if err := v(val); err != nil {
			return &ValidationError{Field: f.name, Index: i, Value: val, Err: err}
		}
	}
	return nil
}
