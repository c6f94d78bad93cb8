// File: lixenwraith/deconfig/convenience.go
package deconfig

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// MustNew builds a schema from the builder and instantiates it, panicking on
// declaration errors. Useful for package-level configuration variables.
func MustNew(b *Builder, opts ...Option) *Container {
	return b.MustBuild().New(opts...)
}

// Check resolves every field once and reports all failures together.
// It is the eager counterpart of lazy access, typically called at start-up.
func (c *Container) Check() error {
	var errs []error
	for _, f := range c.schema.fields {
		if _, _, err := c.resolve(f.name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Snapshot resolves every field into a nested map keyed by the dotted field
// names. Optional fields without a value are left out. A field whose name is
// a dotted prefix of another field's name cannot be represented and is
// reported as an error.
func (c *Container) Snapshot() (map[string]any, error) {
	nested := make(map[string]any)
	var errs []error

	for _, f := range c.schema.fields {
		val, _, err := c.resolve(f.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if val == nil {
			continue
		}
		if err := insertNestedValue(nested, f.name, val); err != nil {
			errs = append(errs, fmt.Errorf("deconfig: field %q: %w", f.name, err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nested, nil
}

// Debug returns a formatted string showing every field, its value and the
// source that supplied it.
func (c *Container) Debug() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Schema %s:\n", c.schema.name))

	if chain, binding, err := c.chain(); err != nil {
		b.WriteString(fmt.Sprintf("Adapters: %v\n", err))
	} else {
		names := make([]string, len(chain))
		for i, a := range chain {
			names[i] = AdapterName(a)
		}
		b.WriteString(fmt.Sprintf("Adapters (%s): %s\n", binding, strings.Join(names, ", ")))
	}

	b.WriteString("Fields:\n")
	for _, f := range c.schema.fields {
		b.WriteString(fmt.Sprintf("  %s (%s):\n", f.name, f.method))
		val, source, err := c.resolve(f.name)
		if err != nil {
			b.WriteString(fmt.Sprintf("    Error: %v\n", err))
			continue
		}
		b.WriteString(fmt.Sprintf("    Value: %v\n", val))
		b.WriteString(fmt.Sprintf("    Source: %s\n", source))
	}

	return b.String()
}

// Dump writes the resolved configuration to w in TOML format
func (c *Container) Dump(w io.Writer) error {
	nested, err := c.Snapshot()
	if err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(nested)
}
