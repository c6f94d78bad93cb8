// File: lixenwraith/deconfig/register.go
package deconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// WithStruct declares one field per exported struct field of defaults.
// The `deconfig` tag names the field ("name" or "name,optional"); without a
// tag the Go field name is used, and "-" skips the field. Nested structs are
// walked with a dotted prefix. The struct field value becomes the default,
// a zero value meaning no default. Every field gets an As transformer to
// its Go type and, when present, a Tag validator from the `validate` tag.
func (b *Builder) WithStruct(defaults any) *Builder {
	v := reflect.ValueOf(defaults)

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			b.setErr(&DeclarationError{Schema: b.name, Err: errors.New("WithStruct requires a non-nil struct pointer or value")})
			return b
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		b.setErr(&DeclarationError{Schema: b.name, Err: fmt.Errorf("WithStruct requires a struct or struct pointer, got %T", defaults)})
		return b
	}

	b.declareFields(v, "", "")
	return b
}

// declareFields handles the recursive walk of a struct value.
func (b *Builder) declareFields(v reflect.Value, namePrefix, methodPrefix string) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" {
			continue
		}

		key := field.Name
		optional := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				key = parts[0]
			}
			for _, opt := range parts[1:] {
				if strings.TrimSpace(opt) == "optional" {
					optional = true
				}
			}
		}

		name := namePrefix + key
		method := methodPrefix + field.Name

		// Nested structs become dotted names, except types decoded as a whole.
		if fieldValue.Kind() == reflect.Struct && !isLeafStruct(field.Type) {
			b.declareFields(fieldValue, name+".", method+".")
			continue
		}

		def := fieldValue.Interface()
		if fieldValue.IsZero() {
			def = nil
		}

		m := Method(method, Default(def)).Field(name).Transform(asType(field.Type))
		if optional {
			m.Optional()
		}
		if vt := field.Tag.Get("validate"); vt != "" {
			m.Validate(Tag(vt))
		}
		b.methods = append(b.methods, m)
	}
}

// isLeafStruct reports struct types that the decode hooks handle from a string.
func isLeafStruct(t reflect.Type) bool {
	switch t.PkgPath() + "." + t.Name() {
	case "time.Time", "net/url.URL", "net.IPNet":
		return true
	}
	return false
}
