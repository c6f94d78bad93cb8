// FILE: lixenwraith/deconfig/field_test.go
package deconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaration(t *testing.T) {
	build := func(methods ...*MethodBuilder) error {
		_, err := NewBuilder("decl").Method(methods...).Build()
		return err
	}

	t.Run("Modifier Before Field", func(t *testing.T) {
		err := build(Method("Port", NoDefault()).Optional().Field("port"))

		var declErr *DeclarationError
		require.ErrorAs(t, err, &declErr)
		assert.Equal(t, "decl", declErr.Schema)
		assert.Equal(t, "Port", declErr.Method)
		assert.ErrorContains(t, err, "optional modifier applied before field")
	})

	t.Run("Missing Field Modifier", func(t *testing.T) {
		err := build(Method("Port", NoDefault()))
		assert.ErrorContains(t, err, "method has no field modifier")
	})

	t.Run("Field Applied Twice", func(t *testing.T) {
		err := build(Method("Port", NoDefault()).Field("port").Field("other"))
		assert.ErrorContains(t, err, `field modifier applied twice ("port", then "other")`)
	})

	t.Run("Empty Names", func(t *testing.T) {
		assert.ErrorContains(t, build(Method("", NoDefault()).Field("x")), "method name cannot be empty")
		assert.ErrorContains(t, build(Method("X", NoDefault()).Field("")), "field name cannot be empty")
		assert.ErrorContains(t, build(Method("X", nil).Field("x")), "provider cannot be nil")

		_, err := NewBuilder("").Build()
		assert.ErrorContains(t, err, "schema name cannot be empty")
	})

	t.Run("Duplicate Field Name", func(t *testing.T) {
		err := build(
			Method("A", NoDefault()).Field("x"),
			Method("B", NoDefault()).Field("x"),
		)
		assert.ErrorContains(t, err, `field "x" already declared by A`)
	})

	t.Run("Duplicate Method", func(t *testing.T) {
		err := build(
			Method("A", NoDefault()).Field("x"),
			Method("A", NoDefault()).Field("y"),
		)
		assert.ErrorContains(t, err, "method declared twice")
	})

	t.Run("Nil Transformer And Validator", func(t *testing.T) {
		err := build(Method("A", NoDefault()).Field("a").Transform(Integer(), TransformFunc(nil)))
		assert.ErrorContains(t, err, "transformer 1 is nil")

		err = build(Method("B", NoDefault()).Field("b").Validate(ValidateFunc(nil)))
		assert.ErrorContains(t, err, "validator 0 is nil")

		err = build(Method("C", NoDefault()).Field("c").With(nil))
		assert.ErrorContains(t, err, "modifier is nil")
	})

	t.Run("All Problems Reported Together", func(t *testing.T) {
		err := build(
			Method("A", NoDefault()),
			Method("B", NoDefault()).Transform(Integer()).Field("b"),
		)
		assert.ErrorContains(t, err, "method has no field modifier")
		assert.ErrorContains(t, err, "transform modifier applied before field")
	})

	t.Run("Must Build Panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder("panic").Method(Method("A", NoDefault())).MustBuild()
		})
	})
}

func TestFieldDescriptor(t *testing.T) {
	first := NewMapAdapter(nil)
	second := NewMapAdapter(nil)

	schema, err := NewBuilder("desc").
		Method(
			Method("Port", Default(8080)).
				Field("server.port").
				Transform(Integer()).
				Transform(Int64()).
				Validate(InRange[int64](1, 65535)).
				Adapter(first).
				Adapter(second).
				Option("k", "v"),
			Method("Name", NoDefault()).Field("name").Optional().Required(),
		).
		Build()
	require.NoError(t, err)

	port, ok := schema.Field("server.port")
	require.True(t, ok)

	assert.Equal(t, "server.port", port.Name())
	assert.Equal(t, "Port", port.Method())
	assert.False(t, port.IsOptional())
	assert.Equal(t, 8080, port.Default())
	assert.Len(t, port.Transformers(), 2)
	assert.Len(t, port.Validators(), 1)

	// Later Adapter calls are queried first.
	adapters := port.Adapters()
	require.Len(t, adapters, 2)
	assert.Same(t, second, adapters[0])
	assert.Same(t, first, adapters[1])

	v, ok := port.Option("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	name, ok := schema.Field("name")
	require.True(t, ok)
	assert.False(t, name.IsOptional())

	fields := schema.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "server.port", fields[0].Name())

	t.Run("Resolve Runs Transformers In Order", func(t *testing.T) {
		val, source, err := port.Resolve(Chain{NewMapAdapter(map[string]any{"server.port": "443"})})
		require.NoError(t, err)
		assert.Equal(t, "map", source)
		assert.Equal(t, int64(443), val)
	})

	t.Run("Default Source", func(t *testing.T) {
		val, source, err := port.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, SourceDefault, source)
		assert.Equal(t, int64(8080), val)
	})
}
