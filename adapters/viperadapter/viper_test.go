// FILE: lixenwraith/deconfig/adapters/viperadapter/viper_test.go
package viperadapter

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deconfig"
)

func TestViperAdapter(t *testing.T) {
	v := viper.New()
	v.Set("server.port", 9090)
	v.Set("legacy_name", "old")

	schema, err := deconfig.NewBuilder("viper").
		WithAdapters(New(v)).
		Method(
			deconfig.Method("Port", deconfig.Default(8080)).Field("server.port").Transform(deconfig.Integer()),
			deconfig.Method("Host", deconfig.Default("localhost")).Field("server.host"),
			deconfig.Method("Name", deconfig.NoDefault()).Field("name").With(Key("legacy_name")),
		).
		Build()
	require.NoError(t, err)
	cfg := schema.New()

	t.Run("Set Key", func(t *testing.T) {
		port, err := deconfig.Get[int](cfg, "server.port")
		require.NoError(t, err)
		assert.Equal(t, 9090, port)
	})

	t.Run("Unset Key Uses Default", func(t *testing.T) {
		host, err := deconfig.Get[string](cfg, "server.host")
		require.NoError(t, err)
		assert.Equal(t, "localhost", host)
	})

	t.Run("Key Override", func(t *testing.T) {
		name, err := deconfig.Get[string](cfg, "name")
		require.NoError(t, err)
		assert.Equal(t, "old", name)
	})

	t.Run("Viper Changes Are Visible", func(t *testing.T) {
		v.Set("server.host", "example.com")
		host, err := deconfig.Get[string](cfg, "server.host")
		require.NoError(t, err)
		assert.Equal(t, "example.com", host)
	})
}
