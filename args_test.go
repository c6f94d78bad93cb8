// FILE: lixenwraith/deconfig/args_test.go
package deconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deconfig"
)

func TestArgsAdapter(t *testing.T) {
	args, err := deconfig.NewArgsAdapter([]string{"--server.port=9090", "--verbose", "--listen", ":80"})
	require.NoError(t, err)

	cfg := container(t, []deconfig.Adapter{args, deconfig.NewEnvAdapter("ARGSTEST_")},
		deconfig.Method("Port", deconfig.Default(8080)).Field("server.port").Transform(deconfig.Integer()),
		deconfig.Method("Verbose", deconfig.Default(false)).Field("verbose").Transform(deconfig.Boolean()),
		deconfig.Method("Addr", deconfig.NoDefault()).Field("server.addr").With(deconfig.FlagName("listen")),
		deconfig.Method("Host", deconfig.Default("localhost")).Field("server.host"),
	)

	t.Run("Key Value Forms", func(t *testing.T) {
		port, err := deconfig.Get[int](cfg, "server.port")
		require.NoError(t, err)
		assert.Equal(t, 9090, port)

		verbose, err := deconfig.Get[bool](cfg, "verbose")
		require.NoError(t, err)
		assert.True(t, verbose)
	})

	t.Run("Flag Name Override", func(t *testing.T) {
		addr, err := cfg.String("server.addr")
		require.NoError(t, err)
		assert.Equal(t, ":80", addr)
	})

	t.Run("Falls Through To Next Adapter", func(t *testing.T) {
		t.Setenv("ARGSTEST_SERVER_HOST", "env-host")
		host, err := cfg.String("server.host")
		require.NoError(t, err)
		assert.Equal(t, "env-host", host)
	})

	t.Run("Invalid Arguments", func(t *testing.T) {
		_, err := deconfig.NewArgsAdapter([]string{"--9lives=x"})
		assert.ErrorContains(t, err, "invalid command-line key segment")
	})
}

func TestMapAdapter(t *testing.T) {
	m := deconfig.NewMapAdapter(map[string]any{
		"db":      map[string]any{"host": "db.local", "port": 5432},
		"feature": true,
	})

	cfg := container(t, []deconfig.Adapter{m},
		deconfig.Method("Host", deconfig.NoDefault()).Field("db.host"),
		deconfig.Method("Port", deconfig.NoDefault()).Field("db.port"),
		deconfig.Method("Feature", deconfig.NoDefault()).Field("feature"),
		deconfig.Method("User", deconfig.NoDefault()).Field("db.user").Optional(),
	)

	snapshot, err := cfg.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"db":      map[string]any{"host": "db.local", "port": 5432},
		"feature": true,
	}, snapshot)
}
