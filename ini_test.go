// FILE: lixenwraith/deconfig/ini_test.go
package deconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/deconfig"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIniAdapter(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.ini", "[app]\nPort = 8080\nname: demo\n\n[db]\nhost = db.local\n")
	override := writeFile(t, dir, "override.ini", "[app]\nport = 9090\n")
	missing := filepath.Join(dir, "missing.ini")

	t.Run("Reads Section Options", func(t *testing.T) {
		ini := deconfig.NewIniAdapter("app", deconfig.IniFiles(missing, base))
		cfg := container(t, []deconfig.Adapter{ini},
			deconfig.Method("Port", deconfig.NoDefault()).Field("port").Transform(deconfig.Integer()),
			deconfig.Method("Name", deconfig.NoDefault()).Field("name"),
			deconfig.Method("Debug", deconfig.Default(false)).Field("debug"),
		)

		port, err := deconfig.Get[int](cfg, "port")
		require.NoError(t, err)
		assert.Equal(t, 8080, port)

		name, err := cfg.String("name")
		require.NoError(t, err)
		assert.Equal(t, "demo", name)

		debug, err := cfg.Value("debug")
		require.NoError(t, err)
		assert.Equal(t, false, debug)
	})

	t.Run("Later Files Override Earlier", func(t *testing.T) {
		ini := deconfig.NewIniAdapter("app", deconfig.IniFiles(base, override))
		cfg := container(t, []deconfig.Adapter{ini},
			deconfig.Method("Port", deconfig.NoDefault()).Field("port"),
			deconfig.Method("Name", deconfig.NoDefault()).Field("name"))

		port, err := cfg.String("port")
		require.NoError(t, err)
		assert.Equal(t, "9090", port)

		name, err := cfg.String("name")
		require.NoError(t, err)
		assert.Equal(t, "demo", name)
	})

	t.Run("Missing Section Is Not Found", func(t *testing.T) {
		ini := deconfig.NewIniAdapter("absent", deconfig.IniFiles(base))
		cfg := container(t, []deconfig.Adapter{ini},
			deconfig.Method("Port", deconfig.Default("1")).Field("port"))

		port, err := cfg.String("port")
		require.NoError(t, err)
		assert.Equal(t, "1", port)
	})

	t.Run("Default Section And Dotted Names", func(t *testing.T) {
		nested := writeFile(t, dir, "nested.ini",
			"[DEFAULT]\nd = fromdefault\n\n[server]\nport = 80\n\n[server.http]\nhost = h\n")
		ini := deconfig.NewIniAdapter("server.http", deconfig.IniFiles(nested))
		cfg := container(t, []deconfig.Adapter{ini},
			deconfig.Method("Host", deconfig.NoDefault()).Field("host"),
			deconfig.Method("D", deconfig.NoDefault()).Field("d"),
			deconfig.Method("Port", deconfig.NoDefault()).Field("port"),
		)

		host, err := cfg.String("host")
		require.NoError(t, err)
		assert.Equal(t, "h", host)

		d, err := cfg.String("d")
		require.NoError(t, err)
		assert.Equal(t, "fromdefault", d)

		_, err = cfg.Value("port")
		assert.ErrorIs(t, err, deconfig.ErrMissingRequiredField)
	})

	t.Run("Field Options", func(t *testing.T) {
		ini := deconfig.NewIniAdapter("app", deconfig.IniFiles(base))
		cfg := container(t, []deconfig.Adapter{ini},
			deconfig.Method("DBHost", deconfig.NoDefault()).
				Field("database.host").
				With(deconfig.IniField(deconfig.IniFieldOptions{Section: "db", Option: "host"})),
			deconfig.Method("Port", deconfig.NoDefault()).
				Field("port").
				With(deconfig.IniField(deconfig.IniFieldOptions{Files: []string{override}, OverrideFiles: true})),
		)

		host, err := cfg.String("database.host")
		require.NoError(t, err)
		assert.Equal(t, "db.local", host)

		port, err := cfg.String("port")
		require.NoError(t, err)
		assert.Equal(t, "9090", port)

		field, ok := cfg.Schema().Field("port")
		require.True(t, ok)
		files, err := ini.Files(field)
		require.NoError(t, err)
		assert.Equal(t, []string{override}, files)
	})

	t.Run("Default Files", func(t *testing.T) {
		deconfig.SetDefaultIniFiles(base)
		t.Cleanup(func() { deconfig.SetDefaultIniFiles() })

		ini := deconfig.NewIniAdapter("app", deconfig.IniFiles(override))
		field := schemaField(t, deconfig.Method("Port", deconfig.NoDefault()).Field("port"))
		files, err := ini.Files(field)
		require.NoError(t, err)
		assert.Equal(t, []string{base, override}, files)

		isolated := deconfig.NewIniAdapter("app", deconfig.IniFiles(override), deconfig.IniOverrideFiles())
		files, err = isolated.Files(field)
		require.NoError(t, err)
		assert.Equal(t, []string{override}, files)
	})

	t.Run("Configuration Errors Abort", func(t *testing.T) {
		noSection := deconfig.NewIniAdapter("", deconfig.IniFiles(base))
		noFiles := deconfig.NewIniAdapter("app")

		for _, a := range []deconfig.Adapter{noSection, noFiles} {
			cfg := container(t, []deconfig.Adapter{a},
				deconfig.Method("Port", deconfig.Default("1")).Field("port"))
			_, err := cfg.Value("port")
			var adapterErr *deconfig.AdapterError
			assert.ErrorAs(t, err, &adapterErr)
		}
	})
}

// schemaField builds a one-field schema and returns the frozen descriptor
func schemaField(t *testing.T, m *deconfig.MethodBuilder) *deconfig.Field {
	t.Helper()
	schema, err := deconfig.NewBuilder("field").Method(m).Build()
	require.NoError(t, err)
	fields := schema.Fields()
	require.Len(t, fields, 1)
	return fields[0]
}
