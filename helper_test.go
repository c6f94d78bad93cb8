// FILE: lixenwraith/deconfig/helper_test.go
package deconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPath(t *testing.T) {
	doc := map[string]any{
		"server": map[string]any{
			"port": 8080,
			"tls":  map[any]any{"enabled": true},
		},
		"db.host": "flat",
	}

	tests := []struct {
		path  string
		want  any
		found bool
	}{
		{"server.port", 8080, true},
		{"server.tls.enabled", true, true},
		{"db.host", "flat", true},
		{"server.missing", nil, false},
		{"server.port.deeper", nil, false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := lookupPath(doc, tt.path)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNestedMaps(t *testing.T) {
	nested := make(map[string]any)
	setNestedValue(nested, "server.host", "localhost")
	setNestedValue(nested, "server.port", 8080)
	setNestedValue(nested, "debug", true)

	assert.Equal(t, map[string]any{
		"server": map[string]any{"host": "localhost", "port": 8080},
		"debug":  true,
	}, nested)

	assert.Equal(t, map[string]any{
		"server.host": "localhost",
		"server.port": 8080,
		"debug":       true,
	}, flattenMap(nested, ""))
}

func TestInsertNestedValue(t *testing.T) {
	nested := make(map[string]any)
	require.NoError(t, insertNestedValue(nested, "server.host", "localhost"))
	require.NoError(t, insertNestedValue(nested, "server.port", 8080))

	assert.Error(t, insertNestedValue(nested, "server", "flat"))
	assert.Error(t, insertNestedValue(nested, "server.port.tls", true))
	assert.Error(t, insertNestedValue(nested, "server.host", "again"))
	assert.Equal(t, map[string]any{
		"server": map[string]any{"host": "localhost", "port": 8080},
	}, nested)
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]string{
		"a.toml":   FormatTOML,
		"a.TML":    FormatTOML,
		"a.json":   FormatJSON,
		"a.yml":    FormatYAML,
		"a.yaml":   FormatYAML,
		"a.conf":   "",
		"noextens": "",
	} {
		assert.Equal(t, want, detectFileFormat(path), path)
	}

	assert.Equal(t, FormatJSON, detectFormatFromContent([]byte(`{"a": 1}`)))
	assert.Equal(t, FormatTOML, detectFormatFromContent([]byte("a = 1\n")))
	assert.Equal(t, FormatYAML, detectFormatFromContent([]byte("a: 1\nb:\n  c: 2\n")))
}

func TestParseArgs(t *testing.T) {
	t.Run("Forms", func(t *testing.T) {
		parsed, err := parseArgs([]string{
			"--server.port=9090",
			"--debug",
			"--name", "svc",
			"positional",
			"--",
			"--tags", "a,b",
			"--empty=",
			"--=ignored",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"server": map[string]any{"port": "9090"},
			"debug":  "true",
			"name":   "svc",
			"tags":   "a,b",
			"empty":  "",
		}, parsed)
	})

	t.Run("Invalid Keys", func(t *testing.T) {
		for _, arg := range []string{"--1bad=x", "--a..b=x", "--a b=x"} {
			_, err := parseArgs([]string{arg})
			assert.Error(t, err, arg)
		}
	})

	t.Run("Key Segments", func(t *testing.T) {
		assert.True(t, isValidKeySegment("server"))
		assert.True(t, isValidKeySegment("_private"))
		assert.True(t, isValidKeySegment("log-level"))
		assert.True(t, isValidKeySegment("v2"))
		assert.False(t, isValidKeySegment("2fa"))
		assert.False(t, isValidKeySegment(""))
		assert.False(t, isValidKeySegment("a/b"))
	})
}
