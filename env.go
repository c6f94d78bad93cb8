// FILE: lixenwraith/deconfig/env.go
package deconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvTransformFunc converts a field name to an environment variable name,
// without the adapter prefix.
type EnvTransformFunc func(name string) string

// EnvOption configures EnvAdapter and DotenvAdapter naming.
type EnvOption func(n *envNaming)

// EnvTransform replaces the default name transformation
// (dots and dashes to underscores, upper case).
func EnvTransform(fn EnvTransformFunc) EnvOption {
	return func(n *envNaming) {
		if fn != nil {
			n.transform = fn
		}
	}
}

type envFieldKey struct{}

type envFieldOptions struct {
	name         string
	ignorePrefix bool
}

// EnvName overrides the variable name of a field for environment based
// adapters. With ignorePrefix the adapter prefix is not prepended.
func EnvName(name string, ignorePrefix bool) Modifier {
	return func(m *MethodBuilder) {
		m.Option(envFieldKey{}, envFieldOptions{name: name, ignorePrefix: ignorePrefix})
	}
}

type envNaming struct {
	prefix    string
	transform EnvTransformFunc
}

func newEnvNaming(prefix string, opts []EnvOption) envNaming {
	n := envNaming{prefix: prefix, transform: defaultEnvTransform}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// variable returns the environment variable name for a field
func (n envNaming) variable(name string, field *Field) string {
	prefix := n.prefix
	key := n.transform(name)
	if v, ok := field.Option(envFieldKey{}); ok {
		o := v.(envFieldOptions)
		if o.name != "" {
			key = o.name
		}
		if o.ignorePrefix {
			prefix = ""
		}
	}
	return prefix + key
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// defaultEnvTransform maps "server.port" to "SERVER_PORT"
func defaultEnvTransform(name string) string {
	return strings.ToUpper(envReplacer.Replace(name))
}

// EnvAdapter resolves fields from process environment variables.
// With prefix "MYAPP_" the field "server.port" is read from MYAPP_SERVER_PORT.
// Only unset variables count as missing; an empty value is a value.
type EnvAdapter struct {
	naming envNaming
}

// NewEnvAdapter creates an environment adapter.
func NewEnvAdapter(prefix string, opts ...EnvOption) *EnvAdapter {
	return &EnvAdapter{naming: newEnvNaming(prefix, opts)}
}

// Name implements Named.
func (e *EnvAdapter) Name() string { return "env" }

// Variable returns the environment variable consulted for field.
func (e *EnvAdapter) Variable(field *Field) string {
	return e.naming.variable(field.Name(), field)
}

// GetField implements Adapter.
func (e *EnvAdapter) GetField(name string, field *Field, _ ...any) (any, error) {
	env := e.naming.variable(name, field)
	value, exists := os.LookupEnv(env)
	if !exists {
		return nil, notFoundf("environment variable %s not set", env)
	}
	return value, nil
}

// DotenvAdapter resolves fields from .env files with the same naming rules
// as EnvAdapter. Files are parsed on every access; missing files are skipped
// and later files take precedence over earlier ones.
type DotenvAdapter struct {
	naming envNaming
	files  []string
}

// NewDotenvAdapter creates an adapter over the given .env files.
func NewDotenvAdapter(prefix string, files []string, opts ...EnvOption) *DotenvAdapter {
	return &DotenvAdapter{
		naming: newEnvNaming(prefix, opts),
		files:  append([]string(nil), files...),
	}
}

// Name implements Named.
func (d *DotenvAdapter) Name() string { return "dotenv" }

// GetField implements Adapter.
func (d *DotenvAdapter) GetField(name string, field *Field, _ ...any) (any, error) {
	if len(d.files) == 0 {
		return nil, errors.New("no .env files configured")
	}

	env := d.naming.variable(name, field)
	var (
		value string
		found bool
	)
	for _, path := range d.files {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to parse env file '%s': %w", path, err)
		}
		if v, ok := values[env]; ok {
			value, found = v, true
		}
	}

	if !found {
		return nil, notFoundf("%s not set in %v", env, d.files)
	}
	return value, nil
}
