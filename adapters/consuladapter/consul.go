// FILE: lixenwraith/deconfig/adapters/consuladapter/consul.go

// Package consuladapter resolves deconfig fields from Consul's key-value store.
package consuladapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/consul/api"

	"github.com/lixenwraith/deconfig"
)

// KV is the subset of *api.KV used by the adapter, so tests can provide a mock.
type KV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// Option configures an Adapter.
type Option func(a *Adapter)

// WithTimeout bounds every KV request. The default is 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// Adapter reads one key per field. The key is the prefix followed by the
// field name with dots replaced by slashes, so "db.host" under prefix
// "myapp/" is read from "myapp/db/host". Values are returned as strings.
type Adapter struct {
	kv      KV
	prefix  string
	timeout time.Duration
}

// New creates a Consul adapter. With a nil kv a client is created from the
// CONSUL_HTTP_* environment variables.
func New(prefix string, kv KV, opts ...Option) (*Adapter, error) {
	if kv == nil {
		client, err := api.NewClient(api.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create consul client: %w", err)
		}
		kv = client.KV()
	}
	a := &Adapter{kv: kv, prefix: prefix, timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name implements deconfig.Named.
func (a *Adapter) Name() string { return "consul" }

type keyOption struct{}

// Key overrides the full Consul key of a field. The prefix is not applied.
func Key(key string) deconfig.Modifier {
	return func(m *deconfig.MethodBuilder) {
		m.Option(keyOption{}, key)
	}
}

// KeyFor returns the Consul key read for field.
func (a *Adapter) KeyFor(field *deconfig.Field) string {
	return a.key(field.Name(), field)
}

func (a *Adapter) key(name string, field *deconfig.Field) string {
	if v, ok := field.Option(keyOption{}); ok {
		return v.(string)
	}
	return a.prefix + strings.ReplaceAll(name, ".", "/")
}

// GetField implements deconfig.Adapter.
func (a *Adapter) GetField(name string, field *deconfig.Field, _ ...any) (any, error) {
	key := a.key(name, field)

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	pair, _, err := a.kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get consul key %s: %w", key, err)
	}
	if pair == nil {
		return nil, fmt.Errorf("%w: consul key %s not present", deconfig.ErrNotFound, key)
	}
	return string(pair.Value), nil
}
