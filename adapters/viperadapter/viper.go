// FILE: lixenwraith/deconfig/adapters/viperadapter/viper.go

// Package viperadapter exposes a *viper.Viper instance as a deconfig adapter,
// for applications migrating from viper or combining both.
package viperadapter

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/lixenwraith/deconfig"
)

// Adapter resolves fields by their dotted name from a viper instance.
// Keys that viper reports as not set are not found.
type Adapter struct {
	v *viper.Viper
}

// New wraps v. A nil v uses the viper global instance.
func New(v *viper.Viper) *Adapter {
	if v == nil {
		v = viper.GetViper()
	}
	return &Adapter{v: v}
}

// Name implements deconfig.Named.
func (a *Adapter) Name() string { return "viper" }

type keyOption struct{}

// Key overrides the viper key of a field.
func Key(key string) deconfig.Modifier {
	return func(m *deconfig.MethodBuilder) {
		m.Option(keyOption{}, key)
	}
}

// GetField implements deconfig.Adapter.
func (a *Adapter) GetField(name string, field *deconfig.Field, _ ...any) (any, error) {
	key := name
	if v, ok := field.Option(keyOption{}); ok {
		key = v.(string)
	}
	if key == "" {
		return nil, errors.New("empty viper key")
	}
	if !a.v.IsSet(key) {
		return nil, fmt.Errorf("%w: viper key %s not set", deconfig.ErrNotFound, key)
	}
	return a.v.Get(key), nil
}
