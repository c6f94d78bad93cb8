// FILE: lixenwraith/deconfig/map.go
package deconfig

// MapAdapter resolves fields from an in-memory map. Nested maps are
// flattened to dotted keys when the adapter is created.
type MapAdapter struct {
	values map[string]any
}

// NewMapAdapter copies values into a new adapter.
func NewMapAdapter(values map[string]any) *MapAdapter {
	return &MapAdapter{values: flattenMap(values, "")}
}

// Name implements Named.
func (m *MapAdapter) Name() string { return "map" }

// GetField implements Adapter.
func (m *MapAdapter) GetField(name string, _ *Field, _ ...any) (any, error) {
	value, ok := m.values[name]
	if !ok {
		return nil, notFoundf("key %s not in map", name)
	}
	return value, nil
}
