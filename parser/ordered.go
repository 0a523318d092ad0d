package parser

import "iter"

// OrderedMap is a string-keyed map that remembers insertion order.
//
// Swagger documents are diagrammed in source order, so definitions,
// properties, paths and responses are all stored in an OrderedMap rather
// than a Go map. A nil *OrderedMap behaves like an empty map for every
// read method.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set stores value under key. A new key is appended to the order; an
// existing key keeps its position and has its value replaced.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetIfAbsent stores value under key only when key is not present yet.
// It reports whether the value was stored.
func (m *OrderedMap[V]) SetIfAbsent(key string, value V) bool {
	if m.Has(key) {
		return false
	}
	m.Set(key, value)
	return true
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy that can be extended without affecting m.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	out := NewOrderedMap[V]()
	for k, v := range m.All() {
		out.Set(k, v)
	}
	return out
}
