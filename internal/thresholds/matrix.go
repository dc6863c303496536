package thresholds

import "crudeval/internal/canon"

// Key addresses one threshold by canonical property and canonical cut.
type Key struct {
	Property string
	Cut      string
}

// Entry is one stored threshold.
type Entry struct {
	Key
	Value float64
}

// Matrix is the immutable threshold lookup. The zero value and nil are empty
// matrices.
type Matrix struct {
	values map[Key]float64
	order  []Key
	props  map[string]struct{}
}

// NewMatrix copies entries into a Matrix, keeping the maximum per key.
// Non-positive values are ignored.
func NewMatrix(entries ...Entry) *Matrix {
	m := &Matrix{
		values: make(map[Key]float64, len(entries)),
		props:  make(map[string]struct{}),
	}
	for _, e := range entries {
		m.raise(e.Key, e.Value)
	}
	return m
}

func (m *Matrix) raise(key Key, value float64) bool {
	if value <= 0 {
		return false
	}
	existing, ok := m.values[key]
	if !ok {
		m.order = append(m.order, key)
		m.props[key.Property] = struct{}{}
	}
	if !ok || value > existing {
		m.values[key] = value
	}
	return true
}

// Lookup resolves the threshold for (prop, cut): the exact key first, then
// the property's base alias.
func (m *Matrix) Lookup(prop, cut string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	if v, ok := m.values[Key{Property: prop, Cut: cut}]; ok {
		return v, true
	}
	if base, ok := canon.BaseAlias(prop); ok {
		if v, ok := m.values[Key{Property: base, Cut: cut}]; ok {
			return v, true
		}
	}
	return 0, false
}

// HasProperty reports whether any cut carries a threshold for prop, directly
// or through its base alias.
func (m *Matrix) HasProperty(prop string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.props[prop]; ok {
		return true
	}
	if base, ok := canon.BaseAlias(prop); ok {
		_, ok = m.props[base]
		return ok
	}
	return false
}

// Len returns the number of stored keys.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.values)
}

// Entries returns every threshold in insertion order.
func (m *Matrix) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, Entry{Key: key, Value: m.values[key]})
	}
	return out
}

// Properties returns the canonical properties in first-seen order.
func (m *Matrix) Properties() []string {
	return m.distinct(func(k Key) string { return k.Property })
}

// Cuts returns the canonical cuts in first-seen order.
func (m *Matrix) Cuts() []string {
	return m.distinct(func(k Key) string { return k.Cut })
}

func (m *Matrix) distinct(field func(Key) string) []string {
	if m == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, key := range m.order {
		v := field(key)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
