// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package document provides a format agnostic, insertion ordered
// representation of a parsed configuration file.
package document

import (
	"slices"

	"github.com/spf13/cast"
)

// Document is an insertion ordered mapping from string keys to
// configuration values. Values are normalized to a closed vocabulary:
// string, int64, float64, bool, nil, []any and nested *Document.
type Document struct {
	keys   []string
	values map[string]any
}

// New returns an empty Document.
func New() *Document {
	return &Document{
		values: make(map[string]any),
	}
}

// FromMap constructs a Document from a plain map. Keys are inserted
// in lexical order since the map itself carries no ordering.
func FromMap(m map[string]any) *Document {
	d := New()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		d.Set(k, m[k])
	}
	return d
}

// Set stores the value under the given key, normalizing it into the
// document value vocabulary. The first Set of a key fixes its position
// in the key order; later Sets overwrite the value in place.
func (d *Document) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = normalize(value)
}

// Get returns the value stored under the given key and whether the
// key is present.
func (d *Document) Get(key string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether the key is present.
func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Map returns the document as a plain nested map, losing key order.
func (d *Document) Map() map[string]any {
	if d == nil {
		return nil
	}
	m := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		m[k] = plain(d.values[k])
	}
	return m
}

// String returns the value under key coerced to a string.
func (d *Document) String(key string) string {
	v, _ := d.Get(key)
	return cast.ToString(v)
}

// Bool returns the value under key coerced to a bool.
func (d *Document) Bool(key string) bool {
	v, _ := d.Get(key)
	return cast.ToBool(v)
}

// Int returns the value under key coerced to an int64.
func (d *Document) Int(key string) int64 {
	v, _ := d.Get(key)
	return cast.ToInt64(v)
}

// Float returns the value under key coerced to a float64.
func (d *Document) Float(key string) float64 {
	v, _ := d.Get(key)
	return cast.ToFloat64(v)
}

// StringSlice returns the value under key coerced to a []string.
func (d *Document) StringSlice(key string) []string {
	v, _ := d.Get(key)
	return cast.ToStringSlice(v)
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string, bool, int64, float64, *Document:
		return t
	case int, int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt64(t)
	case float32:
		return float64(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	case map[string]any:
		return FromMap(t)
	}
	return v
}

func plain(v any) any {
	switch t := v.(type) {
	case *Document:
		return t.Map()
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = plain(t[i])
		}
		return out
	}
	return v
}
