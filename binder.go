// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confbind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/z5labs/confbind/document"
	"github.com/z5labs/confbind/schema"

	"github.com/go-viper/mapstructure/v2"
)

// tagName is the struct tag consulted when matching schema keys to
// struct fields. Fields without the tag match by name, case insensitively.
const tagName = "config"

// Binder translates between documents and typed configuration values,
// using a [schema.Schema] as the mapping.
type Binder struct {
	schema *schema.Schema

	legacyZero bool
}

// BinderOption represents options for configuring a Binder.
type BinderOption func(*Binder)

// LegacyZeroOverride configures the binder to treat document values
// that are present but zero (empty string, false, 0, empty sequence or
// mapping, null) as absent, so the field default applies instead. The
// default behavior is strict key presence: a present zero value is
// kept as-is.
func LegacyZeroOverride() BinderOption {
	return func(b *Binder) {
		b.legacyZero = true
	}
}

// NewBinder returns a Binder over the given schema.
func NewBinder(s *schema.Schema, opts ...BinderOption) *Binder {
	b := &Binder{
		schema: s,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind populates v from the given document. v must be a non-nil
// pointer, typically to a struct.
//
// Every required field whose serialized key is absent from doc is
// collected before Bind fails with a [ValidationError] carrying the
// complete list. For the remaining fields the document value is used
// if its key is present, else the field default, else the field is
// left untouched on v.
func (b *Binder) Bind(doc *document.Document, v any) error {
	err := checkTarget(v)
	if err != nil {
		return err
	}

	var missing []string
	for _, f := range b.schema.Fields() {
		if f.Required() && !doc.Has(f.Key()) {
			missing = append(missing, f.Key())
		}
	}
	if len(missing) > 0 {
		return ValidationError{Missing: missing}
	}

	// values is keyed by field name so mapstructure can match it
	// against the config tag or struct field name. The serialized
	// key only identifies the field within the document.
	src := doc.Map()
	values := make(map[string]any, b.schema.Len())
	for _, f := range b.schema.Fields() {
		present := doc.Has(f.Key())
		if present && b.legacyZero {
			val, _ := doc.Get(f.Key())
			present = !isZeroValue(val)
		}
		if present {
			values[f.Name()] = src[f.Key()]
			continue
		}

		def, ok := f.Default()
		if ok {
			values[f.Name()] = def
		}
	}
	return decode(values, v)
}

// Serialize reads each schema field off of v and writes it under its
// serialized key into a fresh document, in schema order. No validation
// is performed: an instance missing a required field still serializes,
// producing a document without that key.
func (b *Binder) Serialize(v any) (*document.Document, error) {
	m, err := encode(v)
	if err != nil {
		return nil, err
	}

	doc := document.New()
	for _, f := range b.schema.Fields() {
		val, ok := lookupFold(m, f.Name())
		if !ok {
			continue
		}
		doc.Set(f.Key(), val)
	}
	return doc, nil
}

// Defaults builds a document suitable for scaffolding a new config
// file a user can hand edit. Each field contributes its default if one
// is set. A required field without a default contributes its
// placeholder text, or a generated placeholder naming its declared
// type. All other fields are omitted.
func (b *Binder) Defaults() *document.Document {
	doc := document.New()
	for _, f := range b.schema.Fields() {
		def, ok := f.Default()
		if ok {
			doc.Set(f.Key(), def)
			continue
		}
		if !f.Required() {
			continue
		}

		placeholder := f.Placeholder()
		if placeholder == "" {
			placeholder = fmt.Sprintf("REQUIRED FIELD (%s)", f.Kind())
		}
		doc.Set(f.Key(), placeholder)
	}
	return doc
}

// Valid reports whether every schema field is present on v, matched
// by field name the same way Bind assigns them.
func (b *Binder) Valid(v any) bool {
	m, err := encode(v)
	if err != nil {
		return false
	}

	valid := true
	for _, f := range b.schema.Fields() {
		_, ok := lookupFold(m, f.Name())
		valid = valid && ok
	}
	return valid
}

func checkTarget(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ConstructionError{
			Cause: fmt.Errorf("target must be a non-nil pointer, got %T", v),
		}
	}
	return nil
}

func decode(values map[string]any, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: tagName,
		Result:  v,
	})
	if err != nil {
		return ConstructionError{Cause: err}
	}

	err = dec.Decode(values)
	if err != nil {
		return ConstructionError{Cause: err}
	}
	return nil
}

func encode(v any) (map[string]any, error) {
	m := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: tagName,
		Result:  &m,
	})
	if err != nil {
		return nil, ConstructionError{Cause: err}
	}

	err = dec.Decode(v)
	if err != nil {
		return nil, ConstructionError{Cause: err}
	}
	return m, nil
}

// lookupFold matches keys the same way mapstructure does when
// decoding: exact match first, then case insensitively.
func lookupFold(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func isZeroValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int64:
		return t == 0
	case float64:
		return t == 0
	case []any:
		return len(t) == 0
	case *document.Document:
		return t.Len() == 0
	}
	return false
}
