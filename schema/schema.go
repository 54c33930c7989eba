// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package schema describes the shape of a configuration value as an
// ordered collection of field descriptors.
package schema

import (
	"fmt"
	"slices"
)

// Kind identifies the declared type of a field. It is only used to
// render human readable placeholders when generating default documents.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindList   Kind = "list"
	KindObject Kind = "object"
)

// Field describes a single configurable field: the serialized key it
// is read from and written to, an optional default, whether it must be
// present in a source document, and placeholder text for generated
// default documents.
type Field struct {
	name        string
	key         string
	kind        Kind
	def         any
	hasDefault  bool
	required    bool
	placeholder string
	description string
}

// FieldOption represents options for configuring a Field.
type FieldOption func(*Field)

// Key overrides the serialized key of the field. By default the
// serialized key equals the field name.
func Key(key string) FieldOption {
	return func(f *Field) {
		f.key = key
	}
}

// Default sets the value used when a source document does not provide
// one for the field. Zero values are valid defaults.
func Default(v any) FieldOption {
	return func(f *Field) {
		f.def = v
		f.hasDefault = true
	}
}

// Required marks the field as mandatory in source documents.
func Required() FieldOption {
	return func(f *Field) {
		f.required = true
	}
}

// Placeholder sets the text written for the field when generating a
// default document and the field is required without a default.
func Placeholder(text string) FieldOption {
	return func(f *Field) {
		f.placeholder = text
	}
}

// Description attaches free form documentation to the field.
func Description(text string) FieldOption {
	return func(f *Field) {
		f.description = text
	}
}

// String declares a string field.
func String(name string, opts ...FieldOption) Field {
	return newField(name, KindString, opts)
}

// Bool declares a boolean field.
func Bool(name string, opts ...FieldOption) Field {
	return newField(name, KindBool, opts)
}

// Int declares an integer field.
func Int(name string, opts ...FieldOption) Field {
	return newField(name, KindInt, opts)
}

// Float declares a floating point field.
func Float(name string, opts ...FieldOption) Field {
	return newField(name, KindFloat, opts)
}

// List declares a sequence field.
func List(name string, opts ...FieldOption) Field {
	return newField(name, KindList, opts)
}

// Object declares a nested mapping field.
func Object(name string, opts ...FieldOption) Field {
	return newField(name, KindObject, opts)
}

func newField(name string, kind Kind, opts []FieldOption) Field {
	f := Field{
		name: name,
		key:  name,
		kind: kind,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Name returns the source identifier of the field.
func (f Field) Name() string {
	return f.name
}

// Key returns the serialized key of the field.
func (f Field) Key() string {
	return f.key
}

// Kind returns the declared type tag of the field.
func (f Field) Kind() Kind {
	return f.kind
}

// Default returns the default value of the field and whether one was set.
func (f Field) Default() (any, bool) {
	return f.def, f.hasDefault
}

// Required reports whether the field must be present in source documents.
func (f Field) Required() bool {
	return f.required
}

// Placeholder returns the placeholder text of the field.
func (f Field) Placeholder() string {
	return f.placeholder
}

// Description returns the documentation attached to the field.
func (f Field) Description() string {
	return f.description
}

// DuplicateKeyError occurs when two fields of the same schema declare
// the same serialized key.
type DuplicateKeyError struct {
	Key string
}

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate serialized key: %s", e.Key)
}

// Schema is an ordered, immutable collection of field descriptors.
// Definition order is preserved and determines key order when a
// value is serialized back into a document.
type Schema struct {
	fields []Field
}

// New constructs a Schema from the given fields. It fails with a
// DuplicateKeyError if two fields declare the same serialized key.
func New(fields ...Field) (*Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.key]; ok {
			return nil, DuplicateKeyError{Key: f.key}
		}
		seen[f.key] = struct{}{}
	}
	return &Schema{fields: slices.Clone(fields)}, nil
}

// Fields returns the field descriptors in definition order. A nil
// Schema has zero fields.
func (s *Schema) Fields() []Field {
	if s == nil {
		return nil
	}
	return slices.Clone(s.fields)
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}
