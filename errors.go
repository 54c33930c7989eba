// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confbind

import (
	"fmt"
	"log/slog"
	"strings"
)

// FileNotFoundError occurs when reading a config path that does not exist.
type FileNotFoundError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e FileNotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e FileNotFoundError) Unwrap() error {
	return e.Cause
}

// ConstructionError occurs when the target value cannot be constructed
// or populated, e.g. the target is not a pointer or a document value
// cannot be coerced to the target field type.
type ConstructionError struct {
	Cause error
}

// Error implements the error interface.
func (e ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct config instance: %s", e.Cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e ConstructionError) Unwrap() error {
	return e.Cause
}

// ValidationError occurs when one or more required fields are absent
// from the source document. Missing holds the serialized keys of every
// absent field, in schema order.
type ValidationError struct {
	Missing []string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("missing required config fields: %s", strings.Join(e.Missing, ", "))
}

// LogValue implements the slog.LogValuer interface.
func (e ValidationError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("missing_count", len(e.Missing)),
		slog.Any("missing_fields", e.Missing),
	)
}
