// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package codec translates between raw configuration text and documents.
package codec

import (
	"fmt"
	"strings"

	"github.com/z5labs/confbind/document"
)

// Codec represents a configuration text format.
type Codec interface {
	// Name returns the format token of the codec, e.g. "json".
	Name() string

	// Decode parses raw text into a document.
	Decode(b []byte) (*document.Document, error)

	// Encode serializes a document into raw text.
	Encode(doc *document.Document) ([]byte, error)
}

var (
	// JSON encodes and decodes plain JSON.
	JSON Codec = jsonCodec{}

	// JSONC decodes a JSON superset permitting comments and trailing
	// commas. It encodes plain JSON. The ".json5" extension also maps
	// here, so only the JSON5 features above are accepted: single
	// quoted strings, unquoted keys and other JSON5 syntax fail with
	// an InvalidJSONError.
	JSONC Codec = jsoncCodec{}

	// YAML encodes and decodes YAML restricted to JSON compatible types.
	YAML Codec = yamlCodec{}

	// Default is the codec used when writing to a path whose
	// extension has no registered codec.
	Default = YAML
)

// UnsupportedFormatError occurs when no codec is registered for a
// file extension or format token.
type UnsupportedFormatError struct {
	Format string
}

// Error implements the error interface.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format: %s", e.Format)
}

// ForExtension returns the codec registered for the given file
// extension or format token. The leading dot and letter casing are
// ignored, so ".json", "json" and ".JSON" all resolve to [JSON].
func ForExtension(ext string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		return JSON, nil
	case "jsonc", "json5":
		return JSONC, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return nil, UnsupportedFormatError{Format: ext}
}
