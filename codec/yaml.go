// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"fmt"

	"github.com/z5labs/confbind/document"

	"gopkg.in/yaml.v3"
)

// InvalidYAMLError occurs if the raw text contains invalid YAML.
type InvalidYAMLError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidYAMLError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidYAMLError) Unwrap() error {
	return e.cause
}

type yamlCodec struct{}

// Name implements the Codec interface.
func (yamlCodec) Name() string {
	return "yaml"
}

// Decode implements the Codec interface.
func (yamlCodec) Decode(b []byte) (*document.Document, error) {
	doc := document.New()
	err := yaml.Unmarshal(b, doc)
	if err != nil {
		return nil, InvalidYAMLError{cause: err}
	}
	return doc, nil
}

// Encode implements the Codec interface.
func (yamlCodec) Encode(doc *document.Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
