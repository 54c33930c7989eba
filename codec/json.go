// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/z5labs/confbind/document"
)

// InvalidJSONError occurs if the raw text contains invalid JSON.
type InvalidJSONError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidJSONError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.cause)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e InvalidJSONError) Unwrap() error {
	return e.cause
}

type jsonCodec struct{}

// Name implements the Codec interface.
func (jsonCodec) Name() string {
	return "json"
}

// Decode implements the Codec interface.
func (jsonCodec) Decode(b []byte) (*document.Document, error) {
	doc := document.New()
	err := json.Unmarshal(b, doc)
	if err != nil {
		return nil, InvalidJSONError{cause: err}
	}
	return doc, nil
}

// Encode implements the Codec interface.
func (jsonCodec) Encode(doc *document.Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
