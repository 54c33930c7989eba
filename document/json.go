// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalJSON implements the json.Marshaler interface. Keys are
// emitted in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. Key order
// of the source object is preserved, including in nested objects.
func (d *Document) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	v, err := decodeJSONValue(dec)
	if err != nil {
		return err
	}

	doc, ok := v.(*Document)
	if !ok {
		return errors.New("document: top level json value must be an object")
	}
	*d = *doc
	return nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, float64, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		doc := New()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("document: unexpected json object key: %v", keyTok)
			}

			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			doc.Set(key, val)
		}

		// consume the closing '}'
		_, err := dec.Token()
		if err != nil {
			return nil, err
		}
		return doc, nil
	case '[':
		vals := []any{}
		for dec.More() {
			val, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}

		// consume the closing ']'
		_, err := dec.Token()
		if err != nil {
			return nil, err
		}
		return vals, nil
	default:
		return nil, fmt.Errorf("document: unexpected json delimiter: %s", delim)
	}
}
