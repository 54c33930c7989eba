// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import (
	"github.com/z5labs/confbind/document"
)

type jsoncCodec struct{}

// Name implements the Codec interface.
func (jsoncCodec) Name() string {
	return "jsonc"
}

// Decode implements the Codec interface.
func (jsoncCodec) Decode(b []byte) (*document.Document, error) {
	return jsonCodec{}.Decode(normalizeJSONC(b))
}

// Encode implements the Codec interface.
func (jsoncCodec) Encode(doc *document.Document) ([]byte, error) {
	return jsonCodec{}.Encode(doc)
}

// normalizeJSONC rewrites a JSONC source into plain JSON by blanking
// out comments and trailing commas. Byte offsets are preserved so
// json parse errors still point at the original source location.
func normalizeJSONC(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	var inString, escaped bool
	var lineComment, blockComment bool

	// index of the last byte that is significant to the json grammar
	lastSig := -1

	for i := 0; i < len(out); i++ {
		c := out[i]
		switch {
		case lineComment:
			if c == '\n' {
				lineComment = false
				continue
			}
			out[i] = ' '
		case blockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				i++
				blockComment = false
				continue
			}
			if c != '\n' {
				out[i] = ' '
			}
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			lastSig = i
		default:
			switch c {
			case '"':
				inString = true
				lastSig = i
			case '/':
				if i+1 < len(out) && out[i+1] == '/' {
					lineComment = true
					out[i], out[i+1] = ' ', ' '
					i++
					continue
				}
				if i+1 < len(out) && out[i+1] == '*' {
					blockComment = true
					out[i], out[i+1] = ' ', ' '
					i++
					continue
				}
				lastSig = i
			case ']', '}':
				if lastSig >= 0 && out[lastSig] == ',' {
					out[lastSig] = ' '
				}
				lastSig = i
			case ' ', '\t', '\r', '\n':
			default:
				lastSig = i
			}
		}
	}
	return out
}
