// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML implements the yaml.Marshaler interface. Keys are
// emitted in insertion order.
func (d *Document) MarshalYAML() (any, error) {
	return d.yamlNode()
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. Key order
// of the source mapping is preserved, including in nested mappings.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeYAMLValue(node)
	if err != nil {
		return err
	}

	doc, ok := v.(*Document)
	if !ok {
		return fmt.Errorf("document: top level yaml value must be a mapping, got %s", node.Tag)
	}
	*d = *doc
	return nil
}

func (d *Document) yamlNode() (*yaml.Node, error) {
	n := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}
	for _, k := range d.keys {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: k,
		}

		valNode, err := yamlValueNode(d.values[k])
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, keyNode, valNode)
	}
	return n, nil
}

func yamlValueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!null",
			Value: "null",
		}, nil
	case *Document:
		return t.yamlNode()
	case []any:
		n := &yaml.Node{
			Kind: yaml.SequenceNode,
			Tag:  "!!seq",
		}
		for _, el := range t {
			en, err := yamlValueNode(el)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, en)
		}
		return n, nil
	default:
		var n yaml.Node
		err := n.Encode(t)
		if err != nil {
			return nil, err
		}
		return &n, nil
	}
}

func decodeYAMLValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return New(), nil
		}
		return decodeYAMLValue(node.Content[0])
	case yaml.AliasNode:
		return decodeYAMLValue(node.Alias)
	case yaml.MappingNode:
		doc := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			err := node.Content[i].Decode(&key)
			if err != nil {
				return nil, err
			}

			val, err := decodeYAMLValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			doc.Set(key, val)
		}
		return doc, nil
	case yaml.SequenceNode:
		vals := []any{}
		for _, el := range node.Content {
			val, err := decodeYAMLValue(el)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return vals, nil
	default:
		var v any
		err := node.Decode(&v)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
