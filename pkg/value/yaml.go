package value

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements yaml.Unmarshaler, preserving mapping order.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := fromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func fromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.SequenceNode:
		out := Value{kind: KindList, items: make([]Value, 0, len(node.Content))}
		for _, child := range node.Content {
			item, err := fromYAMLNode(child)
			if err != nil {
				return Value{}, err
			}
			out.items = append(out.items, item)
		}
		return out, nil
	case yaml.MappingNode:
		out := Value{kind: KindObject, fields: make([]Field, 0, len(node.Content)/2)}
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("value: line %d: mapping keys must be scalars", keyNode.Line)
			}
			item, err := fromYAMLNode(valNode)
			if err != nil {
				return Value{}, err
			}
			out.fields = setField(out.fields, keyNode.Value, item)
		}
		return out, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(node)
	}
	return Value{}, fmt.Errorf("value: line %d: unsupported YAML node", node.Line)
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return Value{}, err
		}
		return Int(n), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		return String(node.Value), nil
	}
}

// MarshalYAML implements yaml.Marshaler, emitting mappings in order.
func (v Value) MarshalYAML() (any, error) {
	return v.toYAMLNode(), nil
}

func (v Value) toYAMLNode() *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag := "!!int"
		if strings.ContainsAny(v.s, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			node.Content = append(node.Content, item.toYAMLNode())
		}
		return node
	case KindObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.fields {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
				f.Value.toYAMLNode())
		}
		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
