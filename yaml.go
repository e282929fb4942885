package toon

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes a single YAML document into a [Value], preserving
// mapping key order.
func FromYAML(data []byte) (Value, error) {
	return DecodeYAML(bytes.NewReader(data))
}

// DecodeYAML reads a single YAML document from r. Aliases are resolved and
// merge keys ("<<") are expanded, with explicit keys taking precedence.
// Timestamps and binary scalars keep their source text. An empty stream
// decodes to null.
func DecodeYAML(r io.Reader) (Value, error) {
	dec := yaml.NewDecoder(r)
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, fmt.Errorf("%w: yaml: %w", ErrInvalidInput, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: yaml: expected a single document", ErrInvalidInput)
	}
	y := &yamlDecoder{aliases: make(map[*yaml.Node]struct{})}
	v, err := y.node(&doc)
	if err != nil {
		return Value{}, fmt.Errorf("%w: yaml: %w", ErrInvalidInput, err)
	}
	return v, nil
}

type yamlDecoder struct {
	aliases map[*yaml.Node]struct{}
}

func (y *yamlDecoder) node(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return y.node(n.Content[0])
	case yaml.AliasNode:
		if _, ok := y.aliases[n]; ok {
			return Value{}, fmt.Errorf("%w: alias *%s", ErrCycle, n.Value)
		}
		y.aliases[n] = struct{}{}
		defer delete(y.aliases, n)
		return y.node(n.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := y.node(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		return y.mapping(n)
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func (y *yamlDecoder) mapping(n *yaml.Node) (Value, error) {
	explicit := make(map[string]struct{})
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !isMergeKey(k) {
			explicit[k.Value] = struct{}{}
		}
	}

	var fields []Field
	index := make(map[string]int)
	add := func(key string, v Value) {
		if i, dup := index[key]; dup {
			fields[i].Value = v
			return
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: v})
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, val := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			merged, err := y.mergeSources(val)
			if err != nil {
				return Value{}, err
			}
			for _, m := range merged {
				for _, f := range m.fields {
					if _, ok := explicit[f.Key]; ok {
						continue
					}
					if _, ok := index[f.Key]; ok {
						continue
					}
					add(f.Key, f.Value)
				}
			}
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
		}
		v, err := y.node(val)
		if err != nil {
			return Value{}, err
		}
		add(k.Value, v)
	}
	return Mapping(fields...), nil
}

// mergeSources resolves the value of a merge key: a mapping, an alias to
// one, or a sequence of those.
func (y *yamlDecoder) mergeSources(n *yaml.Node) ([]Value, error) {
	if n.Kind == yaml.SequenceNode {
		var out []Value
		for _, c := range n.Content {
			v, err := y.node(c)
			if err != nil {
				return nil, err
			}
			if v.Kind() != KindMapping {
				return nil, fmt.Errorf("line %d: merge value must be a mapping", c.Line)
			}
			out = append(out, v)
		}
		return out, nil
	}
	v, err := y.node(n)
	if err != nil {
		return nil, err
	}
	if v.Kind() != KindMapping {
		return nil, fmt.Errorf("line %d: merge value must be a mapping", n.Line)
	}
	return []Value{v}, nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!merge"
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Uint(u), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}
