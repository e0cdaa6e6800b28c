package format

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsonmodel"
)

// maxYAMLDepth bounds nesting, aliases included.
const maxYAMLDepth = 512

// Alias expansion may produce at most aliasExpansionFactor times the nodes
// written in the document, and never less than minAliasBudget nodes.
const (
	aliasExpansionFactor = 100
	minAliasBudget       = 10000
)

var errExcessiveAliasing = errors.New("format: yaml decode: document contains excessive aliasing")

// YAML returns the gopkg.in/yaml.v3 codec. It works on yaml.Node trees, so
// number text survives in both directions and object keys are emitted
// sorted. Timestamps and binary scalars are kept as strings.
func YAML() Codec { return yamlCodec{} }

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Encode(v jsonmodel.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(v)); err != nil {
		return nil, fmt.Errorf("format: yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("format: yaml encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Decode(b []byte) (jsonmodel.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return jsonmodel.Value{}, fmt.Errorf("format: yaml decode: %w", err)
	}
	if doc.Kind == 0 {
		return jsonmodel.Null(), nil
	}
	budget := countNodes(&doc) * aliasExpansionFactor
	if budget < minAliasBudget {
		budget = minAliasBudget
	}
	d := &nodeDecoder{budget: budget}
	return d.value(&doc, 0)
}

// countNodes counts the nodes written in the document, not following aliases.
func countNodes(n *yaml.Node) int {
	total := 1
	for _, c := range n.Content {
		total += countNodes(c)
	}
	return total
}

func toNode(v jsonmodel.Value) *yaml.Node {
	switch v.Kind() {
	case jsonmodel.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
	case jsonmodel.KindNumber:
		text, _ := v.NumberText()
		tag := "!!int"
		if strings.ContainsAny(text, ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
	case jsonmodel.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case jsonmodel.KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for i := 0; i < v.Len(); i++ {
			n.Content = append(n.Content, toNode(v.Index(i)))
		}
		return n
	case jsonmodel.KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range v.Keys() {
			e, _ := v.Lookup(k)
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toNode(e))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// nodeDecoder converts node trees, expanding aliases within budget.
type nodeDecoder struct {
	budget int
}

func (d *nodeDecoder) value(n *yaml.Node, depth int) (jsonmodel.Value, error) {
	if d.budget--; d.budget < 0 {
		return jsonmodel.Value{}, errExcessiveAliasing
	}
	if depth > maxYAMLDepth {
		return jsonmodel.Value{}, fmt.Errorf("format: yaml decode: nesting deeper than %d", maxYAMLDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsonmodel.Null(), nil
		}
		return d.value(n.Content[0], depth+1)
	case yaml.AliasNode:
		return d.value(n.Alias, depth+1)
	case yaml.SequenceNode:
		elems := make([]jsonmodel.Value, 0, len(n.Content))
		for _, c := range n.Content {
			e, err := d.value(c, depth+1)
			if err != nil {
				return jsonmodel.Value{}, err
			}
			elems = append(elems, e)
		}
		return jsonmodel.NewArray(elems...), nil
	case yaml.MappingNode:
		obj := make(map[string]jsonmodel.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return jsonmodel.Value{}, fmt.Errorf("format: yaml decode: line %d: non-scalar mapping key", k.Line)
			}
			e, err := d.value(n.Content[i+1], depth+1)
			if err != nil {
				return jsonmodel.Value{}, err
			}
			obj[k.Value] = e
		}
		return jsonmodel.NewObject(obj), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return jsonmodel.Value{}, fmt.Errorf("format: yaml decode: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func fromScalar(n *yaml.Node) (jsonmodel.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return jsonmodel.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return jsonmodel.Value{}, fmt.Errorf("format: yaml decode: %w", err)
		}
		return jsonmodel.NewBool(b), nil
	case "!!int", "!!float":
		if v, err := jsonmodel.NewNumber(n.Value); err == nil {
			return v, nil
		}
		// YAML-only spellings such as 0x1F, 1_000 or .inf
		var x any
		if err := n.Decode(&x); err != nil {
			return jsonmodel.Value{}, fmt.Errorf("format: yaml decode: %w", err)
		}
		return jsonmodel.FromAny(x)
	}
	return jsonmodel.NewString(n.Value), nil
}
