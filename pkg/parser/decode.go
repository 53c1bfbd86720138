// Package parser decodes YAML documents into generic value trees and
// extracts source positions from parse errors. Decoding goes through the
// goccy AST rather than yaml.Unmarshal so the duplicate-key policy is ours:
// the first occurrence of a key wins and later occurrences are dropped.
package parser

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
	goparser "github.com/goccy/go-yaml/parser"
)

// ErrMultipleDocuments is returned for streams with more than one document.
// Multi-document streams are treated as parse failures, same as empty input.
var ErrMultipleDocuments = errors.New("multiple YAML documents in stream")

// Decode parses text into a generic value tree: nil, bool, int64/uint64,
// float64, string, map[string]any, []any. A nil result with a nil error
// means the document was empty.
func Decode(text string) (any, error) {
	if text == "" {
		return nil, nil
	}

	// The parser rejects duplicate keys by default; allow them so the
	// dedup below can apply the first-occurrence-wins policy.
	file, err := goparser.ParseBytes([]byte(text), 0, goparser.AllowDuplicateMapKey())
	if err != nil {
		return nil, err
	}
	if file == nil || len(file.Docs) == 0 {
		return nil, nil
	}
	if len(file.Docs) > 1 {
		return nil, ErrMultipleDocuments
	}

	doc := file.Docs[0]
	if doc == nil || doc.Body == nil {
		return nil, nil
	}

	d := &decoder{anchors: map[string]any{}}
	return d.value(doc.Body)
}

type decoder struct {
	anchors map[string]any
}

func (d *decoder) value(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.DocumentNode:
		return d.value(n.Body)
	case *ast.MappingNode:
		return d.mapping(n.Values)
	case *ast.MappingValueNode:
		// A single-pair mapping parses as a bare MappingValueNode.
		return d.mapping([]*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		items := make([]any, 0, len(n.Values))
		for _, item := range n.Values {
			v, err := d.value(item)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.LiteralNode:
		if n.Value != nil {
			return n.Value.Value, nil
		}
		return "", nil
	case *ast.IntegerNode:
		return n.Value, nil
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.BoolNode:
		return n.Value, nil
	case *ast.NullNode:
		return nil, nil
	case *ast.InfinityNode:
		return n.Value, nil
	case *ast.NanNode:
		return math.NaN(), nil
	case *ast.TagNode:
		return d.value(n.Value)
	case *ast.AnchorNode:
		v, err := d.value(n.Value)
		if err != nil {
			return nil, err
		}
		if n.Name != nil {
			d.anchors[nodeString(n.Name)] = v
		}
		return v, nil
	case *ast.AliasNode:
		name := nodeString(n.Value)
		v, ok := d.anchors[name]
		if !ok {
			return nil, fmt.Errorf("unknown anchor '%s'", name)
		}
		return v, nil
	default:
		if tok := node.GetToken(); tok != nil {
			return tok.Value, nil
		}
		return nil, fmt.Errorf("unsupported YAML node %T", node)
	}
}

func (d *decoder) mapping(pairs []*ast.MappingValueNode) (any, error) {
	m := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		if pair == nil || pair.Key == nil {
			continue
		}
		key := nodeString(pair.Key)
		if _, dup := m[key]; dup {
			// First occurrence wins.
			continue
		}
		v, err := d.value(pair.Value)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	return m, nil
}

// nodeString extracts the scalar text of a node, used for mapping keys and
// anchor names
func nodeString(node ast.Node) string {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value
	case *ast.IntegerNode:
		return fmt.Sprintf("%v", n.Value)
	case *ast.FloatNode:
		return fmt.Sprintf("%g", n.Value)
	case *ast.BoolNode:
		return fmt.Sprintf("%t", n.Value)
	case *ast.NullNode:
		return "null"
	default:
		if tok := node.GetToken(); tok != nil {
			return tok.Value
		}
		return ""
	}
}
