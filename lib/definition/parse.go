// Copyright 2026 The Protodoc Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Parse decodes YAML (or plain JSON, which YAML is a superset of) into
// a Tree, preserving mapping key order. The top-level value must be a
// mapping.
func Parse(data []byte) (*Tree, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return nil, fmt.Errorf("parsing definition: empty document")
	}

	value, err := fromNode(document.Content[0])
	if err != nil {
		return nil, err
	}
	tree, ok := value.(*Tree)
	if !ok {
		return nil, fmt.Errorf("parsing definition: top-level value is not a mapping")
	}
	return tree, nil
}

// ParseJSONC strips JSONC extensions (// comments, /* block comments */,
// trailing commas) from data and parses the result. This is the format
// definition layers are authored in.
func ParseJSONC(data []byte) (*Tree, error) {
	return Parse(jsonc.ToJSON(data))
}

// ReadFile reads and parses one definition file. Files with a .jsonc
// or .json extension go through JSONC comment stripping; everything
// else is parsed as YAML.
func ReadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var tree *Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonc", ".json":
		tree, err = ParseJSONC(data)
	default:
		tree, err = Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Stem extracts a layer name from a file path by stripping the
// directory prefix and the file extension. For example,
// "definitions/xap_0.2.0.jsonc" returns "xap_0.2.0".
func Stem(path string) string {
	base := filepath.Base(path)
	extension := filepath.Ext(base)
	return strings.TrimSuffix(base, extension)
}

// fromNode converts a decoded yaml.Node into a definition Value.
func fromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.MappingNode:
		tree := NewTree()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", keyNode.Line)
			}
			value, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			// Duplicate keys: last value wins, first position kept.
			tree.Set(keyNode.Value, value)
		}
		return tree, nil

	case yaml.SequenceNode:
		sequence := make(Sequence, 0, len(node.Content))
		for _, element := range node.Content {
			value, err := fromNode(element)
			if err != nil {
				return nil, err
			}
			sequence = append(sequence, value)
		}
		return sequence, nil

	case yaml.ScalarNode:
		return scalarFromNode(node)

	case yaml.AliasNode:
		return fromNode(node.Alias)

	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

func scalarFromNode(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		parsed, err := strconv.ParseBool(node.Value)
		if err != nil {
			// YAML accepts spellings ParseBool does not (yes/no);
			// keep the authored text as a string in that case.
			return String(node.Value), nil
		}
		return Bool(parsed), nil
	case "!!int":
		return Scalar{Kind: KindInt, Text: node.Value}, nil
	case "!!float":
		return Scalar{Kind: KindFloat, Text: node.Value}, nil
	default:
		return String(node.Value), nil
	}
}
