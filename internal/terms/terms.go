// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package terms loads supplemental name lists from YAML files.  Lists are
// used to extend the built-in table/column name dictionary with names mined
// from other game versions or community research.
package terms

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads every YAML document from r and returns the names they carry,
// in order, with duplicates and empty entries dropped.  Two shapes are
// accepted:
//
//	names:
//	  - MNU_Name
//	  - ITM_Name
//
// and a bare sequence:
//
//	- MNU_Name
//	- ITM_Name
func Load(r io.Reader) ([]string, error) {
	dec := yaml.NewDecoder(r)
	var out []string
	seen := make(map[string]struct{})
	for docIdx := 0; ; docIdx++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("terms: document %d: %w", docIdx, err)
		}
		names, err := docNames(&doc)
		if err != nil {
			return nil, fmt.Errorf("terms: document %d: %w", docIdx, err)
		}
		for _, name := range names {
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
}

// LoadFile reads a name list from the YAML file at path.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	names, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

func docNames(doc *yaml.Node) ([]string, error) {
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}
	switch node.Kind {
	case yaml.SequenceNode:
		return sequenceStrings(node)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Value != "names" {
				continue
			}
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: names must be a sequence", value.Line)
			}
			return sequenceStrings(value)
		}
		return nil, errors.New("mapping has no names key")
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return nil, fmt.Errorf("line %d: expected a sequence or mapping", node.Line)
	default:
		return nil, fmt.Errorf("line %d: expected a sequence or mapping", node.Line)
	}
}

func sequenceStrings(node *yaml.Node) ([]string, error) {
	names := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: name entries must be strings", item.Line)
		}
		names = append(names, item.Value)
	}
	return names, nil
}
