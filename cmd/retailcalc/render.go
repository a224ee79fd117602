package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// render re-encodes a JSON document. Object key order is preserved in both
// formats.
func render(doc []byte, format string) ([]byte, error) {
	switch format {
	case "json":
		var buf bytes.Buffer
		if err := json.Indent(&buf, doc, "", "  "); err != nil {
			return nil, fmt.Errorf("format json: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	case "yaml":
		// JSON is valid YAML; decoding into a Node keeps key order.
		var node yaml.Node
		if err := yaml.Unmarshal(doc, &node); err != nil {
			return nil, fmt.Errorf("parse result: %w", err)
		}
		blockStyle(&node)
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&node); err != nil {
			return nil, fmt.Errorf("format yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// blockStyle drops the flow/quoting styles inherited from JSON syntax.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
