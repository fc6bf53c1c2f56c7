package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/kubesplit/internal/yamlutil"
)

// SerializeFunc renders one document.
type SerializeFunc func(doc interface{}) ([]byte, error)

// SerializeYAML re-emits a document through the same YAML library that
// decoded it, so that decoding the output yields an equal value. Map keys
// come out sorted.
func SerializeYAML(doc interface{}) ([]byte, error) {
	out, err := yamlutil.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	return out, nil
}

// SerializeJSON renders a document as indented JSON. Non-string scalar keys
// are converted to strings; mappings with structured keys cannot be
// represented and fail.
func SerializeJSON(doc interface{}) ([]byte, error) {
	yamlBytes, err := yamlutil.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("serializing intermediate YAML: %w", err)
	}

	jsonBytes, err := sigsyaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, jsonBytes, "", "  "); err != nil {
		return nil, fmt.Errorf("formatting JSON: %w", err)
	}

	// Ensure trailing newline.
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}
