// Package yamlutil decodes multi-document YAML streams and encodes single
// documents, both through gopkg.in/yaml.v3.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Indent is the number of spaces per nesting level used by Encode.
const Indent = 2

// DecodeAll parses every document of a "---" separated stream, in order.
// Documents keep their decoded shape: mappings, sequences, scalars and nil
// for empty documents. An empty stream yields no documents.
func DecodeAll(data []byte) ([]interface{}, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []interface{}

	for {
		var doc interface{}

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}

		if err != nil {
			return nil, fmt.Errorf("decoding document %d: %w", len(docs)+1, err)
		}

		docs = append(docs, doc)
	}
}

// Encode serializes a single document as YAML.
func Encode(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}

	return buf.Bytes(), nil
}
