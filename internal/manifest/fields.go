package manifest

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// lookup returns the value stored under key in a map-shaped node. Both
// decoded mapping shapes are accepted: map[string]interface{} for mappings
// whose keys are all strings, and map[interface{}]interface{} for mappings
// with complex keys. Any other node yields false.
func lookup(node interface{}, key string) (interface{}, bool) {
	switch m := node.(type) {
	case map[string]interface{}:
		v, found, err := unstructured.NestedFieldNoCopy(m, key)
		if err != nil || !found {
			return nil, false
		}

		return v, true
	case map[interface{}]interface{}:
		v, ok := m[key]

		return v, ok
	default:
		return nil, false
	}
}

// IsMapping reports whether node is a decoded YAML mapping.
func IsMapping(node interface{}) bool {
	switch node.(type) {
	case map[string]interface{}, map[interface{}]interface{}:
		return true
	default:
		return false
	}
}

// StringField returns node[key] when node is a mapping and the value is a
// string. A missing key, a null value or a non-string value all yield false.
func StringField(node interface{}, key string) (string, bool) {
	v, ok := lookup(node, key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// MapField returns node[key] when node is a mapping and the value is itself
// a mapping.
func MapField(node interface{}, key string) (interface{}, bool) {
	v, ok := lookup(node, key)
	if !ok || !IsMapping(v) {
		return nil, false
	}

	return v, true
}
