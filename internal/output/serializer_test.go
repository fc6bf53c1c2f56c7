package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kubesplit/internal/yamlutil"
)

func testDeployment() map[string]interface{} {
	return map[string]interface{}{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata": map[string]interface{}{
			"name":      "web",
			"namespace": "prod",
			"labels":    map[string]interface{}{"zebra": "last", "alpha": "first"},
		},
		"spec": map[string]interface{}{
			"replicas": 2,
			"template": map[string]interface{}{
				"spec": map[string]interface{}{
					"containers": []interface{}{
						map[string]interface{}{"name": "nginx", "image": "nginx:1.27"},
					},
				},
			},
		},
	}
}

func TestSerializeYAML_RoundTrip(t *testing.T) {
	doc := testDeployment()

	out, err := SerializeYAML(doc)
	require.NoError(t, err)

	docs, err := yamlutil.DecodeAll(out)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc, docs[0])
}

func TestSerializeYAML_SortedMapKeys(t *testing.T) {
	out, err := SerializeYAML(testDeployment())
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "apiVersion: apps/v1\n"))
	assert.Less(t, strings.Index(s, "alpha"), strings.Index(s, "zebra"))
}

func TestSerializeYAML_KeepsNulls(t *testing.T) {
	doc := map[string]interface{}{"metadata": map[string]interface{}{"name": "x", "annotations": nil}}

	out, err := SerializeYAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "annotations: null")
}

func TestSerializeYAML_ConsistentIndentation(t *testing.T) {
	out, err := SerializeYAML(testDeployment())
	require.NoError(t, err)

	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, " ") {
			trimmed := strings.TrimLeft(line, " ")
			indent := len(line) - len(trimmed)
			assert.Equal(t, 0, indent%2, "indentation should be multiples of 2: %q", line)
		}
	}
}

func TestSerializeJSON(t *testing.T) {
	out, err := SerializeJSON(testDeployment())
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(string(out), "}\n"))
	assert.Contains(t, string(out), "\n  \"apiVersion\": \"apps/v1\"")

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "Deployment", parsed["kind"])
	assert.Equal(t, float64(2), parsed["spec"].(map[string]interface{})["replicas"])
}

func TestSerializeJSON_NonStringKeys(t *testing.T) {
	doc := map[interface{}]interface{}{1: "one", "name": "x"}

	out, err := SerializeJSON(doc)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &parsed))
	assert.Equal(t, "one", parsed["1"])
}
