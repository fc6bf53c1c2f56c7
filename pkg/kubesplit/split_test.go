package kubesplit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kubesplit/pkg/kubesplit"
)

const manifests = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
  namespace: prod
spec:
  replicas: 2
---
apiVersion: v1
kind: Service
metadata:
  name: web
  namespace: prod
---
apiVersion: v1
kind: Secret
metadata:
  name: creds
---
- just
- a list
---
apiVersion: batch/v1
kind: Job
metadata:
  generateName: migrate-
---
kind: ConfigMap
data:
  orphan: "true"
`

func TestSplit_Keys(t *testing.T) {
	res, err := kubesplit.Split(context.Background(), []byte(manifests))
	require.NoError(t, err)

	assert.Equal(t, 6, res.Documents)
	assert.Equal(t, []string{
		"apps__v1__Deployment__prod__web",
		"batch__v1__Job__migrate-",
		"v1__Secret__creds",
		"v1__Service__prod__web",
	}, res.Groups.Keys())
	assert.Len(t, res.Skipped, 2)
	assert.Empty(t, res.Collisions)
}

func TestSplit_Empty(t *testing.T) {
	res, err := kubesplit.Split(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Groups)
	assert.Zero(t, res.Documents)
}

func TestSplit_ExcludeKinds(t *testing.T) {
	res, err := kubesplit.Split(context.Background(), []byte(manifests), kubesplit.WithExcludeKinds("secret", "JOB"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"apps__v1__Deployment__prod__web",
		"v1__Service__prod__web",
	}, res.Groups.Keys())
}

func TestSplit_ParseError(t *testing.T) {
	_, err := kubesplit.Split(context.Background(), []byte("kind: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse input")
}

func TestSplit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := kubesplit.Split(ctx, []byte(manifests))
	assert.ErrorIs(t, err, context.Canceled)
}

const duplicates = `apiVersion: v1
kind: ConfigMap
metadata:
  name: settings
data:
  version: "1"
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: settings
data:
  version: "2"
`

func TestSplit_CollisionPolicies(t *testing.T) {
	tests := []struct {
		policy kubesplit.CollisionPolicy
		want   string
	}{
		{kubesplit.LastWins, "2"},
		{kubesplit.FirstWins, "1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			res, err := kubesplit.Split(context.Background(), []byte(duplicates), kubesplit.WithCollisionPolicy(tt.policy))
			require.NoError(t, err)
			require.Len(t, res.Groups, 1)
			require.Len(t, res.Collisions, 1)

			doc := res.Groups["v1__ConfigMap__settings"].(map[string]interface{})
			assert.Equal(t, tt.want, doc["data"].(map[string]interface{})["version"])
		})
	}
}

func TestSplit_FailOnCollision(t *testing.T) {
	_, err := kubesplit.Split(context.Background(), []byte(duplicates), kubesplit.WithCollisionPolicy(kubesplit.FailOnCollision))
	require.Error(t, err)
	assert.True(t, errors.Is(err, kubesplit.ErrKeyCollision))
}

func TestSplit_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := kubesplit.Split(context.Background(), []byte(duplicates+"---\nkind: Orphan\n"), kubesplit.WithLogger(logger))
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "documents share a file name")
	assert.Contains(t, logs, "key=v1__ConfigMap__settings")
	assert.Contains(t, logs, `reason="missing metadata"`)
	assert.Contains(t, logs, "grouped document")
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestSplitReader(t *testing.T) {
	res, err := kubesplit.SplitReader(context.Background(), strings.NewReader(manifests))
	require.NoError(t, err)
	assert.Len(t, res.Groups, 4)

	_, err = kubesplit.SplitReader(context.Background(), errReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read input")
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestDeriveKey(t *testing.T) {
	key, ok := kubesplit.DeriveKey(map[string]interface{}{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata":   map[string]interface{}{"name": "x", "namespace": "ns"},
	})
	require.True(t, ok)
	assert.Equal(t, "apps__v1__Deployment__ns__x", key)
}
