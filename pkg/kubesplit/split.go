// Package kubesplit provides a public Go API for splitting a multi-document
// Kubernetes manifest stream into one document per resource.
//
// Each document is keyed by its apiVersion, kind, namespace and name (or
// generateName), joined by "__". Documents without a usable identity are
// skipped.
//
// Basic usage:
//
//	result, err := kubesplit.Split(ctx, manifests)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, key := range result.Groups.Keys() {
//	    fmt.Println(key)
//	}
//
// With options:
//
//	result, err := kubesplit.Split(ctx, manifests,
//	    kubesplit.WithCollisionPolicy(kubesplit.FailOnCollision),
//	    kubesplit.WithExcludeKinds("Secret"),
//	)
package kubesplit

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/kubesplit/internal/logging"
	"github.com/hupe1980/kubesplit/internal/manifest"
	"github.com/hupe1980/kubesplit/internal/yamlutil"
)

// Re-exported manifest types.
type (
	// Grouping maps a file name key to the document chosen for it.
	Grouping = manifest.Grouping
	// Skip records a document that was left out of the grouping.
	Skip = manifest.Skip
	// Collision records two documents deriving the same key.
	Collision = manifest.Collision
	// CollisionPolicy decides which document keeps a duplicated key.
	CollisionPolicy = manifest.CollisionPolicy
)

// Collision policies.
const (
	LastWins        = manifest.LastWins
	FirstWins       = manifest.FirstWins
	FailOnCollision = manifest.FailOnCollision
)

// ErrKeyCollision is returned under FailOnCollision.
var ErrKeyCollision = manifest.ErrKeyCollision

// Option configures Split.
type Option func(*options)

type options struct {
	policy       CollisionPolicy
	excludeKinds []string
	logger       *slog.Logger
}

// WithCollisionPolicy selects the collision policy (default LastWins).
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithExcludeKinds skips documents of the given kinds (case-insensitive).
func WithExcludeKinds(kinds ...string) Option {
	return func(o *options) {
		o.excludeKinds = append(o.excludeKinds, kinds...)
	}
}

// WithLogger sets the logger that receives skip and collision diagnostics.
// By default they are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Result holds the outcome of a split.
type Result struct {
	// Groups maps each file name key to its document.
	Groups Grouping

	// Documents is the number of documents in the input stream.
	Documents int

	Skipped    []Skip
	Collisions []Collision
}

// DeriveKey returns the file name key for a decoded document, or false when
// the document has no usable identity.
func DeriveKey(doc interface{}) (string, bool) {
	return manifest.DeriveKey(doc)
}

// SplitReader reads r to completion and splits its contents.
func SplitReader(ctx context.Context, r io.Reader, opts ...Option) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return Split(ctx, data, opts...)
}

// Split parses a multi-document YAML stream and groups its documents by
// file name key.
func Split(ctx context.Context, data []byte, opts ...Option) (*Result, error) {
	o := &options{policy: LastWins}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Discard()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs, err := yamlutil.DecodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	logger.Debug("parsed input", slog.Int("documents", len(docs)), slog.Int("bytes", len(data)))

	res, err := manifest.PartitionWith(docs, manifest.Options{
		Policy:       o.policy,
		ExcludeKinds: o.excludeKinds,
	})
	if err != nil {
		return nil, err
	}

	for _, s := range res.Skipped {
		logger.Debug("skipping document",
			slog.Int("index", s.Index),
			slog.String("kind", s.Kind),
			slog.String("reason", string(s.Reason)),
		)
	}

	for _, c := range res.Collisions {
		logger.Warn("documents share a file name",
			slog.String("key", c.Key),
			slog.Int("previous", c.Previous),
			slog.Int("index", c.Index),
			slog.Int("kept", c.Kept),
		)
	}

	if logger.Enabled(ctx, slog.LevelDebug) {
		for _, key := range res.Groups.Keys() {
			if id, reason := manifest.Identify(res.Groups[key]); reason == "" {
				logger.Debug("grouped document",
					slog.String("key", key),
					slog.String("gvk", id.GVK().String()),
					slog.Bool("generatedName", id.GeneratedName),
				)
			}
		}
	}

	return &Result{
		Groups:     res.Groups,
		Documents:  len(docs),
		Skipped:    res.Skipped,
		Collisions: res.Collisions,
	}, nil
}
