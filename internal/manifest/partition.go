package manifest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// CollisionPolicy decides which document keeps a key when several documents
// derive the same key.
type CollisionPolicy string

// Supported collision policies.
const (
	// LastWins keeps the document that appears last in the input.
	LastWins CollisionPolicy = "last-wins"
	// FirstWins keeps the document that appears first in the input.
	FirstWins CollisionPolicy = "first-wins"
	// FailOnCollision aborts partitioning with ErrKeyCollision.
	FailOnCollision CollisionPolicy = "error"
)

// ErrKeyCollision is returned by PartitionWith under FailOnCollision.
var ErrKeyCollision = errors.New("duplicate file name key")

// ParseCollisionPolicy converts a configuration string into a policy. The
// empty string selects LastWins.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch p := CollisionPolicy(s); p {
	case "":
		return LastWins, nil
	case LastWins, FirstWins, FailOnCollision:
		return p, nil
	default:
		return "", fmt.Errorf("invalid collision policy %q: must be one of last-wins, first-wins, error", s)
	}
}

// Grouping maps a file name key to the document chosen for it.
type Grouping map[string]interface{}

// Keys returns the keys in sorted order.
func (g Grouping) Keys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Skip records a document that was left out of the grouping.
type Skip struct {
	// Index is the zero-based position of the document in the input.
	Index int

	Reason SkipReason

	// Kind is set when the document had a string kind.
	Kind string
}

// Collision records two documents deriving the same key.
type Collision struct {
	Key string

	// Previous is the index of the document that held the key so far.
	Previous int

	// Index is the index of the document that derived the key again.
	Index int

	// Kept is the index of the document that holds the key afterwards.
	Kept int
}

// Options configures PartitionWith.
type Options struct {
	// Policy defaults to LastWins.
	Policy CollisionPolicy

	// ExcludeKinds lists kinds to leave out, matched case-insensitively.
	ExcludeKinds []string
}

// Result is the outcome of PartitionWith.
type Result struct {
	Groups     Grouping
	Skipped    []Skip
	Collisions []Collision
}

// Partition groups docs by derived key. Documents without a key are dropped
// and later documents replace earlier ones sharing a key. It never fails;
// an empty input yields an empty Grouping.
func Partition(docs []interface{}) Grouping {
	res, err := PartitionWith(docs, Options{Policy: LastWins})
	if err != nil {
		// LastWins never reports an error.
		return Grouping{}
	}

	return res.Groups
}

// PartitionWith groups docs by derived key and reports every skipped
// document and every key collision. Only FailOnCollision can make it fail.
func PartitionWith(docs []interface{}, opts Options) (*Result, error) {
	policy, err := ParseCollisionPolicy(string(opts.Policy))
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.ExcludeKinds))
	for _, k := range opts.ExcludeKinds {
		excluded[strings.ToLower(k)] = true
	}

	res := &Result{Groups: make(Grouping, len(docs))}
	owner := make(map[string]int, len(docs))

	for i, doc := range docs {
		id, reason := Identify(doc)
		if reason == "" && id.HasKind() && excluded[strings.ToLower(id.Kind)] {
			reason = SkipExcludedKind
		}

		if reason != "" {
			kind, _ := StringField(doc, "kind")
			res.Skipped = append(res.Skipped, Skip{Index: i, Reason: reason, Kind: kind})

			continue
		}

		key := id.Key()

		prev, seen := owner[key]
		if !seen {
			owner[key] = i
			res.Groups[key] = doc

			continue
		}

		c := Collision{Key: key, Previous: prev, Index: i, Kept: prev}

		switch policy {
		case FailOnCollision:
			return nil, fmt.Errorf("%w %q: documents %d and %d", ErrKeyCollision, key, prev, i)
		case FirstWins:
			// keep the earlier document
		default:
			owner[key] = i
			res.Groups[key] = doc
			c.Kept = i
		}

		res.Collisions = append(res.Collisions, c)
	}

	return res, nil
}
