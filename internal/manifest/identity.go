// Package manifest derives file names from decoded Kubernetes-style
// manifests and groups a document stream by those names.
//
// Everything in this package is pure: documents are inspected, never
// modified, and no I/O or logging takes place.
package manifest

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// KeySeparator joins the identity fields of a document into a file name key.
// It also replaces every "/" inside apiVersion.
const KeySeparator = "__"

// SkipReason explains why a document did not receive a key.
type SkipReason string

// Reasons a document is left out of the grouping.
const (
	SkipNotMapping   SkipReason = "not a mapping"
	SkipNoMetadata   SkipReason = "missing metadata"
	SkipNoName       SkipReason = "missing name and generateName"
	SkipExcludedKind SkipReason = "excluded kind"
)

type field uint8

const (
	fieldAPIVersion field = 1 << iota
	fieldKind
	fieldNamespace
)

// Identity holds the identifying fields extracted from one document.
// APIVersion, Kind and Namespace are optional; Name is always set on an
// Identity returned by Identify.
type Identity struct {
	APIVersion string
	Kind       string
	Namespace  string
	Name       string

	// GeneratedName is true when Name was taken from metadata.generateName.
	GeneratedName bool

	present field
}

// HasAPIVersion reports whether apiVersion was present as a string.
func (id Identity) HasAPIVersion() bool { return id.present&fieldAPIVersion != 0 }

// HasKind reports whether kind was present as a string.
func (id Identity) HasKind() bool { return id.present&fieldKind != 0 }

// HasNamespace reports whether metadata.namespace was present as a string.
func (id Identity) HasNamespace() bool { return id.present&fieldNamespace != 0 }

// GVK returns the GroupVersionKind described by apiVersion and kind. Missing
// fields leave the corresponding parts empty.
func (id Identity) GVK() schema.GroupVersionKind {
	return schema.FromAPIVersionAndKind(id.APIVersion, id.Kind)
}

// Key composes the file name key: normalized apiVersion, kind, namespace and
// name, in that order, joined by KeySeparator. Absent fields are omitted.
func (id Identity) Key() string {
	parts := make([]string, 0, 4)

	if id.HasAPIVersion() {
		parts = append(parts, strings.ReplaceAll(id.APIVersion, "/", KeySeparator))
	}

	if id.HasKind() {
		parts = append(parts, id.Kind)
	}

	if id.HasNamespace() {
		parts = append(parts, id.Namespace)
	}

	parts = append(parts, id.Name)

	return strings.Join(parts, KeySeparator)
}

// Identify extracts the identity of a top-level document. When no identity
// can be established the returned SkipReason is non-empty and the Identity
// must be ignored.
//
// A document needs a metadata mapping holding a string name or, failing
// that, a string generateName. Everything else is optional.
func Identify(doc interface{}) (Identity, SkipReason) {
	if !IsMapping(doc) {
		return Identity{}, SkipNotMapping
	}

	var id Identity

	if v, ok := StringField(doc, "apiVersion"); ok {
		id.APIVersion = v
		id.present |= fieldAPIVersion
	}

	if v, ok := StringField(doc, "kind"); ok {
		id.Kind = v
		id.present |= fieldKind
	}

	metadata, ok := MapField(doc, "metadata")
	if !ok {
		return Identity{}, SkipNoMetadata
	}

	if v, ok := StringField(metadata, "namespace"); ok {
		id.Namespace = v
		id.present |= fieldNamespace
	}

	if name, ok := StringField(metadata, "name"); ok {
		id.Name = name

		return id, ""
	}

	gen, ok := StringField(metadata, "generateName")
	if !ok {
		return Identity{}, SkipNoName
	}

	id.Name = gen
	id.GeneratedName = true

	return id, ""
}

// DeriveKey returns the file name key for doc, or false when doc carries no
// usable identity.
func DeriveKey(doc interface{}) (string, bool) {
	id, reason := Identify(doc)
	if reason != "" {
		return "", false
	}

	return id.Key(), true
}
