// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"strings"
)

// BindingKind classifies a named binding exported by an evaluated block.
type BindingKind int

// Supported binding kinds.
const (
	ValueBinding BindingKind = iota
	TypeBinding
	PackageBinding
)

// String returns a human-readable name for the binding kind.
func (k BindingKind) String() string {
	switch k {
	case ValueBinding:
		return "value"
	case TypeBinding:
		return "type"
	case PackageBinding:
		return "package"
	default:
		return "unknown"
	}
}

// Binding is one named definition made visible to subsequent compilation.
type Binding struct {
	Kind BindingKind
	Name string
}

// ImportSet is an append-only, order-insensitive collection of bindings.
// Sets compose via union; two sets holding the same bindings are equal and
// produce the same fingerprint regardless of insertion order.
type ImportSet map[Binding]struct{}

// NewImportSet builds a set from the given bindings.
func NewImportSet(bindings ...Binding) ImportSet {
	s := make(ImportSet, len(bindings))
	for _, b := range bindings {
		s[b] = struct{}{}
	}
	return s
}

// Len returns the number of bindings in the set.
func (s ImportSet) Len() int { return len(s) }

// Contains reports whether the exact binding is present.
func (s ImportSet) Contains(b Binding) bool {
	_, ok := s[b]
	return ok
}

// ContainsName reports whether any binding with the given name is present,
// regardless of kind.
func (s ImportSet) ContainsName(name string) bool {
	for b := range s {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Union returns a new set holding every binding of s and other.
// Neither input is modified.
func (s ImportSet) Union(other ImportSet) ImportSet {
	u := make(ImportSet, len(s)+len(other))
	for b := range s {
		u[b] = struct{}{}
	}
	for b := range other {
		u[b] = struct{}{}
	}
	return u
}

// Bindings returns the bindings in deterministic order (kind, then name).
func (s ImportSet) Bindings() []Binding {
	out := make([]Binding, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the sorted distinct binding names.
func (s ImportSet) Names() []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for b := range s {
		if _, ok := seen[b.Name]; ok {
			continue
		}
		seen[b.Name] = struct{}{}
		out = append(out, b.Name)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same bindings.
func (s ImportSet) Equal(other ImportSet) bool {
	if len(s) != len(other) {
		return false
	}
	for b := range s {
		if _, ok := other[b]; !ok {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable content hash of the set. Insertion order
// does not affect the result.
func (s ImportSet) Fingerprint() string {
	h := sha256.New()
	for _, b := range s.Bindings() {
		io.WriteString(h, b.Kind.String())
		h.Write([]byte{0})
		io.WriteString(h, b.Name)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// String renders the set for diagnostics, e.g. "{value x, type Point}".
func (s ImportSet) String() string {
	parts := make([]string, 0, len(s))
	for _, b := range s.Bindings() {
		parts = append(parts, b.Kind.String()+" "+b.Name)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
