// SPDX-License-Identifier: MPL-2.0

package props

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// listSeparators are the characters accepted between items of a list-valued property.
const listSeparators = ",;"

// Set is a flat property set. The zero value is not usable for writes; use New or Clone.
type Set map[string]string

// New returns an empty Set, optionally seeded from m (m is copied).
func New(m map[string]string) Set {
	s := make(Set, len(m))
	for k, v := range m {
		s[k] = v
	}
	return s
}

// Clone returns an independent copy of the set. Cloning a nil set yields an empty set.
func (s Set) Clone() Set {
	return New(s)
}

// Get returns the value for key and whether it was present.
func (s Set) Get(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Has reports whether key is present, even with an empty value.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the keys in lexical order.
func (s Set) Keys() []string {
	keys := maps.Keys(s)
	slices.Sort(keys)
	return keys
}

// List returns the list-valued property stored under key, split by List.
// A missing key yields nil.
func (s Set) List(key string) []string {
	v, ok := s[key]
	if !ok {
		return nil
	}
	return List(v)
}

// List splits a comma or semicolon separated value into trimmed, non-empty items,
// preserving declaration order.
func List(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return strings.ContainsRune(listSeparators, r)
	})
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}

// Extract returns the properties scoped to a module: every key of the form
// "<module>.<rest>" becomes "<rest>" in the result. Keys without the prefix are
// dropped and s is left untouched. Two source keys cannot collide after stripping
// because the prefix is identical for all of them.
func Extract(module string, s Set) Set {
	prefix := module + "."
	scoped := make(Set)
	for k, v := range s {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			scoped[rest] = v
		}
	}
	return scoped
}

// HasAnyPrefix reports whether key starts with "<id>." for any of the given ids.
func HasAnyPrefix(key string, ids []string) bool {
	for _, id := range ids {
		if strings.HasPrefix(key, id+".") {
			return true
		}
	}
	return false
}
