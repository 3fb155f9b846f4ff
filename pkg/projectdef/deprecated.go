// SPDX-License-Identifier: MPL-2.0

package projectdef

import (
	"github.com/charmbracelet/log"

	"github.com/scanrunner/scanrunner/pkg/props"
)

type (
	// Alias maps a legacy property name to its canonical replacement.
	Alias struct {
		Legacy    string
		Canonical string
	}

	// AliasTable is an ordered, read-only list of aliases. Resolution follows table order.
	AliasTable []Alias
)

// DeprecatedAliases returns the legacy property names still accepted by the runner,
// sorted by legacy name. Each call returns a fresh table.
func DeprecatedAliases() AliasTable {
	return AliasTable{
		{Legacy: "binaries", Canonical: KeyBinaries},
		{Legacy: "libraries", Canonical: KeyLibraries},
		{Legacy: "sources", Canonical: KeySources},
		{Legacy: "tests", Canonical: KeyTests},
	}
}

// ResolveDeprecated rewrites legacy keys in p to their canonical names and returns the
// aliases that were applied. The legacy key is always removed; its value only lands on
// the canonical key when that key is absent, so an explicit canonical value wins.
// One warning is logged per rewrite. Running it twice is the same as running it once.
func ResolveDeprecated(p props.Set, aliases AliasTable, logger *log.Logger) []Alias {
	var applied []Alias
	for _, a := range aliases {
		value, ok := p[a.Legacy]
		if !ok {
			continue
		}
		if logger != nil {
			logger.Warn("deprecated property, update your files", "property", a.Legacy, "replacement", a.Canonical)
		}
		delete(p, a.Legacy)
		if !p.Has(a.Canonical) {
			p[a.Canonical] = value
		}
		applied = append(applied, a)
	}
	return applied
}
