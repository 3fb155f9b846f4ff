// SPDX-License-Identifier: MPL-2.0

package projectdef

import "github.com/scanrunner/scanrunner/pkg/props"

// MergeParent copies into child every parent property the child does not define,
// except the non-inherited keys (base directory, module list, description) and keys
// scoped to any module declared in the parent's module list. Only child is written.
func MergeParent(child, parent props.Set) {
	moduleIDs := parent.List(KeyModules)
	for k, v := range parent {
		if child.Has(k) {
			continue
		}
		if _, skip := nonInherited[k]; skip {
			continue
		}
		if props.HasAnyPrefix(k, moduleIDs) {
			continue
		}
		child[k] = v
	}
}
