// SPDX-License-Identifier: MPL-2.0

package projectdef

import "github.com/scanrunner/scanrunner/pkg/props"

// Flatten turns a built tree back into one property set, the form the analysis
// engine consumes. Every node contributes its resolved properties, including the
// absolute working directory, under the dotted chain of module ids leading to it
// ("a.x.sonar.projectKey"); the root contributes unprefixed keys.
func Flatten(root *Definition) props.Set {
	out := props.New(nil)
	flattenInto(out, "", root)
	return out
}

func flattenInto(out props.Set, prefix string, d *Definition) {
	for k, v := range d.properties {
		out[prefix+k] = v
	}
	out[prefix+KeyWorkDir] = d.workDir
	for _, child := range d.children {
		flattenInto(out, prefix+child.moduleID.Prefix(), child)
	}
}
