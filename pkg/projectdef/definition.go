// SPDX-License-Identifier: MPL-2.0

package projectdef

import (
	"github.com/scanrunner/scanrunner/pkg/props"
	"github.com/scanrunner/scanrunner/pkg/types"
)

// Definition is one node of the project tree. A node exclusively owns its children
// and its property set; the parent pointer is a back-reference for traversal only.
// Accessors return copies so a built tree cannot be mutated by consumers.
type Definition struct {
	moduleID   types.ModuleID
	baseDir    string
	workDir    string
	properties props.Set
	children   []*Definition
	parent     *Definition
}

// Key returns the project key.
func (d *Definition) Key() string { return d.properties[KeyProjectKey] }

// Name returns the project display name.
func (d *Definition) Name() string { return d.properties[KeyProjectName] }

// Version returns the project version.
func (d *Definition) Version() string { return d.properties[KeyVersion] }

// Description returns the project description, empty when unset.
func (d *Definition) Description() string { return d.properties[KeyDescription] }

// ModuleID returns the id under which the parent declared this node; empty for the root.
func (d *Definition) ModuleID() types.ModuleID { return d.moduleID }

// BaseDir returns the absolute directory all relative paths of this node resolve against.
func (d *Definition) BaseDir() string { return d.baseDir }

// WorkDir returns the absolute scratch directory of this node.
func (d *Definition) WorkDir() string { return d.workDir }

// Properties returns a copy of the node's resolved properties.
func (d *Definition) Properties() props.Set { return d.properties.Clone() }

// Property returns a single property value.
func (d *Definition) Property(key string) (string, bool) { return d.properties.Get(key) }

// Children returns the child nodes in declaration order.
func (d *Definition) Children() []*Definition {
	out := make([]*Definition, len(d.children))
	copy(out, d.children)
	return out
}

// Parent returns the parent node, or nil for the root.
func (d *Definition) Parent() *Definition { return d.parent }

// IsAggregator reports whether the node has children.
func (d *Definition) IsAggregator() bool { return len(d.children) > 0 }

// Walk calls fn for d and every descendant in pre-order, stopping at the first error.
func (d *Definition) Walk(fn func(*Definition) error) error {
	if err := fn(d); err != nil {
		return err
	}
	for _, child := range d.children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// childIDs returns the module ids of the attached children.
func (d *Definition) childIDs() []string {
	ids := make([]string, len(d.children))
	for i, child := range d.children {
		ids[i] = string(child.moduleID)
	}
	return ids
}
