// SPDX-License-Identifier: MPL-2.0

// Package projectdef builds the hierarchical project definition handed to the analysis
// engine from a flat property set.
//
// The build runs in two passes:
//
//  1. Construction (pre-order). Each node resolves deprecated property names, checks its
//     mandatory properties, and discovers the modules listed in "sonar.modules". A child is
//     built either from the parent's "<moduleId>." scoped properties or from an external
//     property file, inherits the parent's remaining properties, and recurses.
//  2. Cleaning (post-order). Aggregators (nodes with children) lose their leaf-only and
//     module-scoped properties; leaves get their source directories checked and their
//     library patterns expanded to absolute file lists.
//
// Every node owns an independent copy of its properties. The first error aborts the whole
// build; there is no partial tree.
package projectdef
