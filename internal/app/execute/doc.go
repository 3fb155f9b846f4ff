// SPDX-License-Identifier: MPL-2.0

// Package execute is the runner application service. It layers the input
// property sources, builds the project definition tree, retrieves the engine,
// and hands the flattened tree to the engine launcher. It decouples CLI-layer
// flag handling from the build and hand-off pipeline.
package execute
