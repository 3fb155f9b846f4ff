// SPDX-License-Identifier: MPL-2.0

// Package engine retrieves the analysis engine from a server and hands a built
// project definition over to it.
//
// The package is organized into four concerns:
//   - index.go: parsing of the bootstrap index ("filename|hash" lines)
//   - cache.go: MD5-verified file cache keyed by (filename, hash)
//   - server.go: HTTP connection to the server (index and file downloads)
//   - launcher.go: Launcher hand-off, with a SimulatedLauncher that dumps properties
package engine
