// SPDX-License-Identifier: MPL-2.0

// Package props models flat analysis property sets: string keys mapped to string values,
// as read from command-line flags, `.properties` files, or TOML module files.
//
// A Set never depends on iteration order. Every operation that emits keys sorts them,
// and list-valued properties (comma or semicolon separated) keep their declaration order.
package props
