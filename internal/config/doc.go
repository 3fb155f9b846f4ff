// SPDX-License-Identifier: MPL-2.0

// Package config handles scanrunner configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/scanrunner/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/scanrunner/config.cue on macOS, %APPDATA%\scanrunner\config.cue
// on Windows), then from ./config.cue. Every key can be overridden by a SCANRUNNER_<KEY>
// environment variable (dots become underscores, e.g. SCANRUNNER_LOG_LEVEL).
//
// Configuration validation is performed against a CUE schema (config_schema.cue) and then
// by the typed IsValid methods for constraints the schema does not express.
package config
