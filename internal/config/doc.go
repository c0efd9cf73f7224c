// Package config loads and validates the TOML configuration shared by every
// audiosum command.
//
// Loading is a three step pipeline: defaults, file decode, then
// normalization (path expansion, env fallbacks) and validation. Commands
// receive a fully resolved Config and never consult the environment
// themselves.
package config
