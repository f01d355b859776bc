// Package config loads, normalizes, and validates the TOML configuration
// for mediapress. Tool binaries are resolved here once and handed to the
// components that invoke them; nothing reads tool paths from process-wide
// state.
package config
