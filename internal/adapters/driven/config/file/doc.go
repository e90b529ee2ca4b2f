// Package file provides the TOML-backed configuration store that keeps the
// server URL and API token between runs.
package file
