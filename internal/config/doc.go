// Package config resolves cargo-ensure settings from flags, environment and
// ~/.cargo-ensure/config.yaml, and writes user-level keys back to that file.
// Resolved settings are passed explicitly to the rest of the program; the
// decision code never reads the environment.
package config
