// Package manifest parses cargo's install-state file (.crates.toml) into
// explicit installed-entry records and lints it against an embedded JSON
// Schema. The package never reads files itself; callers hand it raw text.
package manifest
