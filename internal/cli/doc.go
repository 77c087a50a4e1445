// Package cli defines the Cobra command tree for cargo-ensure. The root
// command performs the ensure operation; list, check, config and version
// are registered as subcommands. Command implementations delegate to
// internal packages for business logic and only handle flags, settings
// and output formatting.
package cli
