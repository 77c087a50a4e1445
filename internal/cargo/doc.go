// Package cargo is the boundary to the cargo toolchain: it locates and
// reads the install-state manifest under a cargo home directory and runs
// `cargo install` when a package needs installing.
package cargo
