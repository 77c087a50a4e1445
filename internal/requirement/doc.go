// Package requirement implements cargo's version requirement semantics on
// top of Masterminds semver: bare versions are caret requirements, commas
// join clauses, and installed versions are parsed strictly.
package requirement
