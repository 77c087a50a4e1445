// Package decision decides whether a cargo package must be (re)installed
// to satisfy a version requirement, given the text of .crates.toml.
//
// Everything here is a pure function of its inputs: no files are read and
// no processes are started.
package decision

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/cargo-ensure/internal/manifest"
	"github.com/agentx-labs/cargo-ensure/internal/requirement"
)

// Reason explains an install decision.
type Reason string

const (
	ReasonNoManifest   Reason = "no-manifest"
	ReasonNotInstalled Reason = "not-installed"
	ReasonUnsatisfied  Reason = "unsatisfied"
	ReasonSatisfied    Reason = "satisfied"
)

// Result is the outcome of Evaluate.
type Result struct {
	Install bool
	Reason  Reason
	// Entry and Installed are set when the package was found.
	Entry     *manifest.Entry
	Installed *semver.Version
}

var (
	// ErrMalformedEntry is returned when the entry for the package has no
	// version component.
	ErrMalformedEntry = errors.New("malformed entry")
	// ErrInvalidVersion is returned when the installed version is not a
	// valid semantic version.
	ErrInvalidVersion = errors.New("invalid installed version")
)

// Error reports a manifest that could not be used to reach a decision.
// Kind is ErrMalformedEntry or ErrInvalidVersion, or nil when the manifest
// itself failed to parse and Err is the *manifest.ParseError.
type Error struct {
	Path  string // manifest path, for diagnostics only
	Value string // offending entry key or version string
	Kind  error
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMalformedEntry:
		return fmt.Sprintf("invalid .crates.toml at %s: entry %q has no version", e.Path, e.Value)
	case ErrInvalidVersion:
		return fmt.Sprintf("invalid .crates.toml at %s: %q could not be parsed as a version: %v", e.Path, e.Value, e.Err)
	}
	if errors.Is(e.Err, manifest.ErrMalformed) {
		return fmt.Sprintf("error parsing %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid .crates.toml at %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// ShouldInstall reports whether pkg must be installed to satisfy req.
// manifestPath is used only in error messages; raw is the manifest text,
// empty when the file does not exist.
func ShouldInstall(manifestPath, raw, pkg string, req *requirement.Requirement) (bool, error) {
	res, err := Evaluate(manifestPath, raw, pkg, req)
	if err != nil {
		return false, err
	}
	return res.Install, nil
}

// Evaluate is ShouldInstall with the reason and the matched entry attached.
func Evaluate(manifestPath, raw, pkg string, req *requirement.Requirement) (*Result, error) {
	// An empty file means nothing has been installed yet. It is not parsed,
	// so it never trips the missing-section check.
	if len(raw) == 0 {
		return &Result{Install: true, Reason: ReasonNoManifest}, nil
	}

	m, err := manifest.Parse(raw)
	if err != nil {
		return nil, &Error{Path: manifestPath, Err: err}
	}

	entry, ok := m.Lookup(pkg)
	if !ok {
		return &Result{Install: true, Reason: ReasonNotInstalled}, nil
	}
	if entry.Version == "" {
		return nil, &Error{Path: manifestPath, Value: entry.Key, Kind: ErrMalformedEntry}
	}

	have, err := requirement.ParseVersion(entry.Version)
	if err != nil {
		return nil, &Error{Path: manifestPath, Value: entry.Version, Kind: ErrInvalidVersion, Err: err}
	}

	res := &Result{Entry: &entry, Installed: have}
	if req.Matches(have) {
		res.Reason = ReasonSatisfied
	} else {
		res.Install = true
		res.Reason = ReasonUnsatisfied
	}
	return res, nil
}
