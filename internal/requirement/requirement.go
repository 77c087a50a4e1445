package requirement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrEmpty is returned for a requirement with no clauses, or with an empty
// clause between commas.
var ErrEmpty = errors.New("empty version requirement")

// ErrAlternatives is returned for requirements using "||", which cargo
// does not accept.
var ErrAlternatives = errors.New("alternatives (||) are not supported")

// ErrSyntax is returned for a clause cargo would not accept, such as two
// versions joined by a space or a version written with a "v" prefix.
var ErrSyntax = errors.New("invalid requirement syntax")

// operators in match order; two-character operators come first.
var operators = []string{">=", "<=", "=", ">", "<", "~", "^"}

// Requirement is a parsed cargo version requirement. Comma separated
// clauses must all hold. A clause without an operator is caret-compatible,
// so "0.9.0" accepts 0.9.x but not 0.10.0.
type Requirement struct {
	raw         string
	constraints *semver.Constraints
	// major.minor.patch of every clause naming a pre-release
	preTuples [][3]uint64
}

// Parse parses a cargo-style version requirement.
func Parse(raw string) (*Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmpty
	}
	if strings.Contains(trimmed, "||") {
		return nil, ErrAlternatives
	}

	r := &Requirement{raw: trimmed}
	clauses := strings.Split(trimmed, ",")
	for i, c := range clauses {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, ErrEmpty
		}
		op, ver, err := splitClause(c)
		if err != nil {
			return nil, fmt.Errorf("parsing requirement %q: %w", trimmed, err)
		}
		if op == "" && isBare(ver) {
			op = "^"
		}
		if v, err := semver.NewVersion(ver); err == nil && v.Prerelease() != "" {
			r.preTuples = append(r.preTuples, [3]uint64{v.Major(), v.Minor(), v.Patch()})
		}
		clauses[i] = op + ver
	}

	constraints, err := semver.NewConstraint(strings.Join(clauses, ", "))
	if err != nil {
		return nil, fmt.Errorf("parsing requirement %q: %w", trimmed, err)
	}
	r.constraints = constraints
	return r, nil
}

// splitClause separates a clause into its operator and version. Whitespace
// may follow the operator but not appear inside the version.
func splitClause(c string) (op, ver string, err error) {
	for _, o := range operators {
		if strings.HasPrefix(c, o) {
			op = o
			break
		}
	}
	ver = strings.TrimSpace(c[len(op):])
	switch {
	case ver == "":
		return "", "", fmt.Errorf("%w: %q has no version", ErrSyntax, c)
	case strings.ContainsAny(ver, " \t"):
		return "", "", fmt.Errorf("%w: %q holds more than one version; separate clauses with commas", ErrSyntax, c)
	case ver[0] == 'v' || ver[0] == 'V':
		return "", "", fmt.Errorf("%w: %q has a leading v", ErrSyntax, c)
	case !(ver[0] >= '0' && ver[0] <= '9') && !strings.ContainsRune("*xX", rune(ver[0])):
		return "", "", fmt.Errorf("%w: %q is not a version", ErrSyntax, c)
	}
	return op, ver, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level values.
func MustParse(raw string) *Requirement {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the requirement as written, which is what cargo expects
// for --vers.
func (r *Requirement) String() string {
	return r.raw
}

// Matches reports whether v satisfies every clause. A pre-release version
// only matches when some clause names a pre-release of the same
// major.minor.patch, so ^1.0.0-beta accepts 1.0.0-beta.2 but not 1.5.0-beta.
func (r *Requirement) Matches(v *semver.Version) bool {
	if r == nil || v == nil {
		return false
	}
	if v.Prerelease() != "" && !r.allowsPrerelease(v) {
		return false
	}
	return r.constraints.Check(v)
}

func (r *Requirement) allowsPrerelease(v *semver.Version) bool {
	tuple := [3]uint64{v.Major(), v.Minor(), v.Patch()}
	for _, t := range r.preTuples {
		if t == tuple {
			return true
		}
	}
	return false
}

// ParseVersion parses an installed version strictly: major.minor.patch with
// optional pre-release and build metadata. No "v" prefix, no shorthand.
func ParseVersion(raw string) (*semver.Version, error) {
	return semver.StrictNewVersion(raw)
}

// isBare reports whether a clause starts with a version rather than an
// operator, and contains no wildcard component.
func isBare(clause string) bool {
	if clause[0] < '0' || clause[0] > '9' {
		return false
	}
	core := clause
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return !strings.ContainsAny(core, "*xX")
}
