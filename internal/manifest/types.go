package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// SectionV1 is the required top-level table of .crates.toml.
const SectionV1 = "v1"

// Manifest is a parsed .crates.toml. Entries are sorted by key.
type Manifest struct {
	Entries []Entry
}

// Entry is one installed package, decoded from a composite key of the form
// "<name> <version> (<source>)".
type Entry struct {
	Key      string   `json:"key" yaml:"key"`
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"version" yaml:"version"`
	Source   string   `json:"source,omitempty" yaml:"source,omitempty"`
	Binaries []string `json:"binaries,omitempty" yaml:"binaries,omitempty"`
}

// ParseEntryKey splits a composite key on single spaces. It never fails:
// a key without a second component, or with consecutive spaces after the
// name, yields an entry with an empty Version.
func ParseEntryKey(key string) Entry {
	e := Entry{Key: key}
	parts := strings.SplitN(key, " ", 3)
	e.Name = parts[0]
	if len(parts) > 1 {
		e.Version = parts[1]
	}
	if len(parts) > 2 {
		src := parts[2]
		if strings.HasPrefix(src, "(") && strings.HasSuffix(src, ")") {
			src = src[1 : len(src)-1]
		}
		e.Source = src
	}
	return e
}

// String renders the entry back into its composite key form.
func (e Entry) String() string {
	if e.Key != "" {
		return e.Key
	}
	s := e.Name + " " + e.Version
	if e.Source != "" {
		s += " (" + e.Source + ")"
	}
	return s
}

// Lookup returns the entry installed for pkg. An entry matches when the
// first space-delimited component of its key equals pkg, so "rustfmt"
// never matches "rustfmt2 1.0.0 (...)".
func (m *Manifest) Lookup(pkg string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	for _, e := range m.Entries {
		if e.Name == pkg {
			return e, true
		}
	}
	return Entry{}, false
}

// Sentinel errors for each parse failure kind. A *ParseError matches its
// kind's sentinel under errors.Is.
var (
	ErrMalformed        = errors.New("malformed document")
	ErrMissingSection   = errors.New("missing section")
	ErrWrongSectionType = errors.New("section is not a table")
)

// ParseError describes why raw text could not be turned into a Manifest.
type ParseError struct {
	Kind    error  // one of ErrMalformed, ErrMissingSection, ErrWrongSectionType
	Section string // set for section errors
	Err     error  // underlying TOML decode error, if any
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrMissingSection:
		return fmt.Sprintf("missing section %q", e.Section)
	case ErrWrongSectionType:
		return fmt.Sprintf("%s was not a table", e.Section)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%v: %v", e.Kind, e.Err)
		}
		return e.Kind.Error()
	}
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
