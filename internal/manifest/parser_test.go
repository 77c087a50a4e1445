package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdataDir, name))
	if err != nil {
		t.Fatalf("reading testdata %s: %v", name, err)
	}
	return string(data)
}

func TestParse_Valid(t *testing.T) {
	m, err := Parse(readTestdata(t, "valid.toml"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(m.Entries) != 3 {
		t.Fatalf("Entries len = %d, want 3", len(m.Entries))
	}

	// Sorted by key.
	wantNames := []string{"protobuf", "ripgrep", "rustfmt"}
	for i, name := range wantNames {
		if m.Entries[i].Name != name {
			t.Errorf("Entries[%d].Name = %q, want %q", i, m.Entries[i].Name, name)
		}
	}

	rustfmt := m.Entries[2]
	if rustfmt.Version != "0.9.0" {
		t.Errorf("Version = %q, want %q", rustfmt.Version, "0.9.0")
	}
	if rustfmt.Source != "registry+https://github.com/rust-lang/crates.io-index" {
		t.Errorf("Source = %q", rustfmt.Source)
	}
	if len(rustfmt.Binaries) != 2 || rustfmt.Binaries[0] != "cargo-fmt" {
		t.Errorf("Binaries = %v, want [cargo-fmt rustfmt]", rustfmt.Binaries)
	}
}

func TestParse_OnlyHeader(t *testing.T) {
	m, err := Parse(readTestdata(t, "only-header.toml"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(m.Entries) != 0 {
		t.Errorf("Entries len = %d, want 0", len(m.Entries))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		file    string
		kind    error
		message string
	}{
		{"not-toml.toml", ErrMalformed, "malformed document"},
		{"missing-v1.toml", ErrMissingSection, `missing section "v1"`},
		{"v1-not-table.toml", ErrWrongSectionType, "v1 was not a table"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Parse(readTestdata(t, tt.file))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("errors.Is(err, %v) = false; err = %v", tt.kind, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.message)
			}
		})
	}
}

func TestParse_ScalarV1(t *testing.T) {
	_, err := Parse(`v1 = "nope"`)
	if !errors.Is(err, ErrWrongSectionType) {
		t.Errorf("expected ErrWrongSectionType, got %v", err)
	}
}

func TestParse_ArrayOfTablesV1(t *testing.T) {
	_, err := Parse("[[v1]]\n\"rustfmt 0.9.0 (registry)\" = []\n")
	if !errors.Is(err, ErrWrongSectionType) {
		t.Errorf("expected ErrWrongSectionType, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Section != SectionV1 {
		t.Errorf("expected *ParseError for section %q, got %v", SectionV1, err)
	}
}

func TestParse_InlineTableV1(t *testing.T) {
	m, err := Parse(`v1 = { "rustfmt 0.9.0 (registry)" = [] }`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if _, ok := m.Lookup("rustfmt"); !ok {
		t.Error("expected rustfmt entry from inline table")
	}
}

func TestParseEntryKey(t *testing.T) {
	tests := []struct {
		key     string
		name    string
		version string
		source  string
	}{
		{"rustfmt 0.9.0 (registry+https://github.com/rust-lang/crates.io-index)", "rustfmt", "0.9.0", "registry+https://github.com/rust-lang/crates.io-index"},
		{"tool 1.0.0-beta.1+build.5 (path+file:///src/tool)", "tool", "1.0.0-beta.1+build.5", "path+file:///src/tool"},
		{"tool 1.0.0", "tool", "1.0.0", ""},
		{"tool 1.0.0 unparenthesised", "tool", "1.0.0", "unparenthesised"},
		{"tool", "tool", "", ""},
		{"tool  1.0.0 (registry)", "tool", "", "1.0.0 (registry)"},
		{" tool 1.0.0 (registry)", "", "tool", "1.0.0 (registry)"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			e := ParseEntryKey(tt.key)
			if e.Name != tt.name {
				t.Errorf("Name = %q, want %q", e.Name, tt.name)
			}
			if e.Version != tt.version {
				t.Errorf("Version = %q, want %q", e.Version, tt.version)
			}
			if e.Source != tt.source {
				t.Errorf("Source = %q, want %q", e.Source, tt.source)
			}
			if e.String() != tt.key {
				t.Errorf("String() = %q, want %q", e.String(), tt.key)
			}
		})
	}
}

func TestEntryString_WithoutKey(t *testing.T) {
	e := Entry{Name: "rustfmt", Version: "0.9.0", Source: "registry"}
	if got := e.String(); got != "rustfmt 0.9.0 (registry)" {
		t.Errorf("String() = %q", got)
	}
	if got := ParseEntryKey(e.String()); got.Name != e.Name || got.Version != e.Version || got.Source != e.Source {
		t.Errorf("ParseEntryKey(String()) = %+v, want %+v", got, e)
	}
}

func TestLookup(t *testing.T) {
	m, err := Parse(`[v1]
"rustfmt2 1.0.0 (registry)" = ["rustfmt2"]
"rustfmt-nightly 0.3.0 (registry)" = ["rustfmt"]
"cargo-rustfmt 0.1.0 (registry)" = []
`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if _, ok := m.Lookup("rustfmt"); ok {
		t.Error("Lookup(rustfmt) matched an entry for a different package")
	}
	e, ok := m.Lookup("rustfmt2")
	if !ok {
		t.Fatal("Lookup(rustfmt2) found nothing")
	}
	if e.Version != "1.0.0" {
		t.Errorf("Version = %q, want 1.0.0", e.Version)
	}
}

func TestLookup_NilManifest(t *testing.T) {
	var m *Manifest
	if _, ok := m.Lookup("rustfmt"); ok {
		t.Error("nil manifest should not match")
	}
}
