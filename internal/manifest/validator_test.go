package manifest

import (
	"errors"
	"testing"
)

func TestValidate_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid.toml", "only-header.toml"} {
		t.Run(file, func(t *testing.T) {
			result, err := Validate(readTestdata(t, file))
			if err != nil {
				t.Fatalf("Validate(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
			if result.Summary() != "valid" {
				t.Errorf("Summary() = %q, want %q", result.Summary(), "valid")
			}
		})
	}
}

func TestValidate_InvalidManifests(t *testing.T) {
	tests := []struct {
		file string
		desc string
	}{
		{"missing-v1.toml", "v1 section absent"},
		{"v1-not-table.toml", "v1 is an array"},
		{"bad-key.toml", "entry key without version and source"},
		{"bad-value.toml", "entry value is not an array"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := Validate(readTestdata(t, tt.file))
			if err != nil {
				t.Fatalf("Validate(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s (%s)", tt.file, tt.desc)
			}
			if result.Summary() == "valid" {
				t.Errorf("Summary() = %q for invalid manifest", result.Summary())
			}
		})
	}
}

func TestValidate_MalformedTOML(t *testing.T) {
	_, err := Validate(readTestdata(t, "not-toml.toml"))
	if err == nil {
		t.Fatal("expected error for malformed TOML, got nil")
	}
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestValidationResultSummary(t *testing.T) {
	one := &ValidationResult{Issues: []ValidationIssue{{Message: "x"}}}
	if got := one.Summary(); got != "1 issue" {
		t.Errorf("Summary() = %q, want %q", got, "1 issue")
	}
	three := &ValidationResult{Issues: make([]ValidationIssue, 3)}
	if got := three.Summary(); got != "3 issues" {
		t.Errorf("Summary() = %q, want %q", got, "3 issues")
	}
}

func TestDeduplicateIssues(t *testing.T) {
	issues := []ValidationIssue{
		{Path: "/v1", Keyword: "type", Message: "want object"},
		{Path: "/v1", Keyword: "type", Message: "want object"},
		{Path: "", Keyword: "required", Message: "missing v1"},
	}
	if got := deduplicateIssues(issues); len(got) != 2 {
		t.Errorf("deduplicateIssues len = %d, want 2", len(got))
	}
}
