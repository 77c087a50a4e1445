package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"
	t.Cleanup(func() {
		buildVersion, buildCommit, buildDate = "", "", ""
		versionShort, versionJSON = false, false
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string)
	}{
		{"plain", []string{"version"}, func(t *testing.T, out string) {
			if out != "cargo-ensure version 1.2.3 (commit: abc123, built: 2026-01-01)\n" {
				t.Errorf("output = %q", out)
			}
		}},
		{"short", []string{"version", "--short"}, func(t *testing.T, out string) {
			if strings.TrimSpace(out) != "1.2.3" {
				t.Errorf("output = %q", out)
			}
		}},
		{"json", []string{"version", "--short=false", "--json"}, func(t *testing.T, out string) {
			var info map[string]string
			if err := json.Unmarshal([]byte(out), &info); err != nil {
				t.Fatalf("invalid JSON %q: %v", out, err)
			}
			if info["commit"] != "abc123" {
				t.Errorf("commit = %q", info["commit"])
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(tt.args)
			if err := rootCmd.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("Execute error: %v", err)
			}
			tt.check(t, out.String())
		})
	}
}
