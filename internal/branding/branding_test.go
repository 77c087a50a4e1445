package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "cargo-ensure" {
		t.Errorf("CLIName() = %q, want %q", got, "cargo-ensure")
	}
	if got := HomeDir(); got != ".cargo-ensure" {
		t.Errorf("HomeDir() = %q, want %q", got, ".cargo-ensure")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"cargo_home", "CARGO_ENSURE_CARGO_HOME"},
		{"LOG_LEVEL", "CARGO_ENSURE_LOG_LEVEL"},
		{"bin", "CARGO_ENSURE_BIN"},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			if got := EnvVar(tt.suffix); got != tt.want {
				t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		cliName string
		prefix  string
	}{
		{"empty keeps fallback", "", false, "cargo-ensure", "CARGO_ENSURE"},
		{"partial override", "cli_name: ensure\n", false, "ensure", "CARGO_ENSURE"},
		{"full override", "cli_name: x\nenv_prefix: X_TOOL\nhome_dir: .x\n", false, "x", "X_TOOL"},
		{"lower-case prefix", "env_prefix: cargo_ensure\n", true, "cargo-ensure", "CARGO_ENSURE"},
		{"nested home dir", "home_dir: .config/x\n", true, "cargo-ensure", "CARGO_ENSURE"},
		{"not yaml", "cli_name: [\n", true, "cargo-ensure", "CARGO_ENSURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseIdentity([]byte(tt.data))
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if id.CLIName != tt.cliName || id.EnvPrefix != tt.prefix {
				t.Errorf("identity = %+v, want cli %q prefix %q", id, tt.cliName, tt.prefix)
			}
		})
	}
}
