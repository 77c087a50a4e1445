package cli

import (
	"fmt"

	"github.com/agentx-labs/cargo-ensure/internal/cargo"
	"github.com/agentx-labs/cargo-ensure/internal/manifest"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint .crates.toml against its expected structure",
	Long: `Check validates .crates.toml against an embedded schema. It is stricter than
the install decision: every entry key must read "<name> <version> (<source>)"
and every value must be a list of binary names.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	path := settings.ManifestPath()
	raw, err := cargo.ReadManifest(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if raw == "" {
		fmt.Fprintf(out, "%s: not present, nothing installed yet\n", path)
		return nil
	}

	result, err := manifest.Validate(raw)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	if result.Valid {
		fmt.Fprintf(out, "%s: %s\n", path, result.Summary())
		return nil
	}

	for _, issue := range result.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		fmt.Fprintf(out, "  %s: %s (%s)\n", loc, issue.Message, issue.Keyword)
	}
	return fmt.Errorf("%s: %s", path, result.Summary())
}
