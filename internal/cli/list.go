package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agentx-labs/cargo-ensure/internal/cargo"
	"github.com/agentx-labs/cargo-ensure/internal/manifest"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	listJSON bool
	listYAML bool
)

var listCmd = &cobra.Command{
	Use:   "list [package]",
	Short: "List packages recorded in .crates.toml",
	Long:  `List the packages cargo has installed into the cargo home, as recorded in .crates.toml.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	path := settings.ManifestPath()
	raw, err := cargo.ReadManifest(path)
	if err != nil {
		return err
	}

	entries, err := listEntries(path, raw, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case listJSON:
		return printListJSON(out, entries)
	case listYAML:
		return printListYAML(out, entries)
	}

	if len(entries) == 0 {
		if len(args) > 0 {
			fmt.Fprintf(out, "%s is not installed.\n", args[0])
		} else {
			fmt.Fprintln(out, "No packages installed yet.")
		}
		return nil
	}
	return printListTable(out, entries)
}

// listEntries parses raw and returns its entries, filtered to the named
// package when one is given. An empty manifest has no entries.
func listEntries(path, raw string, args []string) ([]manifest.Entry, error) {
	if raw == "" {
		return []manifest.Entry{}, nil
	}
	m, err := manifest.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(args) == 0 {
		return m.Entries, nil
	}
	if e, ok := m.Lookup(args[0]); ok {
		return []manifest.Entry{e}, nil
	}
	return []manifest.Entry{}, nil
}

func printListTable(w io.Writer, entries []manifest.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSOURCE\tBINARIES")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		bins := strings.Join(e.Binaries, ",")
		if bins == "" {
			bins = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, version, e.Source, bins)
	}
	return tw.Flush()
}

func printListJSON(w io.Writer, entries []manifest.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printListYAML(w io.Writer, entries []manifest.Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
