package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agentx-labs/cargo-ensure/internal/cargo"
	"github.com/agentx-labs/cargo-ensure/internal/config"
	"github.com/agentx-labs/cargo-ensure/internal/decision"
	"github.com/agentx-labs/cargo-ensure/internal/requirement"
	"github.com/spf13/cobra"
)

// ensureOptions are the inputs of one ensure run.
type ensureOptions struct {
	Package     string
	Requirement string
	DryRun      bool
}

func runEnsure(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), settings.LogLevel, settings.LogFormat)

	installer := &cargo.CommandInstaller{
		Bin:    settings.CargoBin,
		Home:   settings.CargoHome,
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	}

	opts := ensureOptions{
		Package:     ensurePackage,
		Requirement: ensureReq,
		DryRun:      ensureDryRun,
	}
	return ensure(cmd.Context(), settings, opts, installer, logger, cmd.OutOrStdout())
}

// ensure reads the manifest, decides, and installs when needed.
func ensure(ctx context.Context, s config.Settings, opts ensureOptions, inst cargo.Installer, logger *slog.Logger, out io.Writer) error {
	if strings.TrimSpace(opts.Package) == "" || strings.ContainsAny(opts.Package, " \t") {
		return fmt.Errorf("invalid package name %q", opts.Package)
	}
	req, err := requirement.Parse(opts.Requirement)
	if err != nil {
		return fmt.Errorf("invalid version requirement %q: %w", opts.Requirement, err)
	}

	path := s.ManifestPath()
	logger.Debug("reading manifest", "path", path)
	raw, err := cargo.ReadManifest(path)
	if err != nil {
		return err
	}

	res, err := decision.Evaluate(path, raw, opts.Package, req)
	if err != nil {
		return err
	}

	attrs := []any{"package", opts.Package, "requirement", req.String(), "reason", string(res.Reason)}
	if res.Installed != nil {
		attrs = append(attrs, "installed", res.Installed.String())
	}
	if !res.Install {
		logger.Info("requirement already satisfied", attrs...)
		return nil
	}
	logger.Info("install needed", attrs...)

	if opts.DryRun {
		fmt.Fprintf(out, "would run: %s %s\n", binName(s), strings.Join(cargo.Args(opts.Package, req.String()), " "))
		return nil
	}

	if err := inst.Install(ctx, opts.Package, req.String()); err != nil {
		return fmt.Errorf("error running cargo install: %w", err)
	}
	logger.Info("installed", "package", opts.Package, "requirement", req.String())
	return nil
}

func binName(s config.Settings) string {
	if s.CargoBin == "" {
		return "cargo"
	}
	return s.CargoBin
}
