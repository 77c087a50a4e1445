package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentx-labs/cargo-ensure/internal/branding"
	"github.com/agentx-labs/cargo-ensure/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags. Values left empty fall through to environment, config
// file and defaults.
var (
	cfgFile       string
	cargoHomeFlag string
	logLevelFlag  string
	logFormatFlag string
)

// Root command flags.
var (
	ensurePackage string
	ensureReq     string
	ensureDryRun  bool
	cargoBinFlag  string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " --package <name> --version <requirement>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` checks $CARGO_HOME/.crates.toml and runs
"cargo install --force --vers <requirement> <package>" only when the installed
version of the package does not satisfy the requirement.

Requirements follow cargo semantics: "0.9.0" means "^0.9.0".`,
	Example: `  ` + branding.CLIName() + ` -p rustfmt -v 0.9.0
  ` + branding.CLIName() + ` -p ripgrep -v ">=13, <15" --dry-run`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEnsure,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/"+branding.HomeDir()+"/config.yaml)")
	pf.StringVar(&cargoHomeFlag, "cargo-home", "", "cargo home directory (default $CARGO_HOME or ~/.cargo)")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error (default info)")
	pf.StringVar(&logFormatFlag, "log-format", "", "log format: text, json (default text)")

	f := rootCmd.Flags()
	f.StringVarP(&ensurePackage, "package", "p", "", "name of package to install (e.g. rustfmt)")
	f.StringVarP(&ensureReq, "version", "v", "", "version requirement to ensure is installed (e.g. 0.9.0)")
	f.BoolVar(&ensureDryRun, "dry-run", false, "report the decision without running cargo")
	f.StringVar(&cargoBinFlag, "cargo-bin", "", "cargo executable (default cargo)")
	_ = rootCmd.MarkFlagRequired("package")
	_ = rootCmd.MarkFlagRequired("version")
}

// flagKeys maps setting keys to the flags that override them.
var flagKeys = map[string]string{
	config.KeyCargoHome: "cargo-home",
	config.KeyCargoBin:  "cargo-bin",
	config.KeyLogLevel:  "log-level",
	config.KeyLogFormat: "log-format",
}

// loadConfig loads the config file and binds whichever override flags the
// running command defines.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := cfg.BindFlag(key, flag); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// loadSettings resolves settings for cmd.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Settings{}, err
	}
	return cfg.Settings()
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
	}
	return err
}
