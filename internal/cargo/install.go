package cargo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Installer installs a package at a version requirement.
type Installer interface {
	Install(ctx context.Context, pkg, req string) error
}

// ExitError reports a cargo run that finished with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("cargo install exited with status %d", e.Code)
}

// CommandInstaller runs `<Bin> install --force --vers <req> <pkg>`.
type CommandInstaller struct {
	// Bin is the cargo executable, looked up in PATH when it has no
	// separator. Defaults to "cargo".
	Bin string
	// Home is exported to the child as CARGO_HOME when set.
	Home string
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Args returns the argument list passed to cargo.
func Args(pkg, req string) []string {
	return []string{"install", "--force", "--vers", req, pkg}
}

// Install runs cargo and waits for it. Cancelling ctx kills the process.
func (c *CommandInstaller) Install(ctx context.Context, pkg, req string) error {
	bin := c.Bin
	if bin == "" {
		bin = "cargo"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("locating cargo: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, Args(pkg, req)...)
	cmd.Env = os.Environ()
	if c.Home != "" {
		cmd.Env = setEnv(cmd.Env, "CARGO_HOME", c.Home)
	}

	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("running cargo", "bin", path, "args", strings.Join(cmd.Args[1:], " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		if ctx.Err() != nil {
			return fmt.Errorf("cargo install interrupted: %w", ctx.Err())
		}
		return fmt.Errorf("running cargo: %w", err)
	}
	return nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
