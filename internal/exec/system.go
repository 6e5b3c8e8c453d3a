package exec

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/logger"
)

// Stdio is the set of local streams a foreground command inherits.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the process's own standard streams.
func OSStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// DefaultShell interprets the generated command line. CommandLine quotes for
// POSIX sh, so the user's $SHELL (fish, nu, ...) is never used.
const DefaultShell = "/bin/sh"

// SystemRunner hands the command line to sh, so the user's ssh binary,
// ~/.ssh/config, agent and ProxyJump settings all apply.
type SystemRunner struct {
	// Shell interprets the command line. Empty means DefaultShell.
	Shell string
	Stdio Stdio
	Log   logger.Logger
}

// NewSystemRunner creates a runner on DefaultShell with the process's stdio.
func NewSystemRunner(log logger.Logger) *SystemRunner {
	return &SystemRunner{Shell: DefaultShell, Stdio: OSStdio(), Log: logger.OrDefault(log)}
}

func (r *SystemRunner) Run(ctx context.Context, cmd RemoteCommand) error {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}

	line := cmd.CommandLine()
	logger.OrDefault(r.Log).Debug("%s -c %s", shell, line)

	command := exec.CommandContext(ctx, shell, "-c", line)
	command.Stdin = r.Stdio.In
	command.Stdout = r.Stdio.Out
	command.Stderr = r.Stdio.Err

	runErr := command.Run()
	if runErr != nil {
		// Command ran but returned non-zero. ssh itself exits 255 on
		// connection failures; that status is passed through unchanged.
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) {
			return errors.NewExitError(exitErr.ExitCode())
		}
		return errors.WrapWithCode(runErr, errors.ErrChannel,
			"Couldn't start the ssh command",
			"Make sure '"+cmd.binary()+"' is installed and on your PATH, or use --native.")
	}

	return nil
}
