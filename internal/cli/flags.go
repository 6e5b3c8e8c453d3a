package cli

import (
	"fmt"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/spf13/cobra"
)

// TargetFlags holds the container selection flag shared by exec, ssh and resolve.
type TargetFlags struct {
	Container string
}

// AddTargetFlags registers --container on a command.
func AddTargetFlags(cmd *cobra.Command, flags *TargetFlags) {
	cmd.Flags().StringVar(&flags.Container, "container", "", "container name (default: the task's first container)")
}

// ValidatePortFlag rejects a port flag outside 1-65535. Zero means the flag
// was not given.
func ValidatePortFlag(name string, port int) error {
	if port == 0 || (port > 0 && port <= 65535) {
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("--%s must be between 1 and 65535, got %d", name, port),
		"Leave the flag off to use the port from your config.")
}

// pickPort returns the flag value when given, else the configured port.
func pickPort(flag, configured int) int {
	if flag != 0 {
		return flag
	}
	return configured
}

// requireCommand fails when no remote command was given.
func requireCommand(command []string, usage string) error {
	if len(command) > 0 {
		return nil
	}
	return errors.New(errors.ErrExec, "What should I run?", "Usage: "+usage)
}
