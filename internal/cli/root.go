package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	clusterFlag string
	regionFlag  string
	profileFlag string
	verbose     bool
	quiet       bool
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "ecsctl",
	Short: "Run commands inside ECS task containers",
	Long: `ecsctl runs commands inside the containers of ECS tasks on EC2 capacity.

It looks the task up in the control plane, finds the container instance the
task was placed on, and then either talks to that instance's Docker API
directly (exec) or logs in over SSH and runs docker there (ssh).

Examples:
  ecsctl exec -it 1a2b3c4d sh
  ecsctl exec --container envoy 1a2b3c4d cat /etc/envoy/envoy.yaml
  ecsctl ssh --cluster prod 1a2b3c4d "ps aux | grep node"
  ecsctl resolve 1a2b3c4d`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			os.Setenv(logger.DebugEnv, "1") //nolint:errcheck // only fails on invalid keys
		}
		if noColor {
			ui.DisableColors()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/ecsctl/config.yaml)")
	pf.StringVar(&clusterFlag, "cluster", "", "cluster name or ARN (default from config)")
	pf.StringVar(&regionFlag, "region", "", "AWS region (default from the AWS config chain)")
	pf.StringVar(&profileFlag, "profile", "", "AWS shared config profile")
	pf.BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "hide progress output")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Quiet reports whether progress output is suppressed.
func Quiet() bool {
	return quiet
}

// NoColor reports whether --no-color was given.
func NoColor() bool {
	return noColor
}

// globalWorkflowOptions collects the persistent flags every command passes on.
func globalWorkflowOptions(task string) WorkflowOptions {
	return WorkflowOptions{
		ConfigPath: Config(),
		Task:       task,
		Cluster:    clusterFlag,
		Region:     regionFlag,
		Profile:    profileFlag,
		Quiet:      Quiet(),
		NoColor:    NoColor(),
	}
}

// Execute runs the root command and exits. A remote command's non-zero status
// becomes ecsctl's own exit status.
func Execute() {
	os.Exit(exitCode(rootCmd.ExecuteContext(context.Background()), os.Stderr))
}

// exitCode prints err to w unless it only carries a remote exit status, and
// returns the status the process should exit with.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}
	fmt.Fprintln(w, err)
	return 1
}
