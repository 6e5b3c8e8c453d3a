package cli

import (
	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	execTarget     TargetFlags
	execStdin      bool
	execTTY        bool
	execDockerPort int
	execAPIVersion string

	sshTarget TargetFlags
	sshUser   string
	sshPort   int
	sshNative bool
	sshNoSudo bool

	resolveTarget TargetFlags
	resolveJSON   bool
)

// execCmd runs a command through the container instance's Docker API
var execCmd = &cobra.Command{
	Use:   "exec TASK COMMAND...",
	Short: "Run a command in a task's container through the Docker API",
	Long: `Run a command inside one of a task's containers by talking to the Docker
Engine API on the container instance the task runs on.

The task must run on EC2 capacity and the instance must expose the Docker API
on --docker-port. Everything after TASK is the command, flags included.

Examples:
  ecsctl exec 1a2b3c4d env
  ecsctl exec -it 1a2b3c4d sh
  ecsctl exec --container envoy 1a2b3c4d cat /etc/envoy/envoy.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execCommand(cmd.Context(), ExecOptions{
			Task:       args[0],
			Command:    args[1:],
			Container:  execTarget.Container,
			Stdin:      execStdin,
			TTY:        execTTY,
			DockerPort: execDockerPort,
			APIVersion: execAPIVersion,
		})
	},
}

// sshCmd logs into the container instance and runs docker there
var sshCmd = &cobra.Command{
	Use:   "ssh TASK [COMMAND...]",
	Short: "Run a command in a task's container over SSH",
	Long: `Log into the container instance a task runs on and run the command in the
task's container with docker exec. Only the SSH port needs to be reachable.

A single quoted argument is run as a shell snippet inside the container. With
no command you get an interactive shell.

Examples:
  ecsctl ssh 1a2b3c4d
  ecsctl ssh 1a2b3c4d ls -la /app
  ecsctl ssh --user ec2-user 1a2b3c4d "ps aux | grep node"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sshCommand(cmd.Context(), SSHOptions{
			Task:      args[0],
			Command:   args[1:],
			Container: sshTarget.Container,
			User:      sshUser,
			Port:      sshPort,
			Native:    sshNative,
			NoSudo:    sshNoSudo,
		})
	},
}

// resolveCmd prints where a task's container runs without connecting to it
var resolveCmd = &cobra.Command{
	Use:   "resolve TASK",
	Short: "Show the host and container a task resolves to",
	Long: `Resolve a task to its container instance host and container, and print the
Docker API and SSH endpoints exec and ssh would use. Nothing is opened.

Examples:
  ecsctl resolve 1a2b3c4d
  ecsctl resolve --container envoy --json 1a2b3c4d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveCommand(cmd.Context(), ResolveOptions{
			Task:      args[0],
			Container: resolveTarget.Container,
			JSON:      resolveJSON,
		}, cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ecsctl.

Examples:
  # Bash
  ecsctl completion bash > /etc/bash_completion.d/ecsctl

  # Zsh
  ecsctl completion zsh > "${fpath[1]}/_ecsctl"

  # Fish
  ecsctl completion fish > ~/.config/fish/completions/ecsctl.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// exec command flags; everything after TASK belongs to the remote command
	execCmd.Flags().SetInterspersed(false)
	AddTargetFlags(execCmd, &execTarget)
	execCmd.Flags().BoolVarP(&execStdin, "stdin", "i", false, "keep stdin open and forward it")
	execCmd.Flags().BoolVarP(&execTTY, "tty", "t", false, "allocate a TTY")
	execCmd.Flags().IntVar(&execDockerPort, "docker-port", 0, "Docker API port on the container instance (default from config, 2375)")
	execCmd.Flags().StringVar(&execAPIVersion, "docker-api-version", "", "pin the Docker API version (default: negotiate)")

	// ssh command flags
	sshCmd.Flags().SetInterspersed(false)
	AddTargetFlags(sshCmd, &sshTarget)
	sshCmd.Flags().StringVar(&sshUser, "user", "", "SSH user (default $ECS_USER, then $USER)")
	sshCmd.Flags().IntVar(&sshPort, "ssh-port", 0, "SSH port on the container instance (default from config, 22)")
	sshCmd.Flags().BoolVar(&sshNative, "native", false, "use the built-in SSH client instead of the ssh binary")
	sshCmd.Flags().BoolVar(&sshNoSudo, "no-sudo", false, "run docker without sudo on the instance")

	// resolve command flags
	AddTargetFlags(resolveCmd, &resolveTarget)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "print a JSON envelope instead of YAML")

	// Register all commands
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(completionCmd)
}
