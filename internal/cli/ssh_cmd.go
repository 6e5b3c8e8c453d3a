package cli

import (
	"context"

	"github.com/rileyhilliard/ecsctl/internal/config"
	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/session"
	"github.com/rileyhilliard/ecsctl/internal/util"
)

// SSHOptions are the ssh command's parsed arguments. Zero values fall back to
// the config.
type SSHOptions struct {
	Task      string
	Command   []string
	Container string
	User      string
	Port      int
	Native    bool
	NoSudo    bool
}

// sshCommand logs into the task's host and runs the command in its container
// with docker exec.
func sshCommand(ctx context.Context, opts SSHOptions) error {
	if err := ValidatePortFlag("ssh-port", opts.Port); err != nil {
		return err
	}

	wf, err := SetupWorkflow(ctx, globalWorkflowOptions(opts.Task))
	if err != nil {
		return err
	}
	cfg := wf.Config

	user := opts.User
	if user == "" {
		user = cfg.SSH.User
	}
	if user == "" {
		return errors.New(errors.ErrConfig,
			"No SSH user to log in as",
			"Pass --user, set ECS_USER, or set ssh.user in your config.")
	}
	if opts.Native {
		cfg.SSH.Transport = config.TransportNative
	}

	prompt := util.JoinArgs(opts.Command)
	if prompt == "" {
		prompt = "sh"
	}

	s := session.NewRemoteShell(session.RemoteShellConfig{
		Target:   wf.Target(opts.Task, opts.Container, opts.Command),
		User:     user,
		Port:     pickPort(opts.Port, cfg.SSH.Port),
		Sudo:     cfg.SSH.Sudo && !opts.NoSudo,
		Binary:   cfg.SSH.Binary,
		Resolver: wf.Resolver,
		Runner:   backend.remoteRunner(cfg),
		Logger:   logger.Named("ssh"),
		OnState:  wf.OnState("SSH "+user, prompt),
	})
	return s.Execute(ctx)
}
