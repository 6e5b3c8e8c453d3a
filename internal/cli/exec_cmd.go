package cli

import (
	"context"

	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/session"
	"github.com/rileyhilliard/ecsctl/internal/util"
)

// ExecOptions are the exec command's parsed arguments. Zero values fall back
// to the config.
type ExecOptions struct {
	Task       string
	Command    []string
	Container  string
	Stdin      bool
	TTY        bool
	DockerPort int
	APIVersion string
}

// execCommand runs the command through the Docker API of the task's host.
func execCommand(ctx context.Context, opts ExecOptions) error {
	if err := requireCommand(opts.Command, "ecsctl exec TASK COMMAND...  (e.g., ecsctl exec -it 1a2b3c4d sh)"); err != nil {
		return err
	}
	if err := ValidatePortFlag("docker-port", opts.DockerPort); err != nil {
		return err
	}

	wf, err := SetupWorkflow(ctx, globalWorkflowOptions(opts.Task))
	if err != nil {
		return err
	}
	cfg := wf.Config

	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = cfg.Docker.APIVersion
	}

	s := session.NewDirect(session.DirectConfig{
		Target:     wf.Target(opts.Task, opts.Container, opts.Command),
		Port:       pickPort(opts.DockerPort, cfg.Docker.Port),
		APIVersion: apiVersion,
		TTY:        opts.TTY,
		Stdin:      opts.Stdin,
		Resolver:   wf.Resolver,
		Dialer:     backend.dockerDialer(cfg),
		Terminal:   backend.terminal(),
		Stdio:      backend.stdio(),
		Logger:     logger.Named("exec"),
		OnState:    wf.OnState("Docker API", util.JoinArgs(opts.Command)),
		OnRuntimeIDHint: func(container, id string) {
			wf.Phases.Skip("Container lookup", "runtime id known")
		},
	})
	return s.Execute(ctx)
}
