package cli

import (
	"context"
	"io"
	"os"

	"github.com/rileyhilliard/ecsctl/internal/config"
	"github.com/rileyhilliard/ecsctl/internal/controlplane"
	"github.com/rileyhilliard/ecsctl/internal/endpoint"
	"github.com/rileyhilliard/ecsctl/internal/exec"
	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/runtime"
	"github.com/rileyhilliard/ecsctl/internal/session"
	"github.com/rileyhilliard/ecsctl/internal/tty"
	"github.com/rileyhilliard/ecsctl/internal/ui"
	"github.com/rileyhilliard/ecsctl/pkg/sshutil"
)

// backends builds everything that reaches outside the process. Tests swap
// the package-level value for fakes.
type backends struct {
	controlPlane func(ctx context.Context, cfg *config.Config) (controlplane.Client, error)
	dockerDialer func(cfg *config.Config) runtime.Dialer
	remoteRunner func(cfg *config.Config) exec.Runner
	terminal     func() tty.Terminal
	stdio        func() exec.Stdio
	progress     io.Writer
}

func productionBackends() backends {
	return backends{
		controlPlane: func(ctx context.Context, cfg *config.Config) (controlplane.Client, error) {
			return controlplane.NewAWSClient(ctx, controlplane.AWSOptions{Region: cfg.Region, Profile: cfg.Profile})
		},
		dockerDialer: func(cfg *config.Config) runtime.Dialer {
			tls := cfg.Docker.TLS
			return runtime.NewDockerDialer(runtime.TLSFiles{CA: tls.CA, Cert: tls.Cert, Key: tls.Key}, logger.Named("docker"))
		},
		remoteRunner: func(cfg *config.Config) exec.Runner {
			if cfg.SSH.Transport == config.TransportNative {
				log := logger.Named("ssh")
				sshutil.WarningHandler = func(message string) { log.Warn("%s", message) }
				opts := sshutil.DefaultOptions()
				opts.StrictHostKeyChecking = cfg.SSH.StrictHostKeyChecking
				return exec.NewNativeRunner(opts, log)
			}
			return exec.NewSystemRunner(logger.Named("ssh"))
		},
		terminal: func() tty.Terminal { return tty.Stdin() },
		stdio:    exec.OSStdio,
		// Progress goes to stderr so stdout carries only the remote output.
		progress: os.Stderr,
	}
}

var backend = productionBackends()

// WorkflowOptions configures workflow setup.
type WorkflowOptions struct {
	ConfigPath string // --config
	Task       string // task being resolved, for progress labels
	Cluster    string // overrides cluster from config
	Region     string // overrides region from config
	Profile    string // overrides profile from config
	Quiet      bool   // hide progress
	NoColor    bool
}

// WorkflowContext holds what every command needs before it opens a session.
type WorkflowContext struct {
	Config   *config.Config
	Resolver *endpoint.Resolver
	Phases   *ui.PhaseDisplay
}

// SetupWorkflow loads and validates config, applies flag overrides, builds the
// control-plane client and a resolver that reports each hop to the phase
// display.
func SetupWorkflow(ctx context.Context, opts WorkflowOptions) (*WorkflowContext, error) {
	cfg, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, opts)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	ui.SetColorMode(cfg.Output.Color)
	if opts.NoColor {
		ui.DisableColors()
	}
	if cfg.Output.Verbosity == "verbose" {
		os.Setenv(logger.DebugEnv, "1") //nolint:errcheck // only fails on invalid keys
	}

	phases := ui.NewPhaseDisplay(backend.progress)
	phases.SetQuiet(opts.Quiet || cfg.Output.Verbosity == "quiet")

	client, err := backend.controlPlane(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resolver := endpoint.NewResolver(client,
		endpoint.WithLogger(logger.Named("resolve")),
		endpoint.WithStageFunc(func(stage endpoint.Stage) {
			phases.Begin(stageLabel(stage, opts.Task))
		}),
	)

	return &WorkflowContext{Config: cfg, Resolver: resolver, Phases: phases}, nil
}

func applyOverrides(cfg *config.Config, opts WorkflowOptions) {
	if opts.Cluster != "" {
		cfg.Cluster = opts.Cluster
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}
	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}
}

func stageLabel(stage endpoint.Stage, task string) string {
	switch stage {
	case endpoint.StageTask:
		return "Task " + task
	case endpoint.StageContainerInstance:
		return "Container instance"
	case endpoint.StageComputeInstance:
		return "Host"
	default:
		return string(stage)
	}
}

// Target builds the session target for task in the configured cluster.
func (w *WorkflowContext) Target(task, container string, command []string) session.Target {
	return session.Target{
		Task:      task,
		Cluster:   w.Config.Cluster,
		Container: container,
		Command:   command,
	}
}

// OnState drives the phase display from session transitions. channel labels
// the connection phase; prompt is echoed before the remote output starts.
func (w *WorkflowContext) OnState(channel, prompt string) session.StateFunc {
	return func(from, to session.State) {
		switch to {
		case session.StateChannelOpen:
			w.Phases.Begin(channel)
		case session.StateStreaming:
			w.Phases.Complete("")
			w.Phases.CommandPrompt(prompt)
			w.Phases.Divider()
		case session.StateFailed:
			w.Phases.Fail()
		}
	}
}
