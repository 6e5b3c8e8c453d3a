package session

import (
	"context"

	"github.com/rileyhilliard/ecsctl/internal/endpoint"
	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/exec"
	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/runtime"
	"github.com/rileyhilliard/ecsctl/internal/tty"
)

// DirectConfig configures a Direct session.
type DirectConfig struct {
	Target

	// Port is the Docker API port on the container instance.
	Port int
	// APIVersion pins the Docker API version. Empty negotiates.
	APIVersion string
	// TTY allocates a remote terminal.
	TTY bool
	// Stdin forwards local input, making the session interactive.
	Stdin bool

	Resolver Resolver
	Dialer   runtime.Dialer
	Terminal tty.Terminal
	Stdio    exec.Stdio
	Logger   logger.Logger
	OnState  StateFunc

	// OnRuntimeIDHint is called when the runtime id reported by the control
	// plane is used and the container listing is skipped.
	OnRuntimeIDHint func(container, id string)
}

// Direct execs through the Docker Engine API of the task's container instance.
type Direct struct {
	lifecycle
	cfg DirectConfig
}

// NewDirect creates a Direct session in the Created state.
func NewDirect(cfg DirectConfig) *Direct {
	log := logger.OrDefault(cfg.Logger)
	if cfg.Port == 0 {
		cfg.Port = runtime.DefaultPort
	}
	return &Direct{
		lifecycle: lifecycle{state: StateCreated, onState: cfg.OnState, log: log},
		cfg:       cfg,
	}
}

// Execute resolves the task, opens an exec in the container and streams it to
// completion. A non-zero remote exit is returned as *errors.ExitError.
func (s *Direct) Execute(ctx context.Context) (err error) {
	if !s.begin() {
		return errAlreadyExecuted()
	}
	defer func() { s.finish(err) }()

	ep, err := s.cfg.Resolver.Resolve(ctx, s.cfg.Task, s.cfg.Cluster)
	if err != nil {
		return err
	}
	name := effectiveContainer(s.cfg.Container, ep.Container)

	s.transition(StateChannelOpen)
	rt := runtime.Endpoint{Host: ep.Host, Port: s.cfg.Port, APIVersion: s.cfg.APIVersion}
	s.log.Debug("docker endpoint %s, container %s", rt.Address(), name)

	api, err := s.cfg.Dialer.Dial(ctx, rt)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := api.Close(); cerr != nil {
			s.log.Debug("close docker client: %v", cerr)
		}
	}()

	containerID, err := s.containerID(ctx, api, name, ep)
	if err != nil {
		return err
	}

	execID, err := api.CreateExec(ctx, containerID, runtime.ExecConfig{
		Cmd:         s.cfg.Command,
		AttachStdin: s.cfg.Stdin,
		Tty:         s.cfg.TTY,
	})
	if err != nil {
		return err
	}

	s.transition(StateStreaming)
	code, err := s.stream(ctx, api, execID)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.NewExitError(code)
	}
	return nil
}

// containerID uses the runtime id the control plane reported when the
// effective container is the task's default; otherwise it matches by label.
func (s *Direct) containerID(ctx context.Context, api runtime.API, name string, ep *endpoint.Endpoint) (string, error) {
	if name == ep.Container && ep.RuntimeID != "" {
		s.log.Debug("using runtime id %s for %s", ep.RuntimeID, name)
		if s.cfg.OnRuntimeIDHint != nil {
			s.cfg.OnRuntimeIDHint(name, ep.RuntimeID)
		}
		return ep.RuntimeID, nil
	}

	containers, err := api.ListContainers(ctx)
	if err != nil {
		return "", err
	}
	id, err := runtime.FindContainer(containers, name)
	if err != nil {
		s.log.Debug("no container labeled %s among %d on %s", name, len(containers), ep.Host)
		return "", err
	}
	s.log.Debug("matched %s to %s", name, id)
	return id, nil
}

// stream runs the exec. The local terminal is raw for the whole stream when
// the session is interactive with a TTY, and restored on every exit path.
func (s *Direct) stream(ctx context.Context, api runtime.API, execID string) (int, error) {
	opts := runtime.StartOptions{
		Tty:    s.cfg.TTY,
		Stdout: s.cfg.Stdio.Out,
		Stderr: s.cfg.Stdio.Err,
	}
	if s.cfg.Stdin {
		opts.Stdin = s.cfg.Stdio.In
	}

	if s.cfg.TTY && s.cfg.Terminal != nil {
		if w, h, ok := s.cfg.Terminal.Size(); ok {
			opts.Width, opts.Height = uint(w), uint(h)
		}
	}

	if s.cfg.TTY && s.cfg.Stdin && s.cfg.Terminal != nil && s.cfg.Terminal.IsTerminal() {
		restore, err := s.cfg.Terminal.MakeRaw()
		if err != nil {
			return 0, errors.WrapWithCode(err, errors.ErrExec,
				"Couldn't put the terminal in raw mode",
				"Run without -t, or from an interactive terminal.")
		}
		defer func() {
			if rerr := restore(); rerr != nil {
				s.log.Warn("restore terminal: %v", rerr)
			}
		}()
	}

	return api.StartExec(ctx, execID, opts)
}

func errAlreadyExecuted() error {
	return errors.New(errors.ErrExec, "This exec session already ran", "Create a new session for each command.")
}

var _ Session = (*Direct)(nil)
