package session

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rileyhilliard/ecsctl/internal/exec"
	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/runtime"
	"github.com/rileyhilliard/ecsctl/internal/util"
)

// RemoteShellConfig configures a RemoteShell session.
type RemoteShellConfig struct {
	Target

	// User and Port are the SSH login on the container instance.
	User string
	Port int
	// Sudo prefixes both docker invocations with sudo.
	Sudo bool
	// Binary is the local ssh client for the system runner.
	Binary string

	Resolver Resolver
	Runner   exec.Runner
	Logger   logger.Logger
	OnState  StateFunc
}

// RemoteShell logs into the container instance over SSH and runs docker
// there. It needs only the SSH port, not the Docker API port, and always
// allocates a remote terminal.
type RemoteShell struct {
	lifecycle
	cfg RemoteShellConfig
}

// NewRemoteShell creates a RemoteShell session in the Created state.
func NewRemoteShell(cfg RemoteShellConfig) *RemoteShell {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	return &RemoteShell{
		lifecycle: lifecycle{state: StateCreated, onState: cfg.OnState, log: logger.OrDefault(cfg.Logger)},
		cfg:       cfg,
	}
}

// Execute resolves the task's host and runs the composed command there in the
// foreground. The runner's failure, including the remote exit status, is
// returned unchanged.
func (s *RemoteShell) Execute(ctx context.Context) (err error) {
	if !s.begin() {
		return errAlreadyExecuted()
	}
	defer func() { s.finish(err) }()

	ep, err := s.cfg.Resolver.ResolveHost(ctx, s.cfg.Task, s.cfg.Cluster)
	if err != nil {
		return err
	}

	s.transition(StateChannelOpen)
	cmd := exec.RemoteCommand{
		Binary: s.cfg.Binary,
		User:   s.cfg.User,
		Host:   ep.Host,
		Port:   s.cfg.Port,
		Remote: ComposeRemoteCommand(effectiveContainer(s.cfg.Container, ep.Container), s.cfg.Command, s.cfg.Sudo),
	}
	s.log.Debug("remote command: %s", cmd.CommandLine())

	s.transition(StateStreaming)
	return s.cfg.Runner.Run(ctx, cmd)
}

// ComposeRemoteCommand builds the command line run on the container instance:
// find the container by its ECS name label, then exec the command in it.
//
//	sudo docker exec -it $(sudo docker ps -q --filter label=com.amazonaws.ecs.container-name=web) ls -la
//
// The label filter and every command word are quoted for the remote shell. A
// single command word containing whitespace is treated as a shell snippet and
// run through sh -c inside the container.
func ComposeRemoteCommand(container string, command []string, sudo bool) string {
	docker := "docker"
	if sudo {
		docker = "sudo docker"
	}
	filter := util.QuoteArg("label=" + runtime.ContainerNameLabel + "=" + container)
	return fmt.Sprintf("%s exec -it $(%s ps -q --filter %s) %s", docker, docker, filter, remoteArgs(command))
}

func remoteArgs(command []string) string {
	switch {
	case len(command) == 0:
		return "sh"
	case len(command) == 1 && strings.IndexFunc(command[0], unicode.IsSpace) >= 0:
		return "sh -c " + util.ShellQuote(command[0])
	default:
		return util.JoinArgs(command)
	}
}

var _ Session = (*RemoteShell)(nil)
