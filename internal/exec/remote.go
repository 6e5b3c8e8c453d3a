// Package exec runs remote-shell commands against cluster hosts, either
// through the local ssh binary or with an in-process SSH client.
package exec

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/ecsctl/internal/util"
)

// RemoteCommand is one command line to run on a cluster host.
type RemoteCommand struct {
	// Binary is the local ssh client. Only the system runner uses it.
	Binary string
	User   string
	Host   string
	Port   int
	// Remote is the command line the remote shell runs.
	Remote string
}

// Destination returns user@host.
func (c RemoteCommand) Destination() string {
	if c.User == "" {
		return c.Host
	}
	return c.User + "@" + c.Host
}

// CommandLine renders the full local invocation, always forcing a remote
// pseudo-terminal:
//
//	ssh -tt -p 22 deploy@10.0.0.5 '<remote>'
//
// Every token is quoted for the local shell, so Remote reaches the host
// unchanged and is expanded there.
func (c RemoteCommand) CommandLine() string {
	return fmt.Sprintf("%s -tt -p %d %s %s",
		util.QuoteArg(c.binary()), c.Port, util.QuoteArg(c.Destination()), util.ShellQuote(c.Remote))
}

// Runner runs a RemoteCommand in the foreground and blocks until the remote
// session ends. A non-zero remote exit is returned as *errors.ExitError.
type Runner interface {
	Run(ctx context.Context, cmd RemoteCommand) error
}

func (c RemoteCommand) binary() string {
	if c.Binary == "" {
		return "ssh"
	}
	return c.Binary
}
