// Package runtime talks to the container runtime on a cluster host. It defines
// the small slice of the Docker Engine API that exec sessions use, a Docker
// implementation of it, and the label matching that maps a task's logical
// container name to a runtime container id.
package runtime

import (
	"context"
	"io"
	"net"
	"strconv"
)

// DefaultPort is the Docker Engine API port on container instances.
const DefaultPort = 2375

// Container is one entry of a runtime container listing.
type Container struct {
	ID     string
	Labels map[string]string
}

// ExecConfig describes an exec instance to create.
type ExecConfig struct {
	Cmd         []string
	AttachStdin bool
	Tty         bool
}

// StartOptions wires an exec instance to local streams.
type StartOptions struct {
	Tty bool
	// Stdin is forwarded to the remote process when non-nil.
	Stdin  io.Reader
	Stdout io.Writer
	// Stderr receives the remote stderr stream when Tty is false.
	Stderr io.Writer
	// Width and Height set the remote terminal size when Tty is true and both are non-zero.
	Width  uint
	Height uint
}

// API is the container-runtime API reached at one host.
type API interface {
	// ListContainers returns running containers in the runtime's order.
	ListContainers(ctx context.Context) ([]Container, error)
	// CreateExec creates an exec instance in containerID and returns its id.
	CreateExec(ctx context.Context, containerID string, cfg ExecConfig) (string, error)
	// StartExec runs the exec instance, streams its I/O until the remote
	// process exits, and returns the remote exit code.
	StartExec(ctx context.Context, execID string, opts StartOptions) (int, error)
	Close() error
}

// Endpoint locates a runtime API.
type Endpoint struct {
	Host string
	Port int
	// APIVersion pins the API version. Empty negotiates with the daemon.
	APIVersion string
}

// Address returns host:port.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// Dialer opens an API for an endpoint.
type Dialer interface {
	Dial(ctx context.Context, ep Endpoint) (API, error)
}
