// Package session runs one command inside a task's container. Direct talks to
// the Docker API on the container instance; RemoteShell logs into the
// instance over SSH and runs docker there. Both share the endpoint resolver
// and follow the same lifecycle:
//
//	Created -> Resolving -> ChannelOpen -> Streaming -> Closed
//
// with Failed reachable from any non-terminal state.
package session

import (
	"context"
	"sync"

	"github.com/rileyhilliard/ecsctl/internal/endpoint"
	"github.com/rileyhilliard/ecsctl/internal/logger"
)

// State is a session lifecycle state.
type State int

const (
	StateCreated State = iota
	StateResolving
	StateChannelOpen
	StateStreaming
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateResolving:
		return "resolving"
	case StateChannelOpen:
		return "channel-open"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateFailed
}

// Session is one exec into a task's container. Execute may be called once.
type Session interface {
	Execute(ctx context.Context) error
	State() State
}

// Target names the task, the container and the command to run.
type Target struct {
	Task    string
	Cluster string
	// Container overrides the task's first declared container when set.
	Container string
	Command   []string
}

// Resolver is what sessions need from the endpoint resolver.
type Resolver interface {
	Resolve(ctx context.Context, task, cluster string) (*endpoint.Endpoint, error)
	ResolveHost(ctx context.Context, task, cluster string) (*endpoint.Endpoint, error)
}

// StateFunc observes state transitions.
type StateFunc func(from, to State)

// lifecycle tracks the current state and notifies the observer.
type lifecycle struct {
	mu      sync.Mutex
	state   State
	onState StateFunc
	log     logger.Logger
}

func (l *lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *lifecycle) transition(to State) {
	l.mu.Lock()
	from := l.state
	if from.Terminal() {
		l.mu.Unlock()
		return
	}
	l.state = to
	l.mu.Unlock()

	l.notify(from, to)
}

func (l *lifecycle) notify(from, to State) {
	l.log.Debug("%s -> %s", from, to)
	if l.onState != nil {
		l.onState(from, to)
	}
}

// begin moves from Created to Resolving. Only the first caller succeeds.
func (l *lifecycle) begin() bool {
	l.mu.Lock()
	if l.state != StateCreated {
		l.mu.Unlock()
		return false
	}
	l.state = StateResolving
	l.mu.Unlock()

	l.notify(StateCreated, StateResolving)
	return true
}

// finish moves to Closed or Failed depending on err.
func (l *lifecycle) finish(err error) {
	if err != nil {
		l.transition(StateFailed)
		return
	}
	l.transition(StateClosed)
}

// effectiveContainer is the override when given, else the task's default.
func effectiveContainer(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
