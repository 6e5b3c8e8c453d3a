// Package testing provides test doubles for the sshutil package.
package testing

import (
	"errors"
	"regexp"
	"sync"

	"github.com/rileyhilliard/ecsctl/pkg/sshutil"
)

// CommandResponse defines a canned response for a command pattern.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error
}

// RunCall records one Run invocation.
type RunCall struct {
	Cmd string
	PTY *sshutil.PTY
}

// MockClient simulates an SSH connection. Commands with no configured
// response succeed silently.
type MockClient struct {
	mu       sync.Mutex
	address  string
	closed   bool
	commands map[string]CommandResponse // pattern -> response

	// Tracking for assertions
	Runs       []RunCall
	CloseCalls int
}

// NewMockClient creates a mock client for host.
func NewMockClient(host string) *MockClient {
	return &MockClient{
		address:  host + ":22",
		commands: make(map[string]CommandResponse),
	}
}

// SetCommandResponse configures the response for commands matching pattern.
// Exact matches are tried before regular-expression matches.
func (m *MockClient) SetCommandResponse(pattern string, resp CommandResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[pattern] = resp
}

func (m *MockClient) Run(cmd string, stdio sshutil.IO, pty *sshutil.PTY) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return -1, errors.New("connection closed")
	}
	m.Runs = append(m.Runs, RunCall{Cmd: cmd, PTY: pty})

	resp, ok := m.lookup(cmd)
	if !ok {
		return 0, nil
	}
	if stdio.Stdout != nil && len(resp.Stdout) > 0 {
		_, _ = stdio.Stdout.Write(resp.Stdout)
	}
	if stdio.Stderr != nil && len(resp.Stderr) > 0 {
		_, _ = stdio.Stderr.Write(resp.Stderr)
	}
	return resp.ExitCode, resp.Error
}

func (m *MockClient) lookup(cmd string) (CommandResponse, bool) {
	if resp, ok := m.commands[cmd]; ok {
		return resp, true
	}
	for pattern, resp := range m.commands {
		if matched, _ := regexp.MatchString(pattern, cmd); matched {
			return resp, true
		}
	}
	return CommandResponse{}, false
}

func (m *MockClient) GetAddress() string {
	return m.address
}

func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.CloseCalls++
	return nil
}

// MockDialer returns a fixed client or error and records dialed targets.
type MockDialer struct {
	mu     sync.Mutex
	Client *MockClient
	Err    error

	Targets []sshutil.Target
	Options []sshutil.Options
}

// NewMockDialer creates a dialer that hands out client.
func NewMockDialer(client *MockClient) *MockDialer {
	return &MockDialer{Client: client}
}

// Dial satisfies sshutil.Dialer.
func (d *MockDialer) Dial(target sshutil.Target, opts sshutil.Options) (sshutil.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Targets = append(d.Targets, target)
	d.Options = append(d.Options, opts)
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Client, nil
}

var (
	_ sshutil.Conn   = (*MockClient)(nil)
	_ sshutil.Dialer = (*MockDialer)(nil).Dial
)
