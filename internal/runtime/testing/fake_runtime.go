// Package testing provides test doubles for the runtime package.
package testing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/runtime"
)

// ExecCall records one CreateExec request.
type ExecCall struct {
	ContainerID string
	Config      runtime.ExecConfig
}

// FakeAPI is an in-memory runtime.API.
type FakeAPI struct {
	mu sync.Mutex

	Containers []runtime.Container
	// Output is written to Stdout by StartExec.
	Output []byte
	// ExitCode is returned by StartExec after Output is written.
	ExitCode int

	// FailAfterBytes makes StartExec fail with StreamErr once this many bytes
	// of Output have been written. Negative disables it.
	FailAfterBytes int
	StreamErr      error

	ListErr   error
	CreateErr error

	// Tracking for assertions
	ListCalls   int
	ExecCalls   []ExecCall
	StartCalls  []runtime.StartOptions
	StdinRead   bytes.Buffer
	CloseCalls  int
	nextExecNum int
}

// NewFakeAPI creates a fake runtime holding containers.
func NewFakeAPI(containers ...runtime.Container) *FakeAPI {
	return &FakeAPI{Containers: containers, FailAfterBytes: -1}
}

// WithOutput sets what the exec writes and the exit code it returns.
func (f *FakeAPI) WithOutput(out string, exitCode int) *FakeAPI {
	f.Output = []byte(out)
	f.ExitCode = exitCode
	return f
}

// FailStreamAfter makes StartExec fail with err after n bytes of output.
func (f *FakeAPI) FailStreamAfter(n int, err error) *FakeAPI {
	f.FailAfterBytes = n
	f.StreamErr = err
	return f
}

func (f *FakeAPI) ListContainers(ctx context.Context) ([]runtime.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Containers, nil
}

func (f *FakeAPI) CreateExec(ctx context.Context, containerID string, cfg runtime.ExecConfig) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExecCalls = append(f.ExecCalls, ExecCall{ContainerID: containerID, Config: cfg})
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	f.nextExecNum++
	return fmt.Sprintf("exec-%d", f.nextExecNum), nil
}

func (f *FakeAPI) StartExec(ctx context.Context, execID string, opts runtime.StartOptions) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StartCalls = append(f.StartCalls, opts)

	if opts.Stdin != nil {
		if _, err := io.Copy(&f.StdinRead, opts.Stdin); err != nil {
			return 0, err
		}
	}

	out := f.Output
	if f.FailAfterBytes >= 0 && f.FailAfterBytes < len(out) {
		out = out[:f.FailAfterBytes]
	}
	if opts.Stdout != nil {
		if _, err := opts.Stdout.Write(out); err != nil {
			return 0, err
		}
	}

	if f.FailAfterBytes >= 0 {
		err := f.StreamErr
		if err == nil {
			err = errors.New(errors.ErrChannel, "Lost the exec stream", "")
		}
		return 0, err
	}
	return f.ExitCode, nil
}

func (f *FakeAPI) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CloseCalls++
	return nil
}

// FakeDialer hands out a FakeAPI.
type FakeDialer struct {
	mu  sync.Mutex
	API *FakeAPI
	Err error

	// Tracking for assertions
	Dials []runtime.Endpoint
}

// NewFakeDialer creates a dialer that always returns api.
func NewFakeDialer(api *FakeAPI) *FakeDialer {
	return &FakeDialer{API: api}
}

func (d *FakeDialer) Dial(ctx context.Context, ep runtime.Endpoint) (runtime.API, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Dials = append(d.Dials, ep)
	if d.Err != nil {
		return nil, d.Err
	}
	return d.API, nil
}

// DialCount returns how many times Dial was called.
func (d *FakeDialer) DialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Dials)
}

var (
	_ runtime.API    = (*FakeAPI)(nil)
	_ runtime.Dialer = (*FakeDialer)(nil)
)
