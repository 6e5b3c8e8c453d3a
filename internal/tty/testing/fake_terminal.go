// Package testing provides test doubles for the tty package.
package testing

import (
	"sync"

	"github.com/rileyhilliard/ecsctl/internal/tty"
)

// FakeTerminal records raw-mode transitions.
type FakeTerminal struct {
	mu sync.Mutex

	Terminal bool
	Width    int
	Height   int
	RawErr   error

	// Tracking for assertions
	RawCalls     int
	RestoreCalls int
}

// NewFakeTerminal returns an 80x24 terminal.
func NewFakeTerminal() *FakeTerminal {
	return &FakeTerminal{Terminal: true, Width: 80, Height: 24}
}

func (f *FakeTerminal) IsTerminal() bool {
	return f.Terminal
}

func (f *FakeTerminal) MakeRaw() (func() error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RawCalls++
	if f.RawErr != nil {
		return nil, f.RawErr
	}
	return func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.RestoreCalls++
		return nil
	}, nil
}

func (f *FakeTerminal) Size() (int, int, bool) {
	if !f.Terminal || f.Width == 0 || f.Height == 0 {
		return 0, 0, false
	}
	return f.Width, f.Height, true
}

// Raw reports whether the terminal is currently in raw mode.
func (f *FakeTerminal) Raw() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RawCalls > f.RestoreCalls
}

var _ tty.Terminal = (*FakeTerminal)(nil)
