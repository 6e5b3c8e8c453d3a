// Package tty manages the local terminal an interactive exec runs in.
package tty

import (
	"os"

	"golang.org/x/term"
)

// Terminal is the local terminal. Raw mode is acquired with MakeRaw and
// released by calling the returned restore function.
type Terminal interface {
	IsTerminal() bool
	MakeRaw() (restore func() error, err error)
	// Size returns the width and height in cells. ok is false when unknown.
	Size() (width, height int, ok bool)
}

// FileTerminal is a Terminal backed by a file descriptor, normally stdin.
type FileTerminal struct {
	fd int
}

// Stdin returns the terminal attached to os.Stdin.
func Stdin() *FileTerminal {
	return New(os.Stdin)
}

// New returns the terminal for f.
func New(f *os.File) *FileTerminal {
	return &FileTerminal{fd: int(f.Fd())}
}

func (t *FileTerminal) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// MakeRaw puts the terminal into raw mode. When the descriptor is not a
// terminal it does nothing and returns a no-op restore.
func (t *FileTerminal) MakeRaw() (func() error, error) {
	if !t.IsTerminal() {
		return func() error { return nil }, nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(t.fd, state) }, nil
}

func (t *FileTerminal) Size() (int, int, bool) {
	w, h, err := term.GetSize(t.fd)
	if err != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
