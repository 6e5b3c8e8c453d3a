package sshutil

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"golang.org/x/crypto/ssh"
)

// IO is the set of local streams a remote command is connected to.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// PTY requests a remote pseudo-terminal of the given size.
type PTY struct {
	Term   string
	Width  int
	Height int
}

// DefaultPTY is used when the local terminal size is unknown.
func DefaultPTY() *PTY {
	return &PTY{Term: "xterm-256color", Width: 80, Height: 24}
}

// Run runs cmd on the remote host connected to stdio, with a pseudo-terminal
// when pty is non-nil. Returns the remote exit status. A non-zero status is
// not an error.
func (c *Client) Run(cmd string, stdio IO, pty *PTY) (exitCode int, err error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return -1, errors.WrapWithCode(err, errors.ErrChannel,
			"Failed to create SSH session",
			"Connection may have been closed. Try again.")
	}
	defer session.Close()

	if pty != nil {
		modes := ssh.TerminalModes{
			ssh.ECHO:          1,
			ssh.TTY_OP_ISPEED: 14400,
			ssh.TTY_OP_OSPEED: 14400,
		}
		if err := session.RequestPty(pty.Term, pty.Height, pty.Width, modes); err != nil {
			return -1, errors.WrapWithCode(err, errors.ErrSSH,
				"Failed to allocate PTY",
				"The remote host may not support pseudo-terminals.")
		}
	}

	session.Stdin = stdio.Stdin
	session.Stdout = stdio.Stdout
	session.Stderr = stdio.Stderr

	err = session.Run(cmd)
	if err != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(err, &exitErr) {
			return exitErr.ExitStatus(), nil
		}
		var missing *ssh.ExitMissingError
		if stderrors.As(err, &missing) {
			return -1, errors.WrapWithCode(err, errors.ErrChannel,
				"The SSH session ended without an exit status",
				"The connection dropped. Run the command again.")
		}
		return -1, errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Failed to execute command: %s", cmd),
			"Check docker is installed on the container instance.")
	}

	return 0, nil
}
