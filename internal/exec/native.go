package exec

import (
	"context"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/logger"
	"github.com/rileyhilliard/ecsctl/internal/tty"
	"github.com/rileyhilliard/ecsctl/pkg/sshutil"
)

// NativeRunner runs the remote command over an in-process SSH connection.
// It always requests a remote pseudo-terminal and puts the local terminal in
// raw mode for the duration when stdin is a terminal.
type NativeRunner struct {
	Dial     sshutil.Dialer
	Options  sshutil.Options
	Terminal tty.Terminal
	Stdio    Stdio
	Log      logger.Logger
}

// NewNativeRunner creates a runner on the process's stdio and terminal.
func NewNativeRunner(opts sshutil.Options, log logger.Logger) *NativeRunner {
	return &NativeRunner{
		Dial:     sshutil.DialConn,
		Options:  opts,
		Terminal: tty.Stdin(),
		Stdio:    OSStdio(),
		Log:      logger.OrDefault(log),
	}
}

func (r *NativeRunner) Run(ctx context.Context, cmd RemoteCommand) error {
	log := logger.OrDefault(r.Log)
	target := sshutil.Target{Host: cmd.Host, User: cmd.User, Port: cmd.Port}

	log.Debug("dial %s", target)
	conn, err := r.Dial(target, r.Options)
	if err != nil {
		return err
	}
	defer conn.Close()
	defer sshutil.CloseAgent()

	pty := sshutil.DefaultPTY()
	if w, h, ok := r.Terminal.Size(); ok {
		pty.Width, pty.Height = w, h
	}

	if r.Terminal.IsTerminal() {
		restore, err := r.Terminal.MakeRaw()
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Couldn't put the terminal in raw mode", "")
		}
		defer func() {
			if err := restore(); err != nil {
				log.Warn("restore terminal: %v", err)
			}
		}()
	}

	log.Debug("run on %s: %s", conn.GetAddress(), cmd.Remote)
	code, err := conn.Run(cmd.Remote, sshutil.IO{Stdin: r.Stdio.In, Stdout: r.Stdio.Out, Stderr: r.Stdio.Err}, pty)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.NewExitError(code)
	}
	return nil
}
