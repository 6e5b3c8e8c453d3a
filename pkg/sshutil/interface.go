package sshutil

// Conn is a connected SSH client. Both the real Client and the mock in
// sshutil/testing satisfy it.
type Conn interface {
	// Run runs cmd connected to stdio and returns the remote exit status.
	// A non-zero status with nil error means the command ran but failed.
	Run(cmd string, stdio IO, pty *PTY) (exitCode int, err error)

	// GetAddress returns the resolved host:port address.
	GetAddress() string

	Close() error
}

// Dialer opens a Conn. Dial is the production implementation.
type Dialer func(target Target, opts Options) (Conn, error)

// DialConn is Dial returning the Conn interface.
func DialConn(target Target, opts Options) (Conn, error) {
	c, err := Dial(target, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var _ Conn = (*Client)(nil)
