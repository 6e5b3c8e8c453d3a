package runtime

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	goruntime "runtime"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/sockets"
	"github.com/docker/go-connections/tlsconfig"
	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/logger"
)

// TLSFiles are client certificate paths for a TLS-protected Docker API.
type TLSFiles struct {
	CA   string
	Cert string
	Key  string
}

func (t TLSFiles) enabled() bool {
	return t.CA != "" && t.Cert != "" && t.Key != ""
}

// DockerDialer dials the Docker Engine API over TCP.
type DockerDialer struct {
	TLS TLSFiles
	Log logger.Logger
}

// NewDockerDialer creates a dialer. Pass a zero TLSFiles for plain TCP.
func NewDockerDialer(tlsFiles TLSFiles, log logger.Logger) *DockerDialer {
	return &DockerDialer{TLS: tlsFiles, Log: logger.OrDefault(log)}
}

// Dial builds a Docker client for ep. No connection is made until the first call.
func (d *DockerDialer) Dial(ctx context.Context, ep Endpoint) (API, error) {
	log := logger.OrDefault(d.Log)

	httpClient, err := d.newHTTPClient(ep.Address())
	if err != nil {
		return nil, err
	}

	opts := []client.Opt{
		client.WithHost("tcp://" + ep.Address()),
		client.WithHTTPClient(httpClient),
		client.WithHTTPHeaders(map[string]string{"User-Agent": userAgent()}),
	}
	if ep.APIVersion != "" {
		opts = append(opts, client.WithVersion(ep.APIVersion))
	} else {
		opts = append(opts, client.WithAPIVersionNegotiation())
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrChannel,
			fmt.Sprintf("Couldn't set up a Docker client for %s", ep.Address()),
			"Check --docker-port and --docker-api-version.")
	}

	log.Debug("docker endpoint tcp://%s (api version %q, tls %v)", ep.Address(), ep.APIVersion, d.TLS.enabled())
	return &dockerAPI{cli: cli, addr: ep.Address(), log: log}, nil
}

func (d *DockerDialer) newHTTPClient(addr string) (*http.Client, error) {
	var cfg *tls.Config
	if d.TLS.enabled() {
		var err error
		cfg, err = tlsconfig.Client(tlsconfig.Options{
			CAFile:   d.TLS.CA,
			CertFile: d.TLS.Cert,
			KeyFile:  d.TLS.Key,
		})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't load Docker TLS certificates",
				"Check docker.tls.ca, docker.tls.cert and docker.tls.key in your config.")
		}
	}

	tr := &http.Transport{TLSClientConfig: cfg}
	if err := sockets.ConfigureTransport(tr, "tcp", addr); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrChannel,
			"Couldn't configure the Docker API transport", "")
	}
	return &http.Client{Transport: tr}, nil
}

func userAgent() string {
	return fmt.Sprintf("ecsctl (%s)", goruntime.GOOS)
}

// dockerAPI adapts the Docker client to API.
type dockerAPI struct {
	cli  *client.Client
	addr string
	log  logger.Logger
}

func (a *dockerAPI) ListContainers(ctx context.Context) ([]Container, error) {
	list, err := a.cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		return nil, a.channelError(err, "Couldn't list containers")
	}

	out := make([]Container, 0, len(list))
	for _, c := range list {
		out = append(out, Container{ID: c.ID, Labels: c.Labels})
	}
	return out, nil
}

func (a *dockerAPI) CreateExec(ctx context.Context, containerID string, cfg ExecConfig) (string, error) {
	resp, err := a.cli.ContainerExecCreate(ctx, containerID, container.ExecOptions{
		Cmd:          cfg.Cmd,
		AttachStdin:  cfg.AttachStdin,
		AttachStdout: true,
		AttachStderr: true,
		Tty:          cfg.Tty,
	})
	if err != nil {
		return "", a.channelError(err, "Couldn't create exec in container "+shortID(containerID))
	}
	return resp.ID, nil
}

func (a *dockerAPI) StartExec(ctx context.Context, execID string, opts StartOptions) (int, error) {
	hijacked, err := a.cli.ContainerExecAttach(ctx, execID, container.ExecAttachOptions{Tty: opts.Tty})
	if err != nil {
		return 0, a.channelError(err, "Couldn't start exec")
	}
	defer hijacked.Close()

	if opts.Tty && opts.Width > 0 && opts.Height > 0 {
		if err := a.cli.ContainerExecResize(ctx, execID, container.ResizeOptions{Height: opts.Height, Width: opts.Width}); err != nil {
			a.log.Debug("exec resize failed: %v", err)
		}
	}

	if opts.Stdin != nil {
		go func() {
			if _, err := io.Copy(hijacked.Conn, opts.Stdin); err != nil {
				a.log.Debug("stdin copy ended: %v", err)
			}
			if err := hijacked.CloseWrite(); err != nil {
				a.log.Debug("close write: %v", err)
			}
		}()
	}

	if opts.Tty {
		_, err = io.Copy(opts.Stdout, hijacked.Reader)
	} else {
		_, err = stdcopy.StdCopy(opts.Stdout, opts.Stderr, hijacked.Reader)
	}
	if err != nil {
		return 0, a.channelError(err, "Lost the exec stream")
	}

	inspect, err := a.cli.ContainerExecInspect(ctx, execID)
	if err != nil {
		return 0, a.channelError(err, "Couldn't read the exec exit code")
	}
	return inspect.ExitCode, nil
}

func (a *dockerAPI) Close() error {
	return a.cli.Close()
}

func (a *dockerAPI) channelError(err error, message string) error {
	return errors.WrapWithCode(err, errors.ErrChannel,
		fmt.Sprintf("%s on %s", message, a.addr),
		"The Docker API port is often firewalled. Try: ecsctl ssh <task> <command>")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
