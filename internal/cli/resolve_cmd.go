package cli

import (
	"context"
	"io"

	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/runtime"
	"github.com/rileyhilliard/ecsctl/pkg/sshutil"
	"gopkg.in/yaml.v3"
)

// ResolveOptions are the resolve command's parsed arguments.
type ResolveOptions struct {
	Task      string
	Container string
	JSON      bool
}

// ResolveResult is what resolve prints.
type ResolveResult struct {
	Task      string `yaml:"task" json:"task"`
	Cluster   string `yaml:"cluster" json:"cluster"`
	Container string `yaml:"container" json:"container"`
	// RuntimeID is only known for the task's default container.
	RuntimeID      string `yaml:"runtime_id,omitempty" json:"runtime_id,omitempty"`
	Host           string `yaml:"host" json:"host"`
	DockerEndpoint string `yaml:"docker_endpoint" json:"docker_endpoint"`
	SSH            string `yaml:"ssh" json:"ssh"`
}

// resolveCommand resolves the task and writes the result to out. With JSON,
// failures are written to out as an error envelope too.
func resolveCommand(ctx context.Context, opts ResolveOptions, out io.Writer) error {
	global := globalWorkflowOptions(opts.Task)
	global.Quiet = global.Quiet || opts.JSON

	result, err := resolveTask(ctx, global, opts)
	if opts.JSON {
		if err != nil {
			if werr := WriteJSONFromError(out, err); werr != nil {
				return werr
			}
			return errors.NewExitError(1)
		}
		return WriteJSONSuccess(out, result)
	}
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec, "Couldn't write the result", "")
	}
	return enc.Close()
}

func resolveTask(ctx context.Context, global WorkflowOptions, opts ResolveOptions) (*ResolveResult, error) {
	wf, err := SetupWorkflow(ctx, global)
	if err != nil {
		return nil, err
	}
	cfg := wf.Config

	ep, err := wf.Resolver.Resolve(ctx, opts.Task, cfg.Cluster)
	if err != nil {
		wf.Phases.Fail()
		return nil, err
	}
	wf.Phases.Complete(ep.Host)

	result := &ResolveResult{
		Task:           opts.Task,
		Cluster:        cfg.Cluster,
		Container:      ep.Container,
		RuntimeID:      ep.RuntimeID,
		Host:           ep.Host,
		DockerEndpoint: runtime.Endpoint{Host: ep.Host, Port: cfg.Docker.Port}.Address(),
		SSH:            sshutil.Target{Host: ep.Host, User: cfg.SSH.User, Port: cfg.SSH.Port}.String(),
	}
	if opts.Container != "" && opts.Container != ep.Container {
		result.Container = opts.Container
		result.RuntimeID = ""
	}
	return result, nil
}
