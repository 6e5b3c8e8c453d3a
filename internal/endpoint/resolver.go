// Package endpoint turns a task reference into the host and container an exec
// session connects to. Each resolution walks task -> container instance ->
// compute instance with one control-plane call per hop, and nothing is cached
// or retried: a stale hop means there is no valid target.
package endpoint

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/ecsctl/internal/controlplane"
	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/rileyhilliard/ecsctl/internal/logger"
)

// Endpoint is the resolved target of a task.
type Endpoint struct {
	TaskARN string
	// Container is the logical name of the task's first declared container.
	Container string
	// RuntimeID is the Docker id the agent reported for Container, if any.
	RuntimeID string
	// Host is the private IP or DNS name of the container instance.
	Host string
}

// Stage names one hop of the resolution chain.
type Stage string

const (
	StageTask              Stage = "task"
	StageContainerInstance Stage = "container instance"
	StageComputeInstance   Stage = "instance"
)

// StageFunc is called as each hop starts. Used for progress display.
type StageFunc func(stage Stage)

// Resolver resolves tasks against a control-plane client.
type Resolver struct {
	client  controlplane.Client
	log     logger.Logger
	onStage StageFunc
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-hop debug output.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// WithStageFunc registers a callback invoked at the start of each hop.
func WithStageFunc(fn StageFunc) Option {
	return func(r *Resolver) { r.onStage = fn }
}

// NewResolver creates a resolver that uses client for every lookup.
func NewResolver(client controlplane.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client: client,
		log:    logger.Named("resolve"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds the default container, its runtime id and the host address for
// a task. Tasks whose launch type has no reachable host fail with ErrLaunchMode
// before any further call is made.
func (r *Resolver) Resolve(ctx context.Context, task, cluster string) (*Endpoint, error) {
	desc, err := r.describeTask(ctx, task, cluster)
	if err != nil {
		return nil, err
	}

	if !desc.LaunchType.HostAccessible() {
		return nil, errors.New(errors.ErrLaunchMode,
			fmt.Sprintf("Task '%s' runs on %s, which has no host to exec into", task, desc.LaunchType),
			"Use 'aws ecs execute-command' (ECS Exec) for Fargate tasks.")
	}

	first := desc.DefaultContainer()
	r.log.Debug("default container %s (runtime id %q)", first.Name, first.RuntimeID)

	host, err := r.hostOf(ctx, task, cluster, desc)
	if err != nil {
		return nil, err
	}

	return &Endpoint{
		TaskARN:   desc.ARN,
		Container: first.Name,
		RuntimeID: first.RuntimeID,
		Host:      host,
	}, nil
}

// ResolveHost is Resolve without the launch-type gate and without the runtime
// id. The remote-shell transport only needs the host and the default container
// name; it discovers the container id on the host itself.
func (r *Resolver) ResolveHost(ctx context.Context, task, cluster string) (*Endpoint, error) {
	desc, err := r.describeTask(ctx, task, cluster)
	if err != nil {
		return nil, err
	}

	host, err := r.hostOf(ctx, task, cluster, desc)
	if err != nil {
		return nil, err
	}

	return &Endpoint{
		TaskARN:   desc.ARN,
		Container: desc.DefaultContainer().Name,
		Host:      host,
	}, nil
}

func (r *Resolver) describeTask(ctx context.Context, task, cluster string) (*controlplane.TaskDescriptor, error) {
	r.stage(StageTask)
	r.log.Debug("describe task %s in cluster %s", task, cluster)
	desc, err := r.client.DescribeTask(ctx, task, cluster)
	if err != nil {
		r.log.Debug("describe task failed: %v", err)
		return nil, err
	}
	r.log.Debug("task %s: launch type %s, %d container(s)", desc.ARN, desc.LaunchType, len(desc.Containers))
	return desc, nil
}

func (r *Resolver) hostOf(ctx context.Context, task, cluster string, desc *controlplane.TaskDescriptor) (string, error) {
	if desc.ContainerInstance == "" {
		return "", errors.New(errors.ErrLaunchMode,
			fmt.Sprintf("Task '%s' is not placed on a container instance", task),
			"Only tasks running on EC2 or external instances can be reached over SSH or the Docker API.")
	}

	r.stage(StageContainerInstance)
	r.log.Debug("describe container instance %s", desc.ContainerInstance)
	ci, err := r.client.DescribeContainerInstance(ctx, desc.ContainerInstance, cluster)
	if err != nil {
		r.log.Debug("describe container instance failed: %v", err)
		return "", err
	}

	r.stage(StageComputeInstance)
	r.log.Debug("describe instance %s", ci.ComputeInstanceID)
	info, err := r.client.DescribeComputeInstance(ctx, ci.ComputeInstanceID)
	if err != nil {
		r.log.Debug("describe instance failed: %v", err)
		return "", err
	}

	r.log.Debug("host %s", info.Address())
	return info.Address(), nil
}

func (r *Resolver) stage(s Stage) {
	if r.onStage != nil {
		r.onStage(s)
	}
}
