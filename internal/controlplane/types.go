// Package controlplane describes the container-orchestration lookups that
// exec sessions need (task, container instance, compute instance) and
// implements them against Amazon ECS and EC2.
package controlplane

import (
	"context"
	"strconv"

	"github.com/rileyhilliard/ecsctl/internal/errors"
)

// DefaultCluster is used when no cluster is given.
const DefaultCluster = "default"

// LaunchType is the execution model of a task.
type LaunchType string

const (
	LaunchTypeEC2      LaunchType = "EC2"
	LaunchTypeExternal LaunchType = "EXTERNAL"
	LaunchTypeFargate  LaunchType = "FARGATE"
)

// HostAccessible reports whether tasks of this launch type run on a container
// instance whose Docker daemon and sshd can be reached.
func (l LaunchType) HostAccessible() bool {
	return l != LaunchTypeFargate
}

// ContainerDescriptor is one container declared in a task.
type ContainerDescriptor struct {
	// Name is the logical name from the task definition.
	Name string
	// RuntimeID is the Docker container id, empty until the agent reports it.
	RuntimeID string
}

// TaskDescriptor is the resolved detail of a running task.
type TaskDescriptor struct {
	ARN string
	// Containers in task-definition order. Never empty.
	Containers []ContainerDescriptor
	// ContainerInstance is the ARN of the owning host. Empty for Fargate.
	ContainerInstance string
	LaunchType        LaunchType
}

// DefaultContainer returns the first declared container.
func (t *TaskDescriptor) DefaultContainer() ContainerDescriptor {
	return t.Containers[0]
}

// ContainerInstanceDescriptor is the resolved detail of a cluster host.
type ContainerInstanceDescriptor struct {
	ARN string
	// ComputeInstanceID is the EC2 instance id backing the container instance.
	ComputeInstanceID string
}

// HostNetworkInfo is the network-reachable identity of a compute instance.
type HostNetworkInfo struct {
	InstanceID string
	PrivateIP  string
	PrivateDNS string
}

// Address returns the private IP, or the private DNS name when no IP is known.
func (h HostNetworkInfo) Address() string {
	if h.PrivateIP != "" {
		return h.PrivateIP
	}
	return h.PrivateDNS
}

// Client is the subset of the control plane that exec sessions consume.
// Each call is one blocking round-trip; nothing is cached between calls.
type Client interface {
	// DescribeTask returns an ErrNotFound error when the cluster has no such task.
	DescribeTask(ctx context.Context, task, cluster string) (*TaskDescriptor, error)
	DescribeContainerInstance(ctx context.Context, containerInstance, cluster string) (*ContainerInstanceDescriptor, error)
	DescribeComputeInstance(ctx context.Context, instanceID string) (*HostNetworkInfo, error)
}

// NewTaskDescriptor validates and builds a TaskDescriptor.
// Every container must have a name and at least one container must exist.
func NewTaskDescriptor(arn string, launchType LaunchType, containerInstance string, containers []ContainerDescriptor) (*TaskDescriptor, error) {
	if len(containers) == 0 {
		return nil, unexpected("task "+arn, "it has no containers")
	}
	for i, c := range containers {
		if c.Name == "" {
			return nil, unexpected("task "+arn, "container "+strconv.Itoa(i)+" has no name")
		}
	}
	return &TaskDescriptor{
		ARN:               arn,
		Containers:        containers,
		ContainerInstance: containerInstance,
		LaunchType:        launchType,
	}, nil
}

// NewContainerInstanceDescriptor validates and builds a ContainerInstanceDescriptor.
func NewContainerInstanceDescriptor(arn, computeInstanceID string) (*ContainerInstanceDescriptor, error) {
	if computeInstanceID == "" {
		return nil, unexpected("container instance "+arn, "it has no EC2 instance id")
	}
	return &ContainerInstanceDescriptor{ARN: arn, ComputeInstanceID: computeInstanceID}, nil
}

// NewHostNetworkInfo validates and builds a HostNetworkInfo.
// At least one of the private IP or DNS name must be present.
func NewHostNetworkInfo(instanceID, privateIP, privateDNS string) (*HostNetworkInfo, error) {
	if privateIP == "" && privateDNS == "" {
		return nil, unexpected("instance "+instanceID, "it has no private address")
	}
	return &HostNetworkInfo{InstanceID: instanceID, PrivateIP: privateIP, PrivateDNS: privateDNS}, nil
}

func unexpected(what, why string) error {
	return errors.New(errors.ErrExec,
		"Unexpected response describing "+what+": "+why,
		"The instance may be stopping or the ECS agent may be disconnected. Try again in a moment.")
}
