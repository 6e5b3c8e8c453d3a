// Package testing provides test doubles for the controlplane package.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/rileyhilliard/ecsctl/internal/controlplane"
	"github.com/rileyhilliard/ecsctl/internal/errors"
)

// FakeClient is an in-memory controlplane.Client.
// Lookups that miss return the same NOT_FOUND errors the AWS client does.
type FakeClient struct {
	mu                 sync.Mutex
	tasks              map[string]*controlplane.TaskDescriptor
	containerInstances map[string]*controlplane.ContainerInstanceDescriptor
	hosts              map[string]*controlplane.HostNetworkInfo
	failures           map[string]error

	// Tracking for assertions
	DescribeTaskCalls              int
	DescribeContainerInstanceCalls int
	DescribeComputeInstanceCalls   int
}

// NewFakeClient creates an empty fake control plane.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		tasks:              make(map[string]*controlplane.TaskDescriptor),
		containerInstances: make(map[string]*controlplane.ContainerInstanceDescriptor),
		hosts:              make(map[string]*controlplane.HostNetworkInfo),
		failures:           make(map[string]error),
	}
}

// AddTask registers a task in a cluster.
func (c *FakeClient) AddTask(cluster, task string, desc *controlplane.TaskDescriptor) *FakeClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks[key(cluster, task)] = desc
	return c
}

// AddContainerInstance registers a container instance in a cluster.
func (c *FakeClient) AddContainerInstance(cluster, arn, instanceID string) *FakeClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.containerInstances[key(cluster, arn)] = &controlplane.ContainerInstanceDescriptor{ARN: arn, ComputeInstanceID: instanceID}
	return c
}

// AddHost registers a compute instance with a private IP.
func (c *FakeClient) AddHost(instanceID, privateIP string) *FakeClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hosts[instanceID] = &controlplane.HostNetworkInfo{InstanceID: instanceID, PrivateIP: privateIP}
	return c
}

// AddEC2Task registers a host-backed task together with its container
// instance and compute instance in one call.
func (c *FakeClient) AddEC2Task(cluster, task, privateIP string, containers ...controlplane.ContainerDescriptor) *FakeClient {
	ciARN := "arn:aws:ecs:us-east-1:123456789012:container-instance/" + cluster + "/" + task
	instanceID := "i-" + task
	c.AddTask(cluster, task, &controlplane.TaskDescriptor{
		ARN:               task,
		Containers:        containers,
		ContainerInstance: ciARN,
		LaunchType:        controlplane.LaunchTypeEC2,
	})
	c.AddContainerInstance(cluster, ciARN, instanceID)
	return c.AddHost(instanceID, privateIP)
}

// FailOn makes the named operation ("DescribeTask", "DescribeContainerInstance",
// "DescribeComputeInstance") return err.
func (c *FakeClient) FailOn(op string, err error) *FakeClient {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[op] = err
	return c
}

// TotalCalls returns the number of control-plane round-trips made.
func (c *FakeClient) TotalCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.DescribeTaskCalls + c.DescribeContainerInstanceCalls + c.DescribeComputeInstanceCalls
}

func (c *FakeClient) DescribeTask(ctx context.Context, task, cluster string) (*controlplane.TaskDescriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DescribeTaskCalls++

	if err := c.failures["DescribeTask"]; err != nil {
		return nil, err
	}
	t, ok := c.tasks[key(cluster, task)]
	if !ok {
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Task '%s' not found in cluster '%s'", task, cluster), "")
	}
	return t, nil
}

func (c *FakeClient) DescribeContainerInstance(ctx context.Context, containerInstance, cluster string) (*controlplane.ContainerInstanceDescriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DescribeContainerInstanceCalls++

	if err := c.failures["DescribeContainerInstance"]; err != nil {
		return nil, err
	}
	ci, ok := c.containerInstances[key(cluster, containerInstance)]
	if !ok {
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Container instance '%s' not found in cluster '%s'", containerInstance, cluster), "")
	}
	return ci, nil
}

func (c *FakeClient) DescribeComputeInstance(ctx context.Context, instanceID string) (*controlplane.HostNetworkInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DescribeComputeInstanceCalls++

	if err := c.failures["DescribeComputeInstance"]; err != nil {
		return nil, err
	}
	h, ok := c.hosts[instanceID]
	if !ok {
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("EC2 instance '%s' not found", instanceID), "")
	}
	return h, nil
}

func key(cluster, name string) string {
	return cluster + "/" + name
}

var _ controlplane.Client = (*FakeClient)(nil)
