package controlplane

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/aws/smithy-go"
	"github.com/rileyhilliard/ecsctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubECS struct {
	tasksOut     *ecs.DescribeTasksOutput
	instancesOut *ecs.DescribeContainerInstancesOutput
	err          error

	lastTasksInput     *ecs.DescribeTasksInput
	lastInstancesInput *ecs.DescribeContainerInstancesInput
}

func (s *stubECS) DescribeTasks(ctx context.Context, params *ecs.DescribeTasksInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error) {
	s.lastTasksInput = params
	if s.err != nil {
		return nil, s.err
	}
	return s.tasksOut, nil
}

func (s *stubECS) DescribeContainerInstances(ctx context.Context, params *ecs.DescribeContainerInstancesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeContainerInstancesOutput, error) {
	s.lastInstancesInput = params
	if s.err != nil {
		return nil, s.err
	}
	return s.instancesOut, nil
}

type stubEC2 struct {
	out *ec2.DescribeInstancesOutput
	err error
}

func (s *stubEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func TestAWSClient_DescribeTask(t *testing.T) {
	e := &stubECS{tasksOut: &ecs.DescribeTasksOutput{
		Tasks: []ecstypes.Task{{
			TaskArn:              aws.String("arn:aws:ecs:us-east-1:1:task/default/t1"),
			LaunchType:           ecstypes.LaunchTypeEc2,
			ContainerInstanceArn: aws.String("ci-1"),
			Containers: []ecstypes.Container{
				{Name: aws.String("web"), RuntimeId: aws.String("abc123")},
				{Name: aws.String("sidecar")},
			},
		}},
	}}
	c := NewAWSClientFromAPIs(e, &stubEC2{})

	task, err := c.DescribeTask(context.Background(), "t1", "default")
	require.NoError(t, err)

	assert.Equal(t, "default", aws.ToString(e.lastTasksInput.Cluster))
	assert.Equal(t, []string{"t1"}, e.lastTasksInput.Tasks)
	assert.Equal(t, LaunchTypeEC2, task.LaunchType)
	assert.Equal(t, "ci-1", task.ContainerInstance)
	require.Len(t, task.Containers, 2)
	assert.Equal(t, ContainerDescriptor{Name: "web", RuntimeID: "abc123"}, task.DefaultContainer())
	assert.Equal(t, "", task.Containers[1].RuntimeID)
}

func TestAWSClient_DescribeTask_NotFound(t *testing.T) {
	e := &stubECS{tasksOut: &ecs.DescribeTasksOutput{
		Failures: []ecstypes.Failure{{Arn: aws.String("t9"), Reason: aws.String("MISSING")}},
	}}
	c := NewAWSClientFromAPIs(e, &stubEC2{})

	_, err := c.DescribeTask(context.Background(), "t9", "default")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
	assert.Contains(t, err.Error(), "(missing)")
}

func TestAWSClient_DescribeTask_NoContainers(t *testing.T) {
	e := &stubECS{tasksOut: &ecs.DescribeTasksOutput{
		Tasks: []ecstypes.Task{{TaskArn: aws.String("t1"), LaunchType: ecstypes.LaunchTypeEc2}},
	}}
	c := NewAWSClientFromAPIs(e, &stubEC2{})

	_, err := c.DescribeTask(context.Background(), "t1", "default")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Contains(t, err.Error(), "no containers")
}

func TestAWSClient_DescribeTask_APIErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "cluster not found",
			err:      &smithy.GenericAPIError{Code: "ClusterNotFoundException", Message: "Cluster not found."},
			wantCode: errors.ErrNotFound,
		},
		{
			name:     "access denied",
			err:      &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"},
			wantCode: errors.ErrNotFound,
		},
		{
			name:     "network failure",
			err:      stderrors.New("dial tcp: lookup ecs.us-east-1.amazonaws.com: no such host"),
			wantCode: errors.ErrChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAWSClientFromAPIs(&stubECS{err: tt.err}, &stubEC2{})
			_, err := c.DescribeTask(context.Background(), "t1", "default")
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
			assert.True(t, stderrors.Is(err, tt.err))
		})
	}
}

func TestAWSClient_DescribeContainerInstance(t *testing.T) {
	e := &stubECS{instancesOut: &ecs.DescribeContainerInstancesOutput{
		ContainerInstances: []ecstypes.ContainerInstance{{
			ContainerInstanceArn: aws.String("ci-1"),
			Ec2InstanceId:        aws.String("i-0abc"),
		}},
	}}
	c := NewAWSClientFromAPIs(e, &stubEC2{})

	ci, err := c.DescribeContainerInstance(context.Background(), "ci-1", "prod")
	require.NoError(t, err)
	assert.Equal(t, "prod", aws.ToString(e.lastInstancesInput.Cluster))
	assert.Equal(t, "i-0abc", ci.ComputeInstanceID)
}

func TestAWSClient_DescribeContainerInstance_Missing(t *testing.T) {
	c := NewAWSClientFromAPIs(&stubECS{instancesOut: &ecs.DescribeContainerInstancesOutput{}}, &stubEC2{})

	_, err := c.DescribeContainerInstance(context.Background(), "ci-1", "prod")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestAWSClient_DescribeContainerInstance_NoInstanceID(t *testing.T) {
	e := &stubECS{instancesOut: &ecs.DescribeContainerInstancesOutput{
		ContainerInstances: []ecstypes.ContainerInstance{{ContainerInstanceArn: aws.String("ci-1")}},
	}}
	c := NewAWSClientFromAPIs(e, &stubEC2{})

	_, err := c.DescribeContainerInstance(context.Background(), "ci-1", "prod")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
}

func TestAWSClient_DescribeComputeInstance(t *testing.T) {
	tests := []struct {
		name     string
		instance ec2types.Instance
		wantAddr string
	}{
		{
			name: "private ip preferred",
			instance: ec2types.Instance{
				InstanceId:       aws.String("i-1"),
				PrivateIpAddress: aws.String("10.0.0.5"),
				PrivateDnsName:   aws.String("ip-10-0-0-5.ec2.internal"),
			},
			wantAddr: "10.0.0.5",
		},
		{
			name: "dns fallback",
			instance: ec2types.Instance{
				InstanceId:     aws.String("i-1"),
				PrivateDnsName: aws.String("ip-10-0-0-5.ec2.internal"),
			},
			wantAddr: "ip-10-0-0-5.ec2.internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &ec2.DescribeInstancesOutput{
				Reservations: []ec2types.Reservation{{Instances: []ec2types.Instance{tt.instance}}},
			}
			c := NewAWSClientFromAPIs(&stubECS{}, &stubEC2{out: out})

			h, err := c.DescribeComputeInstance(context.Background(), "i-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAddr, h.Address())
		})
	}
}

func TestAWSClient_DescribeComputeInstance_NotFound(t *testing.T) {
	t.Run("empty reservations", func(t *testing.T) {
		c := NewAWSClientFromAPIs(&stubECS{}, &stubEC2{out: &ec2.DescribeInstancesOutput{}})
		_, err := c.DescribeComputeInstance(context.Background(), "i-1")
		assert.True(t, errors.IsCode(err, errors.ErrNotFound))
	})

	t.Run("invalid instance id", func(t *testing.T) {
		apiErr := &smithy.GenericAPIError{Code: "InvalidInstanceID.NotFound", Message: "gone"}
		c := NewAWSClientFromAPIs(&stubECS{}, &stubEC2{err: apiErr})
		_, err := c.DescribeComputeInstance(context.Background(), "i-1")
		assert.True(t, errors.IsCode(err, errors.ErrNotFound))
	})

	t.Run("no address", func(t *testing.T) {
		out := &ec2.DescribeInstancesOutput{
			Reservations: []ec2types.Reservation{{Instances: []ec2types.Instance{{InstanceId: aws.String("i-1")}}}},
		}
		c := NewAWSClientFromAPIs(&stubECS{}, &stubEC2{out: out})
		_, err := c.DescribeComputeInstance(context.Background(), "i-1")
		assert.True(t, errors.IsCode(err, errors.ErrExec))
	})
}
