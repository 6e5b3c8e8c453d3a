package controlplane

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/aws/smithy-go"
	"github.com/rileyhilliard/ecsctl/internal/errors"
)

// ECSAPI is the part of the ECS client used here.
type ECSAPI interface {
	DescribeTasks(ctx context.Context, params *ecs.DescribeTasksInput, optFns ...func(*ecs.Options)) (*ecs.DescribeTasksOutput, error)
	DescribeContainerInstances(ctx context.Context, params *ecs.DescribeContainerInstancesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeContainerInstancesOutput, error)
}

// EC2API is the part of the EC2 client used here.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// AWSOptions selects the credentials and region for NewAWSClient.
// Empty fields fall through to the SDK default chain.
type AWSOptions struct {
	Region  string
	Profile string
}

// AWSClient implements Client against Amazon ECS and EC2.
type AWSClient struct {
	ecs ECSAPI
	ec2 EC2API
}

// NewAWSClient loads the shared AWS config and builds ECS and EC2 clients from it.
func NewAWSClient(ctx context.Context, opts AWSOptions) (*AWSClient, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't load AWS configuration",
			"Check --profile/--region, or AWS_PROFILE and AWS_REGION in your environment.")
	}

	return NewAWSClientFromAPIs(ecs.NewFromConfig(cfg), ec2.NewFromConfig(cfg)), nil
}

// NewAWSClientFromAPIs wraps already-built ECS and EC2 clients.
func NewAWSClientFromAPIs(ecsAPI ECSAPI, ec2API EC2API) *AWSClient {
	return &AWSClient{ecs: ecsAPI, ec2: ec2API}
}

// DescribeTask looks up a single task in a cluster.
func (c *AWSClient) DescribeTask(ctx context.Context, task, cluster string) (*TaskDescriptor, error) {
	out, err := c.ecs.DescribeTasks(ctx, &ecs.DescribeTasksInput{
		Cluster: aws.String(cluster),
		Tasks:   []string{task},
	})
	if err != nil {
		return nil, apiError(err, fmt.Sprintf("Couldn't describe task '%s' in cluster '%s'", task, cluster))
	}
	if len(out.Tasks) == 0 {
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Task '%s' not found in cluster '%s'%s", task, cluster, failureReason(out.Failures)),
			"Check the task id and --cluster. Stopped tasks disappear from ECS after about an hour.")
	}

	t := out.Tasks[0]
	containers := make([]ContainerDescriptor, 0, len(t.Containers))
	for _, c := range t.Containers {
		containers = append(containers, ContainerDescriptor{
			Name:      aws.ToString(c.Name),
			RuntimeID: aws.ToString(c.RuntimeId),
		})
	}

	return NewTaskDescriptor(aws.ToString(t.TaskArn), LaunchType(t.LaunchType), aws.ToString(t.ContainerInstanceArn), containers)
}

// DescribeContainerInstance looks up the cluster host that owns a task.
func (c *AWSClient) DescribeContainerInstance(ctx context.Context, containerInstance, cluster string) (*ContainerInstanceDescriptor, error) {
	out, err := c.ecs.DescribeContainerInstances(ctx, &ecs.DescribeContainerInstancesInput{
		Cluster:            aws.String(cluster),
		ContainerInstances: []string{containerInstance},
	})
	if err != nil {
		return nil, apiError(err, fmt.Sprintf("Couldn't describe container instance '%s'", containerInstance))
	}
	if len(out.ContainerInstances) == 0 {
		return nil, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Container instance '%s' not found in cluster '%s'%s", containerInstance, cluster, failureReason(out.Failures)),
			"The host may have been drained or deregistered. Run the command again to pick up the task's current host.")
	}

	ci := out.ContainerInstances[0]
	return NewContainerInstanceDescriptor(aws.ToString(ci.ContainerInstanceArn), aws.ToString(ci.Ec2InstanceId))
}

// DescribeComputeInstance looks up the private address of an EC2 instance.
func (c *AWSClient) DescribeComputeInstance(ctx context.Context, instanceID string) (*HostNetworkInfo, error) {
	out, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return nil, apiError(err, fmt.Sprintf("Couldn't describe EC2 instance '%s'", instanceID))
	}

	for _, r := range out.Reservations {
		for _, inst := range r.Instances {
			return NewHostNetworkInfo(aws.ToString(inst.InstanceId), aws.ToString(inst.PrivateIpAddress), aws.ToString(inst.PrivateDnsName))
		}
	}

	return nil, errors.New(errors.ErrNotFound,
		fmt.Sprintf("EC2 instance '%s' not found", instanceID),
		"The instance may have been terminated.")
}

// apiError maps SDK failures onto the error taxonomy. Missing-resource API codes
// become NOT_FOUND, everything else is a channel failure talking to AWS.
func apiError(err error, message string) error {
	var ae smithy.APIError
	if stderrors.As(err, &ae) {
		code := ae.ErrorCode()
		if strings.HasSuffix(code, ".NotFound") || code == "ClusterNotFoundException" {
			return errors.WrapWithCode(err, errors.ErrNotFound, message,
				"Check the cluster name and that your credentials can see it.")
		}
		if code == "AccessDeniedException" || code == "UnauthorizedOperation" {
			return errors.WrapWithCode(err, errors.ErrNotFound, message,
				"Your AWS credentials can't see this resource. Check --profile.")
		}
	}
	return errors.WrapWithCode(err, errors.ErrChannel, message,
		"Check your network connection and AWS credentials.")
}

func failureReason(failures []ecstypes.Failure) string {
	if len(failures) == 0 {
		return ""
	}
	reason := aws.ToString(failures[0].Reason)
	if reason == "" {
		return ""
	}
	return " (" + strings.ToLower(reason) + ")"
}
