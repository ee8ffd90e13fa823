package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/utils"
)

// ErrNoDefaultVPC is returned when the region has no default VPC.
var ErrNoDefaultVPC = errors.New("no default VPC found")

// ErrNoImage is returned when no AMI matches the filter.
var ErrNoImage = errors.New("no matching AMI found")

// EC2API is the subset of the EC2 client used by awskit.
type EC2API interface {
	ec2.DescribeInstancesAPIClient

	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	RebootInstances(ctx context.Context, params *ec2.RebootInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RebootInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)

	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	CreateSecurityGroup(ctx context.Context, params *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, params *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	AuthorizeSecurityGroupEgress(ctx context.Context, params *ec2.AuthorizeSecurityGroupEgressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupEgressOutput, error)
	DescribeKeyPairs(ctx context.Context, params *ec2.DescribeKeyPairsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error)
	CreateKeyPair(ctx context.Context, params *ec2.CreateKeyPairInput, optFns ...func(*ec2.Options)) (*ec2.CreateKeyPairOutput, error)
	DescribeImages(ctx context.Context, params *ec2.DescribeImagesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error)
	RunInstances(ctx context.Context, params *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
}

// EC2Client struct for EC2 client
type EC2Client struct {
	client EC2API
	region string
}

// NewEC2Client creates a new EC2Client from loaded config
func NewEC2Client(cfg aws.Config) *EC2Client {
	return NewEC2ClientFromAPI(ec2.NewFromConfig(cfg), cfg.Region)
}

// NewEC2ClientFromAPI wraps an existing EC2 API implementation
func NewEC2ClientFromAPI(api EC2API, region string) *EC2Client {
	return &EC2Client{client: api, region: region}
}

// Region returns the region the client talks to
func (c *EC2Client) Region() string {
	return c.region
}

// ListInstances returns every instance in the region, in API order
func (c *EC2Client) ListInstances(ctx context.Context) ([]models.InstanceSummary, error) {
	return c.describe(ctx, &ec2.DescribeInstancesInput{})
}

// DescribeInstance returns the current view of one instance
func (c *EC2Client) DescribeInstance(ctx context.Context, id string) (models.InstanceSummary, error) {
	list, err := c.describe(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return models.InstanceSummary{}, err
	}
	if len(list) == 0 {
		return models.InstanceSummary{}, fmt.Errorf("instance %s not found", id)
	}
	return list[0], nil
}

func (c *EC2Client) describe(ctx context.Context, input *ec2.DescribeInstancesInput) ([]models.InstanceSummary, error) {
	instances := []models.InstanceSummary{}

	paginator := ec2.NewDescribeInstancesPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error querying EC2 instances: %w", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				instances = append(instances, c.toSummary(instance))
			}
		}
	}

	log.Debugf("described %d instances in %s", len(instances), c.region)
	return instances, nil
}

func (c *EC2Client) toSummary(instance types.Instance) models.InstanceSummary {
	summary := models.InstanceSummary{
		InstanceID:   aws.ToString(instance.InstanceId),
		Name:         utils.GetName(instance.Tags),
		InstanceType: string(instance.InstanceType),
		PrivateIP:    aws.ToString(instance.PrivateIpAddress),
		PublicIP:     aws.ToString(instance.PublicIpAddress),
		KeyName:      aws.ToString(instance.KeyName),
		Region:       c.region,
	}
	if instance.State != nil {
		summary.State = string(instance.State.Name)
	}
	if instance.LaunchTime != nil {
		summary.LaunchTime = *instance.LaunchTime
	}
	return summary
}

// StartInstance starts a stopped instance
func (c *EC2Client) StartInstance(ctx context.Context, id string) error {
	_, err := c.client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
	return err
}

// StopInstance stops a running instance
func (c *EC2Client) StopInstance(ctx context.Context, id string) error {
	_, err := c.client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
	return err
}

// RebootInstance reboots an instance
func (c *EC2Client) RebootInstance(ctx context.Context, id string) error {
	_, err := c.client.RebootInstances(ctx, &ec2.RebootInstancesInput{InstanceIds: []string{id}})
	return err
}

// TerminateInstance terminates an instance
func (c *EC2Client) TerminateInstance(ctx context.Context, id string) error {
	_, err := c.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}})
	return err
}

// Regions returns the region names enabled for the account, sorted
func (c *EC2Client) Regions(ctx context.Context) ([]string, error) {
	result, err := c.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("error describing regions: %w", err)
	}

	regions := make([]string, 0, len(result.Regions))
	for _, r := range result.Regions {
		if name := aws.ToString(r.RegionName); name != "" {
			regions = append(regions, name)
		}
	}
	sort.Strings(regions)
	return regions, nil
}

// DefaultVPC returns the ID of the region's default VPC
func (c *EC2Client) DefaultVPC(ctx context.Context) (string, error) {
	result, err := c.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{
			{
				Name:   aws.String("isDefault"),
				Values: []string{"true"},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error describing VPCs: %w", err)
	}
	if len(result.Vpcs) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDefaultVPC, c.region)
	}
	return aws.ToString(result.Vpcs[0].VpcId), nil
}

// CreateSecurityGroup creates the group and returns its ID
func (c *EC2Client) CreateSecurityGroup(ctx context.Context, spec models.SecurityGroupSpec) (string, error) {
	result, err := c.client.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		GroupName:   aws.String(spec.Name),
		Description: aws.String(spec.Description),
		VpcId:       aws.String(spec.VpcID),
	})
	if err != nil {
		return "", fmt.Errorf("error creating security group %s: %w", spec.Name, err)
	}
	return aws.ToString(result.GroupId), nil
}

// AuthorizeIngress opens each TCP port to cidr
func (c *EC2Client) AuthorizeIngress(ctx context.Context, groupID string, ports []int32, cidr string) error {
	_, err := c.client.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: tcpPermissions(ports, cidr),
	})
	if err != nil {
		return fmt.Errorf("error adding inbound rules to %s: %w", groupID, err)
	}
	return nil
}

// AuthorizeEgress opens one outbound TCP port to cidr
func (c *EC2Client) AuthorizeEgress(ctx context.Context, groupID string, port int32, cidr string) error {
	_, err := c.client.AuthorizeSecurityGroupEgress(ctx, &ec2.AuthorizeSecurityGroupEgressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: tcpPermissions([]int32{port}, cidr),
	})
	if err != nil {
		return fmt.Errorf("error adding outbound rule to %s: %w", groupID, err)
	}
	return nil
}

func tcpPermissions(ports []int32, cidr string) []types.IpPermission {
	permissions := make([]types.IpPermission, 0, len(ports))
	for _, port := range ports {
		permissions = append(permissions, types.IpPermission{
			IpProtocol: aws.String("tcp"),
			FromPort:   aws.Int32(port),
			ToPort:     aws.Int32(port),
			IpRanges:   []types.IpRange{{CidrIp: aws.String(cidr)}},
		})
	}
	return permissions
}

// KeyPairs returns the names of the region's key pairs
func (c *EC2Client) KeyPairs(ctx context.Context) ([]string, error) {
	result, err := c.client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{})
	if err != nil {
		return nil, fmt.Errorf("error describing key pairs: %w", err)
	}
	names := make([]string, 0, len(result.KeyPairs))
	for _, kp := range result.KeyPairs {
		names = append(names, aws.ToString(kp.KeyName))
	}
	return names, nil
}

// CreateKeyPair creates a key pair and returns its private key material
func (c *EC2Client) CreateKeyPair(ctx context.Context, name string) (string, error) {
	result, err := c.client.CreateKeyPair(ctx, &ec2.CreateKeyPairInput{KeyName: aws.String(name)})
	if err != nil {
		return "", fmt.Errorf("error creating key pair %s: %w", name, err)
	}
	return aws.ToString(result.KeyMaterial), nil
}

// LatestImage returns the newest available AMI owned by owner whose name
// matches nameFilter
func (c *EC2Client) LatestImage(ctx context.Context, owner, nameFilter string) (string, error) {
	result, err := c.client.DescribeImages(ctx, &ec2.DescribeImagesInput{
		Owners: []string{owner},
		Filters: []types.Filter{
			{Name: aws.String("name"), Values: []string{nameFilter}},
			{Name: aws.String("state"), Values: []string{"available"}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error describing images: %w", err)
	}
	if len(result.Images) == 0 {
		return "", fmt.Errorf("%w: owner=%s name=%s", ErrNoImage, owner, nameFilter)
	}

	images := result.Images
	// CreationDate is ISO 8601, so string order is time order
	sort.Slice(images, func(i, j int) bool {
		return aws.ToString(images[i].CreationDate) > aws.ToString(images[j].CreationDate)
	})
	return aws.ToString(images[0].ImageId), nil
}

// RunInstance launches one instance and returns its ID
func (c *EC2Client) RunInstance(ctx context.Context, imageID, instanceType, keyName, groupID string) (string, error) {
	result, err := c.client.RunInstances(ctx, &ec2.RunInstancesInput{
		ImageId:          aws.String(imageID),
		InstanceType:     types.InstanceType(instanceType),
		KeyName:          aws.String(keyName),
		MinCount:         aws.Int32(1),
		MaxCount:         aws.Int32(1),
		SecurityGroupIds: []string{groupID},
	})
	if err != nil {
		return "", fmt.Errorf("error creating EC2 instance: %w", err)
	}
	if len(result.Instances) == 0 {
		return "", fmt.Errorf("error creating EC2 instance: empty response")
	}
	return aws.ToString(result.Instances[0].InstanceId), nil
}

// WaitRunning blocks until the instance reaches the running state or
// maxWait elapses
func (c *EC2Client) WaitRunning(ctx context.Context, id string, maxWait time.Duration) error {
	waiter := ec2.NewInstanceRunningWaiter(c.client)
	if err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}}, maxWait); err != nil {
		return fmt.Errorf("error waiting for instance %s: %w", id, err)
	}
	return nil
}
