package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// CloudWatchAPI is the metric call used for instance utilization.
type CloudWatchAPI interface {
	GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error)
}

// CloudWatchClient reads EC2 metrics
type CloudWatchClient struct {
	client CloudWatchAPI
	now    func() time.Time
}

// NewCloudWatchClient creates a CloudWatchClient from loaded config
func NewCloudWatchClient(cfg aws.Config) *CloudWatchClient {
	return NewCloudWatchClientFromAPI(cloudwatch.NewFromConfig(cfg))
}

// NewCloudWatchClientFromAPI wraps an existing CloudWatch client
func NewCloudWatchClientFromAPI(api CloudWatchAPI) *CloudWatchClient {
	return &CloudWatchClient{client: api, now: time.Now}
}

// AverageCPU returns the mean hourly CPUUtilization over the last window,
// nil when the instance reported no datapoints.
func (c *CloudWatchClient) AverageCPU(ctx context.Context, instanceID string, window time.Duration) (*float64, error) {
	endTime := c.now()
	startTime := endTime.Add(-window)

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/EC2"),
		MetricName: aws.String("CPUUtilization"),
		Dimensions: []cwTypes.Dimension{
			{
				Name:  aws.String("InstanceId"),
				Value: aws.String(instanceID),
			},
		},
		StartTime:  aws.Time(startTime),
		EndTime:    aws.Time(endTime),
		Period:     aws.Int32(3600), // 1 hour
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	}

	result, err := c.client.GetMetricStatistics(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error getting CPU metrics for %s: %w", instanceID, err)
	}

	var sum float64
	var count int
	for _, dp := range result.Datapoints {
		if dp.Average == nil {
			continue
		}
		sum += *dp.Average
		count++
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / float64(count)
	return &avg, nil
}
