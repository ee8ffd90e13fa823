package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
)

const unblendedCost = "UnblendedCost"

// CostExplorerAPI is the subset of Cost Explorer used by the reports.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

// CostClient queries unblended cost for one profile
type CostClient struct {
	api     CostExplorerAPI
	profile string
}

// NewCostClient creates a CostClient from loaded config
func NewCostClient(cfg aws.Config, profile string) *CostClient {
	return NewCostClientFromAPI(costexplorer.NewFromConfig(cfg), profile)
}

// NewCostClientFromAPI wraps an existing Cost Explorer client
func NewCostClientFromAPI(api CostExplorerAPI, profile string) *CostClient {
	return &CostClient{api: api, profile: profile}
}

// ServiceCosts returns monthly unblended cost grouped by SERVICE for
// [start, end), following NextPageToken until exhausted.
func (c *CostClient) ServiceCosts(ctx context.Context, start, end string) ([]models.CostRecord, error) {
	log.Debugf("[%s] fetching costs from %s to %s", c.profile, start, end)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: types.GranularityMonthly,
		Metrics:     []string{unblendedCost},
		GroupBy: []types.GroupDefinition{
			{
				Type: types.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
		},
	}

	var records []models.CostRecord
	for {
		result, err := c.api.GetCostAndUsage(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to get AWS costs: %w", err)
		}

		for _, period := range result.ResultsByTime {
			var periodStart, periodEnd string
			if period.TimePeriod != nil {
				periodStart = aws.ToString(period.TimePeriod.Start)
				periodEnd = aws.ToString(period.TimePeriod.End)
			}

			for _, group := range period.Groups {
				if len(group.Keys) == 0 {
					continue
				}
				amount, err := parseAmount(group.Metrics[unblendedCost])
				if err != nil {
					return nil, fmt.Errorf("invalid cost amount for %s: %w", group.Keys[0], err)
				}
				records = append(records, models.CostRecord{
					Service: group.Keys[0],
					Amount:  amount,
					Start:   periodStart,
					End:     periodEnd,
				})
			}
		}

		if aws.ToString(result.NextPageToken) == "" {
			break
		}
		input.NextPageToken = result.NextPageToken
	}

	return records, nil
}

// Forecast returns the unblended cost forecast for [start, end).
func (c *CostClient) Forecast(ctx context.Context, start, end string) (float64, error) {
	log.Debugf("[%s] fetching forecast from %s to %s", c.profile, start, end)

	result, err := c.api.GetCostForecast(ctx, &costexplorer.GetCostForecastInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Metric:      types.MetricUnblendedCost,
		Granularity: types.GranularityMonthly,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get AWS forecast: %w", err)
	}
	if result.Total == nil {
		return 0, nil
	}
	return parseAmount(*result.Total)
}

func parseAmount(m types.MetricValue) (float64, error) {
	if m.Amount == nil {
		return 0, nil
	}
	return strconv.ParseFloat(*m.Amount, 64)
}
