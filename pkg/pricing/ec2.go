package pricing

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/pkg/utils"
)

// HourlyPrice returns the on-demand Linux price of an instance type and
// where it came from. Failures yield 0 and SourceNA.
func (c *Client) HourlyPrice(ctx context.Context, instanceType, region string) (float64, Source) {
	cacheKey := fmt.Sprintf("%s:%s", region, instanceType)

	c.cacheLock.RLock()
	price, exists := c.cache[cacheKey]
	c.cacheLock.RUnlock()
	if exists {
		c.record(region, statCache)
		return price, SourceCache
	}

	price, err := c.getEC2PriceFromAPI(ctx, instanceType, region)
	if err != nil {
		log.Debugf("error getting price from API: %v for %s in %s", err, instanceType, region)
		c.record(region, statFailure)
		return 0, SourceNA
	}

	c.record(region, statSuccess)
	c.cacheLock.Lock()
	c.cache[cacheKey] = price
	c.cacheLock.Unlock()

	return price, SourceAPI
}

// MonthlyEstimate returns the monthly on-demand cost of an instance type
func (c *Client) MonthlyEstimate(ctx context.Context, instanceType, region string) (float64, Source) {
	hourlyPrice, source := c.HourlyPrice(ctx, instanceType, region)
	if source == SourceNA {
		return 0, SourceNA
	}
	return hourlyPrice * HoursPerMonth, source
}

func (c *Client) getEC2PriceFromAPI(ctx context.Context, instanceType, region string) (float64, error) {
	if !utils.IsValidRegion(region) {
		return 0, fmt.Errorf("no pricing location known for region %s", region)
	}

	// EC2 Linux on-demand, shared tenancy
	filters := []types.Filter{
		termMatch("instanceType", instanceType),
		termMatch("location", utils.GetRegionDescriptiveName(region)),
		termMatch("operatingSystem", "Linux"),
		termMatch("tenancy", "Shared"),
		termMatch("preInstalledSw", "NA"),
		termMatch("capacitystatus", "Used"),
	}

	priceJSON, err := c.getPriceFromAPI(ctx, "AmazonEC2", filters, instanceType, region)
	if err != nil {
		return 0, err
	}

	return ExtractOnDemandPrice(priceJSON)
}

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Type:  types.FilterTypeTermMatch,
		Field: aws.String(field),
		Value: aws.String(value),
	}
}
