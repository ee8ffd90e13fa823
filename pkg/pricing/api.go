package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/younsl/awskit/internal/log"
)

// apiTimeout bounds one GetProducts call
const apiTimeout = 5 * time.Second

// ProductsAPI is the Pricing API call used for price lookups.
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Client looks up on-demand prices and caches them per region and type.
// It is safe for concurrent use.
type Client struct {
	api ProductsAPI

	cacheLock sync.RWMutex
	cache     map[string]float64

	statsLock sync.RWMutex
	stats     map[string]*Stat
}

// New creates a Client talking to the Pricing API in region.
// An empty region falls back to DefaultRegion.
func New(ctx context.Context, region string, optFns ...func(*config.LoadOptions) error) (*Client, error) {
	if region == "" {
		region = DefaultRegion
	}
	opts := append([]func(*config.LoadOptions) error{config.WithRegion(region)}, optFns...)
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}

	log.Debugf("AWS Pricing API initialized in %s region (https://api.pricing.%s.amazonaws.com)", region, region)
	return NewFromAPI(pricing.NewFromConfig(cfg)), nil
}

// NewFromAPI wraps an existing Pricing API implementation
func NewFromAPI(api ProductsAPI) *Client {
	return &Client{
		api:   api,
		cache: make(map[string]float64),
		stats: make(map[string]*Stat),
	}
}

// getPriceFromAPI returns the first price list entry matching filters
func (c *Client) getPriceFromAPI(ctx context.Context, serviceCode string, filters []types.Filter, resourceType, region string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	input := &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(1),
	}

	resp, err := c.api.GetProducts(ctx, input)
	if err != nil {
		return "", fmt.Errorf("error calling AWS Pricing API: %w", err)
	}

	if len(resp.PriceList) == 0 {
		return "", fmt.Errorf("no pricing found for %s in region %s", resourceType, region)
	}

	return resp.PriceList[0], nil
}
