package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/smithy-go"
	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/pkg/utils"
)

// imdsTimeout bounds the region lookup when not running on EC2.
const imdsTimeout = 2 * time.Second

// options holds optional overrides for AWS config loading.
type options struct {
	profile        string
	region         string
	fallbackRegion string
}

// Option customizes how AWS config is loaded.
type Option func(*options)

// WithProfile selects a shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion overrides the profile's region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithFallbackRegion sets the region used when the profile has none,
// skipping the instance metadata lookup.
func WithFallbackRegion(region string) Option {
	return func(o *options) { o.fallbackRegion = region }
}

// LoadConfig loads SDK config for a profile. When neither the override nor
// the profile sets a region, the fallback region is used if given;
// otherwise the instance metadata service is asked and us-east-1 is used
// as the last resort.
func LoadConfig(ctx context.Context, opts ...Option) (aws.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithEC2IMDSClientEnableState(imds.ClientEnabled),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("error loading AWS config for profile %q: %w", o.profile, err)
	}

	if cfg.Region == "" {
		cfg.Region = o.missingRegion(ctx, imds.NewFromConfig(cfg))
	}
	log.Debugf("aws config loaded: profile=%s region=%s", o.profile, cfg.Region)
	return cfg, nil
}

// imdsRegionAPI is the metadata call used for region discovery.
type imdsRegionAPI interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

func (o options) missingRegion(ctx context.Context, api imdsRegionAPI) string {
	if o.fallbackRegion != "" {
		return o.fallbackRegion
	}
	return resolveRegion(ctx, api)
}

func resolveRegion(ctx context.Context, api imdsRegionAPI) string {
	ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
	defer cancel()

	out, err := api.GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil || out.Region == "" {
		log.Debugf("no region from instance metadata, using %s", utils.GetDefaultRegion())
		return utils.GetDefaultRegion()
	}
	return out.Region
}

// ErrorCode returns the AWS API error code wrapped in err, or "".
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
