package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/younsl/awskit/pkg/utils"
)

// STSAPI is the STS call used to identify an account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// AccountID returns the account behind the caller's credentials.
func AccountID(ctx context.Context, api STSAPI) (string, error) {
	identity, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(identity.Account), nil
}

// ProfileAccountResolver opens a session per profile and asks STS for the
// account ID.
type ProfileAccountResolver struct{}

// AccountID loads the profile's config and calls GetCallerIdentity.
// Profiles without a region use the default region directly.
func (ProfileAccountResolver) AccountID(ctx context.Context, profile string) (string, error) {
	cfg, err := LoadConfig(ctx, accountLookupOptions(profile)...)
	if err != nil {
		return "", err
	}
	return AccountID(ctx, sts.NewFromConfig(cfg))
}

func accountLookupOptions(profile string) []Option {
	return []Option{WithProfile(profile), WithFallbackRegion(utils.GetDefaultRegion())}
}
