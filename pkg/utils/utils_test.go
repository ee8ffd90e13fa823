package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetName verifies the Name tag lookup including nil values.
func TestGetName(t *testing.T) {
	tests := []struct {
		name     string
		tags     []types.Tag
		expected string
	}{
		{name: "present", tags: []types.Tag{{Key: aws.String("env"), Value: aws.String("dev")}, {Key: aws.String("Name"), Value: aws.String("web-1")}}, expected: "web-1"},
		{name: "nil value", tags: []types.Tag{{Key: aws.String("Name")}}, expected: ""},
		{name: "missing", tags: []types.Tag{{Key: aws.String("env"), Value: aws.String("dev")}}, expected: ""},
		{name: "no tags", tags: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetName(tt.tags))
		})
	}
}

// TestGetNestedString verifies path walking through nested objects.
func TestGetNestedString(t *testing.T) {
	data, err := ParseJSON(`{"pricePerUnit":{"USD":"0.0116"},"unit":"Hrs"}`)
	require.NoError(t, err)

	v, err := GetNestedString(data, "pricePerUnit", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.0116", v)

	_, err = GetNestedString(data, "unit", "USD")
	assert.Error(t, err)

	_, err = GetNestedString(data, "pricePerUnit")
	assert.Error(t, err)

	_, err = GetNestedString(data)
	assert.Error(t, err)

	_, err = ParseJSON("not json")
	assert.Error(t, err)
}

// TestRegionNames verifies the lookup and the unknown-region fallback.
func TestRegionNames(t *testing.T) {
	assert.Equal(t, "Asia Pacific (Seoul)", GetRegionDescriptiveName("ap-northeast-2"))
	assert.Equal(t, "xx-test-1", GetRegionDescriptiveName("xx-test-1"))
	assert.True(t, IsValidRegion("us-east-1"))
	assert.False(t, IsValidRegion("xx-test-1"))

	regions := KnownRegions()
	assert.Len(t, regions, len(RegionDescriptiveNames))
	assert.IsIncreasing(t, regions)
}
