package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/younsl/awskit/internal/config"
)

// TestPricingWanted verifies pricing.enabled gates --pricing the same way it
// gates the creator's estimate.
func TestPricingWanted(t *testing.T) {
	tests := []struct {
		name     string
		flag     bool
		enabled  bool
		expected bool
	}{
		{name: "flag and enabled", flag: true, enabled: true, expected: true},
		{name: "flag but disabled", flag: true, enabled: false, expected: false},
		{name: "no flag", flag: false, enabled: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pricingWanted(options{pricing: tt.flag}, config.Settings{PricingEnabled: tt.enabled})
			assert.Equal(t, tt.expected, got)
		})
	}
}
