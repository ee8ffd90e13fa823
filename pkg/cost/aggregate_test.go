package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awskit/internal/models"
)

func records(pairs ...interface{}) []models.CostRecord {
	var out []models.CostRecord
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.CostRecord{Service: pairs[i].(string), Amount: pairs[i+1].(float64)})
	}
	return out
}

// TestAggregateTotalsAndPercentages verifies the total is the plain sum and
// the shares add up to 100%.
func TestAggregateTotalsAndPercentages(t *testing.T) {
	in := records(
		"Amazon EC2", 120.25,
		"Amazon S3", 10.5,
		"AWS Lambda", 0.75,
		"Amazon EC2", 30.0,
		"Amazon RDS", 77.0,
	)

	b := Aggregate(in)

	assert.InDelta(t, 238.5, b.Total, 1e-9)
	require.Len(t, b.Services, 4)

	var sum float64
	for _, s := range b.Services {
		sum += s.Percent
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

// TestAggregateOrdering verifies descending order so the first entry is the
// most expensive and the last the least expensive.
func TestAggregateOrdering(t *testing.T) {
	b := Aggregate(records(
		"Amazon S3", 10.0,
		"Amazon EC2", 150.0,
		"AWS Lambda", 0.5,
		"Amazon RDS", 42.0,
	))

	most, ok := b.MostExpensive()
	require.True(t, ok)
	assert.Equal(t, "Amazon EC2", most.Service)

	least, ok := b.LeastExpensive()
	require.True(t, ok)
	assert.Equal(t, "AWS Lambda", least.Service)

	for i := 1; i < len(b.Services); i++ {
		assert.GreaterOrEqual(t, b.Services[i-1].Cost, b.Services[i].Cost)
	}
}

// TestAggregateTiesByName verifies equal costs sort by service name.
func TestAggregateTiesByName(t *testing.T) {
	b := Aggregate(records("Zeta", 5.0, "Alpha", 5.0))
	assert.Equal(t, "Alpha", b.Services[0].Service)
	assert.Equal(t, "Zeta", b.Services[1].Service)
}

// TestAggregateEmpty verifies an empty input has no extremes and no
// division by zero.
func TestAggregateEmpty(t *testing.T) {
	b := Aggregate(nil)
	assert.Zero(t, b.Total)
	_, ok := b.MostExpensive()
	assert.False(t, ok)
	_, ok = b.LeastExpensive()
	assert.False(t, ok)

	zero := Aggregate(records("Tax", 0.0))
	assert.Zero(t, zero.Services[0].Percent)
}

// TestTrend verifies the change formula and the zero guard.
func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
		label    string
	}{
		{name: "increase", current: 150, previous: 100, expected: 50, label: "Increase"},
		{name: "decrease", current: 75, previous: 100, expected: -25, label: "Decrease"},
		{name: "flat", current: 100, previous: 100, expected: 0, label: "Decrease"},
		{name: "previous zero", current: 80, previous: 0, expected: 0, label: "Decrease"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := Trend(tt.current, tt.previous)
			assert.InDelta(t, tt.expected, change, 1e-9)
			assert.Equal(t, tt.label, TrendLabel(change))
		})
	}
}

// TestDescribeTrend verifies the rendered sentence uses the absolute value.
func TestDescribeTrend(t *testing.T) {
	assert.Equal(t, "Decrease of 0.00%", DescribeTrend(Trend(10, 0)))
	assert.Equal(t, "Decrease of 25.00%", DescribeTrend(-25))
	assert.Equal(t, "Increase of 12.50%", DescribeTrend(12.5))
}

// TestFormatCost verifies dollar formatting.
func TestFormatCost(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "one decimal", amount: 1234.5, expected: "$1234.50"},
		{name: "zero", amount: 0, expected: "$0.00"},
		{name: "rounds", amount: 0.005001, expected: "$0.01"},
		{name: "integer", amount: 42, expected: "$42.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCost(tt.amount))
		})
	}
}

// TestDailyAverage verifies the zero-days guard.
func TestDailyAverage(t *testing.T) {
	assert.InDelta(t, 10.0, DailyAverage(300, 30), 1e-9)
	assert.Zero(t, DailyAverage(300, 0))
	assert.Equal(t, "33.33%", FormatPercent(Percent(1, 3)))
}
