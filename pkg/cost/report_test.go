package cost

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younsl/awskit/internal/models"
)

type fakeSource struct {
	costs        map[string][]models.CostRecord
	costErrs     map[string]error
	forecasts    map[string]float64
	forecastErrs map[string]error
	calls        []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		costs:        map[string][]models.CostRecord{},
		costErrs:     map[string]error{},
		forecasts:    map[string]float64{},
		forecastErrs: map[string]error{},
	}
}

func (f *fakeSource) ServiceCosts(_ context.Context, start, end string) ([]models.CostRecord, error) {
	key := start + "/" + end
	f.calls = append(f.calls, "cost "+key)
	if err := f.costErrs[key]; err != nil {
		return nil, err
	}
	return f.costs[key], nil
}

func (f *fakeSource) Forecast(_ context.Context, start, end string) (float64, error) {
	key := start + "/" + end
	f.calls = append(f.calls, "forecast "+key)
	if err := f.forecastErrs[key]; err != nil {
		return 0, err
	}
	return f.forecasts[key], nil
}

var march15 = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

// TestAnalyzeWindows verifies every figure is queried with the expected
// window and combined correctly.
func TestAnalyzeWindows(t *testing.T) {
	src := newFakeSource()
	src.costs["2024-02-14/2024-03-15"] = records("Amazon EC2", 200.0, "Amazon S3", 100.0)
	src.costs["2024-02-01/2024-03-01"] = records("Amazon EC2", 250.0, "Amazon S3", 50.0)
	src.costs["2024-03-01/2024-03-15"] = records("Amazon EC2", 120.0, "Amazon S3", 20.0)
	src.forecasts["2024-03-15/2024-04-01"] = 160.0
	src.costs["2024-01-01/2024-03-15"] = records("Amazon EC2", 700.0)

	report, err := Analyze(context.Background(), src, "dev", march15, 30, 60)
	require.NoError(t, err)

	assert.Equal(t, "2024-02-14", FormatDate(report.Start))
	assert.Equal(t, "2024-03-15", FormatDate(report.End))
	assert.InDelta(t, 300.0, report.Breakdown.Total, 1e-9)
	assert.InDelta(t, 10.0, report.DailyAverage, 1e-9)

	require.NotNil(t, report.PreviousMonth)
	assert.InDelta(t, 300.0, *report.PreviousMonth, 1e-9)
	require.NotNil(t, report.MonthToDate)
	assert.InDelta(t, 140.0, *report.MonthToDate, 1e-9)
	require.NotNil(t, report.MonthForecast)
	assert.InDelta(t, 300.0, *report.MonthForecast, 1e-9)
	require.NotNil(t, report.YearToDate)
	assert.InDelta(t, 700.0, *report.YearToDate, 1e-9)

	assert.Nil(t, report.Trend, "trend requires at least 60 days")
}

// TestAnalyzeTrend verifies the previous window comparison for long windows.
func TestAnalyzeTrend(t *testing.T) {
	src := newFakeSource()
	src.costs["2024-01-15/2024-03-15"] = records("Amazon EC2", 150.0)
	src.costs["2023-11-16/2024-01-15"] = records("Amazon EC2", 100.0)

	report, err := Analyze(context.Background(), src, "dev", march15, 60, 60)
	require.NoError(t, err)
	require.NotNil(t, report.Trend)
	assert.InDelta(t, 50.0, *report.Trend, 1e-9)
}

// TestAnalyzeTrendPreviousZero verifies a zero previous window reports 0.
func TestAnalyzeTrendPreviousZero(t *testing.T) {
	src := newFakeSource()
	src.costs["2024-01-15/2024-03-15"] = records("Amazon EC2", 150.0)

	report, err := Analyze(context.Background(), src, "dev", march15, 60, 60)
	require.NoError(t, err)
	require.NotNil(t, report.Trend)
	assert.Zero(t, *report.Trend)
}

// TestAnalyzeOptionalFailures verifies auxiliary failures only drop their
// own figure.
func TestAnalyzeOptionalFailures(t *testing.T) {
	src := newFakeSource()
	src.costs["2024-02-14/2024-03-15"] = records("Amazon EC2", 30.0)
	src.costErrs["2024-02-01/2024-03-01"] = errors.New("AccessDenied")
	src.costs["2024-03-01/2024-03-15"] = records("Amazon EC2", 14.0)
	src.forecastErrs["2024-03-15/2024-04-01"] = errors.New("DataUnavailable")

	report, err := Analyze(context.Background(), src, "dev", march15, 30, 60)
	require.NoError(t, err)
	assert.Nil(t, report.PreviousMonth)
	require.NotNil(t, report.MonthToDate)
	assert.Nil(t, report.MonthForecast)
	require.NotNil(t, report.YearToDate)
}

// TestAnalyzeMainFailure verifies the breakdown query is required.
func TestAnalyzeMainFailure(t *testing.T) {
	src := newFakeSource()
	src.costErrs["2024-02-14/2024-03-15"] = errors.New("throttled")

	_, err := Analyze(context.Background(), src, "dev", march15, 30, 60)
	assert.ErrorContains(t, err, "throttled")

	_, err = Analyze(context.Background(), src, "dev", march15, 0, 60)
	assert.Error(t, err)
}

// TestAnalyzeFirstOfMonth verifies empty windows are not queried.
func TestAnalyzeFirstOfMonth(t *testing.T) {
	src := newFakeSource()
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	report, err := Analyze(context.Background(), src, "dev", now, 30, 60)
	require.NoError(t, err)
	require.NotNil(t, report.MonthToDate)
	assert.Zero(t, *report.MonthToDate)
	require.NotNil(t, report.YearToDate)
	assert.Zero(t, *report.YearToDate)

	assert.NotContains(t, src.calls, "cost 2024-01-01/2024-01-01")
}

// TestBilling verifies month-to-date, forecast and amount due.
func TestBilling(t *testing.T) {
	src := newFakeSource()
	src.costs["2024-03-01/2024-03-15"] = records("Amazon EC2", 100.0, "Amazon S3", 40.0)
	src.forecasts["2024-03-15/2024-04-01"] = 160.0

	info := Billing(context.Background(), src, "prod", march15)
	require.NoError(t, info.Err)
	assert.Equal(t, "prod", info.Profile)
	assert.InDelta(t, 140.0, info.MonthToDate, 1e-9)
	assert.InDelta(t, 160.0, info.Forecast, 1e-9)
	assert.InDelta(t, 300.0, info.EstimatedDue, 1e-9)
}

// TestBillingError verifies a failed query is reported on the row.
func TestBillingError(t *testing.T) {
	src := newFakeSource()
	src.forecastErrs["2024-03-15/2024-04-01"] = errors.New("DataUnavailableException")

	info := Billing(context.Background(), src, "prod", march15)
	require.Error(t, info.Err)
	assert.Contains(t, info.Err.Error(), "forecast")
}

// TestDates verifies calendar helpers across year boundaries.
func TestDates(t *testing.T) {
	jan := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	start, end := PreviousMonth(jan)
	assert.Equal(t, "2024-12-01", FormatDate(start))
	assert.Equal(t, "2025-01-01", FormatDate(end))

	assert.Equal(t, "2025-02-01", FormatDate(NextMonthStart(jan)))
	assert.Equal(t, "2025-01-01", FormatDate(YearStart(jan)))
}
