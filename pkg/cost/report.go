package cost

import (
	"context"
	"fmt"
	"time"

	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
)

// Source is the slice of Cost Explorer the reports need. Dates are
// YYYY-MM-DD with an exclusive end.
type Source interface {
	ServiceCosts(ctx context.Context, start, end string) ([]models.CostRecord, error)
	Forecast(ctx context.Context, start, end string) (float64, error)
}

// Report is the service cost analysis for one profile. Optional figures are
// nil when their query failed.
type Report struct {
	Profile      string
	Start        time.Time
	End          time.Time
	Days         int
	Breakdown    Breakdown
	DailyAverage float64

	PreviousMonth *float64
	MonthToDate   *float64
	MonthForecast *float64
	YearToDate    *float64
	Trend         *float64
}

// Analyze builds the cost analysis for the last days days ending today. The
// main breakdown query is required; every other figure is best effort. The
// trend against the preceding window is only computed when days reaches
// trendMinDays.
func Analyze(ctx context.Context, src Source, profile string, now time.Time, days, trendMinDays int) (*Report, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	start, end := AnalysisWindow(now, days)
	records, err := src.ServiceCosts(ctx, FormatDate(start), FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("error retrieving cost data: %w", err)
	}

	breakdown := Aggregate(records)
	report := &Report{
		Profile:      profile,
		Start:        start,
		End:          end,
		Days:         days,
		Breakdown:    breakdown,
		DailyAverage: DailyAverage(breakdown.Total, days),
	}

	prevStart, prevEnd := PreviousMonth(end)
	report.PreviousMonth = periodTotal(ctx, src, "previous month", prevStart, prevEnd)

	report.MonthToDate = periodTotal(ctx, src, "month to date", MonthStart(end), end)
	if report.MonthToDate != nil {
		remaining, err := forecast(ctx, src, end, NextMonthStart(end))
		if err != nil {
			log.WithError(err).Error("cost forecast unavailable")
		} else {
			month := *report.MonthToDate + remaining
			report.MonthForecast = &month
		}
	}

	report.YearToDate = periodTotal(ctx, src, "year to date", YearStart(end), end)

	if days >= trendMinDays {
		ps, pe := PreviousWindow(start, days)
		if previous := periodTotal(ctx, src, "previous window", ps, pe); previous != nil {
			change := Trend(breakdown.Total, *previous)
			report.Trend = &change
		}
	}

	return report, nil
}

// Billing returns month-to-date cost and the forecast for the rest of the
// month. The estimated amount due is their sum.
func Billing(ctx context.Context, src Source, profile string, now time.Time) models.BillingInfo {
	info := models.BillingInfo{Profile: profile}
	today := Day(now)

	mtd, err := total(ctx, src, MonthStart(today), today)
	if err != nil {
		info.Err = fmt.Errorf("error retrieving month-to-date cost: %w", err)
		return info
	}

	remaining, err := forecast(ctx, src, today, NextMonthStart(today))
	if err != nil {
		info.Err = fmt.Errorf("error retrieving cost forecast: %w", err)
		return info
	}

	info.MonthToDate = mtd
	info.Forecast = remaining
	info.EstimatedDue = mtd + remaining
	return info
}

// total sums every service for [start, end). An empty window costs nothing
// and is not queried.
func total(ctx context.Context, src Source, start, end time.Time) (float64, error) {
	if !start.Before(end) {
		return 0, nil
	}
	records, err := src.ServiceCosts(ctx, FormatDate(start), FormatDate(end))
	if err != nil {
		return 0, err
	}
	return Sum(records), nil
}

func forecast(ctx context.Context, src Source, start, end time.Time) (float64, error) {
	if !start.Before(end) {
		return 0, nil
	}
	return src.Forecast(ctx, FormatDate(start), FormatDate(end))
}

func periodTotal(ctx context.Context, src Source, label string, start, end time.Time) *float64 {
	v, err := total(ctx, src, start, end)
	if err != nil {
		log.WithError(err).Errorf("%s cost unavailable", label)
		return nil
	}
	return &v
}
