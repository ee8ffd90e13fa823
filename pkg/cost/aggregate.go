// Package cost turns Cost Explorer records into per-service breakdowns,
// period totals and trend figures.
package cost

import (
	"fmt"
	"math"
	"sort"

	"github.com/younsl/awskit/internal/models"
)

// Breakdown is the per-service view of a query window, sorted by cost
// descending.
type Breakdown struct {
	Services []models.ServiceCost
	Total    float64
}

// Aggregate sums records per service and computes each service's share of
// the total. Ties are ordered by service name.
func Aggregate(records []models.CostRecord) Breakdown {
	sums := make(map[string]float64)
	var total float64
	for _, r := range records {
		sums[r.Service] += r.Amount
		total += r.Amount
	}

	services := make([]models.ServiceCost, 0, len(sums))
	for name, amount := range sums {
		services = append(services, models.ServiceCost{
			Service: name,
			Cost:    amount,
			Percent: Percent(amount, total),
		})
	}

	sort.Slice(services, func(i, j int) bool {
		if services[i].Cost != services[j].Cost {
			return services[i].Cost > services[j].Cost
		}
		return services[i].Service < services[j].Service
	})

	return Breakdown{Services: services, Total: total}
}

// Sum returns the total amount of records regardless of service.
func Sum(records []models.CostRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// MostExpensive returns the first service, false when there is none.
func (b Breakdown) MostExpensive() (models.ServiceCost, bool) {
	if len(b.Services) == 0 {
		return models.ServiceCost{}, false
	}
	return b.Services[0], true
}

// LeastExpensive returns the last service, false when there is none.
func (b Breakdown) LeastExpensive() (models.ServiceCost, bool) {
	if len(b.Services) == 0 {
		return models.ServiceCost{}, false
	}
	return b.Services[len(b.Services)-1], true
}

// Percent returns part as a percentage of total, 0 when total is 0.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// Trend returns the percentage change from previous to current. A zero or
// negative previous period yields 0.
func Trend(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// TrendLabel describes a change as "Increase" or "Decrease".
func TrendLabel(change float64) string {
	if change > 0 {
		return "Increase"
	}
	return "Decrease"
}

// DescribeTrend renders e.g. "Increase of 12.50%".
func DescribeTrend(change float64) string {
	return fmt.Sprintf("%s of %.2f%%", TrendLabel(change), math.Abs(change))
}

// DailyAverage spreads total over days, 0 when days is not positive.
func DailyAverage(total float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return total / float64(days)
}

// FormatCost formats an amount as dollars with two decimals.
func FormatCost(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPercent formats a percentage with two decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
