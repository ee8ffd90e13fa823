package models

// CostRecord is one service amount returned by Cost Explorer for a period
type CostRecord struct {
	Service string
	Amount  float64
	Start   string // YYYY-MM-DD, inclusive
	End     string // YYYY-MM-DD, exclusive
}

// ServiceCost is a service's summed cost and its share of the total
type ServiceCost struct {
	Service string
	Cost    float64
	Percent float64
}

// BillingInfo is one row of the billing report
type BillingInfo struct {
	Profile      string
	MonthToDate  float64
	Forecast     float64
	EstimatedDue float64
	Err          error
}
