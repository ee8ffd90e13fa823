package pricing

// Source represents where a price came from
type Source string

const (
	// SourceAPI indicates pricing data came from the AWS Pricing API
	SourceAPI Source = "API"

	// SourceCache indicates pricing data came from the in-process cache
	SourceCache Source = "Cache"

	// SourceNA indicates pricing data is not available
	SourceNA Source = "N/A"
)

// HoursPerMonth is the billing month used for estimates (365 days / 12 months * 24 hours)
const HoursPerMonth = 730.0

// DefaultRegion is where the Pricing API endpoint lives.
// The API is only served from us-east-1 and ap-south-1.
const DefaultRegion = "us-east-1"

// Stat counters for one region
type Stat struct {
	Success int
	Failure int
	Cache   int
}
