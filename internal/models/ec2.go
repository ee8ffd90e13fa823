package models

import "time"

// InstanceSummary represents one EC2 instance as shown in the instance list
type InstanceSummary struct {
	InstanceID   string
	Name         string
	State        string
	InstanceType string
	PrivateIP    string
	PublicIP     string
	LaunchTime   time.Time
	Region       string
	KeyName      string

	// Optional enrichments, filled only when requested
	AvgCPU        *float64
	MonthlyCost   float64
	PricingSource string // "API", "Cache", "N/A" or empty when not requested
}
