package models

// Profile sources
const (
	SourceConfig      = "config"
	SourceCredentials = "credentials"
	SourceBoth        = "config+credentials"
)

// Profile represents a named AWS profile found in the shared config files
type Profile struct {
	Name      string
	Region    string // "Not set" when neither file defines one
	AccountID string // filled by STS lookup, or "Error: ..." on failure
	AccessKey string // aws_access_key_id from credentials, "Not set" otherwise
	Source    string
}
