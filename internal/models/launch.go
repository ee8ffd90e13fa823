package models

// SecurityGroupSpec holds the prompted parameters for a new security group
type SecurityGroupSpec struct {
	Name         string
	Description  string
	VpcID        string
	IngressPorts []int32
	EgressPort   *int32 // nil keeps the default allow-all egress rule
	CIDR         string
}

// KeyPairSpec selects an existing key pair or names a new one
type KeyPairSpec struct {
	Name        string
	UseExisting bool
}

// LaunchResult describes the instance created by the wizard
type LaunchResult struct {
	InstanceID   string
	InstanceType string
	ImageID      string
	KeyName      string
	KeyFile      string // set when a new key pair was saved locally
	PublicIP     string
	PrivateIP    string
	GroupID      string
}
