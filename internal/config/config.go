// Package config loads awskit settings from ~/.awskit.yaml, AWSKIT_*
// environment variables and bound command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Setting keys
const (
	KeyAWSConfigFile      = "aws.config_file"
	KeyAWSCredentialsFile = "aws.credentials_file"
	KeyCostDays           = "cost.days"
	KeyCostTrendMinDays   = "cost.trend_min_days"
	KeyInstanceType       = "ec2.instance_type"
	KeyAMIOwner           = "ec2.ami_owner"
	KeyAMINameFilter      = "ec2.ami_name_filter"
	KeyIngressCIDR        = "ec2.ingress_cidr"
	KeyDefaultIngress     = "ec2.default_ingress_ports"
	KeyWaitTimeout        = "ec2.wait_timeout"
	KeyKeyDir             = "ec2.key_dir"
	KeyPricingEnabled     = "pricing.enabled"
	KeyPricingRegion      = "pricing.region"
)

// Settings is the resolved configuration shared by every command.
type Settings struct {
	AWSConfigFile      string
	AWSCredentialsFile string

	CostDays         int
	CostTrendMinDays int

	InstanceType        string
	AMIOwner            string
	AMINameFilter       string
	IngressCIDR         string
	DefaultIngressPorts string
	WaitTimeout         time.Duration
	KeyDir              string

	PricingEnabled bool
	PricingRegion  string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	home, _ := os.UserHomeDir()

	awsConfig := os.Getenv("AWS_CONFIG_FILE")
	if awsConfig == "" {
		awsConfig = filepath.Join(home, ".aws", "config")
	}
	awsCredentials := os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if awsCredentials == "" {
		awsCredentials = filepath.Join(home, ".aws", "credentials")
	}

	v.SetDefault(KeyAWSConfigFile, awsConfig)
	v.SetDefault(KeyAWSCredentialsFile, awsCredentials)
	v.SetDefault(KeyCostDays, 30)
	v.SetDefault(KeyCostTrendMinDays, 60)
	v.SetDefault(KeyInstanceType, "t2.micro")
	v.SetDefault(KeyAMIOwner, "amazon")
	v.SetDefault(KeyAMINameFilter, "amzn2-ami-hvm-*-x86_64-gp2")
	v.SetDefault(KeyIngressCIDR, "0.0.0.0/0")
	v.SetDefault(KeyDefaultIngress, "22")
	v.SetDefault(KeyWaitTimeout, "5m")
	v.SetDefault(KeyKeyDir, ".")
	v.SetDefault(KeyPricingEnabled, true)
	v.SetDefault(KeyPricingRegion, "us-east-1")
}

// Load reads the config file (explicit path or ~/.awskit.yaml) into v. A
// missing default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix("AWSKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".awskit")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// FromViper snapshots v into Settings.
func FromViper(v *viper.Viper) Settings {
	return Settings{
		AWSConfigFile:       expandHome(v.GetString(KeyAWSConfigFile)),
		AWSCredentialsFile:  expandHome(v.GetString(KeyAWSCredentialsFile)),
		CostDays:            v.GetInt(KeyCostDays),
		CostTrendMinDays:    v.GetInt(KeyCostTrendMinDays),
		InstanceType:        v.GetString(KeyInstanceType),
		AMIOwner:            v.GetString(KeyAMIOwner),
		AMINameFilter:       v.GetString(KeyAMINameFilter),
		IngressCIDR:         v.GetString(KeyIngressCIDR),
		DefaultIngressPorts: v.GetString(KeyDefaultIngress),
		WaitTimeout:         v.GetDuration(KeyWaitTimeout),
		KeyDir:              expandHome(v.GetString(KeyKeyDir)),
		PricingEnabled:      v.GetBool(KeyPricingEnabled),
		PricingRegion:       v.GetString(KeyPricingRegion),
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
