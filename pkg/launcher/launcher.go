// Package launcher walks an operator through creating one EC2 instance in
// the default VPC: security group, key pair, instance type and AMI.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/internal/models"
	"github.com/younsl/awskit/pkg/cost"
	"github.com/younsl/awskit/pkg/pricing"
	"github.com/younsl/awskit/pkg/prompt"
)

// ErrAborted is returned when the operator declines to retry a failed step.
var ErrAborted = errors.New("aborted by user")

// keyFileMode is owner read-only, as ssh requires for private keys
const keyFileMode = 0o400

// EC2API is the set of EC2 operations the wizard drives.
type EC2API interface {
	DefaultVPC(ctx context.Context) (string, error)
	CreateSecurityGroup(ctx context.Context, spec models.SecurityGroupSpec) (string, error)
	AuthorizeIngress(ctx context.Context, groupID string, ports []int32, cidr string) error
	AuthorizeEgress(ctx context.Context, groupID string, port int32, cidr string) error
	KeyPairs(ctx context.Context) ([]string, error)
	CreateKeyPair(ctx context.Context, name string) (string, error)
	LatestImage(ctx context.Context, owner, nameFilter string) (string, error)
	RunInstance(ctx context.Context, imageID, instanceType, keyName, groupID string) (string, error)
	WaitRunning(ctx context.Context, id string, maxWait time.Duration) error
	DescribeInstance(ctx context.Context, id string) (models.InstanceSummary, error)
}

// Estimator prices an instance type for a month of on-demand use.
type Estimator interface {
	MonthlyEstimate(ctx context.Context, instanceType, region string) (float64, pricing.Source)
}

// Options are the wizard defaults, normally taken from config.Settings.
type Options struct {
	Region              string
	InstanceType        string
	AMIOwner            string
	AMINameFilter       string
	IngressCIDR         string
	DefaultIngressPorts string
	WaitTimeout         time.Duration
	KeyDir              string
}

// Wizard runs the creation flow against one region.
type Wizard struct {
	api       EC2API
	prompts   *prompt.Prompter
	estimator Estimator
	opts      Options
}

// New returns a Wizard. estimator may be nil to skip the cost estimate.
func New(api EC2API, prompts *prompt.Prompter, estimator Estimator, opts Options) *Wizard {
	return &Wizard{api: api, prompts: prompts, estimator: estimator, opts: opts}
}

// Run executes every step in order and returns the running instance.
func (w *Wizard) Run(ctx context.Context) (*models.LaunchResult, error) {
	out := w.prompts.Out()

	vpcID, err := w.api.DefaultVPC(ctx)
	if err != nil {
		return nil, err
	}
	log.Debugf("using default VPC %s in %s", vpcID, w.opts.Region)

	groupID, err := w.SecurityGroup(ctx, vpcID)
	if err != nil {
		return nil, err
	}

	keyName, keyFile, err := w.KeyPair(ctx)
	if err != nil {
		return nil, err
	}

	instanceType, err := w.prompts.AskDefault(
		fmt.Sprintf("Enter the instance type (press Enter for %s): ", w.opts.InstanceType), w.opts.InstanceType)
	if err != nil {
		return nil, err
	}

	imageID, err := w.api.LatestImage(ctx, w.opts.AMIOwner, w.opts.AMINameFilter)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Using AMI: %s\n", imageID)

	w.printEstimate(ctx, instanceType)

	instanceID, err := w.api.RunInstance(ctx, imageID, instanceType, keyName, groupID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "EC2 instance %s created.\n", instanceID)
	fmt.Fprintln(out, "Waiting for instance to be running...")

	if err := w.api.WaitRunning(ctx, instanceID, w.opts.WaitTimeout); err != nil {
		return nil, err
	}

	instance, err := w.api.DescribeInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Instance is now running. Public IP: %s\n", orNone(instance.PublicIP))

	return &models.LaunchResult{
		InstanceID:   instanceID,
		InstanceType: instanceType,
		ImageID:      imageID,
		KeyName:      keyName,
		KeyFile:      keyFile,
		PublicIP:     instance.PublicIP,
		PrivateIP:    instance.PrivateIP,
		GroupID:      groupID,
	}, nil
}

// SecurityGroup prompts for a new group in vpcID and its rules. A failed
// attempt asks whether to start over.
func (w *Wizard) SecurityGroup(ctx context.Context, vpcID string) (string, error) {
	out := w.prompts.Out()
	for {
		spec, err := w.askGroupSpec(vpcID)
		if err != nil {
			return "", err
		}

		groupID, err := w.createGroup(ctx, spec)
		if err == nil {
			return groupID, nil
		}

		fmt.Fprintf(out, "Error creating security group: %v\n", err)
		retry, err := w.prompts.Confirm("Do you want to try again? (y/n): ")
		if err != nil {
			return "", err
		}
		if !retry {
			return "", ErrAborted
		}
	}
}

func (w *Wizard) askGroupSpec(vpcID string) (models.SecurityGroupSpec, error) {
	name, err := w.prompts.Ask("Enter a name for the new security group: ")
	if err != nil {
		return models.SecurityGroupSpec{}, err
	}
	description, err := w.prompts.AskDefault(
		"Enter a description for the security group (press Enter for default): ",
		fmt.Sprintf("Security group for %s", name))
	if err != nil {
		return models.SecurityGroupSpec{}, err
	}
	return models.SecurityGroupSpec{
		Name:        name,
		Description: description,
		VpcID:       vpcID,
		CIDR:        w.opts.IngressCIDR,
	}, nil
}

func (w *Wizard) createGroup(ctx context.Context, spec models.SecurityGroupSpec) (string, error) {
	out := w.prompts.Out()

	groupID, err := w.api.CreateSecurityGroup(ctx, spec)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Security Group created: %s\n", groupID)

	spec.IngressPorts, err = w.askIngressPorts()
	if err != nil {
		return "", err
	}
	if err := w.api.AuthorizeIngress(ctx, groupID, spec.IngressPorts, spec.CIDR); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Inbound rules added for ports: %s\n", joinPorts(spec.IngressPorts))

	spec.EgressPort, err = w.askEgressPort()
	if err != nil {
		return "", err
	}
	if spec.EgressPort == nil {
		fmt.Fprintln(out, "Default outbound rule (all traffic) will be used")
		return groupID, nil
	}
	if err := w.api.AuthorizeEgress(ctx, groupID, *spec.EgressPort, spec.CIDR); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Outbound rule added for port %d\n", *spec.EgressPort)
	return groupID, nil
}

func (w *Wizard) askIngressPorts() ([]int32, error) {
	out := w.prompts.Out()
	label := fmt.Sprintf("Enter the inbound (ingress) ports to open (comma-separated, press Enter for default %s): ",
		w.opts.DefaultIngressPorts)
	for {
		answer, err := w.prompts.AskDefault(label, w.opts.DefaultIngressPorts)
		if err != nil {
			return nil, err
		}
		ports, skipped := prompt.ParsePorts(answer)
		for _, token := range skipped {
			fmt.Fprintf(out, "Invalid port number: %s. Skipping.\n", token)
		}
		if len(ports) > 0 {
			return ports, nil
		}
		fmt.Fprintln(out, "No valid ports entered. Please try again.")
	}
}

func (w *Wizard) askEgressPort() (*int32, error) {
	for {
		answer, err := w.prompts.Ask("Enter the outbound (egress) port to open (press Enter for all traffic): ")
		if err != nil {
			return nil, err
		}
		if answer == "" {
			return nil, nil
		}
		port, err := prompt.ParsePort(answer)
		if err != nil {
			fmt.Fprintf(w.prompts.Out(), "Invalid port number: %s. Please try again.\n", answer)
			continue
		}
		return &port, nil
	}
}

// KeyPair selects an existing key pair or creates one and saves its
// private key under the key directory. keyFile is empty for existing pairs.
func (w *Wizard) KeyPair(ctx context.Context) (keyName, keyFile string, err error) {
	spec, err := w.askKeyPairSpec(ctx)
	if err != nil {
		return "", "", err
	}
	if spec.UseExisting {
		return spec.Name, "", nil
	}

	material, err := w.api.CreateKeyPair(ctx, spec.Name)
	if err != nil {
		return "", "", err
	}

	keyFile = filepath.Join(w.opts.KeyDir, spec.Name+".pem")
	if err := writeKeyFile(keyFile, material); err != nil {
		return "", "", err
	}
	fmt.Fprintf(w.prompts.Out(), "New key pair '%s' created and saved to %s\n", spec.Name, keyFile)
	return spec.Name, keyFile, nil
}

// writeKeyFile saves material to path with keyFileMode, also when path
// already exists.
func writeKeyFile(path, material string) error {
	if err := os.WriteFile(path, []byte(material), keyFileMode); err != nil {
		return fmt.Errorf("error saving private key to %s: %w", path, err)
	}
	if err := os.Chmod(path, keyFileMode); err != nil {
		return fmt.Errorf("error setting permissions on %s: %w", path, err)
	}
	return nil
}

func (w *Wizard) askKeyPairSpec(ctx context.Context) (models.KeyPairSpec, error) {
	useExisting, err := w.prompts.Confirm("Do you want to use an existing key pair? (y/n): ")
	if err != nil {
		return models.KeyPairSpec{}, err
	}

	if useExisting {
		names, err := w.api.KeyPairs(ctx)
		if err != nil {
			return models.KeyPairSpec{}, err
		}
		if len(names) > 0 {
			idx, err := w.prompts.Select("\nAvailable key pairs:", "\nSelect a key pair by number: ", names)
			if err != nil {
				return models.KeyPairSpec{}, err
			}
			return models.KeyPairSpec{Name: names[idx], UseExisting: true}, nil
		}
		fmt.Fprintln(w.prompts.Out(), "No key pairs found in this region. A new one will be created.")
	}

	name, err := w.prompts.Ask("Enter a name for the new key pair: ")
	if err != nil {
		return models.KeyPairSpec{}, err
	}
	return models.KeyPairSpec{Name: name}, nil
}

func (w *Wizard) printEstimate(ctx context.Context, instanceType string) {
	if w.estimator == nil {
		return
	}
	monthly, source := w.estimator.MonthlyEstimate(ctx, instanceType, w.opts.Region)
	if source == pricing.SourceNA {
		fmt.Fprintf(w.prompts.Out(), "Estimated on-demand cost for %s: N/A\n", instanceType)
		return
	}
	fmt.Fprintf(w.prompts.Out(), "Estimated on-demand cost for %s: %s/month (%s)\n",
		instanceType, cost.FormatCost(monthly), source)
}

func joinPorts(ports []int32) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
