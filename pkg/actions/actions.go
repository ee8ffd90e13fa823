// Package actions maps typed verbs to EC2 instance lifecycle calls.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/younsl/awskit/internal/log"
	"github.com/younsl/awskit/pkg/prompt"
)

// Action is an instance lifecycle verb.
type Action string

const (
	Start     Action = "start"
	Stop      Action = "stop"
	Reboot    Action = "reboot"
	Terminate Action = "terminate"
)

// QuitCommand ends the manage loop.
const QuitCommand = "q"

var (
	// ErrUnknownAction is returned for verbs outside start/stop/reboot/terminate.
	ErrUnknownAction = errors.New("invalid action")

	// ErrAborted is returned when a terminate was not confirmed.
	ErrAborted = errors.New("termination aborted")
)

// All lists the supported actions in menu order.
var All = []Action{Start, Stop, Reboot, Terminate}

var progressVerbs = map[Action]string{
	Start:     "Starting",
	Stop:      "Stopping",
	Reboot:    "Rebooting",
	Terminate: "Terminating",
}

// Parse maps a typed verb to an Action.
func Parse(verb string) (Action, error) {
	verb = strings.ToLower(strings.TrimSpace(verb))
	for _, a := range All {
		if string(a) == verb {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, verb)
}

// Destructive reports whether the action needs a confirmation.
func (a Action) Destructive() bool {
	return a == Terminate
}

// InstanceActioner issues the lifecycle calls for one instance.
type InstanceActioner interface {
	StartInstance(ctx context.Context, id string) error
	StopInstance(ctx context.Context, id string) error
	RebootInstance(ctx context.Context, id string) error
	TerminateInstance(ctx context.Context, id string) error
}

// Dispatcher runs actions against an InstanceActioner, asking for
// confirmation before destructive ones.
type Dispatcher struct {
	api     InstanceActioner
	prompts *prompt.Prompter
}

// NewDispatcher returns a Dispatcher.
func NewDispatcher(api InstanceActioner, prompts *prompt.Prompter) *Dispatcher {
	return &Dispatcher{api: api, prompts: prompts}
}

// Run issues action for instance id. Terminate is only sent after an
// explicit "y"; anything else returns ErrAborted without an API call.
func (d *Dispatcher) Run(ctx context.Context, action Action, id string) error {
	if action.Destructive() {
		ok, err := d.prompts.Confirm(fmt.Sprintf("Are you sure you want to terminate %s? This cannot be undone (y/n): ", id))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	var err error
	switch action {
	case Start:
		err = d.api.StartInstance(ctx, id)
	case Stop:
		err = d.api.StopInstance(ctx, id)
	case Reboot:
		err = d.api.RebootInstance(ctx, id)
	case Terminate:
		err = d.api.TerminateInstance(ctx, id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err != nil {
		return fmt.Errorf("error %s instance %s: %w", strings.ToLower(progressVerbs[action]), id, err)
	}

	log.Infof("%s sent for %s", action, id)
	fmt.Fprintf(d.prompts.Out(), "%s instance %s...\n", progressVerbs[action], id)
	return nil
}

// Loop reads actions until "q" or end of input. Failures are printed and
// the loop continues.
func (d *Dispatcher) Loop(ctx context.Context) error {
	out := d.prompts.Out()
	for {
		verb, err := d.prompts.Ask("\nEnter action (start/stop/reboot/terminate) or 'q' to quit: ")
		if err != nil {
			return err
		}

		if strings.ToLower(verb) == QuitCommand {
			fmt.Fprintln(out, "Exiting...")
			return nil
		}

		action, err := Parse(verb)
		if err != nil {
			fmt.Fprintln(out, "Invalid action. Please enter start, stop, reboot, terminate, or 'q' to quit.")
			continue
		}

		id, err := d.prompts.Ask("Enter Instance ID to manage: ")
		if err != nil {
			return err
		}

		if err := d.Run(ctx, action, id); err != nil {
			if errors.Is(err, ErrAborted) {
				fmt.Fprintln(out, "Termination aborted.")
				continue
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}
