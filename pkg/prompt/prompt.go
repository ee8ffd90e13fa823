// Package prompt reads validated answers from an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidSelection is returned when a one-shot selection is not a valid
// menu number.
var ErrInvalidSelection = errors.New("invalid selection")

// AllChoice is the keyword accepted by SelectOrAll.
const AllChoice = "all"

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter reading lines from in.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Ask prints label and returns the trimmed answer. io.EOF is returned once
// input is exhausted and nothing was typed.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskDefault returns def when the answer is empty.
func (p *Prompter) AskDefault(label, def string) (string, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm returns true only for an explicit "y" (case-insensitive).
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Ask(label)
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) == "y", nil
}

// PrintMenu prints items as a 1-based numbered list under title.
func (p *Prompter) PrintMenu(title string, items []string) {
	fmt.Fprintln(p.out, title)
	for i, item := range items {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, item)
	}
}

// Select prints a numbered menu and keeps asking until a valid number is
// entered. It returns the zero-based index.
func (p *Prompter) Select(title, label string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("%w: nothing to choose from", ErrInvalidSelection)
	}
	p.PrintMenu(title, items)

	for {
		answer, err := p.Ask(label)
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
			continue
		}
		if choice < 1 || choice > len(items) {
			fmt.Fprintln(p.out, "Invalid selection. Please try again.")
			continue
		}
		return choice - 1, nil
	}
}

// SelectOrAll prints a numbered menu and reads one answer. It returns
// all=true for "all", the zero-based index for a valid number, and
// ErrInvalidSelection otherwise. There is no retry.
func (p *Prompter) SelectOrAll(title, label string, items []string) (index int, all bool, err error) {
	p.PrintMenu(title, items)

	answer, err := p.Ask(label)
	if err != nil {
		return 0, false, err
	}
	return ParseChoice(answer, len(items))
}

// ParseChoice interprets a one-shot menu answer against n items.
func ParseChoice(answer string, n int) (int, bool, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == AllChoice {
		return 0, true, nil
	}
	choice, err := strconv.Atoi(answer)
	if err != nil || choice < 1 || choice > n {
		return 0, false, fmt.Errorf("%w: %q", ErrInvalidSelection, answer)
	}
	return choice - 1, false, nil
}

// ParsePorts splits a comma-separated port list. Tokens that are not valid
// TCP ports are returned in skipped.
func ParsePorts(csv string) (ports []int32, skipped []string) {
	for _, token := range strings.Split(csv, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		port, err := ParsePort(token)
		if err != nil {
			skipped = append(skipped, token)
			continue
		}
		ports = append(ports, port)
	}
	return ports, skipped
}

// ParsePort parses a single TCP port in 0-65535.
func ParsePort(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", s)
	}
	if n < 0 || n > 65535 {
		return 0, fmt.Errorf("port out of range: %s", s)
	}
	return int32(n), nil
}
