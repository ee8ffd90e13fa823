package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Progress is a spinner that stays silent when stderr is not a terminal.
type Progress struct {
	s     *spinner.Spinner
	start time.Time
}

// StartProgress starts a spinner with the given suffix.
func StartProgress(format string, args ...interface{}) *Progress {
	p := &Progress{start: time.Now()}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return p
	}
	p.s = spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(os.Stderr))
	p.s.Suffix = " " + fmt.Sprintf(format, args...)
	p.s.Start()
	return p
}

// Done stops the spinner and prints a completion line with elapsed time.
func (p *Progress) Done(format string, args ...interface{}) {
	elapsed := time.Since(p.start)
	if p.s == nil {
		return
	}
	p.s.FinalMSG = fmt.Sprintf("✓ %s - Completed in %.2f seconds\n", fmt.Sprintf(format, args...), elapsed.Seconds())
	p.s.Stop()
}

// Stop stops the spinner without a completion line.
func (p *Progress) Stop() {
	if p.s != nil {
		p.s.Stop()
	}
}
