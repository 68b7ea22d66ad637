package report

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

// Phase tracks one running unit of CLI-visible progress (e.g. "translating
// module Foo"), rendered as a spinner the way src/logging/display.go's
// displayBeginPhase/displayEndPhase pair does.
type Phase struct {
	spinner *pterm.SpinnerPrinter
	text    string
	start   time.Time
}

// BeginPhase starts a spinner labeled text and returns the handle Done
// needs to stop it.
func BeginPhase(text string) *Phase {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(false).
		Start(text)
	return &Phase{spinner: spinner, text: text, start: time.Now()}
}

// Done stops the spinner, reporting success or failure with the elapsed
// time appended to its label.
func (p *Phase) Done(success bool) {
	elapsed := time.Since(p.start)
	msg := fmt.Sprintf("%s (%s)", p.text, elapsed.Round(time.Millisecond))
	if success {
		p.spinner.Success(msg)
	} else {
		p.spinner.Fail(msg)
	}
}
