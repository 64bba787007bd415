package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const maxPhaseLength = len("Generating")

// Phase is a running compilation phase displayed with a spinner.
type Phase struct {
	name    string
	spinner *pterm.SpinnerPrinter
	start   time.Time
}

// BeginPhase displays the beginning of a compilation phase.  The spinner is
// only shown at the verbose log level; otherwise the returned phase is inert.
func (r *Reporter) BeginPhase(name string) *Phase {
	ph := &Phase{name: name, start: time.Now()}
	if r.logLevel < LogLevelVerbose {
		return ph
	}

	ph.spinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	ph.spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}
	ph.spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	ph.spinner, _ = ph.spinner.Start(ph.paddedName() + "...")
	return ph
}

// End displays the end of the phase.
func (ph *Phase) End(success bool) {
	if ph.spinner == nil {
		return
	}

	if success {
		ph.spinner.Success(ph.paddedName(), fmt.Sprintf("(%.3fs)", time.Since(ph.start).Seconds()))
	} else {
		ph.spinner.Fail(ph.paddedName())
	}

	ph.spinner = nil
}

func (ph *Phase) paddedName() string {
	pad := maxPhaseLength - len(ph.name) + 2
	if pad < 1 {
		pad = 1
	}

	return ph.name + strings.Repeat(" ", pad)
}
