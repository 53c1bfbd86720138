package console

import (
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner wraps the spinner with TTY detection: when output is not a
// terminal the spinner is a no-op, so piped output never sees control
// sequences.
type Spinner struct {
	inner   *spinner.Spinner
	enabled bool
}

// NewSpinner creates a spinner with the given message, enabled only when
// stdout is a terminal
func NewSpinner(message string) *Spinner {
	s := &Spinner{enabled: isatty.IsTerminal(1)}
	if s.enabled {
		s.inner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.inner.Suffix = " " + message
		_ = s.inner.Color("cyan")
	}
	return s
}

// Start begins the animation
func (s *Spinner) Start() {
	if s.enabled {
		s.inner.Start()
	}
}

// Stop halts the animation
func (s *Spinner) Stop() {
	if s.enabled {
		s.inner.Stop()
	}
}

// SetMessage updates the message shown next to the spinner
func (s *Spinner) SetMessage(message string) {
	if s.enabled {
		s.inner.Suffix = " " + message
	}
}
