package progress

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner wraps a terminal spinner that can be paused around printed lines
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner writing to out
func NewSpinner(out io.Writer) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false
	_ = s.Color("cyan", "bold")
	return &Spinner{s: s}
}

// Update sets the message and starts the spinner if needed
func (s *Spinner) Update(message string) {
	s.s.Suffix = " " + message
	if !s.s.Active() {
		s.s.Start()
	}
}

// Stop stops the spinner if it is running
func (s *Spinner) Stop() {
	if s.s.Active() {
		s.s.Stop()
	}
}

// Active reports whether the spinner is running
func (s *Spinner) Active() bool {
	return s.s.Active()
}

// Around stops the spinner while fn prints, then restarts it
func (s *Spinner) Around(fn func()) {
	wasActive := s.s.Active()
	if wasActive {
		s.s.Stop()
	}
	fn()
	if wasActive {
		s.s.Start()
	}
}
