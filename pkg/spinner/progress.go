package spinner

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Run executes fn while animating a spinner with the given label, stopping
// the spinner once fn returns. fn's error is passed through unchanged.
func Run(label string, out io.Writer, fn func() error) error {
	s := spinner.New(spinner.CharSets[70], 100*time.Millisecond, spinner.WithWriter(out))
	s.Prefix = label
	s.Start()
	defer s.Stop()

	return fn()
}
