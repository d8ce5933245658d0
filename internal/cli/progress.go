package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// startSpinner shows label with a spinner on w until the returned func is
// called. Nothing is drawn unless w is a terminal.
func startSpinner(w io.Writer, label string) func() {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + label
	s.Start()
	return s.Stop
}
