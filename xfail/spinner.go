package xfail

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner renders a lightweight activity indicator while a long-running
// child process is awaited. It is silent when the writer is not a terminal.
type Spinner struct {
	out      io.Writer
	label    string
	interval time.Duration
	isTTY    bool
	running  bool
	stop     chan struct{}
	done     chan struct{}
}

// NewSpinner creates a spinner writing to out with the given label.
func NewSpinner(out io.Writer, label string) *Spinner {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &Spinner{
		out:      out,
		label:    label,
		interval: 100 * time.Millisecond,
		isTTY:    isTTY,
	}
}

// Start begins animating. No-op when out is not a TTY or already running.
func (s *Spinner) Start() {
	if !s.isTTY || s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop()
}

func (s *Spinner) loop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-s.stop:
			_, _ = fmt.Fprint(s.out, "\r\033[K") // clear the spinner line
			return
		case <-ticker.C:
			_, _ = fmt.Fprintf(s.out, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.label)
			i++
		}
	}
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	close(s.stop)
	<-s.done
	s.running = false
}
