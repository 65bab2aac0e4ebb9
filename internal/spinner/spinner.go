package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/javoire/refkit/internal/ui"
	"github.com/mattn/go-isatty"
)

// Enabled controls whether spinners animate. It starts off when stderr is not
// a terminal and the root command turns it off in verbose mode.
var Enabled = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

// Output is where spinners and their final messages are written
var Output io.Writer = os.Stderr

// Spinner is a single-line progress indicator for slow git operations
type Spinner struct {
	message  string
	frames   []string
	interval time.Duration
	writer   io.Writer
	stopChan chan struct{}
	done     chan struct{}
	stopped  bool
	mu       sync.Mutex
}

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// New creates a new spinner with the given message
func New(message string) *Spinner {
	return &Spinner{
		message:  message,
		frames:   defaultFrames,
		interval: 80 * time.Millisecond,
		writer:   Output,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start starts the spinner
func (s *Spinner) Start() *Spinner {
	if Enabled {
		go s.run()
	} else {
		close(s.done)
	}
	return s
}

// Stop stops the spinner and prints finalMessage when it is not empty
func (s *Spinner) Stop(finalMessage string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.stopChan)
	<-s.done

	if Enabled {
		fmt.Fprint(s.writer, "\r\033[K")
	}
	if finalMessage != "" {
		fmt.Fprintln(s.writer, finalMessage)
	}
}

// UpdateMessage updates the spinner message while it's running
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) run() {
	defer close(s.done)

	frameIdx := 0
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			frame := s.frames[frameIdx%len(s.frames)]
			fmt.Fprintf(s.writer, "\r%s %s", frame, s.message)
			s.mu.Unlock()
			frameIdx++
		}
	}
}

// WrapWithSuccess runs fn behind a spinner and reports how it went
func WrapWithSuccess(message, successMessage string, fn func() error) error {
	if !Enabled {
		fmt.Fprintln(Output, message)
	}
	sp := New(message).Start()
	err := fn()
	if err != nil {
		sp.Stop(ui.Error(fmt.Sprintf("%s: %v", message, err)))
		return err
	}
	sp.Stop(ui.Success(successMessage))
	return nil
}
