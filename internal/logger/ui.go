package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// UILogger routes informational messages into a running spinner when one is
// active and forwards everything else to the wrapped logger.
type UILogger struct {
	mu      sync.Mutex
	next    Logger
	spinner *uiSpinner
}

func NewUILogger(next Logger) *UILogger {
	return &UILogger{next: next}
}

// IsInteractive reports whether stdout is attached to a terminal.
// Used to decide when to use interactive UI elements like spinners.
func IsInteractive() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	// If it's a pipe or regular file, it's not interactive
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func (l *UILogger) active() *uiSpinner {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.spinner
}

func (l *UILogger) Logf(format string, args ...interface{}) {
	if s := l.active(); s != nil {
		s.Update(oneLine(fmt.Sprintf(format, args...)))
		return
	}
	l.next.Logf(format, args...)
}

func (l *UILogger) Log(msg string) {
	if s := l.active(); s != nil {
		s.Update(oneLine(msg))
		return
	}
	l.next.Log(msg)
}

func (l *UILogger) Debugf(format string, args ...interface{}) { l.next.Debugf(format, args...) }

func (l *UILogger) Warnf(format string, args ...interface{}) {
	if s := l.active(); s != nil {
		s.clear()
	}
	l.next.Warnf(format, args...)
}

func oneLine(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.ReplaceAll(text, "\n", " ")
}

// StartSpinner begins animating text on stdout. A non-interactive stdout gets
// a spinner that renders nothing.
func (l *UILogger) StartSpinner(text string) Spinner {
	if !IsInteractive() {
		return &noOpSpinner{}
	}
	l.mu.Lock()
	// stop previous spinner if exists
	if l.spinner != nil {
		l.spinner.internalStop(false)
		l.spinner = nil
	}
	s := &uiSpinner{parent: l, text: text, stopped: make(chan struct{}), done: make(chan struct{})}
	l.spinner = s
	l.mu.Unlock()
	go s.loop()
	return s
}

// uiSpinner is a minimal spinner implementation suitable for simple CLI UIs.
// It uses a background goroutine to animate while printing to stdout.
type uiSpinner struct {
	parent  *UILogger
	mu      sync.Mutex
	text    string
	stopped chan struct{}
	done    chan struct{}
	failed  bool
}

func (s *uiSpinner) loop() {
	defer close(s.done)
	frames := []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}
	i := 0
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopped:
			// Clear line on stop; do not render frozen frame
			s.clear()
			return
		case <-ticker.C:
			s.mu.Lock()
			text := s.text
			s.mu.Unlock()
			s.clear()
			fmt.Printf("%c %s", frames[i%len(frames)], text)
			i++
		}
	}
}

func (s *uiSpinner) clear() { fmt.Print("\r\033[2K") }

func (s *uiSpinner) Update(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *uiSpinner) internalStop(failed bool) {
	s.mu.Lock()
	s.failed = failed
	s.mu.Unlock()
	select {
	case <-s.stopped:
		// already stopped
	default:
		close(s.stopped)
	}
	<-s.done
}

func (s *uiSpinner) detach() {
	if s.parent == nil {
		return
	}
	s.parent.mu.Lock()
	if s.parent.spinner == s {
		s.parent.spinner = nil
	}
	s.parent.mu.Unlock()
}

func (s *uiSpinner) Stop() {
	s.internalStop(false)
	s.detach()
}

func (s *uiSpinner) Fail() {
	s.internalStop(true)
	s.detach()
}
