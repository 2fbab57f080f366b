package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Screen is the line-oriented surface the installer renders onto.
// It is not safe for concurrent use; callers touch it from the presentation goroutine only.
type Screen struct {
	out    io.Writer
	title  string
	status string
	open   bool

	titleColor   *color.Color
	statusColor  *color.Color
	successColor *color.Color
	failureColor *color.Color
}

// NewScreen returns a Screen writing to out.
func NewScreen(out io.Writer) *Screen {
	return &Screen{
		out:          out,
		titleColor:   color.New(color.Bold),
		statusColor:  color.New(color.FgCyan),
		successColor: color.New(color.FgGreen),
		failureColor: color.New(color.FgRed),
	}
}

// Open shows the surface with title. Calling Open again only changes the title.
func (s *Screen) Open(title string) {
	s.title = title
	s.open = true
	_, _ = s.titleColor.Fprintln(s.out, title)
	_, _ = fmt.Fprintln(s.out, strings.Repeat("=", len(title)))
}

// IsOpen reports whether Open has been called.
func (s *Screen) IsOpen() bool {
	return s.open
}

// Title returns the title passed to Open.
func (s *Screen) Title() string {
	return s.title
}

// SetStatus replaces the status label text.
func (s *Screen) SetStatus(text string) {
	if text == s.status {
		return
	}
	s.status = text
	_, _ = s.statusColor.Fprintf(s.out, "  > %s\n", text)
}

// Status returns the status label text.
func (s *Screen) Status() string {
	return s.status
}

// Section prints a heading and body, used by informational steps.
func (s *Screen) Section(title string, body string) {
	_, _ = fmt.Fprintln(s.out)
	_, _ = s.titleColor.Fprintln(s.out, title)
	if body != "" {
		_, _ = fmt.Fprintln(s.out, body)
	}
}

// Success prints a final success line.
func (s *Screen) Success(text string) {
	_, _ = s.successColor.Fprintln(s.out, text)
}

// Failure prints a final failure line.
func (s *Screen) Failure(text string) {
	_, _ = s.failureColor.Fprintln(s.out, text)
}
