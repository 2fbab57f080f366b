package logging

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

const defaultSinkLines = 500

// MemorySink is a logrus hook that keeps the most recent formatted entries in memory.
type MemorySink struct {
	mu        sync.Mutex
	max       int
	lines     []string
	formatter log.Formatter
}

// NewMemorySink returns a sink retaining at most max lines.
func NewMemorySink(max int) *MemorySink {
	if max <= 0 {
		max = defaultSinkLines
	}
	return &MemorySink{
		max:       max,
		formatter: &log.TextFormatter{DisableColors: true, DisableTimestamp: true},
	}
}

// Levels implements log.Hook.
func (s *MemorySink) Levels() []log.Level {
	return log.AllLevels
}

// Fire implements log.Hook.
func (s *MemorySink) Fire(entry *log.Entry) error {
	b, err := s.formatter.Format(entry)
	if err != nil {
		return err
	}
	line := strings.TrimRight(string(b), "\n")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	if over := len(s.lines) - s.max; over > 0 {
		s.lines = append(s.lines[:0], s.lines[over:]...)
	}
	return nil
}

// Lines returns a copy of the retained lines, oldest first.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// String joins the retained lines.
func (s *MemorySink) String() string {
	return strings.Join(s.Lines(), "\n")
}
