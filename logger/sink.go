package logger

import (
	"strings"
	"sync"
)

// StringSink keeps formatted log lines in memory so the application or its
// tests can read them back. It can be switched off without detaching it.
type StringSink struct {
	mu       sync.Mutex
	lines    []string
	disabled bool
}

// NewStringSink creates an enabled, empty sink.
func NewStringSink() *StringSink {
	return &StringSink{}
}

// Write stores one formatted event. zerolog writes each event in a single call.
func (s *StringSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.disabled {
		s.lines = append(s.lines, strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

// Lines returns a copy of the captured lines.
func (s *StringSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// Logs returns the captured lines joined by newlines.
func (s *StringSink) Logs() string {
	return strings.Join(s.Lines(), "\n")
}

// Clear drops every captured line.
func (s *StringSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Disable stops capturing until Enable is called.
func (s *StringSink) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = true
}

func (s *StringSink) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = false
}
