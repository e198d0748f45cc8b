package source

import (
	"io"
	"strings"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/sjavacerr"
)

// MemorySource serves lines from an in-memory text.
type MemorySource struct {
	lines []string
	pos   int
}

// FromString splits text into lines. Both "\n" and "\r\n" terminators are
// accepted and a final terminator does not produce an extra empty line.
func FromString(text string) *MemorySource {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return &MemorySource{lines: lines}
}

// FromLines serves the given lines as they are.
func FromLines(lines ...string) *MemorySource {
	return &MemorySource{lines: lines}
}

// FromReader reads r to the end, e.g. standard input.
func FromReader(name string, r io.Reader) (*MemorySource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sjavacerr.NewIOError(name, "cannot read input", err)
	}
	return FromString(string(data)), nil
}

// NextLine implements sjava.LineSource.
func (s *MemorySource) NextLine() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}

// Rewind implements sjava.LineSource.
func (s *MemorySource) Rewind() error {
	s.pos = 0
	return nil
}

// Text returns the source joined back with "\n" terminators.
func (s *MemorySource) Text() string {
	if len(s.lines) == 0 {
		return ""
	}
	return strings.Join(s.lines, "\n") + "\n"
}

var _ sjava.LineSource = (*MemorySource)(nil)
