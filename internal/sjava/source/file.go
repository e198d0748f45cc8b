// Package source provides the rewindable line sources consumed by the
// analyzer.
package source

import (
	"bufio"
	"io"
	"os"

	"martianoff/sjavac/internal/sjava"
	"martianoff/sjavac/sjavacerr"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

// FileSource reads lines from a file on disk. Rewind seeks back to the start
// of the open file instead of reopening it.
type FileSource struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	err     error
}

// OpenFile opens path for reading. Failure is an IoError.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sjavacerr.NewIOError(path, "cannot open file", err)
	}
	s := &FileSource{path: path, file: f}
	s.reset()
	return s, nil
}

func (s *FileSource) reset() {
	s.scanner = bufio.NewScanner(s.file)
	s.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	s.err = nil
}

// NextLine implements sjava.LineSource.
func (s *FileSource) NextLine() (string, bool) {
	if s.scanner.Scan() {
		return s.scanner.Text(), true
	}
	s.err = s.scanner.Err()
	return "", false
}

// Err returns the read error that ended the last scan, if any.
func (s *FileSource) Err() error {
	if s.err != nil {
		return sjavacerr.NewIOError(s.path, "read failed", s.err)
	}
	return nil
}

// Rewind implements sjava.LineSource.
func (s *FileSource) Rewind() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return sjavacerr.NewIOError(s.path, "cannot rewind file", err)
	}
	s.reset()
	return nil
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	return s.file.Close()
}

var _ sjava.LineSource = (*FileSource)(nil)
