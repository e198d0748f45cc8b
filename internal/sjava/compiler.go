// Package sjava holds the verifier pipeline and the types shared by its
// stages. The stages themselves live in the classify, symbols, validator and
// analyzer subpackages.
package sjava

import (
	"martianoff/sjavac/sjavacerr"
)

// Verdict is the process-level outcome of verifying one source file.
type Verdict int

const (
	Legal   Verdict = 0
	Invalid Verdict = 1
	IOError Verdict = 2
)

func (v Verdict) String() string {
	switch v {
	case Legal:
		return "LEGAL"
	case Invalid:
		return "INVALID"
	case IOError:
		return "IO_ERROR"
	}
	return "UNKNOWN"
}

// VerdictFor maps the first error of a run to its verdict.
func VerdictFor(err error) Verdict {
	if err == nil {
		return Legal
	}
	if sjavacerr.KindOf(err) == sjavacerr.TypeIO {
		return IOError
	}
	return Invalid
}

// LineSource yields the raw lines of one source file and can be rewound to
// the first line between passes.
type LineSource interface {
	// NextLine returns the next line without its terminator, or false at end of input.
	NextLine() (string, bool)
	// Rewind restarts reading at the first line.
	Rewind() error
}

// Analyzer performs the two verification passes over a line source.
type Analyzer interface {
	// Sweep registers method signatures and global variables and checks
	// global statements and brace balance.
	Sweep(src LineSource) error
	// Validate performs full validation with every signature known.
	Validate(src LineSource) error
}

// Compiler orchestrates the verification of one file.
type Compiler struct {
	analyzer Analyzer
}

// NewCompiler creates a Compiler around a fresh analyzer. An analyzer keeps
// per-file state, so a Compiler must not be shared between files.
func NewCompiler(analyzer Analyzer) *Compiler {
	return &Compiler{analyzer: analyzer}
}

// Compile runs both passes and returns the verdict together with the error
// that caused it, if any.
func (c *Compiler) Compile(src LineSource) (Verdict, error) {
	if err := c.analyzer.Sweep(src); err != nil {
		return VerdictFor(err), err
	}
	if err := readErr(src); err != nil {
		return IOError, err
	}
	if err := src.Rewind(); err != nil {
		if sjavacerr.KindOf(err) != sjavacerr.TypeIO {
			err = sjavacerr.NewIOError("", "cannot rewind input", err)
		}
		return IOError, err
	}
	if err := c.analyzer.Validate(src); err != nil {
		return VerdictFor(err), err
	}
	if err := readErr(src); err != nil {
		return IOError, err
	}
	return Legal, nil
}

// readErr reports a read failure that ended a pass early, for sources that
// can fail mid-stream.
func readErr(src LineSource) error {
	if s, ok := src.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}
