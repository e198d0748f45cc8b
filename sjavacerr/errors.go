// Package sjavacerr defines the error taxonomy reported by the s-Java verifier.
package sjavacerr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType defines the category of the error.
type ErrorType string

const (
	TypeIO                ErrorType = "IoError"
	TypeStructural        ErrorType = "StructuralError"
	TypeUnknownIdentifier ErrorType = "UnknownIdentifier"
	TypeUninitializedUse  ErrorType = "UninitializedUse"
	TypeMismatch          ErrorType = "TypeMismatch"
	TypeRedeclaration     ErrorType = "RedeclarationError"
	TypeIllegalName       ErrorType = "IllegalNameError"
	TypeSyntax            ErrorType = "SyntaxError"
	TypeSemanticRule      ErrorType = "SemanticRuleError"
	TypeUnknown           ErrorType = ""
)

// SjavacError is the interface for all verifier errors.
type SjavacError interface {
	error
	Type() ErrorType
}

// BaseError provides common fields for verifier errors.
type BaseError struct {
	Msg     string
	ErrType ErrorType
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

func (e *BaseError) Type() ErrorType {
	return e.ErrType
}

// SyntaxError is raised when a line matches none of the recognized shapes.
type SyntaxError struct {
	BaseError
	Line     int
	FilePath string
}

func (e *SyntaxError) Error() string {
	return positioned(e.BaseError, e.FilePath, e.Line)
}

// SemanticError covers every rule violation found on a well-formed line,
// as well as brace structure errors.
type SemanticError struct {
	BaseError
	Line     int
	FilePath string
}

func (e *SemanticError) Error() string {
	return positioned(e.BaseError, e.FilePath, e.Line)
}

func positioned(e BaseError, path string, line int) string {
	if line > 0 {
		if path != "" {
			return fmt.Sprintf("[%s] %s:%d %s", e.ErrType, path, line, e.Msg)
		}
		return fmt.Sprintf("[%s] line %d %s", e.ErrType, line, e.Msg)
	}
	if path != "" {
		return fmt.Sprintf("[%s] %s %s", e.ErrType, path, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.ErrType, e.Msg)
}

// IOError reports an input that could not be opened, read or rewound.
type IOError struct {
	BaseError
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.ErrType, e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.ErrType, e.Path, e.Msg)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MultiError collects the errors of several checked files.
type MultiError struct {
	Errors []error
}

func (m *MultiError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s) occurred:\n", len(m.Errors)))
	for _, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("- %v\n", err))
	}
	return sb.String()
}

func (m *MultiError) Type() ErrorType {
	if len(m.Errors) > 0 {
		if se, ok := m.Errors[0].(SjavacError); ok {
			return se.Type()
		}
	}
	return "MultiError"
}

// NewSyntaxError creates a new SyntaxError without position.
func NewSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeSyntax,
		},
	}
}

// NewSemanticError creates a SemanticError of the given kind.
func NewSemanticError(kind ErrorType, msg string) *SemanticError {
	return &SemanticError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: kind,
		},
	}
}

// Newf is NewSemanticError with a format string.
func Newf(kind ErrorType, format string, args ...any) *SemanticError {
	return NewSemanticError(kind, fmt.Sprintf(format, args...))
}

// NewStructuralError creates a brace/scope mismatch error.
func NewStructuralError(msg string) *SemanticError {
	return NewSemanticError(TypeStructural, msg)
}

// NewIOError creates an IOError for path.
func NewIOError(path, msg string, err error) *IOError {
	return &IOError{
		BaseError: BaseError{
			Msg:     msg,
			ErrType: TypeIO,
		},
		Path: path,
		Err:  err,
	}
}

// At attaches a 1-based line number to err if it carries a position
// and does not have one yet. Other errors are returned unchanged.
func At(err error, line int) error {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		if syn.Line == 0 {
			syn.Line = line
		}
		return err
	}
	var sem *SemanticError
	if errors.As(err, &sem) {
		if sem.Line == 0 {
			sem.Line = line
		}
	}
	return err
}

// InFile attaches a file path to syntax and semantic errors.
func InFile(err error, path string) error {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		if syn.FilePath == "" {
			syn.FilePath = path
		}
		return err
	}
	var sem *SemanticError
	if errors.As(err, &sem) && sem.FilePath == "" {
		sem.FilePath = path
	}
	return err
}

// KindOf returns the category of err, looking through wrapping.
func KindOf(err error) ErrorType {
	if err == nil {
		return TypeUnknown
	}
	var se SjavacError
	if errors.As(err, &se) {
		return se.Type()
	}
	return TypeUnknown
}

// LineOf returns the line number attached to err, or 0.
func LineOf(err error) int {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return syn.Line
	}
	var sem *SemanticError
	if errors.As(err, &sem) {
		return sem.Line
	}
	return 0
}

// MessageOf returns the message of err without its kind and position.
func MessageOf(err error) string {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return syn.Msg
	}
	var sem *SemanticError
	if errors.As(err, &sem) {
		return sem.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Restore rebuilds a positioned error from its kind, message and line.
func Restore(kind ErrorType, msg string, line int) error {
	if kind == TypeSyntax {
		e := NewSyntaxError(msg)
		e.Line = line
		return e
	}
	e := NewSemanticError(kind, msg)
	e.Line = line
	return e
}
