package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryPattern  Category = "pattern"
	CategoryTree     Category = "tree"
	CategoryManifest Category = "manifest"
	CategoryConfig   Category = "config"
	CategoryServer   Category = "server"
	CategoryArchive  Category = "archive"
	CategoryCLI      Category = "cli"
)

// Location points into a user-supplied file, typically a manifest or
// config file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// WayfindError is a structured error with a file location and a fix
// suggestion, used at the tool boundary. Library packages keep their
// own small error types; commands wrap them into WayfindError for
// display.
type WayfindError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (pattern, manifest, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is where in a user file the error occurred.
	Location *Location

	// Context contains lines surrounding the location.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *WayfindError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *WayfindError) Unwrap() error {
	return e.Wrapped
}

// WithLocation points the error at a file position and loads the
// surrounding lines for display.
func (e *WayfindError) WithLocation(file string, line, column int) *WayfindError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *WayfindError) WithSuggestion(s string) *WayfindError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *WayfindError) WithDetail(d string) *WayfindError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *WayfindError) WithContext(lines []string) *WayfindError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *WayfindError) Wrap(err error) *WayfindError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a WayfindError from a registered error code.
func New(code string) *WayfindError {
	template, ok := registry[code]
	if !ok {
		return &WayfindError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &WayfindError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new WayfindError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *WayfindError {
	return &WayfindError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a WayfindError.
func FromError(err error, code string) *WayfindError {
	if err == nil {
		return nil
	}
	if we, ok := err.(*WayfindError); ok {
		return we
	}
	return New(code).Wrap(err)
}
