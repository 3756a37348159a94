package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected document, unknown station, validation failure
	ExitCommandError = 2 // Command error (bad flags, unreadable store, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostic output; defaults to Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses. Code carries the
// document error category when one applies.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"statusCode,omitempty"`
}

// Success outputs a successful result in the configured format. Text mode
// pretty-prints JSON-able payloads so both formats stay scriptable.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, status int) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Status:  status,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled. Diagnostic
// text goes to ErrWriter so it never corrupts JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// FailDocument reports a document error through the formatter and converts
// it into the matching exit code. Client-side rejections (4xx) exit with
// ExitFailure; store failures (5xx) with ExitCommandError.
func (f *OutputFormatter) FailDocument(err error) error {
	var docErr *harmonics.Error
	if !errors.As(err, &docErr) {
		_ = f.Error("internal", err.Error(), 500)
		return WrapExitError(ExitCommandError, "internal error", err)
	}

	status := docErr.StatusCode()
	_ = f.Error(string(docErr.Category), docErr.Detail(), status)

	code := ExitFailure
	if status >= 500 {
		code = ExitCommandError
	}
	return WrapExitError(code, docErr.Message, err)
}
