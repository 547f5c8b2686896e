package poolcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amirouche/ouverture/internal/pool"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure, integrity fault, ambiguous overlay
	ExitCommandError = 2 // Command error (bad locator, missing file, absent function)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Logger  *slog.Logger // diagnostic output, kept off Writer so JSON stays parseable
	Verbose bool
	TraceID string
}

// NewOutputFormatter builds a formatter writing results to out and verbose
// diagnostics to errOut, stamped with a fresh trace id.
func NewOutputFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  out,
		Logger:  slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})),
		Verbose: opts.Verbose,
		TraceID: uuid.Must(uuid.NewV7()).String(),
	}
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string    `json:"status"`             // "ok" or "error"
	Data    any       `json:"data,omitempty"`     // success payload
	Error   *CLIError `json:"error,omitempty"`    // error details
	TraceID string    `json:"trace_id,omitempty"` // trace correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // pool error kind or validation code
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog emits a diagnostic line when verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(message string, args ...any) {
	if !f.Verbose {
		return
	}
	f.Logger.Debug(message, args...)
}

// reportPoolError renders a pool failure and converts it to an ExitError.
// Ambiguity and integrity faults are outcome failures (exit 1); everything
// else is a command error (exit 2).
func reportPoolError(formatter *OutputFormatter, err error) error {
	poolErr, ok := pool.AsError(err)
	if !ok {
		_ = formatter.Error("error", err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: err.Error(), Err: err}
	}

	_ = formatter.Error(string(poolErr.Kind), poolErr.Message, poolErr.Detail)

	code := ExitCommandError
	switch poolErr.Kind {
	case pool.KindAmbiguousOverlay, pool.KindIntegrityFailure:
		code = ExitFailure
	}
	return &ExitError{Code: code, Message: poolErr.Message, Err: err}
}
