package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"holonet/internal/models"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Record missing or rejected by the store
	ExitCommandError = 2 // Bad arguments, configuration or connection
)

// Error codes reported in JSON output for failures that are not AppErrors.
const (
	ErrCodeArgs    = "INVALID_ARGUMENT"
	ErrCodeGeneric = "ERROR"
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

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
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
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// textRenderer is implemented by payloads with their own text layout.
type textRenderer interface {
	RenderText(w io.Writer) error
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}

	switch v := data.(type) {
	case textRenderer:
		return v.RenderText(f.Writer)
	case map[string]any:
		return writeRecord(f.Writer, "", v)
	case []map[string]any:
		return writeRecords(f.Writer, "", v)
	default:
		_, err := fmt.Fprintln(f.Writer, data)
		return err
	}
}

// Fail reports err in the configured format and returns it as an ExitError.
// Store errors keep their AppError code.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := ErrCodeGeneric, ExitFailure
	var appErr *models.AppError
	var exitErr *ExitError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		if appErr.Code == models.CodeInternal {
			exit = ExitCommandError
		}
	case errors.As(err, &exitErr):
		exit = exitErr.Code
		if exitErr.Code == ExitCommandError {
			code = ErrCodeArgs
		}
	}

	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: err.Error()},
		})
	} else {
		fmt.Fprintf(f.ErrWriter, "Error [%s]: %s\n", code, err.Error())
	}

	if exitErr != nil {
		return exitErr
	}
	return WrapExitError(exit, code, err)
}

func writeRecord(w io.Writer, indent string, record map[string]any) error {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := record[k]
		if v == nil {
			v = "null"
		}
		if _, err := fmt.Fprintf(w, "%s%s: %v\n", indent, k, v); err != nil {
			return err
		}
	}
	return nil
}

func writeRecords(w io.Writer, indent string, records []map[string]any) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(w, "%s(none)\n", indent)
		return err
	}
	for i, record := range records {
		if i > 0 {
			if _, err := fmt.Fprintln(w, indent+"--"); err != nil {
				return err
			}
		}
		if err := writeRecord(w, indent, record); err != nil {
			return err
		}
	}
	return nil
}
