package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/recovr/internal/logger"
)

var (
	// ErrNotInitialized is returned when a command runs before `recovr init`
	ErrNotInitialized = stderrors.New("storage not initialized")
	// ErrNotFound is returned by stores when a requested record does not exist
	ErrNotFound = stderrors.New("not found")
	// ErrInvalidDate is returned when a date string is not YYYY-MM-DD
	ErrInvalidDate = stderrors.New("invalid date (expected YYYY-MM-DD)")
)

// hints maps sentinel errors to a follow-up suggestion printed under the error
var hints = []struct {
	err  error
	hint string
}{
	{ErrNotInitialized, "run 'recovr init' to create the database"},
	{ErrInvalidDate, "dates use the YYYY-MM-DD format, e.g. 2024-03-01"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns the suggestion registered for the first sentinel found in err's chain
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
