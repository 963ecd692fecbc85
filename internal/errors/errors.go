package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/elevate/internal/logger"
)

var (
	// ErrNotFound is returned by storage providers for an absent document.
	ErrNotFound = errors.New("document not found")
	// ErrMalformedDocument marks stored content that could not be decoded.
	ErrMalformedDocument = errors.New("stored data is malformed")
	// ErrHabitNotFound is returned when no habit matches an id or name.
	ErrHabitNotFound = errors.New("habit not found")
	// ErrInvalidHabit wraps every habit input validation failure.
	ErrInvalidHabit = errors.New("invalid habit")
	// ErrImportFormat is returned when an import file is not a habit list.
	ErrImportFormat = errors.New("import file is not a valid habit export")
)

// Notice returns the short title shown to the user for an error. Every
// failure in the core degrades to a notice rather than a crash.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrImportFormat):
		return "Import failed"
	case errors.Is(err, ErrMalformedDocument):
		return "Saved data could not be read"
	case errors.Is(err, ErrHabitNotFound):
		return "Habit not found"
	case errors.Is(err, ErrInvalidHabit):
		return "Invalid habit"
	default:
		return "Something went wrong"
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
