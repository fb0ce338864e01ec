package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/pkm/internal/backup"
	"github.com/julianstephens/pkm/internal/keyring"
	"github.com/julianstephens/pkm/internal/lock"
	"github.com/julianstephens/pkm/internal/logger"
)

// hints are printed below the error line when the error wraps the sentinel.
var hints = []struct {
	target error
	hint   string
}{
	{lock.ErrLocked, "If no import is running, delete the lockfile and retry."},
	{backup.ErrNoDatabase, "Run 'pkm import' to create the store before backing it up."},
	{keyring.ErrKeyringUnavailable, "Pass the connection string with --driver postgres --db instead."},
}

// Hint returns the follow-up advice for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by an indented hint for errors the user can act on.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Warn prints a non-fatal warning to w with a "Warning: " prefix and records it in the log.
func Warn(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Warn(msg)
	fmt.Fprintf(w, "Warning: %s\n", msg)
}

// WarnSkipped prints one warning per record an import dropped.
func WarnSkipped[T fmt.Stringer](w io.Writer, records []T) {
	for _, r := range records {
		fmt.Fprintf(w, "Warning: Skipped %s\n", r)
	}
	if len(records) > 0 {
		logger.Warn("Records skipped during import", "count", len(records))
	}
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
