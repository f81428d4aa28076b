package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gookit/color"
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitInput    = 1
	ExitConfig   = 7
	ExitInternal = 10
	ExitBuild    = 11
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter writing user messages to stderr.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// WithOutput redirects user-facing messages.
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.out = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	if sbe, ok := As(err); ok {
		return a.exitCodeFromSpabuild(sbe)
	}

	return 1
}

// exitCodeFromSpabuild maps SpabuildError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromSpabuild(err *SpabuildError) int {
	switch err.Category {
	case CategoryInput:
		return ExitInput
	case CategoryConfig:
		return ExitConfig
	case CategoryBuild, CategoryFileSystem:
		return ExitBuild
	case CategoryInternal:
		return ExitInternal
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if sbe, ok := As(err); ok {
		return a.formatSpabuild(sbe)
	}

	return color.Red.Sprintf("Error: %v", err)
}

// formatSpabuild formats a SpabuildError for display.
func (a *CLIErrorAdapter) formatSpabuild(err *SpabuildError) string {
	if a.verbose {
		return color.Red.Sprint(err.Error())
	}

	switch {
	case stdErrors.Is(err, ErrEntryNotFound):
		root, _ := err.Context["root"].(string)
		return color.Red.Sprintf("Failed to locate entry file in %s.", color.Yellow.Sprint(root)) + "\n" +
			color.Red.Sprint(validEntryHint(err.Context["candidates"]))
	case stdErrors.Is(err, ErrEntryMissing):
		entry, _ := err.Context["entry"].(string)
		return color.Red.Sprintf("Entry file %s does not exist.", color.Yellow.Sprint(entry))
	case stdErrors.Is(err, ErrOutputIsRoot):
		return color.Red.Sprint("Configuration Error: Do not set output directory to project root.")
	}

	switch err.Category {
	case CategoryInput, CategoryConfig:
		if field, ok := err.Context["field"].(string); ok {
			return color.Red.Sprintf("%s: %s: %v", err.Message, field, err.Context["reason"])
		}
		if err.Cause != nil {
			return color.Red.Sprintf("%s: %v", err.Message, err.Cause)
		}
		return color.Red.Sprint(err.Message)
	default:
		if err.Cause != nil {
			return color.Red.Sprintf("%s: %s: %v", err.Category, err.Message, err.Cause)
		}
		return color.Red.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// validEntryHint lists the distinct candidate file names, e.g. "main.js, index.js or App.vue".
func validEntryHint(v any) string {
	candidates, _ := v.([]string)
	seen := make(map[string]bool)
	var names []string
	for _, c := range candidates {
		base := c[strings.LastIndex(c, "/")+1:]
		if !seen[base] {
			seen[base] = true
			names = append(names, base)
		}
	}
	switch len(names) {
	case 0:
		return "No valid entry file candidates are configured."
	case 1:
		return fmt.Sprintf("Valid entry file should be %s.", names[0])
	default:
		return fmt.Sprintf("Valid entry file should be one of: %s or %s.",
			strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}
}

// Report prints the error, logs it when appropriate and returns the exit code.
// The caller owns process termination.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return ExitOK
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.out, "%s\n\n", a.FormatError(err))
	return a.ExitCodeFor(err)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if sbe, ok := As(err); ok {
		return sbe.Category == CategoryInternal || sbe.Category == CategoryBuild
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if sbe, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(sbe.Category)),
		}
		for k, v := range sbe.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if sbe.Cause != nil {
			attrs = append(attrs, slog.String("cause", sbe.Cause.Error()))
		}

		a.logger.LogAttrs(context.Background(), a.slogLevelFromSeverity(sbe.Severity), sbe.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts SpabuildError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
