// Package logger provides logging implementations for htmlinspector runs.
//
// The logger package records inspection progress at the document and summary
// levels. Implementations are thread-safe and support various output
// destinations (console, file, etc.).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/htmlinspector/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger receives inspection lifecycle events.
type Logger interface {
	LogInspectStart(run models.Run)
	LogInspectComplete(run models.Run, result models.DocumentResult)
	LogSummary(summary models.Summary)
}

// ConsoleLogger logs inspection progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// color.NoColor covers both TTY detection and NO_COLOR
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
// Format: "[HH:MM:SS] [TRACE] <message>"
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "INFO":
		return color.New(color.FgBlue)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// LogInspectStart logs the start of a document inspection at DEBUG level.
// Format: "[HH:MM:SS] Inspecting <target> (rules: <rules>, run <id>)"
func (cl *ConsoleLogger) LogInspectStart(run models.Run) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	target := displayTarget(run.Target)
	if cl.colorOutput {
		target = color.New(color.Bold).Sprint(target)
	}
	fmt.Fprintf(cl.writer, "[%s] Inspecting %s (rules: %s, run %s)\n", timestamp(), target, run.Rules, shortID(run.ID))
}

// LogInspectComplete logs the outcome of a document inspection at INFO level.
// Format: "[HH:MM:SS] <target>: <status> (<n> warnings: high: 1, ...) in <duration>"
// Failed inspections are logged at ERROR level with the error.
func (cl *ConsoleLogger) LogInspectComplete(run models.Run, result models.DocumentResult) {
	if cl.writer == nil {
		return
	}
	level := "info"
	if result.Status == models.StatusFailed {
		level = "error"
	}
	if !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	status := result.Status
	if cl.colorOutput {
		status = statusColor(result.Status).Sprint(result.Status)
	}

	var detail string
	switch {
	case result.Status == models.StatusFailed:
		detail = fmt.Sprintf(": %v", result.Error)
	case result.Warnings > 0:
		counts := formatPriorityCounts(result.ByPriority, cl.colorOutput)
		detail = fmt.Sprintf(" (%d %s: %s)", result.Warnings, plural(result.Warnings, "warning"), counts)
	}

	fmt.Fprintf(cl.writer, "[%s] %s: %s%s in %s\n", timestamp(), displayTarget(result.Target), status, detail, formatDuration(result.Duration))
}

// LogSummary logs the run summary at INFO level.
func (cl *ConsoleLogger) LogSummary(summary models.Summary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	header := "=== Inspection Summary ==="
	failed := fmt.Sprintf("Failed: %d", summary.Failed)
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		if summary.Failed > 0 {
			failed = color.New(color.FgRed).Sprint(failed)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Documents: %d\n", ts, summary.Documents)
	fmt.Fprintf(&b, "[%s] Clean: %d\n", ts, summary.Clean)
	fmt.Fprintf(&b, "[%s] %s\n", ts, failed)
	if summary.Warnings > 0 {
		fmt.Fprintf(&b, "[%s] Warnings: %d (%s)\n", ts, summary.Warnings, formatPriorityCounts(summary.ByPriority, cl.colorOutput))
	} else {
		fmt.Fprintf(&b, "[%s] Warnings: 0\n", ts)
	}
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(summary.Duration))

	if summary.Failed > 0 {
		fmt.Fprintf(&b, "[%s] Failed documents:\n", ts)
		for _, r := range summary.Results {
			if r.Status == models.StatusFailed {
				fmt.Fprintf(&b, "[%s]   - %s: %v\n", ts, displayTarget(r.Target), r.Error)
			}
		}
	}

	io.WriteString(cl.writer, b.String())
}

// LogProgress logs how many documents of a run have been inspected.
// Format: "[HH:MM:SS] Progress: [=====     ] 5/10 (50%)"
func (cl *ConsoleLogger) LogProgress(done, total int) {
	if cl.writer == nil || total <= 1 || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)
	fmt.Fprintf(cl.writer, "[%s] Progress: %s\n", timestamp(), pb.Render())
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func displayTarget(target string) string {
	if target == "" {
		return "<document>"
	}
	return target
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "12ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
