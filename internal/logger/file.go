package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/htmlinspector/internal/models"
)

// FileLogger logs inspection events to files in a log directory.
// It creates timestamped per-run log files, per-document detail logs,
// and maintains a latest.log symlink pointing to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	docsDir  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger with a custom log directory and log level.
// It creates the log directory if it doesn't exist, opens a timestamped
// run log file, and creates/updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	docsDir := filepath.Join(logDir, "documents")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create documents directory: %w", err)
	}

	// run-YYYYMMDD-HHMMSS.log, with a suffix when several runs share a second
	stamp := time.Now().Format("20060102-150405")
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", stamp))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	for n := 1; os.IsExist(err); n++ {
		runFile = filepath.Join(logDir, fmt.Sprintf("run-%s-%d.log", stamp, n))
		file, err = os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	logger := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		docsDir:  docsDir,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.writeRunLog("=== htmlinspector Run Log ===\n")
	logger.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// RunFile returns the path of the run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogInspectStart records the start of a document inspection at DEBUG level.
func (fl *FileLogger) LogInspectStart(run models.Run) {
	if !fl.shouldLog("debug") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] Inspecting %s (rules: %s, run %s)\n", timestamp(), displayTarget(run.Target), run.Rules, run.ID))
}

// LogInspectComplete records the outcome of a document inspection in the run
// log and writes a detail file to documents/<run id>.log.
func (fl *FileLogger) LogInspectComplete(run models.Run, result models.DocumentResult) {
	level := "info"
	if result.Status == models.StatusFailed {
		level = "error"
	}
	if fl.shouldLog(level) {
		fl.writeRunLog(fmt.Sprintf("[%s] %s: %s (%d warnings) in %s\n",
			timestamp(), displayTarget(result.Target), result.Status, result.Warnings, formatDuration(result.Duration)))
	}

	if err := fl.writeDocumentLog(run, result); err != nil {
		fl.logWithLevel("WARN", err.Error())
	}
}

func (fl *FileLogger) writeDocumentLog(run models.Run, result models.DocumentResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", displayTarget(result.Target))
	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Started at: %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Rules: %s\n", run.Rules)
	if len(result.Rules) > 0 {
		fmt.Fprintf(&b, "Activated: %s\n", strings.Join(result.Rules, ", "))
	}
	fmt.Fprintf(&b, "Status: %s\n", result.Status)
	fmt.Fprintf(&b, "Duration: %s\n", formatDuration(result.Duration))
	fmt.Fprintf(&b, "Warnings: %d\n", result.Warnings)
	if result.Warnings > 0 {
		fmt.Fprintf(&b, "By priority: %s\n", formatPriorityCounts(result.ByPriority, false))
	}
	if result.Error != nil {
		fmt.Fprintf(&b, "\nError:\n%v\n", result.Error)
	}

	path := filepath.Join(fl.docsDir, run.ID+".log")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write document log: %w", err)
	}
	return nil
}

// LogSummary records the run summary at INFO level.
func (fl *FileLogger) LogSummary(summary models.Summary) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()
	status := "CLEAN"
	switch {
	case summary.Failed > 0:
		status = "FAILED"
	case summary.Warnings > 0:
		status = "WARNINGS"
	}

	fl.writeRunLog(fmt.Sprintf(
		"\n[%s] === INSPECTION SUMMARY ===\n"+
			"[%s] Documents:    %d\n"+
			"[%s] Clean:        %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] Warnings:     %d\n"+
			"[%s] Total time:   %s\n"+
			"[%s] Status:       %s\n"+
			"[%s] Completed at: %s\n",
		ts, ts, summary.Documents, ts, summary.Clean, ts, summary.Failed, ts, summary.Warnings,
		ts, formatDuration(summary.Duration), ts, status, ts, time.Now().Format(time.RFC3339),
	))
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
