package logger

import "github.com/harrison/htmlinspector/internal/models"

// MultiLogger fans lifecycle events out to several loggers in order.
// Nil loggers are skipped.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// LogInspectStart forwards to every logger.
func (m *MultiLogger) LogInspectStart(run models.Run) {
	for _, l := range m.loggers {
		l.LogInspectStart(run)
	}
}

// LogInspectComplete forwards to every logger.
func (m *MultiLogger) LogInspectComplete(run models.Run, result models.DocumentResult) {
	for _, l := range m.loggers {
		l.LogInspectComplete(run, result)
	}
}

// LogSummary forwards to every logger.
func (m *MultiLogger) LogSummary(summary models.Summary) {
	for _, l := range m.loggers {
		l.LogSummary(summary)
	}
}
