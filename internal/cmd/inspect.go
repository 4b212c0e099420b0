package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/htmlinspector/internal/config"
	"github.com/harrison/htmlinspector/internal/display"
	"github.com/harrison/htmlinspector/internal/document"
	"github.com/harrison/htmlinspector/internal/fileutil"
	"github.com/harrison/htmlinspector/internal/inspector"
	"github.com/harrison/htmlinspector/internal/logger"
	"github.com/harrison/htmlinspector/internal/models"
	"github.com/harrison/htmlinspector/internal/modules"
	"github.com/harrison/htmlinspector/internal/report"
	"github.com/harrison/htmlinspector/internal/reporter"
	"github.com/harrison/htmlinspector/internal/rules"
)

// summaryCollector folds every inspection result into a run summary.
type summaryCollector struct {
	summary models.Summary
}

func (c *summaryCollector) LogInspectStart(run models.Run) {}

func (c *summaryCollector) LogInspectComplete(run models.Run, result models.DocumentResult) {
	c.summary.Add(result)
}

func (c *summaryCollector) LogSummary(summary models.Summary) {}

// runMessages writes free-form messages to the console and, when file
// logging is enabled, to the run log. The run log has no trace level.
type runMessages struct {
	console *logger.ConsoleLogger
	file    *logger.FileLogger
}

func (m runMessages) trace(message string) {
	m.console.LogTrace(message)
}

func (m runMessages) debug(message string) {
	m.console.LogDebug(message)
	if m.file != nil {
		m.file.LogDebug(message)
	}
}

func (m runMessages) info(message string) {
	m.console.LogInfo(message)
	if m.file != nil {
		m.file.LogInfo(message)
	}
}

func (m runMessages) warn(message string) {
	m.console.LogWarn(message)
	if m.file != nil {
		m.file.LogWarn(message)
	}
}

func (m runMessages) error(message string) {
	m.console.LogError(message)
	if m.file != nil {
		m.file.LogError(message)
	}
}

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file-or-directory>...",
		Short: "Inspect HTML and Markdown documents",
		Long: `Inspect HTML and Markdown documents with the configured rules.

Directories are scanned recursively for .html, .htm, .md and .markdown
files. Markdown is rendered to HTML before inspection.

Configuration is loaded from .htmlinspector/config.yaml if present.
CLI flags override configuration file settings.

The command exits with a non-zero status when a document cannot be
inspected or when a warning at or above the fail-on priority is reported.

Examples:
  htmlinspector inspect index.html
  htmlinspector inspect site/ --rules duplicate-ids,validate-attributes
  htmlinspector inspect page.html --root main --exclude-subtree svg,iframe,pre
  htmlinspector inspect docs/ --format json --fail-on medium
  htmlinspector inspect page.html --origin https://example.com`,
		Args: cobra.MinimumNArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .htmlinspector/config.yaml)")
	cmd.Flags().StringSlice("rules", nil, `Rules to run, comma-separated, or "all"`)
	cmd.Flags().String("root", "", "Selector of the element inspection starts from")
	cmd.Flags().StringSlice("exclude", nil, "Selectors of elements that emit no events (empty for none)")
	cmd.Flags().StringSlice("exclude-subtree", nil, "Selectors of elements whose children are skipped (empty for none)")
	cmd.Flags().String("format", "", "Output format: text, json or yaml")
	cmd.Flags().String("origin", "", "Origin the documents are served from (e.g. https://example.com)")
	cmd.Flags().String("fail-on", "", "Lowest warning priority that fails the run: high, medium, low, default or none")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn or error")
	cmd.Flags().String("log-dir", "", "Directory for log files (empty disables file logging)")
	cmd.Flags().Bool("verbose", false, "Show detailed inspection progress")

	return cmd
}

// runInspect implements the inspect command logic
func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.MergeWithFlags(overridesFromFlags(cmd))
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose && !cmd.Flags().Changed("log-level") {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	format, _ := report.ParseFormat(cfg.Format)
	threshold, failEnabled, _ := cfg.FailThreshold()

	reg, err := rules.NewDefaultRegistry(modules.NewDefaultRegistry())
	if err != nil {
		return err
	}
	if err := cfg.ApplyRuleConfig(reg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if unknown := cfg.UseRules.Unknown(reg); len(unknown) > 0 {
		display.WarnUnknownRules(unknown, reg.Names()).Display(errOut)
	}

	scan, err := fileutil.Collect(args, fileutil.ScanOptions{
		Extensions: document.Extensions,
		Recursive:  true,
	})
	if err != nil {
		return err
	}
	if len(scan.Skipped) > 0 {
		display.WarnSkippedFiles(scan.Skipped, document.Extensions).Display(errOut)
	}
	if len(scan.Files) == 0 {
		return fmt.Errorf("no documents to inspect")
	}

	console := logger.NewConsoleLogger(errOut, cfg.LogLevel)
	collector := &summaryCollector{}
	loggers := []logger.Logger{console, collector}

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		home, err := config.GetHome()
		if err != nil {
			return err
		}
		fileLog, err = logger.NewFileLogger(config.ResolveLogDir(home, cfg.LogDir), cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		loggers = append(loggers, fileLog)
	}
	runLog := logger.NewMultiLogger(loggers...)
	messages := runMessages{console: console, file: fileLog}

	if fileLog != nil {
		messages.info(fmt.Sprintf("Writing run log to %s", fileLog.RunFile()))
	}
	for _, scanErr := range scan.Errors {
		messages.warn(scanErr.Error())
	}
	for _, path := range scan.Files {
		messages.trace(fmt.Sprintf("Queued %s", path))
	}

	text := report.NewTextRenderer(out, cfg.Origin)
	batch := report.NewBatch(cfg.Origin)
	multi := len(scan.Files) > 1

	failing := 0
	countFailing := func(warnings []reporter.Warning) {
		if !failEnabled {
			return
		}
		for _, w := range warnings {
			if w.Priority.Rank() >= threshold.Rank() {
				failing++
			}
		}
	}

	var progress *display.ProgressIndicator
	if verbose {
		if multi {
			progress = display.NewProgressIndicator(errOut, len(scan.Files))
			progress.Start()
		} else {
			display.DisplaySingleFile(errOut, displayPath(scan.Files[0]))
		}
	}

	defaults := cfg.Inspection()
	for i, path := range scan.Files {
		target := displayPath(path)
		if progress != nil {
			progress.Step(path)
		}

		doc, err := document.LoadFile(path)
		if err != nil {
			messages.error(fmt.Sprintf("%s: %v", target, err))
			collector.summary.Add(models.DocumentResult{
				Target: target,
				Status: models.StatusFailed,
				Error:  err,
			})
			continue
		}
		messages.debug(fmt.Sprintf("Loaded %s as %s", target, doc.Format))

		docDefaults := defaults
		if format == report.FormatText {
			docDefaults.OnComplete = func(warnings []reporter.Warning) {
				countFailing(warnings)
				if multi && len(warnings) > 0 {
					fmt.Fprintf(out, "%s\n", target)
				}
				text.Complete(warnings)
			}
		} else {
			record := batch.Handler(target)
			docDefaults.OnComplete = func(warnings []reporter.Warning) {
				countFailing(warnings)
				record(warnings)
			}
		}

		insp := inspector.New(doc.Root, reg,
			inspector.WithDefaults(docDefaults),
			inspector.WithLogger(runLog),
			inspector.WithTarget(target),
		)
		// Failures are logged by the inspector and counted in the summary.
		_ = insp.Inspect(nil)

		console.LogProgress(i+1, len(scan.Files))
	}

	if progress != nil {
		progress.Complete()
	}

	if format == report.FormatText {
		if err := text.Err(); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if err := batch.Write(format, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	summary := collector.summary
	runLog.LogSummary(summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents could not be inspected", summary.Failed, summary.Documents)
	}
	if failing > 0 {
		return fmt.Errorf("%d %s at or above %s priority", failing, pluralize(failing, "warning"), threshold)
	}
	return nil
}

// loadConfig loads the file named by --config, or the project configuration.
// An explicitly named file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else {
		var err error
		if path, err = config.GetConfigPath(); err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return cfg, nil
}

// overridesFromFlags collects only the flags set on the command line.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	flags := cmd.Flags()

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	sliceFlag := func(name string) *[]string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetStringSlice(name)
		return &v
	}

	o.Rules = sliceFlag("rules")
	o.DOMRoot = stringFlag("root")
	o.Exclude = sliceFlag("exclude")
	o.ExcludeSubTree = sliceFlag("exclude-subtree")
	o.Origin = stringFlag("origin")
	o.Format = stringFlag("format")
	o.FailOn = stringFlag("fail-on")
	o.LogLevel = stringFlag("log-level")
	o.LogDir = stringFlag("log-dir")
	return o
}

// displayPath shortens path relative to the working directory when it lies
// beneath it.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

