// Package inspector runs rule-based inspections over a parsed HTML document.
//
// An Inspector owns a document, a rule registry and a default configuration.
// Each Inspect call resolves its own configuration against those defaults,
// wires the selected rules to a fresh event bus and warning reporter, walks
// the chosen subtree once and hands the collected warnings to the
// configuration's completion handler.
package inspector

import (
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/harrison/htmlinspector/internal/bus"
	"github.com/harrison/htmlinspector/internal/dom"
	"github.com/harrison/htmlinspector/internal/matcher"
	"github.com/harrison/htmlinspector/internal/models"
	"github.com/harrison/htmlinspector/internal/report"
	"github.com/harrison/htmlinspector/internal/reporter"
	"github.com/harrison/htmlinspector/internal/rules"
	"github.com/harrison/htmlinspector/internal/traverse"
)

// Logger receives inspection lifecycle events.
type Logger interface {
	LogInspectStart(run models.Run)
	LogInspectComplete(run models.Run, result models.DocumentResult)
}

// Inspector inspects one document. It is not safe for concurrent use.
type Inspector struct {
	doc      *html.Node
	rules    *rules.Registry
	defaults Config
	logger   Logger
	target   string
	newBus   func() bus.Bus
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithDefaults replaces the built-in default configuration. Unset fields of
// cfg keep their built-in values.
func WithDefaults(cfg Config) Option {
	return func(i *Inspector) {
		i.defaults = merge(i.defaults, cfg)
	}
}

// WithLogger sets the lifecycle logger.
func WithLogger(l Logger) Option {
	return func(i *Inspector) {
		i.logger = l
	}
}

// WithTarget labels the document in logs and errors, usually its path.
func WithTarget(target string) Option {
	return func(i *Inspector) {
		i.target = target
	}
}

// WithBus sets the factory for the event bus created per inspection.
func WithBus(newBus func() bus.Bus) Option {
	return func(i *Inspector) {
		i.newBus = newBus
	}
}

// New creates an Inspector for doc using the rules in reg.
func New(doc *html.Node, reg *rules.Registry, opts ...Option) *Inspector {
	if reg == nil {
		reg = rules.NewRegistry()
	}
	i := &Inspector{
		doc:      doc,
		rules:    reg,
		defaults: DefaultConfig(),
		newBus:   func() bus.Bus { return bus.NewListener() },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// DefaultConfig returns the built-in defaults: every registered rule, the
// html element as root, svg elements skipped, svg and iframe subtrees not
// entered, and warnings printed to standard output.
func DefaultConfig() Config {
	return Config{
		UseRules:       rules.All(),
		DOMRoot:        RootSelector("html"),
		Exclude:        matcher.Selector("svg"),
		ExcludeSubTree: matcher.Selectors("svg", "iframe"),
		OnComplete:     report.NewTextRenderer(os.Stdout, "").Complete,
	}
}

// Defaults returns the inspector's current default configuration.
func (i *Inspector) Defaults() Config {
	return i.defaults
}

// SetConfig resolves raw against the current defaults and makes the result
// the new defaults for later inspections.
func (i *Inspector) SetConfig(raw any) error {
	cfg, err := Resolve(raw, i.defaults)
	if err != nil {
		return &InspectError{Phase: PhaseResolve, Target: i.target, Err: err}
	}
	i.defaults = cfg
	return nil
}

// Inspect runs one inspection configured by raw (see Resolve).
//
// When the root cannot be found the inspection still activates the selected
// rules and emits the root events with a nil node, but the walk visits
// nothing. Any other failure aborts the inspection with an *InspectError
// and the completion handler is not called.
func (i *Inspector) Inspect(raw any) error {
	started := time.Now()
	cfg, err := Resolve(raw, i.defaults)
	if err != nil {
		return &InspectError{Phase: PhaseResolve, Target: i.target, Err: err}
	}

	run := models.Run{
		ID:        uuid.NewString(),
		Target:    i.target,
		Rules:     cfg.UseRules.String(),
		StartedAt: started,
	}
	if i.logger != nil {
		i.logger.LogInspectStart(run)
	}

	rep := reporter.New()
	activated, err := i.run(cfg, rep)
	result := models.DocumentResult{
		Target:   i.target,
		Rules:    activated,
		Duration: time.Since(started),
	}
	if err != nil {
		result.Status = models.StatusFailed
		result.Error = err
		if i.logger != nil {
			i.logger.LogInspectComplete(run, result)
		}
		return err
	}

	warnings := rep.Warnings()
	result.Warnings = len(warnings)
	result.ByPriority = byPriorityName(warnings)
	result.Status = models.StatusClean
	if len(warnings) > 0 {
		result.Status = models.StatusWarnings
	}
	if i.logger != nil {
		i.logger.LogInspectComplete(run, result)
	}

	if cfg.OnComplete != nil {
		cfg.OnComplete(warnings)
	}
	return nil
}

func (i *Inspector) run(cfg Config, rep *reporter.Reporter) ([]string, error) {
	root, err := i.locateRoot(cfg.DOMRoot)
	if err != nil {
		return nil, &InspectError{Phase: PhaseRoot, Target: i.target, Err: err}
	}

	// An unresolved root still activates rules and emits both root events
	// with a nil node; the walk itself visits nothing.
	b := i.newBus()
	activated, err := rules.Activate(cfg.UseRules, b, rep, i.rules)
	if err != nil {
		return activated, &InspectError{Phase: PhaseActivate, Target: i.target, Err: err}
	}

	if err := b.Emit(bus.RootEvent(bus.BeforeInspect, root)); err != nil {
		return activated, &InspectError{Phase: PhaseTraverse, Target: i.target, Err: err}
	}
	opts := traverse.Options{Exclude: cfg.Exclude, ExcludeSubTree: cfg.ExcludeSubTree}
	if err := traverse.Walk(root, b, opts); err != nil {
		return activated, &InspectError{Phase: PhaseTraverse, Target: i.target, Err: err}
	}
	if err := b.Emit(bus.RootEvent(bus.AfterInspect, root)); err != nil {
		return activated, &InspectError{Phase: PhaseTraverse, Target: i.target, Err: err}
	}
	return activated, nil
}

// locateRoot returns nil without error when nothing matches.
func (i *Inspector) locateRoot(root Root) (*html.Node, error) {
	if root.Node != nil {
		return root.Node, nil
	}
	if strings.TrimSpace(root.Selector) == "" {
		return nil, nil
	}
	spec := matcher.Selector(root.Selector)
	if err := matcher.Validate(spec); err != nil {
		return nil, err
	}
	return dom.QuerySelector(i.doc, root.Selector)
}

func byPriorityName(warnings []reporter.Warning) map[string]int {
	counts := make(map[string]int)
	for p, n := range reporter.CountByPriority(warnings) {
		counts[p.String()] = n
	}
	return counts
}
