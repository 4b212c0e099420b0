package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/htmlinspector/internal/inspector"
	"github.com/harrison/htmlinspector/internal/matcher"
	"github.com/harrison/htmlinspector/internal/report"
	"github.com/harrison/htmlinspector/internal/reporter"
	"github.com/harrison/htmlinspector/internal/rules"
)

// FailOnNone disables the failing exit status.
const FailOnNone = "none"

// Config represents htmlinspector configuration options
type Config struct {
	// UseRules selects the rules to run: "all" or a list of rule names
	UseRules rules.Selection `yaml:"use_rules"`

	// DOMRoot is the selector of the element inspection starts from
	DOMRoot string `yaml:"dom_root"`

	// Exclude lists selectors of elements that emit no events
	Exclude matcher.Spec `yaml:"exclude"`

	// ExcludeSubTree lists selectors of elements whose children are not visited
	ExcludeSubTree matcher.Spec `yaml:"exclude_subtree"`

	// Origin is the origin documents are served from, used to hide cross-origin iframes
	Origin string `yaml:"origin,omitempty"`

	// Format is the output format (text, json, yaml)
	Format string `yaml:"format"`

	// FailOn is the lowest warning priority that fails the run (high, medium, low, default, none)
	FailOn string `yaml:"fail_on"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written, empty disables file logs
	LogDir string `yaml:"log_dir"`

	// RuleConfig holds per-rule option overrides keyed by rule name
	RuleConfig map[string]yaml.Node `yaml:"rule_config,omitempty"`
}

// Overrides carries command-line values. Nil fields leave the configuration unchanged.
type Overrides struct {
	Rules          *[]string
	DOMRoot        *string
	Exclude        *[]string
	ExcludeSubTree *[]string
	Origin         *string
	Format         *string
	FailOn         *string
	LogLevel       *string
	LogDir         *string
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		UseRules:       rules.All(),
		DOMRoot:        "html",
		Exclude:        matcher.Selector("svg"),
		ExcludeSubTree: matcher.Selectors("svg", "iframe"),
		Format:         string(report.FormatText),
		FailOn:         string(reporter.PriorityHigh),
		LogLevel:       "info",
		LogDir:         filepath.Join(HomeDirName, "logs"),
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
// Only keys present in the file override defaults
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A second pass detects which keys were written, so that explicit
	// empty values still override defaults
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	present := func(key string) bool {
		_, ok := rawMap[key]
		return ok
	}

	if present("use_rules") && !fileCfg.UseRules.IsZero() {
		cfg.UseRules = fileCfg.UseRules
	}
	if fileCfg.DOMRoot != "" {
		cfg.DOMRoot = fileCfg.DOMRoot
	}
	if present("exclude") {
		cfg.Exclude = orNone(fileCfg.Exclude)
	}
	if present("exclude_subtree") {
		cfg.ExcludeSubTree = orNone(fileCfg.ExcludeSubTree)
	}
	if present("origin") {
		cfg.Origin = fileCfg.Origin
	}
	if fileCfg.Format != "" {
		cfg.Format = fileCfg.Format
	}
	if fileCfg.FailOn != "" {
		cfg.FailOn = fileCfg.FailOn
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if present("log_dir") {
		cfg.LogDir = fileCfg.LogDir
	}
	if len(fileCfg.RuleConfig) > 0 {
		cfg.RuleConfig = fileCfg.RuleConfig
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .htmlinspector/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, HomeDirName, ConfigFileName))
}

// orNone turns an explicit null into a matcher that matches nothing.
func orNone(spec matcher.Spec) matcher.Spec {
	if spec.IsZero() {
		return matcher.None()
	}
	return spec
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Rules != nil {
		if len(*o.Rules) == 1 && strings.EqualFold((*o.Rules)[0], "all") {
			c.UseRules = rules.All()
		} else {
			c.UseRules = rules.Only(*o.Rules...)
		}
	}
	if o.DOMRoot != nil {
		c.DOMRoot = *o.DOMRoot
	}
	if o.Exclude != nil {
		c.Exclude = selectorsOrNone(*o.Exclude)
	}
	if o.ExcludeSubTree != nil {
		c.ExcludeSubTree = selectorsOrNone(*o.ExcludeSubTree)
	}
	if o.Origin != nil {
		c.Origin = *o.Origin
	}
	if o.Format != nil {
		c.Format = *o.Format
	}
	if o.FailOn != nil {
		c.FailOn = *o.FailOn
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
}

func selectorsOrNone(sels []string) matcher.Spec {
	if len(sels) == 0 {
		return matcher.None()
	}
	if len(sels) == 1 {
		return matcher.Selector(sels[0])
	}
	return matcher.Selectors(sels...)
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	if _, _, err := c.FailThreshold(); err != nil {
		return err
	}

	if strings.TrimSpace(c.DOMRoot) == "" {
		return fmt.Errorf("dom_root cannot be empty")
	}
	if err := matcher.Validate(matcher.Selector(c.DOMRoot)); err != nil {
		return fmt.Errorf("invalid dom_root: %w", err)
	}
	if err := matcher.Validate(c.Exclude); err != nil {
		return fmt.Errorf("invalid exclude: %w", err)
	}
	if err := matcher.Validate(c.ExcludeSubTree); err != nil {
		return fmt.Errorf("invalid exclude_subtree: %w", err)
	}

	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid origin %q, must be scheme://host[:port]", c.Origin)
		}
	}

	return nil
}

// FailThreshold returns the lowest priority that fails a run. enabled is
// false when fail_on is "none".
func (c *Config) FailThreshold() (threshold reporter.Priority, enabled bool, err error) {
	if strings.EqualFold(strings.TrimSpace(c.FailOn), FailOnNone) {
		return reporter.PriorityUnset, false, nil
	}
	p, err := reporter.ParsePriority(c.FailOn)
	if err != nil {
		return reporter.PriorityUnset, false, fmt.Errorf("invalid fail_on: %w", err)
	}
	return p, true, nil
}

// Inspection converts the configuration into inspection defaults. The
// completion handler is left for the caller to set.
func (c *Config) Inspection() inspector.Config {
	return inspector.Config{
		UseRules:       c.UseRules,
		DOMRoot:        inspector.RootSelector(c.DOMRoot),
		Exclude:        c.Exclude,
		ExcludeSubTree: c.ExcludeSubTree,
	}
}

// ApplyRuleConfig decodes every rule_config entry over the matching rule's
// configuration in reg.
func (c *Config) ApplyRuleConfig(reg *rules.Registry) error {
	names := make([]string, 0, len(c.RuleConfig))
	for name := range c.RuleConfig {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		node := c.RuleConfig[name]
		if err := reg.Configure(name, &node); err != nil {
			return fmt.Errorf("invalid rule_config: %w", err)
		}
	}
	return nil
}

// CaptureRuleConfig records the current configuration of every configurable
// rule in reg, so that a written config file documents the available options.
func (c *Config) CaptureRuleConfig(reg *rules.Registry) error {
	for _, rule := range reg.List() {
		if rule.Config == nil {
			continue
		}
		var node yaml.Node
		if err := node.Encode(rule.Config); err != nil {
			return fmt.Errorf("encode %s config: %w", rule.Name, err)
		}
		if c.RuleConfig == nil {
			c.RuleConfig = make(map[string]yaml.Node)
		}
		c.RuleConfig[rule.Name] = node
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(b.String()), nil
}
