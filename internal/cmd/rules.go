package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/htmlinspector/internal/config"
	"github.com/harrison/htmlinspector/internal/modules"
	"github.com/harrison/htmlinspector/internal/rules"
)

// NewRulesCommand creates the rules command
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Long: `List every registered rule with its description.

Rules selected by the configuration's use_rules are marked with "*".
With --show-config, the effective options of configurable rules are
printed after their description.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			reg, err := rules.NewDefaultRegistry(modules.NewDefaultRegistry())
			if err != nil {
				return err
			}
			if err := cfg.ApplyRuleConfig(reg); err != nil {
				return err
			}
			showConfig, _ := cmd.Flags().GetBool("show-config")
			return listRules(cmd.OutOrStdout(), reg, cfg, showConfig)
		},
	}

	cmd.Flags().String("config", "", "Path to config file (default: .htmlinspector/config.yaml)")
	cmd.Flags().Bool("show-config", false, "Show the effective options of configurable rules")

	return cmd
}

// listRules writes one line per rule in registration order.
func listRules(w io.Writer, reg *rules.Registry, cfg *config.Config, showConfig bool) error {
	selected := make(map[string]bool)
	for _, name := range cfg.UseRules.Effective(reg) {
		selected[name] = true
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rule := range reg.List() {
		mark := " "
		if selected[rule.Name] {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", mark, rule.Name, rule.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !showConfig {
		return nil
	}
	for _, rule := range reg.List() {
		if rule.Config == nil {
			continue
		}
		data, err := yaml.Marshal(rule.Config)
		if err != nil {
			return fmt.Errorf("encode %s config: %w", rule.Name, err)
		}
		fmt.Fprintf(w, "\n%s:\n", rule.Name)
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}
