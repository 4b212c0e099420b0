package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for htmlinspector
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htmlinspector",
		Short: "Rule-based inspection of HTML documents",
		Long: `htmlinspector walks the element tree of HTML and Markdown documents once,
dispatching events to a configurable set of rules that report warnings
about markup quality.

Configuration is loaded from .htmlinspector/config.yaml if present.`,
		Version: Version,
		// Errors are printed once by main
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewInspectCommand())
	cmd.AddCommand(NewRulesCommand())
	cmd.AddCommand(NewInitCommand())

	return cmd
}
