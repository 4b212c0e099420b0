package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/htmlinspector/internal/config"
	"github.com/harrison/htmlinspector/internal/filelock"
	"github.com/harrison/htmlinspector/internal/modules"
	"github.com/harrison/htmlinspector/internal/rules"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write .htmlinspector/config.yaml with the default settings and the
options of every configurable rule.

The file is written to $HTMLINSPECTOR_HOME when set, otherwise to the
nearest existing .htmlinspector directory or the current directory.
An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if err := writeDefaultConfig(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing configuration file")

	return cmd
}

// writeDefaultConfig writes the default configuration to path.
func writeDefaultConfig(path string, force bool) error {
	reg, err := rules.NewDefaultRegistry(modules.NewDefaultRegistry())
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if err := cfg.CaptureRuleConfig(reg); err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := filelock.WriteFile(path, data, force); err != nil {
		if errors.Is(err, filelock.ErrExists) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
