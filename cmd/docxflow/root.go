package main

import (
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
)

// newRootCmd builds the command tree. Configuration comes from the
// DOCXFLOW_* environment variables; --log-level overrides the level.
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "docxflow [command] [flags]",
		Short:         "Select and edit paragraphs, tables and sections of DOCX documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := docxflow.ConfigFromEnvironment()
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			docxflow.SetLogger(docxflow.NewLogger(cmd.ErrOrStderr(), docxflow.ParseLogLevel(cfg.LogLevel)))
			config = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error, off)")

	root.AddCommand(newApplyCmd(), newInspectCmd(), newVersionCmd())
	return root
}

// config is resolved before any subcommand runs.
var config = docxflow.DefaultConfig()

func openDocument(path string) (*docxflow.Editor, error) {
	return docxflow.OpenWithConfig(path, config)
}
