package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/recipe"
)

func newApplyCmd() *cobra.Command {
	var recipePath, output string

	cmd := &cobra.Command{
		Use:   "apply --recipe <recipe.yaml> --output <out.docx> <in.docx>",
		Short: "Run a recipe against a document and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if filepath.Clean(input) == filepath.Clean(output) {
				return fmt.Errorf("output must differ from the input document")
			}

			r, err := recipe.Load(recipePath)
			if err != nil {
				return err
			}
			ed, err := openDocument(input)
			if err != nil {
				return err
			}

			report, err := r.Run(ed)
			report.WriteTable(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := ed.Save(output); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d elements matched)\n",
				color.New(color.FgGreen, color.Bold).Sprint("Saved"), output, report.Matched())
			return nil
		},
	}
	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "", "recipe file (YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "path of the edited document")
	cmd.MarkFlagRequired("recipe")
	cmd.MarkFlagRequired("output")
	return cmd
}
