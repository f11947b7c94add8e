package recipe

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Step    string
	Select  string
	Matched int
	Actions int
}

// Report lists the results of the steps that ran.
type Report struct {
	Steps []StepResult
}

// Matched returns the number of elements matched over all steps.
func (r Report) Matched() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Matched
	}
	return n
}

// WriteTable renders the report as a text table.
func (r Report) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Step", "Select", "Matched", "Actions"})
	for _, s := range r.Steps {
		table.Append([]string{s.Step, s.Select, fmt.Sprint(s.Matched), fmt.Sprint(s.Actions)})
	}
	table.Render()
}

// Run compiles the recipe with the editor's configuration and runs the steps
// in order. It stops at the first failing step and returns the results of
// the steps run so far. The document is not saved.
func (r *Recipe) Run(ed *docxflow.Editor) (Report, error) {
	var report Report

	cfg := ed.Config()
	steps, err := r.compile(&cfg)
	if err != nil {
		return report, err
	}

	for _, step := range steps {
		logger := ed.Logger().WithField("step", step.label)

		sel := step.narrow(step.selectAll(ed))
		if step.condition != nil {
			sel = sel.Where(step.condition)
		}
		if step.index != nil {
			sel = sel.GetByIndex(*step.index)
		}

		for _, action := range step.actions {
			sel = sel.Apply(action)
		}

		report.Steps = append(report.Steps, StepResult{
			Step:    step.label,
			Select:  step.kind,
			Matched: sel.Count(),
			Actions: len(step.actions),
		})
		if err := sel.Err(); err != nil {
			logger.Error("failed: %v", err)
			return report, fmt.Errorf("%s: %w", step.label, err)
		}
		logger.Info("matched %d %s", sel.Count(), step.kind)
	}
	return report, nil
}
