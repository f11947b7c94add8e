package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
)

type compiledStep struct {
	label     string
	kind      string
	narrow    func(*docxflow.Selector) *docxflow.Selector
	condition docxflow.Condition
	index     *int
	actions   []docxflow.Action
}

// issues collects validation problems under a field path.
type issues []docxflow.ValidationIssue

func (is *issues) add(field, format string, args ...interface{}) {
	*is = append(*is, docxflow.ValidationIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

// addErr records err, flattening validation errors from the constructors.
func (is *issues) addErr(field string, err error) {
	var ve *docxflow.ValidationError
	if errors.As(err, &ve) {
		for _, issue := range ve.Issues {
			is.add(field, "%s", issue.Message)
		}
		return
	}
	is.add(field, "%v", err)
}

func (r *Recipe) compile(cfg *docxflow.Config) ([]compiledStep, error) {
	var problems issues
	if len(r.Steps) == 0 {
		problems.add("steps", "recipe has no steps")
	}

	steps := make([]compiledStep, 0, len(r.Steps))
	for i, s := range r.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		steps = append(steps, s.compile(i, field, cfg, &problems))
	}
	if len(problems) > 0 {
		return nil, &docxflow.ValidationError{Issues: problems}
	}
	return steps, nil
}

func (s Step) compile(i int, field string, cfg *docxflow.Config, problems *issues) compiledStep {
	c := compiledStep{label: s.label(i), kind: strings.ToLower(s.Select), index: s.Index}

	switch c.kind {
	case SelectParagraphs, SelectTables, SelectSections:
	default:
		problems.add(field+".select", "must be one of paragraphs, tables, sections; got %q", s.Select)
	}
	if s.InSection != nil && s.FromSection != nil {
		problems.add(field, "in_section and from_section are mutually exclusive")
	}
	c.narrow = s.narrowing()

	var conds []docxflow.Condition
	for j, w := range s.Where {
		if cond := w.compile(fmt.Sprintf("%s.where[%d]", field, j), cfg, problems); cond != nil {
			conds = append(conds, cond)
		}
	}
	if len(conds) > 0 {
		c.condition = docxflow.All(conds...)
	}

	if len(s.Apply) == 0 {
		problems.add(field+".apply", "step has no actions")
	}
	for j, a := range s.Apply {
		if action := a.compile(fmt.Sprintf("%s.apply[%d]", field, j), problems); action != nil {
			c.actions = append(c.actions, action)
		}
	}
	return c
}

// narrowing returns the section filter of the step. Run applies it before
// the condition and the index.
func (s Step) narrowing() func(*docxflow.Selector) *docxflow.Selector {
	inSection, fromSection := s.InSection, s.FromSection
	return func(sel *docxflow.Selector) *docxflow.Selector {
		switch {
		case inSection != nil:
			return sel.InSection(*inSection)
		case fromSection != nil:
			return sel.FromSection(*fromSection)
		}
		return sel
	}
}

func (w ConditionSpec) compile(field string, cfg *docxflow.Config, problems *issues) docxflow.Condition {
	set := 0
	var cond docxflow.Condition
	if w.Pattern != "" {
		set++
		pc, err := docxflow.NewPatternCondition(w.Pattern, docxflow.WithPatternTimeout(cfg.PatternTimeout))
		if err != nil {
			problems.addErr(field+".pattern", err)
		} else {
			cond = pc
		}
	}
	if w.TableText != "" {
		set++
		cond = docxflow.NewTableTextCondition(w.TableText)
	}
	if w.Columns != 0 {
		set++
		if w.Columns < 0 {
			problems.add(field+".columns", "must be positive, got %d", w.Columns)
		}
		cond = docxflow.NewColumnCountCondition(w.Columns)
	}
	if set != 1 {
		problems.add(field, "exactly one of pattern, table_text, columns must be set")
		return nil
	}
	return cond
}

var knownAlignments = map[string]bool{
	docxflow.AlignLeft:    true,
	docxflow.AlignCenter:  true,
	docxflow.AlignRight:   true,
	docxflow.AlignJustify: true,
}

func (a ActionSpec) compile(field string, problems *issues) docxflow.Action {
	var (
		actions []docxflow.Action
		keys    []string
	)
	add := func(key string, action docxflow.Action, err error) {
		keys = append(keys, key)
		if err != nil {
			problems.addErr(field+"."+key, err)
			return
		}
		actions = append(actions, action)
	}

	if a.ReplaceText != nil {
		var err error
		if a.ReplaceText.Old == "" {
			err = fmt.Errorf("old text must not be empty")
		}
		add("replace_text", docxflow.NewReplaceText(a.ReplaceText.Old, a.ReplaceText.New), err)
	}
	if a.Align != "" {
		var err error
		if !knownAlignments[strings.ToLower(a.Align)] {
			err = fmt.Errorf("unknown alignment %q", a.Align)
		}
		add("align", docxflow.NewAlignParagraph(a.Align), err)
	}
	if a.FontSize != "" {
		action, err := docxflow.ParseFontSize(a.FontSize)
		add("font_size", action, err)
	}
	if a.TabStop != nil {
		add("tab_stop", docxflow.NewSetTabStop(*a.TabStop), positive(*a.TabStop))
	}
	if a.ClearTabStop != nil {
		add("clear_tab_stop", docxflow.NewClearAndSetTabStop(*a.ClearTabStop), positive(*a.ClearTabStop))
	}
	if a.RemoveBorders {
		add("remove_borders", docxflow.NewRemoveTableBorders(), nil)
	}
	if a.TableWidth != "" {
		width, err := parseWidth(a.TableWidth)
		add("table_width", docxflow.NewSetTableWidth(width), err)
	}
	if a.ColumnWidths != nil {
		var (
			widths []units.Length
			err    error
		)
		for _, s := range a.ColumnWidths {
			var w units.Length
			if w, err = parseWidth(s); err != nil {
				break
			}
			widths = append(widths, w)
		}
		if err == nil && len(widths) == 0 {
			err = fmt.Errorf("no column widths given")
		}
		add("column_widths", docxflow.NewSetTableColumnWidth(widths), err)
	}
	if a.AutoFit != "" {
		mode, err := docxflow.ParseAutoFitMode(a.AutoFit)
		add("autofit", docxflow.NewAutoFitTable(mode), err)
	}
	if a.FirstColumnRatio != nil {
		action, err := docxflow.NewAutoFitRatio(*a.FirstColumnRatio)
		add("first_column_ratio", action, err)
	}
	if a.Orientation != "" {
		action, err := docxflow.NewSetSectionOrientation(strings.ToLower(a.Orientation))
		add("orientation", action, err)
	}
	if a.PageNumber != nil {
		action, err := docxflow.NewAddPageNumber(a.PageNumber.options()...)
		add("page_number", action, err)
	}
	if a.ClearPageNumbers {
		add("clear_page_numbers", docxflow.NewClearPageNumber(), nil)
	}

	if len(keys) != 1 {
		if len(keys) == 0 {
			problems.add(field, "no action given")
		} else {
			problems.add(field, "one action per entry, got %s", strings.Join(keys, ", "))
		}
		return nil
	}
	if len(actions) == 0 {
		return nil
	}
	return actions[0]
}

func (p *PageNumberSpec) options() []docxflow.PageNumberOption {
	var opts []docxflow.PageNumberOption
	if p.Start != nil {
		opts = append(opts, docxflow.WithStartNumber(*p.Start))
	}
	if p.Restart != nil {
		opts = append(opts, docxflow.WithRestart(*p.Restart))
	}
	if p.Align != "" {
		opts = append(opts, docxflow.WithAlignment(p.Align))
	}
	if p.Font != "" {
		opts = append(opts, docxflow.WithFont(p.Font))
	}
	if p.Size != 0 {
		opts = append(opts, docxflow.WithFontSize(p.Size))
	}
	if p.Format != "" {
		opts = append(opts, docxflow.WithNumberFormat(p.Format))
	}
	return opts
}

func parseWidth(s string) (units.Length, error) {
	w, err := units.Parse(s)
	if err != nil {
		return 0, err
	}
	if w <= 0 {
		return 0, fmt.Errorf("width must be positive, got %s", s)
	}
	return w, nil
}

func positive(cm float64) error {
	if cm <= 0 {
		return fmt.Errorf("position must be positive, got %g", cm)
	}
	return nil
}

// selectAll returns the step's initial selection.
func (c compiledStep) selectAll(ed *docxflow.Editor) *docxflow.Selector {
	switch c.kind {
	case SelectTables:
		return ed.SelectTables()
	case SelectSections:
		return ed.SelectSections()
	default:
		return ed.SelectParagraphs()
	}
}
