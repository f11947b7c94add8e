// Package recipe runs editing steps described in YAML against a document.
//
// A recipe is a list of steps. Each step selects paragraphs, tables or
// sections, narrows the selection and applies one or more actions:
//
//	steps:
//	  - name: landscape appendix
//	    select: sections
//	    index: -1
//	    apply:
//	      - orientation: landscape
//	      - page_number: {start: 1, align: right}
//	  - select: tables
//	    where:
//	      - columns: 4
//	    apply:
//	      - first_column_ratio: 0.3
//	      - remove_borders: true
//
// The whole recipe is compiled before the first step runs, so a recipe with
// an invalid step never modifies the document.
package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
)

// Element kinds a step can select.
const (
	SelectParagraphs = "paragraphs"
	SelectTables     = "tables"
	SelectSections   = "sections"
)

// Recipe is a parsed recipe file.
type Recipe struct {
	Steps []Step `yaml:"steps"`
}

// Step selects elements and applies actions to them in order.
type Step struct {
	Name        string          `yaml:"name,omitempty"`
	Select      string          `yaml:"select"`
	InSection   *int            `yaml:"in_section,omitempty"`
	FromSection *int            `yaml:"from_section,omitempty"`
	Index       *int            `yaml:"index,omitempty"`
	Where       []ConditionSpec `yaml:"where,omitempty"`
	Apply       []ActionSpec    `yaml:"apply"`
}

// ConditionSpec is one entry of a step's where list. Exactly one field is set.
type ConditionSpec struct {
	Pattern   string `yaml:"pattern,omitempty"`
	TableText string `yaml:"table_text,omitempty"`
	Columns   int    `yaml:"columns,omitempty"`
}

// ActionSpec is one entry of a step's apply list. Exactly one field is set.
type ActionSpec struct {
	ReplaceText      *ReplaceTextSpec `yaml:"replace_text,omitempty"`
	Align            string           `yaml:"align,omitempty"`
	FontSize         string           `yaml:"font_size,omitempty"`
	TabStop          *float64         `yaml:"tab_stop,omitempty"`
	ClearTabStop     *float64         `yaml:"clear_tab_stop,omitempty"`
	RemoveBorders    bool             `yaml:"remove_borders,omitempty"`
	TableWidth       string           `yaml:"table_width,omitempty"`
	ColumnWidths     []string         `yaml:"column_widths,omitempty"`
	AutoFit          string           `yaml:"autofit,omitempty"`
	FirstColumnRatio *float64         `yaml:"first_column_ratio,omitempty"`
	Orientation      string           `yaml:"orientation,omitempty"`
	PageNumber       *PageNumberSpec  `yaml:"page_number,omitempty"`
	ClearPageNumbers bool             `yaml:"clear_page_numbers,omitempty"`
}

// ReplaceTextSpec configures replace_text.
type ReplaceTextSpec struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// PageNumberSpec configures page_number. Unset fields take the defaults of
// docxflow.NewAddPageNumber.
type PageNumberSpec struct {
	Start   *int    `yaml:"start,omitempty"`
	Restart *bool   `yaml:"restart,omitempty"`
	Align   string  `yaml:"align,omitempty"`
	Font    string  `yaml:"font,omitempty"`
	Size    float64 `yaml:"size,omitempty"`
	Format  string  `yaml:"format,omitempty"`
}

// Load reads and validates the recipe at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a recipe. Unknown keys are rejected.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.UnmarshalStrict(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate compiles every step with the default configuration and reports
// all problems at once.
func (r *Recipe) Validate() error {
	_, err := r.compile(docxflow.DefaultConfig())
	return err
}

// Marshal encodes the recipe as YAML.
func (r *Recipe) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// label names a step in reports and errors.
func (s Step) label(i int) string {
	if s.Name != "" {
		return fmt.Sprintf("step %d (%s)", i+1, s.Name)
	}
	return fmt.Sprintf("step %d", i+1)
}
