package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/benjaminschreck/go-docxflow/pkg/docxflow"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/units"
	"github.com/benjaminschreck/go-docxflow/pkg/docxflow/xml"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <in.docx>",
		Short: "Show the sections and tables of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := openDocument(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)

			bold.Fprintln(out, "Sections")
			writeSections(out, ed)
			fmt.Fprintln(out)
			bold.Fprintln(out, "Tables")
			writeTables(out, ed)
			return nil
		},
	}
}

func writeSections(w io.Writer, ed *docxflow.Editor) {
	idx := ed.SectionIndex()
	paragraphs := countBySection(idx.Paragraphs, idx.SectionCount())
	tables := countBySection(idx.Tables, idx.SectionCount())

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Page", "Orientation", "Start", "Footers", "Paragraphs", "Tables"})
	for i, el := range ed.SelectSections().Get() {
		s := el.(*xml.Section)
		start := "continue"
		if n, ok := s.PageNumberStart(); ok {
			start = strconv.Itoa(n)
		}
		table.Append([]string{
			strconv.Itoa(i),
			pageSize(s),
			s.Orientation(),
			start,
			strconv.Itoa(len(s.FooterReferences())),
			strconv.Itoa(paragraphs[i]),
			strconv.Itoa(tables[i]),
		})
	}
	table.Render()
}

func writeTables(w io.Writer, ed *docxflow.Editor) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Section", "Columns", "Rows", "Width", "Layout"})
	for i, el := range ed.SelectTables().Get() {
		t := el.(*xml.Table)
		section := "-"
		if n, ok := ed.SectionOf(t); ok {
			section = strconv.Itoa(n)
		}
		width := "-"
		if v, typ, ok := t.Width(); ok {
			width = formatWidth(v, typ)
		}
		layout := t.Layout()
		if layout == "" {
			layout = "-"
		}
		table.Append([]string{
			strconv.Itoa(i),
			section,
			strconv.Itoa(t.ColumnCount()),
			strconv.Itoa(len(t.Rows())),
			width,
			layout,
		})
	}
	table.Render()
}

func countBySection(ordinals []int, sections int) []int {
	counts := make([]int, sections)
	for _, s := range ordinals {
		if s < sections {
			counts[s]++
		}
	}
	return counts
}

func pageSize(s *xml.Section) string {
	w, okW := s.PageWidth()
	h, okH := s.PageHeight()
	if !okW || !okH {
		return "-"
	}
	return fmt.Sprintf("%.2f x %.2f cm", w.Cm(), h.Cm())
}

func formatWidth(v int64, typ string) string {
	switch typ {
	case xml.WidthDxa:
		return fmt.Sprintf("%.2f cm", units.Twips(v).Cm())
	case xml.WidthPercent:
		return fmt.Sprintf("%.0f%%", float64(v)*100/units.FullWidthPercent)
	case xml.WidthAuto:
		return "auto"
	}
	return fmt.Sprintf("%d %s", v, typ)
}
