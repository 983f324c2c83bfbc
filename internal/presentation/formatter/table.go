package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/util"
)

// maxCellWidth keeps long project names from blowing up the table
const maxCellWidth = 40

type TableFormatter struct {
	out     io.Writer
	headers []string
}

func NewTableFormatter(out io.Writer) *TableFormatter {
	return &TableFormatter{out: out}
}

func (f *TableFormatter) Format(report *Report) error {
	f.headers = report.DetailHeaders()
	rows := make([][]string, 0, len(report.Records))
	for i := range report.Records {
		values := DetailRow(&report.Records[i], f.headers)
		for j, v := range values {
			values[j] = util.TruncateString(v, maxCellWidth)
		}
		rows = append(rows, values)
	}

	widths := f.calculateColumnWidths(rows)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	if len(rows) > 0 {
		f.printBorder(widths, "middle")
	}
	total := make([]string, len(f.headers))
	total[0] = fmt.Sprintf("Total: %s", util.FormatNumber(len(rows)))
	f.printRow(total, widths)
	f.printBorder(widths, "bottom")

	return nil
}

// calculateColumnWidths sizes each column by display width, not bytes
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = util.GetDisplayWidth(header)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := util.GetDisplayWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	// Room for the total label
	if w := util.GetDisplayWidth(fmt.Sprintf("Total: %s", util.FormatNumber(len(rows)))); w > widths[0] {
		widths[0] = w
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int, position string) {
	var left, middle, right string
	switch position {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.out, b.String())
}

// printRow left-aligns text columns and right-aligns the progress column
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		progress := model.CanonicalColumn(f.headers[i]) == model.ColumnMVPProgress
		b.WriteString(" ")
		b.WriteString(util.PadString(value, widths[i], !progress))
		b.WriteString(" │")
	}
	fmt.Fprintln(f.out, b.String())
}
