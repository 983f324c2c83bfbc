package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-project-panel/internal/util"
)

// SummaryFormatter prints the KPI block and the covered date range.
type SummaryFormatter struct {
	out io.Writer
}

func NewSummaryFormatter(out io.Writer) *SummaryFormatter {
	return &SummaryFormatter{out: out}
}

func (f *SummaryFormatter) Format(report *Report) error {
	w := f.out
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "PAINEL EXECUTIVO - MAPA")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)

	if report.Source != "" {
		fmt.Fprintf(w, "Planilha: %s\n\n", report.Source)
	}

	if len(report.Records) == 0 {
		fmt.Fprintln(w, "Nenhum projeto encontrado para os filtros selecionados")
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return nil
	}

	fmt.Fprintln(w, "Indicadores:")
	for _, card := range report.KPIs.Cards() {
		fmt.Fprintf(w, "  %s %s\n", util.PadString(card.Label+":", 30, true), util.FormatNumber(card.Value))
	}
	fmt.Fprintln(w)

	if layout := report.Layout; layout != nil && len(layout.Rows) > 0 {
		first, last := layout.Rows[0].BarStart, layout.Rows[0].BarEnd
		for _, row := range layout.Rows {
			if row.BarEnd.After(last) {
				last = row.BarEnd
			}
		}
		fmt.Fprintln(w, "Cronograma:")
		fmt.Fprintf(w, "  Projetos com datas: %s\n", util.FormatNumber(len(layout.Rows)))
		fmt.Fprintf(w, "  Período: %s a %s\n", util.FormatDate(first), util.FormatDate(last))
	}
	if report.Dropped > 0 {
		fmt.Fprintf(w, "  Sem datas válidas: %s\n", util.FormatNumber(report.Dropped))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	return nil
}
