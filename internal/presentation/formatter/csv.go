package formatter

import (
	"encoding/csv"
	"io"
)

type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter(out io.Writer) *CSVFormatter {
	return &CSVFormatter{out: out}
}

func (f *CSVFormatter) Format(report *Report) error {
	w := csv.NewWriter(f.out)

	headers := report.DetailHeaders()
	if err := w.Write(headers); err != nil {
		return err
	}
	for i := range report.Records {
		if err := w.Write(DetailRow(&report.Records[i], headers)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
