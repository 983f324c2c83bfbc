package formatter

import (
	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/core/timeline"
	"github.com/penwyp/go-project-panel/internal/data/filter"
)

// Report is everything a formatter may print for one run
type Report struct {
	Source     string                   `json:"source"`
	SnapshotID string                   `json:"snapshot_id"`
	Records    []model.ProjectRecord    `json:"records"`
	KPIs       filter.KPIs              `json:"kpis"`
	Layout     *timeline.TimelineLayout `json:"timeline,omitempty"`
	// Columns is the spreadsheet header row, in order
	Columns []string `json:"columns,omitempty"`
	// Dropped counts filtered records without a usable date range
	Dropped int `json:"dropped"`
}

// Formatter writes a report in one output format
type Formatter interface {
	Format(report *Report) error
}

// DetailHeaders returns the columns of the project detail listing: the
// spreadsheet's own header row, or model.DefaultColumns when there is none
func (r *Report) DetailHeaders() []string {
	if len(r.Columns) > 0 {
		return r.Columns
	}
	return model.DefaultColumns
}

// DetailRow renders a record as display strings, one per column. Date columns
// are shown dd/mm/YYYY; other cells keep the spreadsheet text.
func DetailRow(r *model.ProjectRecord, columns []string) []string {
	row := make([]string, len(columns))
	for i, column := range columns {
		row[i] = detailCell(r, column)
	}
	return row
}

func detailCell(r *model.ProjectRecord, column string) string {
	if model.IsDateColumn(column) {
		return formatDate(r.Date(column))
	}
	if v, ok := r.Values[column]; ok {
		return v
	}

	// Records built without a raw row
	switch model.CanonicalColumn(column) {
	case model.ColumnName:
		return r.Name
	case model.ColumnSecretariat:
		return r.Secretariat
	case model.ColumnType:
		return r.Type
	case model.ColumnSubtype:
		return r.Subtype
	case model.ColumnStatus:
		return r.Status
	case model.ColumnMVPProgress:
		return formatProgress(r.MVPProgress)
	}
	return ""
}
