package model

import (
	"strings"
	"time"
)

// Spreadsheet column headers as they appear in the source workbook
const (
	ColumnName           = "nome"
	ColumnSecretariat    = "Secretaria"
	ColumnType           = "Tipo"
	ColumnSubtype        = "Subtipo"
	ColumnStatus         = "Status do Projeto"
	ColumnMVPProgress    = "Andamento MVP"
	ColumnReceivedDate   = "Data de recebimento (SEI)"
	ColumnStartDate      = "Data de Início do projeto"
	ColumnMVPDueDate     = "Previsão de entrega MVP"
	ColumnPlannedEndDate = "Previsão de término"
	ColumnActualEndDate  = "Data de fim do projeto"
)

// DateColumns lists every column parsed as a date
var DateColumns = []string{
	ColumnReceivedDate,
	ColumnStartDate,
	ColumnMVPDueDate,
	ColumnPlannedEndDate,
	ColumnActualEndDate,
}

// DefaultColumns is the column order of the reference workbook, used for the
// detail listing when a dataset carries no header row of its own
var DefaultColumns = []string{
	ColumnName,
	ColumnSecretariat,
	ColumnType,
	ColumnSubtype,
	ColumnStatus,
	ColumnMVPProgress,
	ColumnReceivedDate,
	ColumnStartDate,
	ColumnMVPDueDate,
	ColumnPlannedEndDate,
	ColumnActualEndDate,
}

var knownColumns = func() map[string]string {
	m := make(map[string]string, len(DefaultColumns))
	for _, c := range DefaultColumns {
		m[NormalizeHeader(c)] = c
	}
	return m
}()

// NormalizeHeader folds case and collapses whitespace so loosely typed
// headers still match
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// CanonicalColumn maps a header onto the known column it names, ignoring case
// and repeated whitespace. Unknown headers come back unchanged.
func CanonicalColumn(header string) string {
	if c, ok := knownColumns[NormalizeHeader(header)]; ok {
		return c
	}
	return header
}

// IsDateColumn reports whether header names one of DateColumns
func IsDateColumn(header string) bool {
	column := CanonicalColumn(header)
	for _, c := range DateColumns {
		if c == column {
			return true
		}
	}
	return false
}

// Values counted by the KPI tally
const (
	StatusInProgress = "Em andamento"
	StatusCompleted  = "Concluído"
	StatusPaused     = "Paralisado / Despriorizado"

	TypeInternal = "INTERNO"
	TypeExternal = "EXTERNO"
)

// ProjectRecord is one spreadsheet row
type ProjectRecord struct {
	Name        string `json:"name"`
	Secretariat string `json:"secretariat,omitempty"`
	Type        string `json:"type,omitempty"`
	Subtype     string `json:"subtype,omitempty"`
	Status      string `json:"status,omitempty"`

	ReceivedDate   *time.Time `json:"received_date,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	MVPDueDate     *time.Time `json:"mvp_due_date,omitempty"`
	PlannedEndDate *time.Time `json:"planned_end_date,omitempty"`
	ActualEndDate  *time.Time `json:"actual_end_date,omitempty"`

	// MVPProgress is 0 when the cell is empty or unparseable
	MVPProgress float64 `json:"mvp_progress"`

	// Values holds every cell of the row keyed by header, as read
	Values map[string]string `json:"-"`
	// Row is the 1-based spreadsheet row, header included
	Row int `json:"row"`
}

// HasTimeline reports whether the record has both dates needed for a Gantt bar
func (r *ProjectRecord) HasTimeline() bool {
	return r.StartDate != nil && r.PlannedEndDate != nil
}

// Date returns the parsed date stored under a date column header
func (r *ProjectRecord) Date(column string) *time.Time {
	switch CanonicalColumn(column) {
	case ColumnReceivedDate:
		return r.ReceivedDate
	case ColumnStartDate:
		return r.StartDate
	case ColumnMVPDueDate:
		return r.MVPDueDate
	case ColumnPlannedEndDate:
		return r.PlannedEndDate
	case ColumnActualEndDate:
		return r.ActualEndDate
	}
	return nil
}

// Dataset is an immutable snapshot of one loaded spreadsheet
type Dataset struct {
	Path       string          `json:"path"`
	SnapshotID string          `json:"snapshot_id"`
	LoadedAt   time.Time       `json:"loaded_at"`
	Columns    []string        `json:"columns"`
	Records    []ProjectRecord `json:"records"`
}

// IsEmpty reports whether the dataset has no rows
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Records) == 0
}
