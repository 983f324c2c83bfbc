// Package loader reads the project spreadsheet into model records.
package loader

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/core/model"
	"github.com/penwyp/go-project-panel/internal/util"
)

// Table is the raw content of a sheet: header plus data rows
type Table struct {
	Columns []string
	Rows    [][]string
}

// Reader reads a table from a file
type Reader interface {
	Read(path string) (*Table, error)
}

// Loader turns spreadsheet files into datasets
type Loader struct {
	readers map[string]Reader
	now     func() time.Time
}

// NewLoader registers the xlsx and csv readers
func NewLoader() *Loader {
	excel := &ExcelReader{}
	return &Loader{
		readers: map[string]Reader{
			".xlsx": excel,
			".xlsm": excel,
			".csv":  &CSVReader{},
		},
		now: time.Now,
	}
}

// Extensions lists the supported file extensions, sorted
func (l *Loader) Extensions() []string {
	exts := make([]string, 0, len(l.readers))
	for ext := range l.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ReaderFor picks a reader by file extension
func (l *Loader) ReaderFor(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := l.readers[ext]
	if !ok {
		return nil, goerr.New("unsupported spreadsheet format",
			goerr.T(model.ErrTagUnsupportedFormat),
			goerr.V("path", path),
			goerr.V("extension", ext))
	}
	return reader, nil
}

// LoadFile reads path and parses every row into a ProjectRecord
func (l *Loader) LoadFile(path string) (*model.Dataset, error) {
	start := time.Now()
	util.LogDebug("Start loading spreadsheet", util.F("path", path))

	reader, err := l.ReaderFor(path)
	if err != nil {
		return nil, err
	}

	table, err := reader.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "spreadsheet not found",
				goerr.T(model.ErrTagDatasetNotFound),
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read spreadsheet", goerr.V("path", path))
	}

	records := ParseTable(table)
	dataset := &model.Dataset{
		Path:       path,
		SnapshotID: uuid.NewString(),
		LoadedAt:   l.now(),
		Columns:    table.Columns,
		Records:    records,
	}

	util.LogInfo("Spreadsheet loaded",
		util.F("path", path),
		util.F("rows", len(records)),
		util.F("duration", time.Since(start).String()))
	return dataset, nil
}

// ParseTable maps table rows onto records. Blank rows are skipped.
func ParseTable(table *Table) []model.ProjectRecord {
	index := columnIndex(table.Columns)
	records := make([]model.ProjectRecord, 0, len(table.Rows))

	for i, row := range table.Rows {
		if isBlank(row) {
			continue
		}

		cell := func(column string) string {
			pos, ok := index[model.NormalizeHeader(column)]
			if !ok || pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		values := make(map[string]string, len(table.Columns))
		for j, column := range table.Columns {
			if j < len(row) {
				values[column] = strings.TrimSpace(row[j])
			}
		}

		records = append(records, model.ProjectRecord{
			Name:           cell(model.ColumnName),
			Secretariat:    cell(model.ColumnSecretariat),
			Type:           cell(model.ColumnType),
			Subtype:        cell(model.ColumnSubtype),
			Status:         cell(model.ColumnStatus),
			ReceivedDate:   ParseDate(cell(model.ColumnReceivedDate)),
			StartDate:      ParseDate(cell(model.ColumnStartDate)),
			MVPDueDate:     ParseDate(cell(model.ColumnMVPDueDate)),
			PlannedEndDate: ParseDate(cell(model.ColumnPlannedEndDate)),
			ActualEndDate:  ParseDate(cell(model.ColumnActualEndDate)),
			MVPProgress:    ParseProgress(cell(model.ColumnMVPProgress)),
			Values:         values,
			Row:            i + 2,
		})
	}
	return records
}

func columnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, column := range columns {
		key := model.NormalizeHeader(column)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return index
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
