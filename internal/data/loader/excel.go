package loader

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first worksheet of an xlsx workbook
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	// Raw values keep date cells as serial numbers instead of locale strings
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read worksheet", goerr.V("sheet", sheets[0]))
	}
	return tableFromRows(rows), nil
}

func tableFromRows(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	return &Table{Columns: rows[0], Rows: rows[1:]}
}
