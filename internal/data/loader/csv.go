package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// CSVReader reads comma or semicolon separated files with a header row
type CSVReader struct{}

func (r *CSVReader) Read(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readCSV(file)
}

func readCSV(in io.Reader) (*Table, error) {
	br := bufio.NewReader(in)

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	if _, err := br.Discard(bomLength(br)); err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableFromRows(rows), nil
}

func bomLength(br *bufio.Reader) int {
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, []byte("\xef\xbb\xbf")) {
		return 3
	}
	return 0
}

// detectDelimiter prefers ';' when the header line has more semicolons than commas
func detectDelimiter(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
