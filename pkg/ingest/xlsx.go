package ingest

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of a workbook. Day cells stored as whole Excel date serials
// are converted to YYYY-MM-DD so they parse like delimited input. Only the first day column
// is converted, and fractional serials are left as they are so normalization rejects them.
func ReadXLSX(r io.Reader) (RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return RawTable{}, &domain.ParseError{Reason: fmt.Sprintf("failed to open workbook: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return RawTable{}, &domain.ParseError{Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return RawTable{}, &domain.ParseError{Reason: fmt.Sprintf("failed to read sheet %q: %v", sheets[0], err)}
	}
	if len(rows) == 0 {
		return RawTable{}, &domain.ParseError{Reason: "file is empty"}
	}

	table := RawTable{Header: rows[0]}
	dayCol := -1
	for i, h := range table.Header {
		if strings.ToLower(strings.TrimSpace(h)) == domain.ColumnDay {
			dayCol = i
			break
		}
	}

	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if dayCol >= 0 && dayCol < len(row) {
			row[dayCol] = serialToDate(row[dayCol])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func serialToDate(value string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial != math.Trunc(serial) {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}
