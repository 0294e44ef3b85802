// Package ingest reads uploaded tables into untyped rows. Schema and value checks live in
// the table normalizer; readers only know about headers and cells.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

// RawTable is a header row plus data rows exactly as read from the source.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Format identifies the reader for a file name.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks a reader from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(filename))
}

// Read parses r according to the extension of filename.
func Read(filename string, r io.Reader) (RawTable, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return RawTable{}, err
	}
	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}
