package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadXLSX_FirstSheetWithDateSerials(t *testing.T) {
	// Given: a workbook whose day column holds real Excel dates
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Day", "Service", "usage_units"}))
	require.NoError(t, f.SetCellValue(sheet, "A2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "B2", "api"))
	require.NoError(t, f.SetCellValue(sheet, "C2", 120))
	require.NoError(t, f.SetCellValue(sheet, "A3", "2024-01-02"))
	require.NoError(t, f.SetCellValue(sheet, "B3", "db"))
	require.NoError(t, f.SetCellValue(sheet, "C3", 80.5))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	// When
	table, err := ReadXLSX(buf)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"Day", "Service", "usage_units"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2024-01-01", table.Rows[0][0])
	assert.Equal(t, "120", table.Rows[0][2])
	assert.Equal(t, "2024-01-02", table.Rows[1][0])
	assert.Equal(t, "80.5", table.Rows[1][2])
}

func TestReadXLSX_DayColumn(t *testing.T) {
	tests := []struct {
		name     string
		header   []interface{}
		cells    []interface{}
		expected []string
	}{
		{
			name:     "only the first day column is converted",
			header:   []interface{}{"day", "service", "Day"},
			cells:    []interface{}{45292, "api", 45293},
			expected: []string{"2024-01-01", "api", "45293"},
		},
		{
			name:     "fractional serial is left for validation",
			header:   []interface{}{"day", "service"},
			cells:    []interface{}{45000.7, "api"},
			expected: []string{"45000.7", "api"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			f := excelize.NewFile()
			sheet := f.GetSheetName(0)
			require.NoError(t, f.SetSheetRow(sheet, "A1", &tt.header))
			require.NoError(t, f.SetSheetRow(sheet, "A2", &tt.cells))
			buf, err := f.WriteToBuffer()
			require.NoError(t, err)

			// When
			table, err := ReadXLSX(buf)

			// Then
			require.NoError(t, err)
			require.Len(t, table.Rows, 1)
			assert.Equal(t, tt.expected, table.Rows[0])
		})
	}
}

func TestReadXLSX_NotAWorkbook(t *testing.T) {
	_, err := Read("usage.xlsx", strings.NewReader("not a zip archive"))
	assert.Error(t, err)
}

