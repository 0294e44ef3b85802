package ingest

import (
	"strings"
	"testing"

	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader []string
		wantRows   int
	}{
		{
			name:       "comma separated",
			input:      "day,service,usage_units\n2024-01-01,api,10\n2024-01-02,api,12\n",
			wantHeader: []string{"day", "service", "usage_units"},
			wantRows:   2,
		},
		{
			name:       "semicolon separated",
			input:      "day;service;usage_units\n2024-01-01;api;10\n",
			wantHeader: []string{"day", "service", "usage_units"},
			wantRows:   1,
		},
		{
			name:       "tab separated",
			input:      "day\tservice\n2024-01-01\tapi\n",
			wantHeader: []string{"day", "service"},
			wantRows:   1,
		},
		{
			name:       "byte order mark and blank lines",
			input:      "\xEF\xBB\xBFday,service\n\n2024-01-01,api\n,\n",
			wantHeader: []string{"day", "service"},
			wantRows:   1,
		},
		{
			name:       "header only",
			input:      "day,service\n",
			wantHeader: []string{"day", "service"},
			wantRows:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table, err := ReadCSV(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.wantHeader, table.Header)
			assert.Len(t, table.Rows, tc.wantRows)
		})
	}
}

func TestReadCSV_Errors(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		require.Error(t, err)
		assert.Equal(t, domain.KindParseError, domain.KindOf(err))
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("day,service\n\"2024-01-01,api\n"))
		require.Error(t, err)
		assert.Equal(t, domain.KindParseError, domain.KindOf(err))
	})
}

func TestDetectFormat(t *testing.T) {
	format, err := DetectFormat("usage.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = DetectFormat("/tmp/usage.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	_, err = DetectFormat("usage.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
