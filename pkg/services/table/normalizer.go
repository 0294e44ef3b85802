// Package table validates raw rows against the usage schema and produces a typed Table.
//
// Numeric coercion is strict: any unparsable, negative or out-of-range value fails the
// whole table with a ParseError naming the column. No partial table is ever returned.
package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/insight-deck/pkg/ingest"
	"github.com/de-tools/insight-deck/pkg/models/domain"
)

const dayLayout = "2006-01-02"

// Normalize checks the header for required columns, then parses every row.
func Normalize(raw ingest.RawTable) (domain.Table, error) {
	columns, err := resolveColumns(raw.Header)
	if err != nil {
		return domain.Table{}, err
	}
	if len(raw.Rows) == 0 {
		return domain.Table{}, &domain.ParseError{Reason: "table contains no records"}
	}

	records := make([]domain.Record, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		rec, err := parseRow(row, i+1, columns)
		if err != nil {
			return domain.Table{}, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Day.Before(records[j].Day)
	})
	return domain.Table{Records: records}, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &domain.SchemaError{Missing: missing}
	}
	return index, nil
}

func parseRow(row []string, rowNum int, columns map[string]int) (domain.Record, error) {
	get := func(col string) string {
		if idx := columns[col]; idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	fail := func(col, reason string) error {
		return &domain.ParseError{Column: col, Row: rowNum, Value: get(col), Reason: reason}
	}

	day, err := time.Parse(dayLayout, get(domain.ColumnDay))
	if err != nil {
		return domain.Record{}, fail(domain.ColumnDay, "expected a YYYY-MM-DD date")
	}

	service := get(domain.ColumnService)
	if service == "" {
		return domain.Record{}, fail(domain.ColumnService, "service is empty")
	}

	usage, err := parseNonNegative(get(domain.ColumnUsageUnits))
	if err != nil {
		return domain.Record{}, fail(domain.ColumnUsageUnits, err.Error())
	}

	cost, err := parseNonNegative(get(domain.ColumnCostGBP))
	if err != nil {
		return domain.Record{}, fail(domain.ColumnCostGBP, err.Error())
	}

	incidents, err := parseNonNegative(get(domain.ColumnIncidents))
	if err != nil {
		return domain.Record{}, fail(domain.ColumnIncidents, err.Error())
	}
	if incidents != math.Trunc(incidents) || incidents > math.MaxInt64/2 {
		return domain.Record{}, fail(domain.ColumnIncidents, "expected a whole number")
	}

	sla, err := parseNonNegative(get(domain.ColumnSLAPct))
	if err != nil {
		return domain.Record{}, fail(domain.ColumnSLAPct, err.Error())
	}
	if sla > 100 {
		return domain.Record{}, fail(domain.ColumnSLAPct, "expected a percentage between 0 and 100")
	}

	return domain.Record{
		Day:        day,
		Service:    service,
		UsageUnits: usage,
		CostGBP:    cost,
		Incidents:  int64(incidents),
		SLAPct:     sla,
	}, nil
}

func parseNonNegative(value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expected a number")
	}
	if v < 0 {
		return 0, fmt.Errorf("expected a non-negative number")
	}
	return v, nil
}
