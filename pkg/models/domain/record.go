package domain

import "time"

// Required input columns, in the order they are reported.
const (
	ColumnDay        = "day"
	ColumnService    = "service"
	ColumnUsageUnits = "usage_units"
	ColumnCostGBP    = "cost_gbp"
	ColumnIncidents  = "incidents"
	ColumnSLAPct     = "sla_pct"
)

var RequiredColumns = []string{
	ColumnDay,
	ColumnService,
	ColumnUsageUnits,
	ColumnCostGBP,
	ColumnIncidents,
	ColumnSLAPct,
}

// Record is one validated row of the usage table.
type Record struct {
	Day        time.Time
	Service    string
	UsageUnits float64
	CostGBP    float64
	Incidents  int64
	SLAPct     float64
}

// Table holds records sorted ascending by day. Records sharing a day keep their input order.
type Table struct {
	Records []Record
}

func (t Table) Len() int {
	return len(t.Records)
}

// Period returns the date window covered by the table.
func (t Table) Period() TimePeriod {
	if len(t.Records) == 0 {
		return TimePeriod{}
	}
	return NewTimePeriod(t.Records[0].Day, t.Records[len(t.Records)-1].Day)
}
