package domain

import "time"

type DailyAggregate struct {
	Day            time.Time
	TotalUsage     float64
	TotalCost      float64
	TotalIncidents int64
	AvgSLA         float64
}

type ServiceAggregate struct {
	Service        string
	TotalUsage     float64
	TotalIncidents int64
	AvgSLA         float64
}

// KPISet is the scalar summary computed once per report.
type KPISet struct {
	UsageGrowthPct float64
	CostGrowthPct  float64
	SLALatest      float64
	SLAOverall     float64
	IncidentsTotal int64
	UsageTotal     float64
	CostTotal      float64
}
