package store

import "time"

type ReportRun struct {
	ID             string
	CreatedAt      time.Time
	Source         string
	PeriodStart    time.Time
	PeriodEnd      time.Time
	RowCount       int
	DayCount       int
	ServiceCount   int
	UsageTotal     float64
	CostTotal      float64
	UsageGrowthPct float64
	CostGrowthPct  float64
	SLALatest      float64
	SLAOverall     float64
	IncidentsTotal int64
	DocumentBytes  int64
	PublishedURI   *string
}
