package api

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

type HealthResponse struct {
	Status string `json:"status"`
	App    string `json:"app"`
}

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type KPIs struct {
	UsageGrowthPct float64 `json:"usage_growth_pct"`
	CostGrowthPct  float64 `json:"cost_growth_pct"`
	SLALatest      float64 `json:"sla_latest"`
	SLAOverall     float64 `json:"sla_overall"`
	IncidentsTotal int64   `json:"incidents_total"`
	UsageTotal     float64 `json:"usage_total"`
	CostTotal      float64 `json:"cost_total"`
}

type ReportRun struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Source        string     `json:"source"`
	Period        TimePeriod `json:"period"`
	Rows          int        `json:"rows"`
	Days          int        `json:"days"`
	Services      int        `json:"services"`
	KPIs          KPIs       `json:"kpis"`
	DocumentBytes int64      `json:"document_bytes"`
	PublishedURI  string     `json:"published_uri,omitempty"`
}

type ReportRunsResponse struct {
	Runs []ReportRun `json:"runs"`
}
