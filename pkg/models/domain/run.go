package domain

import "time"

// ReportRun records one successful report generation.
type ReportRun struct {
	ID            string
	CreatedAt     time.Time
	Source        string
	Period        TimePeriod
	Rows          int
	Days          int
	Services      int
	KPIs          KPISet
	DocumentBytes int64
	PublishedURI  string
}
