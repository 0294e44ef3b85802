package domain

import "time"

// ChartArtifact is a rendered raster chart and its native pixel size.
type ChartArtifact struct {
	ID       string
	PNG      []byte
	WidthPx  int
	HeightPx int
}

// Report is the assembled deck: the dashboard page followed by the appendix page.
type Report struct {
	Title  string
	Period TimePeriod
	Pages  []Page
	Chart  ChartArtifact
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days, inclusive
}

func NewTimePeriod(start, end time.Time) TimePeriod {
	return TimePeriod{
		Start:    start,
		End:      end,
		Duration: int(end.Sub(start).Hours()/24) + 1,
	}
}
