package report

import (
	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/narrative"
)

// Dashboard card thresholds. Good and warning bounds are inclusive.
const (
	SLAGoodThreshold = 99.7
	SLAWarnThreshold = narrative.SLARiskThreshold
	IncidentsGoodMax = 60
	IncidentsWarnMax = 90
)

type Status int

const (
	StatusGood Status = iota
	StatusWarn
	StatusDanger
)

func (s Status) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusWarn:
		return "warn"
	default:
		return "danger"
	}
}

func SLAStatus(slaLatest float64) Status {
	switch {
	case slaLatest >= SLAGoodThreshold:
		return StatusGood
	case slaLatest >= SLAWarnThreshold:
		return StatusWarn
	default:
		return StatusDanger
	}
}

func IncidentStatus(total int64) Status {
	switch {
	case total <= IncidentsGoodMax:
		return StatusGood
	case total <= IncidentsWarnMax:
		return StatusWarn
	default:
		return StatusDanger
	}
}

// UsageStatus warns when usage shrank over the period.
func UsageStatus(kpis domain.KPISet) Status {
	if kpis.UsageGrowthPct < 0 {
		return StatusWarn
	}
	return StatusGood
}

// CostStatus warns when spend grew faster than consumption.
func CostStatus(kpis domain.KPISet) Status {
	if kpis.CostGrowthPct > kpis.UsageGrowthPct {
		return StatusWarn
	}
	return StatusGood
}

func statusColor(p layout.Palette, s Status, good domain.Color) domain.Color {
	switch s {
	case StatusGood:
		return good
	case StatusWarn:
		return p.Warn
	default:
		return p.Danger
	}
}
