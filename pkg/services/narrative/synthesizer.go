// Package narrative turns aggregates into the fixed insights, risks, actions and method
// blocks. The rules are a static table; the same inputs always give the same text.
package narrative

import (
	"fmt"
	"strings"

	"github.com/de-tools/insight-deck/pkg/format"
	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/metrics"
)

// Caps bound a block before it reaches the layout engine.
type Caps struct {
	MaxLines int
	MaxChars int
}

var (
	DashboardCaps = Caps{MaxLines: 5, MaxChars: 92}
	AppendixCaps  = Caps{MaxLines: 8, MaxChars: 120}
)

// Synthesize builds all four blocks, each capped with caps.
func Synthesize(
	kpis domain.KPISet,
	daily []domain.DailyAggregate,
	services []domain.ServiceAggregate,
	caps Caps,
) domain.Narrative {
	return domain.Narrative{
		Insights: Cap(domain.NarrativeBlock{Category: domain.NarrativeInsights, Lines: insights(kpis, daily, services)}, caps),
		Risks:    Cap(domain.NarrativeBlock{Category: domain.NarrativeRisks, Lines: risks(kpis)}, caps),
		Actions:  Cap(domain.NarrativeBlock{Category: domain.NarrativeActions, Lines: clone(actionLines)}, caps),
		Method:   Cap(domain.NarrativeBlock{Category: domain.NarrativeMethod, Lines: clone(methodLines)}, caps),
	}
}

func insights(kpis domain.KPISet, daily []domain.DailyAggregate, services []domain.ServiceAggregate) []string {
	lines := []string{
		fmt.Sprintf("Adoption: usage %s across the period.", format.SignedPercent(kpis.UsageGrowthPct)),
		fmt.Sprintf("Spend: cost %s (monitor cost-to-consumption).", format.SignedPercent(kpis.CostGrowthPct)),
		fmt.Sprintf("Reliability: latest SLA %.3f%% vs overall %.3f%%.", kpis.SLALatest, kpis.SLAOverall),
		metrics.WeekOverWeek(daily),
		fmt.Sprintf("Operations: %s incidents logged across the period.", format.Integer(kpis.IncidentsTotal)),
	}

	drivers := Drivers(services)
	if len(drivers) > 0 {
		top := drivers
		if len(top) > 2 {
			top = top[:2]
		}
		lines = append(lines, "Top drivers: "+strings.Join(top, " | "))
	}
	if len(drivers) > 2 {
		lines = append(lines, "Additional driver: "+drivers[2])
	}
	return lines
}

// Drivers describes the top services by usage share.
func Drivers(services []domain.ServiceAggregate) []string {
	var total float64
	for _, s := range services {
		total += s.TotalUsage
	}

	n := len(services)
	if n > MaxDrivers {
		n = MaxDrivers
	}
	out := make([]string, 0, n)
	for _, s := range services[:n] {
		var share float64
		if total != 0 {
			share = s.TotalUsage / total * 100
		}
		out = append(out, fmt.Sprintf("%s: %.0f%% usage share, %s incidents, SLA %.3f%%",
			s.Service, share, format.Integer(s.TotalIncidents), s.AvgSLA))
	}
	return out
}

func risks(kpis domain.KPISet) []string {
	return []string{
		slaRisk(kpis.SLALatest),
		incidentRisk(kpis.IncidentsTotal),
	}
}

// Cap keeps at most caps.MaxLines lines and truncates longer lines with an ellipsis.
func Cap(block domain.NarrativeBlock, caps Caps) domain.NarrativeBlock {
	return domain.NarrativeBlock{
		Category: block.Category,
		Lines:    layout.TruncateLines(block.Lines, caps.MaxLines, caps.MaxChars),
	}
}

func clone(lines []string) []string {
	return append([]string(nil), lines...)
}
