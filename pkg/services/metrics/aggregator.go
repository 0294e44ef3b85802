// Package metrics folds a normalized table into daily and per-service rollups and the KPI set.
package metrics

import (
	"fmt"
	"sort"

	"github.com/de-tools/insight-deck/pkg/format"
	"github.com/de-tools/insight-deck/pkg/models/domain"
)

// WeekOverWeekWindow is the number of daily points in each compared week.
const WeekOverWeekWindow = 7

const InsufficientHistoryMessage = "Momentum: insufficient history for week-over-week signal (needs at least 14 days)."

// Aggregator is the seam the pipeline calls through, so tests can observe whether
// aggregation ran at all.
type Aggregator interface {
	AggregateByDay(tbl domain.Table) []domain.DailyAggregate
	AggregateByService(tbl domain.Table) []domain.ServiceAggregate
	ComputeKPIs(daily []domain.DailyAggregate) domain.KPISet
}

type aggregator struct{}

func NewAggregator() Aggregator {
	return aggregator{}
}

func (aggregator) AggregateByDay(tbl domain.Table) []domain.DailyAggregate {
	return AggregateByDay(tbl)
}

func (aggregator) AggregateByService(tbl domain.Table) []domain.ServiceAggregate {
	return AggregateByService(tbl)
}

func (aggregator) ComputeKPIs(daily []domain.DailyAggregate) domain.KPISet {
	return ComputeKPIs(daily)
}

// AggregateByDay groups records by day. The table is already sorted, so the output is too;
// it is sorted again to hold the ordering for tables built by hand.
func AggregateByDay(tbl domain.Table) []domain.DailyAggregate {
	type acc struct {
		agg      domain.DailyAggregate
		slaSum   float64
		slaCount int
	}

	byDay := make(map[int64]*acc)
	var order []int64
	for _, r := range tbl.Records {
		key := r.Day.Unix()
		a, ok := byDay[key]
		if !ok {
			a = &acc{agg: domain.DailyAggregate{Day: r.Day}}
			byDay[key] = a
			order = append(order, key)
		}
		a.agg.TotalUsage += r.UsageUnits
		a.agg.TotalCost += r.CostGBP
		a.agg.TotalIncidents += r.Incidents
		a.slaSum += r.SLAPct
		a.slaCount++
	}

	out := make([]domain.DailyAggregate, 0, len(order))
	for _, key := range order {
		a := byDay[key]
		a.agg.AvgSLA = a.slaSum / float64(a.slaCount)
		out = append(out, a.agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

// AggregateByService groups records by service, ordered by total usage descending with
// ties kept in first-seen order.
func AggregateByService(tbl domain.Table) []domain.ServiceAggregate {
	type acc struct {
		agg      domain.ServiceAggregate
		slaSum   float64
		slaCount int
	}

	byService := make(map[string]*acc)
	var order []string
	for _, r := range tbl.Records {
		a, ok := byService[r.Service]
		if !ok {
			a = &acc{agg: domain.ServiceAggregate{Service: r.Service}}
			byService[r.Service] = a
			order = append(order, r.Service)
		}
		a.agg.TotalUsage += r.UsageUnits
		a.agg.TotalIncidents += r.Incidents
		a.slaSum += r.SLAPct
		a.slaCount++
	}

	out := make([]domain.ServiceAggregate, 0, len(order))
	for _, name := range order {
		a := byService[name]
		a.agg.AvgSLA = a.slaSum / float64(a.slaCount)
		out = append(out, a.agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalUsage > out[j].TotalUsage
	})
	return out
}

// ComputeKPIs derives the KPI set. An empty series yields the zero KPISet.
func ComputeKPIs(daily []domain.DailyAggregate) domain.KPISet {
	if len(daily) == 0 {
		return domain.KPISet{}
	}
	first, last := daily[0], daily[len(daily)-1]

	kpis := domain.KPISet{
		UsageGrowthPct: GrowthPct(first.TotalUsage, last.TotalUsage),
		CostGrowthPct:  GrowthPct(first.TotalCost, last.TotalCost),
		SLALatest:      last.AvgSLA,
	}

	var slaSum float64
	for _, d := range daily {
		slaSum += d.AvgSLA
		kpis.IncidentsTotal += d.TotalIncidents
		kpis.UsageTotal += d.TotalUsage
		kpis.CostTotal += d.TotalCost
	}
	kpis.SLAOverall = slaSum / float64(len(daily))
	return kpis
}

// GrowthPct is the percent change from first to last; a zero base yields 0.
func GrowthPct(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// WeekOverWeekPct compares the mean usage of the last 7 points with the 7 before them.
// ok is false when fewer than 14 points exist.
func WeekOverWeekPct(daily []domain.DailyAggregate) (last7, prev7, pct float64, ok bool) {
	n := len(daily)
	if n < 2*WeekOverWeekWindow {
		return 0, 0, 0, false
	}
	last7 = meanUsage(daily[n-WeekOverWeekWindow:])
	prev7 = meanUsage(daily[n-2*WeekOverWeekWindow : n-WeekOverWeekWindow])
	return last7, prev7, GrowthPct(prev7, last7), true
}

// WeekOverWeek renders the momentum line used in the insights block.
func WeekOverWeek(daily []domain.DailyAggregate) string {
	last7, prev7, pct, ok := WeekOverWeekPct(daily)
	if !ok {
		return InsufficientHistoryMessage
	}
	return fmt.Sprintf("Momentum: last 7-day avg %s vs prior %s (%+.1f%%).",
		format.Number(last7, 0), format.Number(prev7, 0), pct)
}

// RollingMean is a trailing moving average with a minimum period of one, so the first
// window-1 points average over what is available.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		count := i + 1
		if count > window {
			count = window
		}
		out[i] = sum / float64(count)
	}
	return out
}

func meanUsage(points []domain.DailyAggregate) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.TotalUsage
	}
	return sum / float64(len(points))
}
