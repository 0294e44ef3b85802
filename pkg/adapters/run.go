package adapters

import (
	"github.com/de-tools/insight-deck/pkg/models/api"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/models/store"
)

func MapDomainReportRunToStore(run domain.ReportRun) store.ReportRun {
	var uri *string
	if run.PublishedURI != "" {
		u := run.PublishedURI
		uri = &u
	}
	return store.ReportRun{
		ID:             run.ID,
		CreatedAt:      run.CreatedAt,
		Source:         run.Source,
		PeriodStart:    run.Period.Start,
		PeriodEnd:      run.Period.End,
		RowCount:       run.Rows,
		DayCount:       run.Days,
		ServiceCount:   run.Services,
		UsageTotal:     run.KPIs.UsageTotal,
		CostTotal:      run.KPIs.CostTotal,
		UsageGrowthPct: run.KPIs.UsageGrowthPct,
		CostGrowthPct:  run.KPIs.CostGrowthPct,
		SLALatest:      run.KPIs.SLALatest,
		SLAOverall:     run.KPIs.SLAOverall,
		IncidentsTotal: run.KPIs.IncidentsTotal,
		DocumentBytes:  run.DocumentBytes,
		PublishedURI:   uri,
	}
}

func MapStoreReportRunToDomain(run store.ReportRun) domain.ReportRun {
	out := domain.ReportRun{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Source:    run.Source,
		Period:    domain.NewTimePeriod(run.PeriodStart, run.PeriodEnd),
		Rows:      run.RowCount,
		Days:      run.DayCount,
		Services:  run.ServiceCount,
		KPIs: domain.KPISet{
			UsageGrowthPct: run.UsageGrowthPct,
			CostGrowthPct:  run.CostGrowthPct,
			SLALatest:      run.SLALatest,
			SLAOverall:     run.SLAOverall,
			IncidentsTotal: run.IncidentsTotal,
			UsageTotal:     run.UsageTotal,
			CostTotal:      run.CostTotal,
		},
		DocumentBytes: run.DocumentBytes,
	}
	if run.PublishedURI != nil {
		out.PublishedURI = *run.PublishedURI
	}
	return out
}

func MapDomainReportRunToAPI(run domain.ReportRun) api.ReportRun {
	return api.ReportRun{
		ID:        run.ID,
		CreatedAt: run.CreatedAt,
		Source:    run.Source,
		Period: api.TimePeriod{
			Start:    run.Period.Start,
			End:      run.Period.End,
			Duration: run.Period.Duration,
		},
		Rows:     run.Rows,
		Days:     run.Days,
		Services: run.Services,
		KPIs: api.KPIs{
			UsageGrowthPct: run.KPIs.UsageGrowthPct,
			CostGrowthPct:  run.KPIs.CostGrowthPct,
			SLALatest:      run.KPIs.SLALatest,
			SLAOverall:     run.KPIs.SLAOverall,
			IncidentsTotal: run.KPIs.IncidentsTotal,
			UsageTotal:     run.KPIs.UsageTotal,
			CostTotal:      run.KPIs.CostTotal,
		},
		DocumentBytes: run.DocumentBytes,
		PublishedURI:  run.PublishedURI,
	}
}

func MapDomainReportRunsToAPI(runs []domain.ReportRun) api.ReportRunsResponse {
	out := api.ReportRunsResponse{Runs: make([]api.ReportRun, 0, len(runs))}
	for _, run := range runs {
		out.Runs = append(out.Runs, MapDomainReportRunToAPI(run))
	}
	return out
}
