package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

func TestReportRunMapping(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	run := domain.ReportRun{
		ID:        "run-1",
		CreatedAt: start.Add(48 * time.Hour),
		Source:    "usage.csv",
		Period:    domain.NewTimePeriod(start, start.AddDate(0, 0, 13)),
		Rows:      28,
		Days:      14,
		Services:  2,
		KPIs:      domain.KPISet{UsageGrowthPct: 4.2, SLALatest: 99.9, IncidentsTotal: 7, CostTotal: 1200},
	}

	t.Run("store round trip keeps every field", func(t *testing.T) {
		stored := MapDomainReportRunToStore(run)
		assert.Nil(t, stored.PublishedURI)
		assert.Equal(t, run, MapStoreReportRunToDomain(stored))
	})

	t.Run("published uri survives store mapping", func(t *testing.T) {
		published := run
		published.PublishedURI = "s3://bucket/reports/run-1.pdf"

		stored := MapDomainReportRunToStore(published)

		if assert.NotNil(t, stored.PublishedURI) {
			assert.Equal(t, published.PublishedURI, *stored.PublishedURI)
		}
	})

	t.Run("api view", func(t *testing.T) {
		out := MapDomainReportRunsToAPI([]domain.ReportRun{run})

		assert.Len(t, out.Runs, 1)
		assert.Equal(t, 14, out.Runs[0].Period.Duration)
		assert.Equal(t, int64(7), out.Runs[0].KPIs.IncidentsTotal)
		assert.Empty(t, out.Runs[0].PublishedURI)
	})

	t.Run("empty list encodes as empty array", func(t *testing.T) {
		assert.NotNil(t, MapDomainReportRunsToAPI(nil).Runs)
	})
}
