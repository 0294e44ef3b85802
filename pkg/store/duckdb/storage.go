package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportRunsSchema = `
	CREATE TABLE IF NOT EXISTS report_runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		source VARCHAR NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		row_count INTEGER NOT NULL,
		day_count INTEGER NOT NULL,
		service_count INTEGER NOT NULL,
		usage_total DOUBLE,
		cost_total DOUBLE,
		usage_growth_pct DOUBLE,
		cost_growth_pct DOUBLE,
		sla_latest DOUBLE,
		sla_overall DOUBLE,
		incidents_total BIGINT,
		document_bytes BIGINT,
		published_uri VARCHAR NULL
	);
`

const ReportRunsCreatedAtIndex = `
	CREATE INDEX IF NOT EXISTS report_runs_created_at ON report_runs (created_at);
`

var bootQueries = []string{
	ReportRunsSchema,
	ReportRunsCreatedAtIndex,
}

type Settings struct {
	DbPath  string
	Threads int
}

// NewDB opens the history database at settings.DbPath (":memory:" works) and creates the
// schema on every new connection.
func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
