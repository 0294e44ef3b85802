package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/insight-deck/pkg/models/store"
	"github.com/de-tools/insight-deck/pkg/store/duckdb"
)

const DefaultListLimit = 20

var ErrNotFound = errors.New("report run not found")

// Store keeps the history of generated reports.
type Store interface {
	Add(ctx context.Context, run store.ReportRun) error
	Get(ctx context.Context, id string) (*store.ReportRun, error)
	List(ctx context.Context, limit int) ([]store.ReportRun, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

type runStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &runStore{
		db: db,
	}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// conn returns the transaction bound to ctx, or the database when there is none.
func (s *runStore) conn(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *runStore) Add(ctx context.Context, run store.ReportRun) error {
	query := `
		INSERT INTO report_runs (
			id, created_at, source, period_start, period_end,
			row_count, day_count, service_count,
			usage_total, cost_total, usage_growth_pct, cost_growth_pct,
			sla_latest, sla_overall, incidents_total, document_bytes, published_uri
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)`

	_, err := s.conn(ctx).ExecContext(ctx, query,
		run.ID,
		run.CreatedAt,
		run.Source,
		run.PeriodStart,
		run.PeriodEnd,
		run.RowCount,
		run.DayCount,
		run.ServiceCount,
		run.UsageTotal,
		run.CostTotal,
		run.UsageGrowthPct,
		run.CostGrowthPct,
		run.SLALatest,
		run.SLAOverall,
		run.IncidentsTotal,
		run.DocumentBytes,
		run.PublishedURI,
	)
	if err != nil {
		return fmt.Errorf("insert report run: %w", err)
	}
	return nil
}

const selectColumns = `
		SELECT id, created_at, source, period_start, period_end,
		       row_count, day_count, service_count,
		       usage_total, cost_total, usage_growth_pct, cost_growth_pct,
		       sla_latest, sla_overall, incidents_total, document_bytes, published_uri
		FROM report_runs`

func (s *runStore) Get(ctx context.Context, id string) (*store.ReportRun, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query report run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNotFound
	}
	return &runs[0], nil
}

// List returns the most recent runs first. A non-positive limit uses DefaultListLimit.
func (s *runStore) List(ctx context.Context, limit int) ([]store.ReportRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query report runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// Prune deletes runs created before the cutoff and returns how many were removed.
func (s *runStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.conn(ctx).ExecContext(ctx, `DELETE FROM report_runs WHERE created_at < ?`, before)
	if err != nil {
		return 0, fmt.Errorf("delete report runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted report runs: %w", err)
	}
	return n, nil
}

func scanRuns(rows *sql.Rows) ([]store.ReportRun, error) {
	out := []store.ReportRun{}
	for rows.Next() {
		var (
			r   store.ReportRun
			uri sql.NullString
		)
		if err := rows.Scan(
			&r.ID,
			&r.CreatedAt,
			&r.Source,
			&r.PeriodStart,
			&r.PeriodEnd,
			&r.RowCount,
			&r.DayCount,
			&r.ServiceCount,
			&r.UsageTotal,
			&r.CostTotal,
			&r.UsageGrowthPct,
			&r.CostGrowthPct,
			&r.SLALatest,
			&r.SLAOverall,
			&r.IncidentsTotal,
			&r.DocumentBytes,
			&uri,
		); err != nil {
			return nil, fmt.Errorf("scan report run: %w", err)
		}
		if uri.Valid {
			r.PublishedURI = &uri.String
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report runs: %w", err)
	}
	return out, nil
}
