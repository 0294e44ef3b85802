package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/insight-deck/pkg/adapters"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/render/xlsx"
	"github.com/de-tools/insight-deck/pkg/runtime/terminal/export"
	"github.com/de-tools/insight-deck/pkg/services/config"
	"github.com/de-tools/insight-deck/pkg/services/pipeline"
	"github.com/de-tools/insight-deck/pkg/store/duckdb"
	"github.com/de-tools/insight-deck/pkg/store/duckdb/runs"
	s3store "github.com/de-tools/insight-deck/pkg/store/s3"
)

// Publisher uploads a finished document and returns where it landed.
type Publisher interface {
	Publish(ctx context.Context, id string, document []byte) (string, error)
}

// PublisherFactory builds the publisher for the configured destination.
type PublisherFactory func(ctx context.Context, settings s3store.Settings) (Publisher, error)

func DefaultPublisherFactory(ctx context.Context, settings s3store.Settings) (Publisher, error) {
	return s3store.NewPublisherFromConfig(ctx, settings)
}

type GenerateCmd struct {
	settings    *Settings
	input       string
	output      string
	chart       string
	metricsXLSX string
	publish     bool
	reporter    *export.Reporter
	publishers  PublisherFactory
	newID       func() string
}

func NewGenerateCmd(settings *Settings, reporter *export.Reporter, publishers PublisherFactory) *cobra.Command {
	if publishers == nil {
		publishers = DefaultPublisherFactory
	}
	gc := &GenerateCmd{settings: settings, reporter: reporter, publishers: publishers, newID: uuid.NewString}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the two-page report from a usage table",
		RunE:  gc.run,
	}

	cmd.Flags().StringVarP(&gc.input, "input", "i", "", "Path to the .csv or .xlsx usage table")
	cmd.Flags().StringVarP(&gc.output, "output", "o", "", "Path of the PDF to write (default InsightDeck_<id>.pdf)")
	cmd.Flags().StringVar(&gc.chart, "chart", "", "Also write the trend chart PNG to this path")
	cmd.Flags().StringVar(&gc.metricsXLSX, "metrics-xlsx", "", "Also write the aggregates to this .xlsx workbook")
	cmd.Flags().BoolVar(&gc.publish, "publish", false, "Upload the PDF to the configured S3 bucket")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cfg, err := loadConfig(cmd.Context(), gc.settings)
	if err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx)

	raw, err := readTable(gc.input)
	if err != nil {
		return err
	}

	id := gc.newID()
	output := gc.output
	if output == "" {
		output = fmt.Sprintf("InsightDeck_%s.pdf", id[:min(8, len(id))])
	}

	var doc bytes.Buffer
	res, err := pipeline.New(cfg.Theme()).Generate(ctx, raw, &doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, doc.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Debug().Str("path", output).Int("bytes", doc.Len()).Msg("report written")

	if gc.chart != "" {
		if err := os.WriteFile(gc.chart, res.Report.Chart.PNG, 0o644); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
	}
	if gc.metricsXLSX != "" {
		if err := writeWorkbook(gc.metricsXLSX, res.Analysis); err != nil {
			return err
		}
	}

	var published string
	if gc.publish {
		publisher, err := gc.publishers(ctx, s3store.Settings{
			Bucket:  cfg.Publish.S3Bucket,
			Prefix:  cfg.Publish.S3Prefix,
			Profile: cfg.Publish.AWSProfile,
		})
		if err != nil {
			return fmt.Errorf("failed to set up publishing: %w", err)
		}
		published, err = publisher.Publish(ctx, id, doc.Bytes())
		if err != nil {
			return err
		}
	}

	run := domain.ReportRun{
		ID:            id,
		CreatedAt:     time.Now().UTC(),
		Source:        filepath.Base(gc.input),
		Period:        res.Period,
		Rows:          res.Rows,
		Days:          len(res.Daily),
		Services:      len(res.Services),
		KPIs:          res.KPIs,
		DocumentBytes: int64(doc.Len()),
		PublishedURI:  published,
	}
	if err := recordRun(ctx, cfg, run); err != nil {
		logger.Warn().Err(err).Msg("failed to record report run")
	}

	return gc.reporter.Handle(&export.Summary{
		Source:    run.Source,
		Rows:      res.Rows,
		Period:    res.Period,
		KPIs:      res.KPIs,
		Services:  res.Services,
		Document:  output,
		Published: published,
	})
}

func writeWorkbook(path string, analysis pipeline.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer f.Close()

	err = xlsx.Write(f, xlsx.Metrics{
		Daily:    analysis.Daily,
		Services: analysis.Services,
		KPIs:     analysis.KPIs,
	})
	if err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return f.Close()
}

// recordRun appends the run to the history database when one is configured, and prunes
// runs past the retention window in the same transaction.
func recordRun(ctx context.Context, cfg *config.Config, run domain.ReportRun) error {
	if cfg.Storage.DuckDBPath == "" {
		return nil
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Storage.DuckDBPath})
	if err != nil {
		return err
	}
	defer db.Close()

	history, err := runs.NewStore(db)
	if err != nil {
		return err
	}
	return duckdb.InTransaction(ctx, db, func(ctx context.Context) error {
		if err := history.Add(ctx, adapters.MapDomainReportRunToStore(run)); err != nil {
			return err
		}
		if cfg.Storage.Retention <= 0 {
			return nil
		}
		deleted, err := history.Prune(ctx, run.CreatedAt.Add(-cfg.Storage.Retention))
		if err != nil {
			return err
		}
		if deleted > 0 {
			zerolog.Ctx(ctx).Debug().Int64("deleted", deleted).Msg("pruned report history")
		}
		return nil
	})
}
