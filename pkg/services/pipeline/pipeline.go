// Package pipeline runs one report synthesis: validate, aggregate, narrate, chart, assemble
// and serialize. Each Run works on its own table and report; a Pipeline holds no per-run state.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/insight-deck/pkg/ingest"
	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/render/pdf"
	"github.com/de-tools/insight-deck/pkg/services/chart"
	"github.com/de-tools/insight-deck/pkg/services/metrics"
	"github.com/de-tools/insight-deck/pkg/services/narrative"
	"github.com/de-tools/insight-deck/pkg/services/report"
	"github.com/de-tools/insight-deck/pkg/services/table"
)

// Serializer writes an assembled report as a document.
type Serializer interface {
	Write(w io.Writer, rep domain.Report) error
}

// Analysis is the validated table summarized into aggregates.
type Analysis struct {
	Rows     int
	Period   domain.TimePeriod
	Daily    []domain.DailyAggregate
	Services []domain.ServiceAggregate
	KPIs     domain.KPISet
}

type Result struct {
	Analysis
	Narrative domain.Narrative
	Report    domain.Report
}

type Pipeline struct {
	aggregator metrics.Aggregator
	charts     chart.Renderer
	assembler  report.Assembler
	serializer Serializer
}

type Option func(*Pipeline)

func WithAggregator(a metrics.Aggregator) Option {
	return func(p *Pipeline) { p.aggregator = a }
}

func WithChartRenderer(r chart.Renderer) Option {
	return func(p *Pipeline) { p.charts = r }
}

func WithSerializer(s Serializer) Option {
	return func(p *Pipeline) { p.serializer = s }
}

// New builds a pipeline that lays out pages with theme, measures text with the PDF core
// fonts and writes PDF documents.
func New(theme layout.Theme, opts ...Option) *Pipeline {
	p := &Pipeline{
		aggregator: metrics.NewAggregator(),
		charts:     chart.NewRenderer(chart.DefaultConfig()),
		assembler:  report.NewAssembler(theme, pdf.NewMeasurer()),
		serializer: pdf.NewWriter(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Analyze validates raw and computes the aggregates. Validation errors return before any
// aggregation starts.
func (p *Pipeline) Analyze(ctx context.Context, raw ingest.RawTable) (Analysis, error) {
	logger := zerolog.Ctx(ctx)

	start := time.Now()
	tbl, err := table.Normalize(raw)
	if err != nil {
		logger.Error().Err(err).Str("kind", domain.KindOf(err)).Msg("table validation failed")
		return Analysis{}, err
	}
	logger.Debug().Int("rows", tbl.Len()).Dur("took", time.Since(start)).Msg("table normalized")

	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}

	start = time.Now()
	daily := p.aggregator.AggregateByDay(tbl)
	services := p.aggregator.AggregateByService(tbl)
	kpis := p.aggregator.ComputeKPIs(daily)
	logger.Debug().
		Int("days", len(daily)).
		Int("services", len(services)).
		Dur("took", time.Since(start)).
		Msg("metrics aggregated")

	return Analysis{
		Rows:     tbl.Len(),
		Period:   tbl.Period(),
		Daily:    daily,
		Services: services,
		KPIs:     kpis,
	}, nil
}

// Run produces the complete two-page report, or an error and no report.
func (p *Pipeline) Run(ctx context.Context, raw ingest.RawTable) (Result, error) {
	logger := zerolog.Ctx(ctx)

	analysis, err := p.Analyze(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	story := narrative.Synthesize(analysis.KPIs, analysis.Daily, analysis.Services, narrative.AppendixCaps)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	artifact, err := p.charts.RenderTrendChart(analysis.Daily)
	if err != nil {
		logger.Error().Err(err).Str("kind", domain.KindOf(err)).Msg("chart rendering failed")
		return Result{}, err
	}
	logger.Debug().Str("chart", artifact.ID).Int("bytes", len(artifact.PNG)).Dur("took", time.Since(start)).Msg("chart rendered")

	rep, err := p.assembler.Assemble(report.Input{
		KPIs:      analysis.KPIs,
		Daily:     analysis.Daily,
		Services:  analysis.Services,
		Narrative: story,
		Chart:     artifact,
	})
	if err != nil {
		logger.Error().Err(err).Str("kind", domain.KindOf(err)).Msg("report assembly failed")
		return Result{}, err
	}
	logger.Debug().Int("pages", len(rep.Pages)).Msg("report assembled")

	return Result{Analysis: analysis, Narrative: story, Report: rep}, nil
}

// Generate runs the pipeline and writes the document to w.
func (p *Pipeline) Generate(ctx context.Context, raw ingest.RawTable, w io.Writer) (Result, error) {
	res, err := p.Run(ctx, raw)
	if err != nil {
		return Result{}, err
	}
	if err := p.serializer.Write(w, res.Report); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("document serialization failed")
		return Result{}, domain.NewRenderError("serialize", err)
	}
	return res, nil
}
