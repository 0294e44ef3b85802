// Package report assembles the dashboard and appendix pages from computed metrics,
// narrative blocks and the chart artifact.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/insight-deck/pkg/format"
	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/narrative"
)

const (
	Title         = "InsightDeck Executive Summary"
	AppendixTitle = "Appendix: Full Narrative & Drivers"

	DashboardPage = "dashboard"
	AppendixPage  = "appendix"
)

var ErrNoDailyData = errors.New("no daily aggregates to assemble")

// Caps used for the appendix sections.
var (
	InsightsCaps = narrative.Caps{MaxLines: 8, MaxChars: 120}
	SectionCaps  = narrative.Caps{MaxLines: 6, MaxChars: 120}
)

// Input is everything a report is built from.
type Input struct {
	KPIs      domain.KPISet
	Daily     []domain.DailyAggregate
	Services  []domain.ServiceAggregate
	Narrative domain.Narrative
	Chart     domain.ChartArtifact
}

type Assembler interface {
	Assemble(in Input) (domain.Report, error)
}

type assembler struct {
	theme    layout.Theme
	measurer layout.Measurer
}

// NewAssembler returns an assembler for theme. m may be nil, in which case text is fitted
// with the density heuristic only.
func NewAssembler(theme layout.Theme, m layout.Measurer) Assembler {
	return &assembler{theme: theme, measurer: m}
}

// Assemble builds the two pages. It reads nothing but its arguments, so the same input
// always yields the same report.
func (a *assembler) Assemble(in Input) (domain.Report, error) {
	if len(in.Daily) == 0 {
		return domain.Report{}, domain.NewRenderError("layout", ErrNoDailyData)
	}
	period := domain.NewTimePeriod(in.Daily[0].Day, in.Daily[len(in.Daily)-1].Day)

	dashboard, err := a.dashboard(in, period)
	if err != nil {
		return domain.Report{}, domain.NewRenderError("layout", err)
	}
	appendix, err := a.appendix(in, period)
	if err != nil {
		return domain.Report{}, domain.NewRenderError("layout", err)
	}

	return domain.Report{
		Title:  Title,
		Period: period,
		Pages:  []domain.Page{dashboard, appendix},
		Chart:  in.Chart,
	}, nil
}

// header places title, subtitle and the accent underline at the top margin and returns the
// box it occupied. Width is reduced by reserve on the right for badges.
func (a *assembler) header(b *layout.PageBuilder, title, subtitle string, reserve domain.Length) domain.Box {
	t := a.theme
	c := t.Canvas()
	area := c.Row(t.MarginY, headerHeight)
	textW := area.W - reserve

	b.Label(domain.NewBox(area.X, area.Y, textW, titleHeight), title, domain.TextStyle{
		Font:  t.Fonts.Title,
		Size:  30,
		Bold:  true,
		Color: t.Palette.Text,
	}, 20)
	b.Label(domain.NewBox(area.X, area.Y+titleHeight, textW, subtitleHeight), subtitle, domain.TextStyle{
		Size:  14,
		Color: t.Palette.Subtext,
	}, 10)
	b.Rect(domain.NewBox(area.X, area.Bottom()-underlineHeight, underlineWidth, underlineHeight), t.Palette.Accent)
	return area
}

func periodSubtitle(prefix string, p domain.TimePeriod) string {
	return fmt.Sprintf("%s: %s to %s (%d days)", prefix, p.Start.Format("02 Jan 2006"), p.End.Format("02 Jan 2006"), p.Duration)
}

func upper(s string) string {
	return strings.ToUpper(s)
}

// sectionTitle is the badge label of a narrative block.
func sectionTitle(c domain.NarrativeCategory) string {
	return upper(string(c))
}

func (a *assembler) bodyStyle(color domain.Color, bullet bool) domain.TextStyle {
	return domain.TextStyle{
		Font:   a.theme.Fonts.Body,
		Color:  color,
		Wrap:   true,
		Bullet: bullet,
	}
}

func kpiValue(kpis domain.KPISet) (usage, cost, sla, incidents string) {
	return format.SignedPercent(kpis.UsageGrowthPct),
		format.SignedPercent(kpis.CostGrowthPct),
		fmt.Sprintf("%.3f%%", kpis.SLALatest),
		format.Integer(kpis.IncidentsTotal)
}
