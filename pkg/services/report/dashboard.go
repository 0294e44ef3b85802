package report

import (
	"fmt"

	"github.com/de-tools/insight-deck/pkg/format"
	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/narrative"
)

// Template heights and fixed widths. Horizontal placement comes from the theme margins and
// gap, vertical placement stacks these from the top margin.
var (
	headerHeight      = domain.Inches(1.15)
	titleHeight       = domain.Inches(0.6)
	subtitleHeight    = domain.Inches(0.4)
	underlineWidth    = domain.Inches(2.2)
	underlineHeight   = domain.Inches(0.08)
	headerBadgeWidth  = domain.Inches(2.0)
	headerBadgeHeight = domain.Inches(0.32)

	cardHeight      = domain.Inches(1.4)
	cardLabelHeight = domain.Inches(0.26)
	cardValueHeight = domain.Inches(0.42)
	cardHintHeight  = domain.Inches(0.22)
	tagWidth        = domain.Inches(0.9)
	tagHeight       = domain.Inches(0.26)

	panelTitleHeight = domain.Inches(0.3)
	captionHeight    = domain.Inches(0.45)
)

type kpiCard struct {
	label  string
	value  string
	hint   string
	tag    string
	status Status
	base   domain.Color // accent when status is good
}

func (a *assembler) dashboard(in Input, period domain.TimePeriod) (domain.Page, error) {
	t := a.theme
	p := t.Palette
	c := t.Canvas()
	b := layout.NewPage(DashboardPage, t, a.measurer)

	b.Background(p.Background)

	head := a.header(b, Title, periodSubtitle("KPI one-pager", period), headerBadgeWidth+t.Gap)
	badgeX := head.Right() - headerBadgeWidth
	b.Badge(domain.NewBox(badgeX, head.Y, headerBadgeWidth, headerBadgeHeight), "OPS / INSIGHTS", p.Accent)
	b.Badge(domain.NewBox(badgeX, head.Y+headerBadgeHeight+t.Gap/2, headerBadgeWidth, headerBadgeHeight), "AUTO-GENERATED", p.Accent2)

	cardsY := head.Bottom() + t.Gap
	cards := dashboardCards(in.KPIs, p)
	for i, tile := range c.Grid(4, cardsY, cardHeight) {
		a.card(b, tile, cards[i])
	}

	panelY := cardsY + cardHeight + t.Gap
	panel := b.Panel(c.Row(panelY, c.Height-t.MarginY-panelY), layout.PanelStyle{
		Fill:    p.Panel,
		Stroke:  p.PanelLine,
		Rounded: true,
	})
	inner := panel.Inset(t.Inset, t.Inset)

	b.Label(domain.NewBox(inner.X, inner.Y, inner.W, panelTitleHeight), "Usage trend", domain.TextStyle{
		Size:  12,
		Bold:  true,
		Color: p.Text,
	}, 9)

	caption := domain.NewBox(inner.X, inner.Bottom()-captionHeight, inner.W, captionHeight)
	watch := narrative.Cap(in.Narrative.Risks, narrative.DashboardCaps)
	b.Text(caption, watch.Lines, a.bodyStyle(p.Subtext, true), layout.TextFit{
		StartSize: 10,
		MinSize:   8,
		MaxLines:  narrative.DashboardCaps.MaxLines,
		MaxChars:  narrative.DashboardCaps.MaxChars,
	})

	imageTop := inner.Y + panelTitleHeight + t.Gap/2
	imageBox := domain.NewBox(inner.X, imageTop, inner.W, caption.Y-t.Gap/2-imageTop)
	b.Image(imageBox, in.Chart)

	return b.Page()
}

func dashboardCards(kpis domain.KPISet, p layout.Palette) []kpiCard {
	usage, cost, sla, incidents := kpiValue(kpis)
	return []kpiCard{
		{
			label:  "Usage growth",
			value:  usage,
			hint:   "total " + format.Number(kpis.UsageTotal, 0) + " units",
			tag:    "TREND",
			base:   p.Accent,
			status: UsageStatus(kpis),
		},
		{
			label:  "Cost growth",
			value:  cost,
			hint:   "total " + format.GBP(kpis.CostTotal),
			tag:    "COST",
			base:   p.Violet,
			status: CostStatus(kpis),
		},
		{
			label:  "SLA (latest)",
			value:  sla,
			hint:   fmt.Sprintf("overall %.3f%% | target %.1f%%", kpis.SLAOverall, SLAGoodThreshold),
			tag:    "SLA",
			base:   p.Accent2,
			status: SLAStatus(kpis.SLALatest),
		},
		{
			label:  "Incidents",
			value:  incidents,
			hint:   "total volume",
			tag:    "RISK",
			base:   p.Accent2,
			status: IncidentStatus(kpis.IncidentsTotal),
		},
	}
}

// card places one KPI tile: accent bar and tag colored by status, label, value and hint.
func (a *assembler) card(b *layout.PageBuilder, box domain.Box, k kpiCard) {
	t := a.theme
	p := t.Palette
	accent := statusColor(p, k.status, k.base)

	b.Card(box, &accent)
	inner := box.Inset(t.Inset, t.Inset)

	b.Badge(domain.NewBox(inner.Right()-tagWidth, inner.Y, tagWidth, tagHeight), k.tag, accent)
	b.Label(domain.NewBox(inner.X, inner.Y, inner.W-tagWidth-t.Gap/2, cardLabelHeight), upper(k.label), domain.TextStyle{
		Size:  10,
		Bold:  true,
		Color: p.Muted,
	}, 7)
	b.Label(domain.NewBox(inner.X, inner.Y+cardLabelHeight, inner.W, cardValueHeight), k.value, domain.TextStyle{
		Font:  t.Fonts.Title,
		Size:  22,
		Bold:  true,
		Color: p.Ink,
	}, 14)
	b.Label(domain.NewBox(inner.X, inner.Bottom()-cardHintHeight, inner.W, cardHintHeight), k.hint, domain.TextStyle{
		Size:  10,
		Color: p.Muted,
	}, 7)
}
