package report

import (
	"fmt"

	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
	"github.com/de-tools/insight-deck/pkg/services/narrative"
)

var (
	sectionBadgeWidth  = domain.Inches(1.5)
	sectionBadgeHeight = domain.Inches(0.32)
)

// Share of the column height given to the upper section of each column.
const upperSectionShare = 0.64

const (
	sectionStartSize = 13
	sectionMinSize   = 9
)

func (a *assembler) appendix(in Input, period domain.TimePeriod) (domain.Page, error) {
	t := a.theme
	p := t.Palette
	c := t.Canvas()
	b := layout.NewPage(AppendixPage, t, a.measurer)

	b.Background(p.Background)
	subtitle := fmt.Sprintf("%s, %d services", periodSubtitle("Auto-generated", period), len(in.Services))
	head := a.header(b, AppendixTitle, subtitle, 0)

	bodyY := head.Bottom() + t.Gap
	cols := c.Grid(2, bodyY, c.Height-t.MarginY-bodyY)
	left := layout.Stack(cols[0], t.Gap, upperSectionShare, 1-upperSectionShare)
	right := layout.Stack(cols[1], t.Gap, upperSectionShare, 1-upperSectionShare)

	a.section(b, left[0], in.Narrative.Insights, p.Accent, InsightsCaps)
	a.section(b, left[1], in.Narrative.Risks, p.Danger, SectionCaps)
	a.section(b, right[0], in.Narrative.Actions, p.Accent2, SectionCaps)
	a.section(b, right[1], in.Narrative.Method, p.Neutral, SectionCaps)

	return b.Page()
}

// section places a labeled panel with the block's lines as bullets below its badge.
func (a *assembler) section(b *layout.PageBuilder, box domain.Box, block domain.NarrativeBlock, accent domain.Color, caps narrative.Caps) {
	t := a.theme
	b.Panel(box, layout.PanelStyle{
		Fill:    t.Palette.Panel,
		Stroke:  t.Palette.PanelLine,
		Rounded: true,
		Accent:  &accent,
	})
	inner := box.Inset(t.Inset, t.Inset)

	b.Badge(domain.NewBox(inner.X, inner.Y, sectionBadgeWidth, sectionBadgeHeight), sectionTitle(block.Category), accent)

	bodyY := inner.Y + sectionBadgeHeight + t.Gap/2
	body := domain.NewBox(inner.X, bodyY, inner.W, inner.Bottom()-bodyY)
	b.Text(body, narrative.Cap(block, caps).Lines, a.bodyStyle(t.Palette.Text, true), layout.TextFit{
		StartSize: sectionStartSize,
		MinSize:   sectionMinSize,
		MaxLines:  caps.MaxLines,
		MaxChars:  caps.MaxChars,
	})
}
