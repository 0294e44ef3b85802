// Package layout places panels, cards, badges, text and images on a fixed-size canvas.
// Every primitive takes an explicit Theme; nothing here reads process-wide state.
package layout

import "github.com/de-tools/insight-deck/pkg/models/domain"

type Palette struct {
	Background domain.Color
	Panel      domain.Color
	PanelLine  domain.Color
	Card       domain.Color
	CardLine   domain.Color
	Text       domain.Color // on background and panels
	Subtext    domain.Color
	Ink        domain.Color // on cards
	Muted      domain.Color
	OnAccent   domain.Color // badge labels
	Accent     domain.Color
	Accent2    domain.Color
	Violet     domain.Color
	Warn       domain.Color
	Danger     domain.Color
	Neutral    domain.Color
}

type Fonts struct {
	Title string
	Body  string
}

// Theme is the immutable styling and spacing configuration for a report.
type Theme struct {
	CanvasWidth    domain.Length
	CanvasHeight   domain.Length
	MarginX        domain.Length
	MarginY        domain.Length
	Gap            domain.Length
	Inset          domain.Length // padding between a container edge and its children
	AccentBarWidth domain.Length
	CornerRadius   domain.Length
	BorderWidth    domain.Length
	Palette        Palette
	Fonts          Fonts
}

// DefaultTheme is the 16:9 deep-navy theme on a 13.333 x 7.5 in canvas.
func DefaultTheme() Theme {
	return Theme{
		CanvasWidth:    domain.Inches(13.333),
		CanvasHeight:   domain.Inches(7.5),
		MarginX:        domain.Inches(0.8),
		MarginY:        domain.Inches(0.6),
		Gap:            domain.Inches(0.25),
		Inset:          domain.Inches(0.25),
		AccentBarWidth: domain.Inches(0.12),
		CornerRadius:   domain.Inches(0.08),
		BorderWidth:    domain.Points(1),
		Palette: Palette{
			Background: domain.RGB(18, 32, 56),
			Panel:      domain.RGB(28, 48, 78),
			PanelLine:  domain.RGB(30, 45, 70),
			Card:       domain.RGB(245, 247, 250),
			CardLine:   domain.RGB(220, 225, 232),
			Text:       domain.RGB(245, 249, 255),
			Subtext:    domain.RGB(185, 205, 230),
			Ink:        domain.RGB(25, 28, 35),
			Muted:      domain.RGB(95, 105, 120),
			OnAccent:   domain.RGB(255, 255, 255),
			Accent:     domain.RGB(64, 132, 255),
			Accent2:    domain.RGB(0, 205, 160),
			Violet:     domain.RGB(99, 102, 241),
			Warn:       domain.RGB(255, 186, 0),
			Danger:     domain.RGB(255, 90, 90),
			Neutral:    domain.RGB(130, 150, 180),
		},
		Fonts: Fonts{
			Title: "Helvetica",
			Body:  "Helvetica",
		},
	}
}

// WithSpacing returns a copy of t with new margins and gap.
func (t Theme) WithSpacing(marginX, marginY, gap domain.Length) Theme {
	t.MarginX = marginX
	t.MarginY = marginY
	t.Gap = gap
	return t
}

func (t Theme) Canvas() Canvas {
	return Canvas{
		Width:   t.CanvasWidth,
		Height:  t.CanvasHeight,
		MarginX: t.MarginX,
		MarginY: t.MarginY,
		Gap:     t.Gap,
	}
}
