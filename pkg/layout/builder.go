package layout

import (
	"fmt"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

// PanelStyle configures the panel and card primitives.
type PanelStyle struct {
	Fill    domain.Color
	Stroke  domain.Color
	Rounded bool
	Accent  *domain.Color // left accent bar spanning the full height
}

// PageBuilder accumulates placed elements for one page.
type PageBuilder struct {
	theme    Theme
	measurer Measurer
	page     domain.Page
}

// NewPage starts an empty page sized to the theme canvas. m may be nil.
func NewPage(name string, theme Theme, m Measurer) *PageBuilder {
	return &PageBuilder{
		theme:    theme,
		measurer: m,
		page: domain.Page{
			Name:   name,
			Width:  theme.CanvasWidth,
			Height: theme.CanvasHeight,
		},
	}
}

func (b *PageBuilder) Theme() Theme {
	return b.theme
}

func (b *PageBuilder) Canvas() Canvas {
	return b.theme.Canvas()
}

// Background fills the whole canvas.
func (b *PageBuilder) Background(fill domain.Color) {
	b.add(domain.Element{
		Box:   b.Canvas().Bounds(),
		Kind:  domain.KindBackground,
		Shape: &domain.ShapeStyle{Fill: fill},
	})
}

// Rect places a plain filled rectangle, e.g. an accent underline.
func (b *PageBuilder) Rect(box domain.Box, fill domain.Color) domain.Box {
	b.add(domain.Element{
		Box:   box,
		Kind:  domain.KindShape,
		Shape: &domain.ShapeStyle{Fill: fill},
	})
	return box
}

// Panel places a container and returns its box so children can be placed with an inset.
func (b *PageBuilder) Panel(box domain.Box, style PanelStyle) domain.Box {
	return b.container(domain.KindPanel, box, style)
}

// Card is a panel drawn with the card palette.
func (b *PageBuilder) Card(box domain.Box, accent *domain.Color) domain.Box {
	return b.container(domain.KindCard, box, PanelStyle{
		Fill:    b.theme.Palette.Card,
		Stroke:  b.theme.Palette.CardLine,
		Rounded: true,
		Accent:  accent,
	})
}

func (b *PageBuilder) container(kind domain.ElementKind, box domain.Box, style PanelStyle) domain.Box {
	stroke := style.Stroke
	shape := &domain.ShapeStyle{
		Fill:        style.Fill,
		Stroke:      &stroke,
		StrokeWidth: b.theme.BorderWidth,
	}
	if style.Rounded {
		shape.Radius = b.theme.CornerRadius
	}
	b.add(domain.Element{Box: box, Kind: kind, Shape: shape})

	if style.Accent != nil {
		bar := domain.NewBox(box.X, box.Y, min(b.theme.AccentBarWidth, box.W), box.H)
		b.Rect(bar, *style.Accent)
	}
	return box
}

// Badge places a small filled rounded rectangle with a centered single-line label.
func (b *PageBuilder) Badge(box domain.Box, label string, fill domain.Color) {
	style := domain.TextStyle{
		Font:  b.theme.Fonts.Body,
		Size:  10,
		Bold:  true,
		Color: b.theme.Palette.OnAccent,
		Align: domain.AlignCenter,
	}
	avail := box.Inset(domain.Inches(0.06), 0)
	fitted := FitTextMeasured([]string{label}, avail, TextFit{
		StartSize: style.Size,
		MinSize:   7,
		MaxLines:  1,
		MaxChars:  max(CharCapacity(avail.W, 7), 1),
	}, style, b.measurer)
	style.Size = fitted.Size

	b.add(domain.Element{
		Box:   box,
		Kind:  domain.KindBadge,
		Shape: &domain.ShapeStyle{Fill: fill, Stroke: &fill, Radius: box.H / 2},
		Text:  &domain.TextContent{Lines: fitted.Lines, Style: style},
	})
}

// Text fits lines into box and places them. The style size is replaced by the fitted size.
func (b *PageBuilder) Text(box domain.Box, lines []string, style domain.TextStyle, fit TextFit) FittedText {
	if style.Font == "" {
		style.Font = b.theme.Fonts.Body
	}
	fitted := FitTextMeasured(lines, box, fit, style, b.measurer)
	style.Size = fitted.Size

	b.add(domain.Element{
		Box:  box,
		Kind: domain.KindText,
		Text: &domain.TextContent{Lines: fitted.Lines, Style: style},
	})
	return fitted
}

// Label places one non-wrapping line, shrinking it down to minSize and truncating to
// the estimated capacity of the box at that size.
func (b *PageBuilder) Label(box domain.Box, text string, style domain.TextStyle, minSize float64) FittedText {
	style.Wrap = false
	return b.Text(box, []string{text}, style, TextFit{
		StartSize: style.Size,
		MinSize:   minSize,
		MaxLines:  1,
		MaxChars:  max(CharCapacity(box.W, minSize), 1),
	})
}

// Image places an artifact inside box using FitImageInBox and returns where it was drawn.
func (b *PageBuilder) Image(box domain.Box, artifact domain.ChartArtifact) ImageFit {
	fit := FitImageInBox(artifact.WidthPx, artifact.HeightPx, box)
	b.add(domain.Element{
		Box:  fit.Box(),
		Kind: domain.KindImage,
		Image: &domain.ImageContent{
			ArtifactID:    artifact.ID,
			NaturalWidth:  artifact.WidthPx,
			NaturalHeight: artifact.HeightPx,
		},
	})
	return fit
}

// Page returns the page built so far after checking that nothing leaves the canvas.
func (b *PageBuilder) Page() (domain.Page, error) {
	if err := Validate(b.page); err != nil {
		return domain.Page{}, err
	}
	page := b.page
	page.Elements = append([]domain.Element(nil), b.page.Elements...)
	return page, nil
}

func (b *PageBuilder) add(el domain.Element) {
	b.page.Elements = append(b.page.Elements, el)
}

// Validate reports the first element whose box falls outside the page.
func Validate(page domain.Page) error {
	bounds := domain.NewBox(0, 0, page.Width, page.Height)
	for i, el := range page.Elements {
		if !bounds.Contains(el.Box) {
			return fmt.Errorf("page %q: %s element %d at (%.2f, %.2f) size %.2fx%.2f in overflows the canvas",
				page.Name, el.Kind, i, el.Box.X.Inches(), el.Box.Y.Inches(), el.Box.W.Inches(), el.Box.H.Inches())
		}
	}
	return nil
}
