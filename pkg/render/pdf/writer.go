// Package pdf serializes an assembled report into a PDF with one page per report page.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/de-tools/insight-deck/pkg/layout"
	"github.com/de-tools/insight-deck/pkg/models/domain"
)

const (
	defaultFont  = "Helvetica"
	bulletPrefix = "• "
)

var ErrNoPages = errors.New("report has no pages")

type Writer struct {
	creator string
}

func NewWriter() *Writer {
	return &Writer{creator: "InsightDeck"}
}

// Write renders every page of rep to out. Text is clipped to its element box.
func (w *Writer) Write(out io.Writer, rep domain.Report) error {
	if len(rep.Pages) == 0 {
		return ErrNoPages
	}
	first := rep.Pages[0]
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           pageSize(first),
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCellMargin(0)
	doc.SetTitle(rep.Title, true)
	doc.SetCreator(w.creator, true)

	if len(rep.Chart.PNG) > 0 {
		doc.RegisterImageOptionsReader(rep.Chart.ID, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(rep.Chart.PNG))
	}

	p := &painter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor(""), chart: rep.Chart}
	for _, page := range rep.Pages {
		doc.AddPageFormat("P", pageSize(page))
		for i, el := range page.Elements {
			if err := p.element(el); err != nil {
				return fmt.Errorf("page %q element %d: %w", page.Name, i, err)
			}
		}
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}
	if err := doc.Output(out); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func pageSize(p domain.Page) fpdf.SizeType {
	return fpdf.SizeType{Wd: p.Width.Inches(), Ht: p.Height.Inches()}
}

type painter struct {
	doc   *fpdf.Fpdf
	tr    func(string) string
	chart domain.ChartArtifact
}

func (p *painter) element(el domain.Element) error {
	switch el.Kind {
	case domain.KindImage:
		return p.image(el)
	case domain.KindText:
		p.text(el.Box, el.Text, false)
	case domain.KindBadge:
		p.shape(el.Box, el.Shape)
		p.text(el.Box, el.Text, true)
	default:
		p.shape(el.Box, el.Shape)
	}
	return nil
}

func (p *painter) shape(box domain.Box, s *domain.ShapeStyle) {
	if s == nil {
		return
	}
	x, y, w, h := inches(box)
	p.doc.SetFillColor(int(s.Fill.R), int(s.Fill.G), int(s.Fill.B))
	style := "F"
	if s.Stroke != nil {
		p.doc.SetDrawColor(int(s.Stroke.R), int(s.Stroke.G), int(s.Stroke.B))
		p.doc.SetLineWidth(s.StrokeWidth.Inches())
		style = "FD"
	}
	if s.Radius > 0 {
		r := min(s.Radius, box.W/2, box.H/2).Inches()
		p.doc.RoundedRect(x, y, w, h, r, "1234", style)
		return
	}
	p.doc.Rect(x, y, w, h, style)
}

// text draws already-fitted lines inside box. Badges center a single line vertically.
func (p *painter) text(box domain.Box, t *domain.TextContent, middle bool) {
	if t == nil || len(t.Lines) == 0 {
		return
	}
	st := t.Style
	x, y, w, h := inches(box)
	lineH := st.Size * layout.LineSpacing / 72

	p.doc.SetFont(fontFamily(st.Font), fontStyle(st.Bold), st.Size)
	p.doc.SetTextColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	p.doc.ClipRect(x, y, w, h, false)
	defer p.doc.ClipEnd()

	if middle {
		y += (h - lineH) / 2
	}
	p.doc.SetXY(x, y)
	for _, ln := range t.Lines {
		if st.Bullet {
			ln = bulletPrefix + ln
		}
		if st.Wrap {
			p.doc.SetX(x)
			p.doc.MultiCell(w, lineH, p.tr(ln), "", align(st.Align), false)
			continue
		}
		p.doc.SetX(x)
		p.doc.CellFormat(w, lineH, p.tr(ln), "", 2, align(st.Align), false, 0, "")
	}
}

func (p *painter) image(el domain.Element) error {
	if el.Image == nil {
		return nil
	}
	if el.Image.ArtifactID != p.chart.ID || len(p.chart.PNG) == 0 {
		return fmt.Errorf("image artifact %q is not available", el.Image.ArtifactID)
	}
	x, y, w, h := inches(el.Box)
	p.doc.ImageOptions(el.Image.ArtifactID, x, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func inches(b domain.Box) (x, y, w, h float64) {
	return b.X.Inches(), b.Y.Inches(), b.W.Inches(), b.H.Inches()
}

func fontFamily(name string) string {
	if name == "" {
		return defaultFont
	}
	return name
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

func align(a domain.Align) string {
	switch a {
	case domain.AlignCenter:
		return "C"
	case domain.AlignRight:
		return "R"
	default:
		return "L"
	}
}
