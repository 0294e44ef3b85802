package pdf

import (
	"sync"

	"github.com/go-pdf/fpdf"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

// Measurer reports string widths with the same core font metrics Writer draws with.
type Measurer struct {
	mu  sync.Mutex
	doc *fpdf.Fpdf
	tr  func(string) string
}

func NewMeasurer() *Measurer {
	doc := fpdf.New("P", "pt", "A4", "")
	return &Measurer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
}

func (m *Measurer) TextWidth(s, font string, bold bool, size float64) domain.Length {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc.SetFont(fontFamily(font), fontStyle(bold), size)
	return domain.Points(m.doc.GetStringWidth(m.tr(s)))
}
