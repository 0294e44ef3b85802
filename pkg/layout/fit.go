package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/insight-deck/pkg/models/domain"
)

// DensityThreshold is the share of the line/char budget above which FitText shrinks the
// font. It approximates overflow from character counts; it is not a glyph measurement.
const DensityThreshold = 0.75

// LineSpacing is the line height as a multiple of the font size.
const LineSpacing = 1.2

// AvgGlyphWidthEm is the average glyph advance, in ems, used when no measurer is available.
const AvgGlyphWidthEm = 0.5

const Ellipsis = "…"

// TextFit bounds a block of text.
type TextFit struct {
	StartSize float64 // points
	MinSize   float64 // points
	MaxLines  int
	MaxChars  int
}

type FittedText struct {
	Lines []string
	Size  float64
}

// Measurer reports rendered text widths. Renderers with real font metrics implement it.
type Measurer interface {
	TextWidth(s, font string, bold bool, size float64) domain.Length
}

// FitText applies the hard caps, then shrinks the font from StartSize by one point at a time
// while the size is above MinSize and the text is denser than DensityThreshold of the
// MaxLines*MaxChars budget. Calling it again on its own output returns the same result.
func FitText(lines []string, box domain.Box, fit TextFit) FittedText {
	safe := TruncateLines(lines, fit.MaxLines, fit.MaxChars)

	budget := float64(fit.MaxChars*fit.MaxLines) * DensityThreshold
	total := utf8.RuneCountInString(strings.Join(safe, " "))

	size := fit.StartSize
	for size > fit.MinSize && float64(total) > budget {
		size--
	}
	return FittedText{Lines: safe, Size: size}
}

// FitTextMeasured applies the hard caps, then shrinks the font until the wrapped text fits
// the box according to m. Lines of a non-wrapping style must each fit the box width.
// With a nil measurer it falls back to FitText.
func FitTextMeasured(lines []string, box domain.Box, fit TextFit, style domain.TextStyle, m Measurer) FittedText {
	if m == nil {
		return FitText(lines, box, fit)
	}
	safe := TruncateLines(lines, fit.MaxLines, fit.MaxChars)

	size := fit.StartSize
	for size > fit.MinSize && overflows(safe, box, style, size, m) {
		size--
	}
	return FittedText{Lines: safe, Size: size}
}

func overflows(lines []string, box domain.Box, style domain.TextStyle, size float64, m Measurer) bool {
	font := style.Font
	lineHeight := domain.Points(size * LineSpacing)

	var rows int64
	for _, ln := range lines {
		if style.Bullet {
			ln = "• " + ln
		}
		w := m.TextWidth(ln, font, style.Bold, size)
		if !style.Wrap {
			if w > box.W {
				return true
			}
			rows++
			continue
		}
		rows += wrappedRows(w, box.W)
	}
	return domain.Length(rows)*lineHeight > box.H
}

func wrappedRows(width, avail domain.Length) int64 {
	if avail <= 0 {
		return math.MaxInt32
	}
	if width <= avail {
		return 1
	}
	return int64(math.Ceil(float64(width) / float64(avail)))
}

// TruncateLines keeps at most maxLines lines, trims each, and cuts any line longer than
// maxChars runes so that it ends in an ellipsis and is exactly maxChars long at most.
// Non-positive limits disable the corresponding cap.
func TruncateLines(lines []string, maxLines, maxChars int) []string {
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		out = append(out, TruncateLine(ln, maxChars))
	}
	return out
}

func TruncateLine(s string, maxChars int) string {
	s = strings.TrimSpace(s)
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:maxChars-1]), " \t") + Ellipsis
}

// CharCapacity estimates how many average glyphs of the given size fit in width.
func CharCapacity(width domain.Length, size float64) int {
	if size <= 0 {
		return 0
	}
	return int(width.Points() / (size * AvgGlyphWidthEm))
}

// ImageFit is where an image is drawn inside its box.
type ImageFit struct {
	DrawWidth  domain.Length
	DrawHeight domain.Length
	OffsetX    domain.Length
	OffsetY    domain.Length
}

func (f ImageFit) Box() domain.Box {
	return domain.NewBox(f.OffsetX, f.OffsetY, f.DrawWidth, f.DrawHeight)
}

// FitImageInBox scales an image of the given natural size to the largest size that fits box
// with its aspect ratio preserved, and centers it. The derived side is rounded down so the
// image never exceeds the box. Degenerate sizes yield an empty image at the box center.
func FitImageInBox(naturalWidth, naturalHeight int, box domain.Box) ImageFit {
	if naturalWidth <= 0 || naturalHeight <= 0 || box.W <= 0 || box.H <= 0 {
		return ImageFit{OffsetX: box.X + box.W/2, OffsetY: box.Y + box.H/2}
	}

	imageRatio := float64(naturalWidth) / float64(naturalHeight)
	boxRatio := float64(box.W) / float64(box.H)

	var w, h domain.Length
	if imageRatio >= boxRatio {
		w = box.W
		h = domain.Length(math.Floor(float64(box.W) / imageRatio))
	} else {
		h = box.H
		w = domain.Length(math.Floor(float64(box.H) * imageRatio))
	}
	w = min(w, box.W)
	h = min(h, box.H)

	return ImageFit{
		DrawWidth:  w,
		DrawHeight: h,
		OffsetX:    box.X + (box.W-w)/2,
		OffsetY:    box.Y + (box.H-h)/2,
	}
}
