package domain

// ElementKind is the visual kind of a placed element.
type ElementKind string

const (
	KindBackground ElementKind = "background"
	KindPanel      ElementKind = "panel"
	KindCard       ElementKind = "card"
	KindBadge      ElementKind = "badge"
	KindText       ElementKind = "text"
	KindImage      ElementKind = "image"
	KindShape      ElementKind = "shape"
)

type Color struct {
	R uint8
	G uint8
	B uint8
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ShapeStyle describes the fill and outline of a rectangle-like element.
type ShapeStyle struct {
	Fill        Color
	Stroke      *Color
	StrokeWidth Length
	Radius      Length // 0 means square corners
}

// TextStyle describes how a block of lines is typeset.
type TextStyle struct {
	Font   string
	Size   float64 // points
	Bold   bool
	Color  Color
	Align  Align
	Wrap   bool
	Bullet bool
}

// TextContent holds already-fitted lines.
type TextContent struct {
	Lines []string
	Style TextStyle
}

// ImageContent references the report's chart artifact.
type ImageContent struct {
	ArtifactID    string
	NaturalWidth  int
	NaturalHeight int
}

// Element is a single placed item on a page. Exactly one of Shape, Text or Image is set,
// except badges which carry both a shape and a label.
type Element struct {
	Box   Box
	Kind  ElementKind
	Shape *ShapeStyle
	Text  *TextContent
	Image *ImageContent
}

type Page struct {
	Name     string
	Width    Length
	Height   Length
	Elements []Element
}

// ElementsOfKind returns the elements of the given kind in placement order.
func (p Page) ElementsOfKind(kind ElementKind) []Element {
	var out []Element
	for _, el := range p.Elements {
		if el.Kind == kind {
			out = append(out, el)
		}
	}
	return out
}
