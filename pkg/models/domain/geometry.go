package domain

import "math"

// Length is a canvas distance in English Metric Units.
// 914400 EMU = 1 inch, 12700 EMU = 1 point.
type Length int64

const (
	EMUPerInch  Length = 914400
	EMUPerPoint Length = 12700
)

// Inches converts a distance in inches to the nearest EMU.
func Inches(v float64) Length {
	return Length(math.Round(v * float64(EMUPerInch)))
}

// Points converts a distance in points to the nearest EMU.
func Points(v float64) Length {
	return Length(math.Round(v * float64(EMUPerPoint)))
}

func (l Length) Inches() float64 {
	return float64(l) / float64(EMUPerInch)
}

func (l Length) Points() float64 {
	return float64(l) / float64(EMUPerPoint)
}

// Scale multiplies the length by f, rounding down so scaled boxes never grow past their parent.
func (l Length) Scale(f float64) Length {
	return Length(math.Floor(float64(l) * f))
}

// Box is an axis-aligned rectangle on the canvas. Width and height are never negative.
type Box struct {
	X Length
	Y Length
	W Length
	H Length
}

// NewBox clamps negative sizes to zero.
func NewBox(x, y, w, h Length) Box {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Box{X: x, Y: y, W: w, H: h}
}

func (b Box) Right() Length {
	return b.X + b.W
}

func (b Box) Bottom() Length {
	return b.Y + b.H
}

// Inset shrinks the box by dx on the left and right and dy on the top and bottom.
func (b Box) Inset(dx, dy Length) Box {
	return NewBox(b.X+dx, b.Y+dy, b.W-2*dx, b.H-2*dy)
}

// Contains reports whether other lies entirely within b.
func (b Box) Contains(other Box) bool {
	return other.X >= b.X && other.Y >= b.Y &&
		other.Right() <= b.Right() && other.Bottom() <= b.Bottom()
}
