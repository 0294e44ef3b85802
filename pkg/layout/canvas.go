package layout

import "github.com/de-tools/insight-deck/pkg/models/domain"

type Canvas struct {
	Width   domain.Length
	Height  domain.Length
	MarginX domain.Length
	MarginY domain.Length
	Gap     domain.Length
}

func (c Canvas) Bounds() domain.Box {
	return domain.NewBox(0, 0, c.Width, c.Height)
}

// UsableWidth is the width between the horizontal margins.
func (c Canvas) UsableWidth() domain.Length {
	return c.Width - 2*c.MarginX
}

// Row returns a full-width box between the margins.
func (c Canvas) Row(y, h domain.Length) domain.Box {
	return domain.NewBox(c.MarginX, y, c.UsableWidth(), h)
}

// Grid splits the usable width into n equal tiles at row y.
func (c Canvas) Grid(n int, y, h domain.Length) []domain.Box {
	return Tiles(c.Row(y, h), n, c.Gap)
}

// Tiles splits area horizontally into n equal tiles separated by gap:
// width = (area.W - (n-1)*gap) / n, and tile i starts at area.X + i*(width+gap).
func Tiles(area domain.Box, n int, gap domain.Length) []domain.Box {
	if n < 1 {
		return nil
	}
	w := (area.W - domain.Length(n-1)*gap) / domain.Length(n)
	tiles := make([]domain.Box, n)
	for i := range tiles {
		tiles[i] = domain.NewBox(area.X+domain.Length(i)*(w+gap), area.Y, w, area.H)
	}
	return tiles
}

// Stack splits area vertically into rows with the given fractions of the height left after
// the gaps. Fractions are not required to sum to 1; they are used as given.
func Stack(area domain.Box, gap domain.Length, fractions ...float64) []domain.Box {
	if len(fractions) == 0 {
		return nil
	}
	free := area.H - domain.Length(len(fractions)-1)*gap
	rows := make([]domain.Box, len(fractions))
	y := area.Y
	for i, f := range fractions {
		h := free.Scale(f)
		rows[i] = domain.NewBox(area.X, y, area.W, h)
		y += h + gap
	}
	return rows
}
