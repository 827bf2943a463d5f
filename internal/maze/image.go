package maze

import (
	"image"
	"image/color"

	"github.com/zyedidia/generic/mapset"
)

const MinCellPixels = 3

var (
	wallColor    = color.RGBA{A: 255}
	passColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	startColor   = color.RGBA{G: 200, A: 255}
	endColor     = color.RGBA{R: 220, A: 255}
	outsideColor = color.Transparent
)

// mazeImage draws every cell as a cellPixels square. Squares share one
// pixel of border with their neighbors; a border is open only where the
// maze has a passage.
type mazeImage struct {
	res   *Result
	edges mapset.Set[Edge]
	px    int
}

// Image returns the maze as an [image.Image], cellPixels per cell side.
// Smaller values are raised to [MinCellPixels].
func (r *Result) Image(cellPixels int) image.Image {
	return &mazeImage{
		res:   r,
		edges: r.edgeSet(),
		px:    max(cellPixels, MinCellPixels) - 1,
	}
}

func (m *mazeImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (m *mazeImage) Bounds() image.Rectangle {
	g := m.res.Grid
	return image.Rect(0, 0, g.Width*m.px+1, g.Depth*m.px+1)
}

func (m *mazeImage) cellColor(c Coord) color.Color {
	switch {
	case c == m.res.Start:
		return startColor
	case c == m.res.End:
		return endColor
	case m.res.Grid.At(c).InMaze:
		return passColor
	default:
		return wallColor
	}
}

func (m *mazeImage) open(a, b Coord) bool {
	return m.edges.Has(Edge{From: a, To: b}.normalized())
}

func (m *mazeImage) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.Bounds()) {
		return outsideColor
	}
	cx, cz := x/m.px, y/m.px
	onV, onH := x%m.px == 0, y%m.px == 0

	switch {
	case onV && onH:
		return wallColor
	case onV:
		// Border between columns cx-1 and cx.
		if cx == 0 || cx == m.res.Grid.Width {
			return wallColor
		}
		if m.open(Coord{cx - 1, cz}, Coord{cx, cz}) {
			return passColor
		}
		return wallColor
	case onH:
		if cz == 0 || cz == m.res.Grid.Depth {
			return wallColor
		}
		if m.open(Coord{cx, cz - 1}, Coord{cx, cz}) {
			return passColor
		}
		return wallColor
	default:
		return m.cellColor(Coord{cx, cz})
	}
}
