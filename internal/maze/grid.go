package maze

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

// DefaultWeightRange is the number of distinct weights, and therefore
// frontier buckets, used when no other range is requested.
const DefaultWeightRange = 10

type Coord struct {
	X int `json:"x"`
	Z int `json:"z"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

type Cell struct {
	Coord
	Weight int
	// Adjacents is sorted ascending by neighbor weight once the grid's
	// adjacency has been computed.
	Adjacents []Coord
	// AdjacentsOpened counts neighbors already committed to the maze.
	AdjacentsOpened int
	InMaze          bool
}

// Grid owns every cell of a width x depth maze. Cells are stored at
// x*Depth + z, which is also the order weights are drawn in.
type Grid struct {
	Width, Depth int
	WeightRange  int
	Cells        []Cell

	linked bool
}

func New(width, depth int) (*Grid, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w (width = %d, depth = %d)", ErrInvalidDimension, width, depth)
	}

	cells := make([]Cell, width*depth)
	for x := range width {
		for z := range depth {
			cells[x*depth+z] = Cell{Coord: Coord{X: x, Z: z}}
		}
	}

	return &Grid{
		Width:       width,
		Depth:       depth,
		WeightRange: 1,
		Cells:       cells,
	}, nil
}

func (g *Grid) Len() int {
	return len(g.Cells)
}

func (g *Grid) InBounds(c Coord) bool {
	return 0 <= c.X && c.X < g.Width && 0 <= c.Z && c.Z < g.Depth
}

func (g *Grid) index(c Coord) int {
	return c.X*g.Depth + c.Z
}

// At returns the cell at c, or nil when c is out of bounds.
func (g *Grid) At(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Cells[g.index(c)]
}

// AssignRandomWeights draws every weight uniformly from [0, weightRange)
// using a PCG source derived from seed.
func (g *Grid) AssignRandomWeights(weightRange int, seed uint64) error {
	return g.AssignWeights(weightRange, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func (g *Grid) AssignWeights(weightRange int, r *rand.Rand) error {
	if weightRange <= 0 {
		return fmt.Errorf("%w (weight range = %d)", ErrInvalidWeightRange, weightRange)
	}
	for i := range g.Cells {
		g.Cells[i].Weight = r.IntN(weightRange)
	}
	g.WeightRange = weightRange
	g.linked = false
	return nil
}

// SetWeights assigns weights in cell order (x outer, z inner).
func (g *Grid) SetWeights(weightRange int, weights []int) error {
	if weightRange <= 0 {
		return fmt.Errorf("%w (weight range = %d)", ErrInvalidWeightRange, weightRange)
	}
	if len(weights) != len(g.Cells) {
		return fmt.Errorf("%w (have %d weights, want %d)", ErrInvalidWeights, len(weights), len(g.Cells))
	}
	for i, w := range weights {
		if w < 0 || w >= weightRange {
			return fmt.Errorf("%w (weight %d at %s not in [0, %d))",
				ErrInvalidWeights, w, g.Cells[i].Coord, weightRange)
		}
	}
	for i, w := range weights {
		g.Cells[i].Weight = w
	}
	g.WeightRange = weightRange
	g.linked = false
	return nil
}

// ComputeAdjacency collects each cell's in-bounds neighbors in the order
// left, right, up, down and stable-sorts them by neighbor weight.
func (g *Grid) ComputeAdjacency() {
	for i := range g.Cells {
		cell := &g.Cells[i]
		x, z := cell.X, cell.Z

		adj := make([]Coord, 0, 4)
		if x-1 >= 0 {
			adj = append(adj, Coord{x - 1, z})
		}
		if x+1 < g.Width {
			adj = append(adj, Coord{x + 1, z})
		}
		if z-1 >= 0 {
			adj = append(adj, Coord{x, z - 1})
		}
		if z+1 < g.Depth {
			adj = append(adj, Coord{x, z + 1})
		}

		slices.SortStableFunc(adj, func(a, b Coord) int {
			return cmp.Compare(g.At(a).Weight, g.At(b).Weight)
		})
		cell.Adjacents = adj
	}
	g.linked = true
}

func (g *Grid) Linked() bool {
	return g.linked
}

// WeightString prints the weight table with z as rows and x as columns.
func (g *Grid) WeightString() string {
	var b strings.Builder
	for z := range g.Depth {
		for x := range g.Width {
			fmt.Fprintf(&b, "%d ", g.Cells[x*g.Depth+z].Weight)
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
