package maze

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Status int8

const (
	Continuing Status = iota
	Done
)

func (s Status) String() string {
	switch s {
	case Continuing:
		return "continuing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Generator grows a maze from a start cell by repeatedly committing the
// oldest cell of the lowest-weight frontier bucket. Cells that already
// touch two or more committed neighbors when they reach the front of a
// bucket are discarded for good, so the committed cells always form a
// tree but need not cover the grid.
type Generator struct {
	grid      *Grid
	frontier  *frontier
	parent    []int
	committed []Coord
	edges     []Edge
	discarded int
	seeded    bool
	done      bool
}

func NewGenerator(g *Grid) (*Generator, error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyGrid
	}
	if !g.linked {
		return nil, ErrAdjacencyMissing
	}
	for _, cell := range g.Cells {
		if cell.InMaze || cell.AdjacentsOpened > 0 {
			return nil, fmt.Errorf("%w (cell %s)", ErrGridUsed, cell.Coord)
		}
	}
	weightRange := max(g.WeightRange, 1)

	parent := make([]int, g.Len())
	for i := range parent {
		parent[i] = -1
	}

	return &Generator{
		grid:      g,
		frontier:  newFrontier(weightRange, g.Len()),
		parent:    parent,
		committed: make([]Coord, 0, g.Len()),
	}, nil
}

// checkGrid fails when the grid's weights changed under the generator.
func (gen *Generator) checkGrid() error {
	if !gen.grid.linked {
		return ErrAdjacencyMissing
	}
	if buckets := len(gen.frontier.buckets); gen.grid.WeightRange > buckets {
		return fmt.Errorf("%w (grid range = %d, generator range = %d)",
			ErrInvalidWeightRange, gen.grid.WeightRange, buckets)
	}
	return nil
}

func (gen *Generator) Seed(start Coord) error {
	if gen.seeded {
		return ErrAlreadySeeded
	}
	if err := gen.checkGrid(); err != nil {
		return err
	}
	if !gen.grid.InBounds(start) {
		return fmt.Errorf("%w (start = %s, grid = %dx%d)",
			ErrOutOfBounds, start, gen.grid.Width, gen.grid.Depth)
	}
	gen.seeded = true
	gen.commit(gen.grid.index(start))
	return nil
}

func (gen *Generator) commit(i int) {
	cell := &gen.grid.Cells[i]
	cell.InMaze = true
	gen.committed = append(gen.committed, cell.Coord)
	if p := gen.parent[i]; p >= 0 {
		gen.edges = append(gen.edges, Edge{From: gen.grid.Cells[p].Coord, To: cell.Coord})
	}

	Log.WithFields(logrus.Fields{
		"cell":   cell.Coord,
		"weight": cell.Weight,
		"step":   len(gen.committed),
	}).Debug("committed")

	gen.expand(i)
}

func (gen *Generator) expand(i int) {
	for _, c := range gen.grid.Cells[i].Adjacents {
		j := gen.grid.index(c)
		adj := &gen.grid.Cells[j]
		adj.AdjacentsOpened++
		if adj.InMaze {
			continue
		}
		if gen.frontier.push(adj.Weight, j) && gen.parent[j] < 0 {
			gen.parent[j] = i
		}
	}
}

// Step commits the next cell. It returns Done once every frontier bucket
// is empty; further calls keep returning Done.
func (gen *Generator) Step() (Status, error) {
	if !gen.seeded {
		return Continuing, ErrNotSeeded
	}
	if err := gen.checkGrid(); err != nil {
		return Continuing, err
	}
	if gen.done {
		return Done, nil
	}

	for {
		w := gen.frontier.lowest()
		if w < 0 {
			gen.done = true
			Log.WithFields(logrus.Fields{
				"committed": len(gen.committed),
				"discarded": gen.discarded,
				"end":       gen.committed[len(gen.committed)-1],
			}).Debug("generation finished")
			return Done, nil
		}

		i := gen.frontier.pop(w)
		if gen.grid.Cells[i].AdjacentsOpened >= 2 {
			gen.frontier.drop(i)
			gen.discarded++
			Log.WithFields(logrus.Fields{
				"cell":   gen.grid.Cells[i].Coord,
				"opened": gen.grid.Cells[i].AdjacentsOpened,
			}).Debug("discarded")
			continue
		}

		gen.commit(i)
		return Continuing, nil
	}
}

// Run steps until the maze is complete. Cancellation is observed between
// steps, so an abandoned generator is still consistent.
func (gen *Generator) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		status, err := gen.Step()
		if err != nil {
			return err
		}
		if status == Done {
			return nil
		}
	}
}

func (gen *Generator) Done() bool {
	return gen.done
}

// Committed returns the commit order so far. The slice must not be modified.
func (gen *Generator) Committed() []Coord {
	return gen.committed
}

// LastEdge returns the edge that attached the most recent commit. It is
// false for the start cell.
func (gen *Generator) LastEdge() (Edge, bool) {
	if len(gen.edges) == 0 || len(gen.edges) != len(gen.committed)-1 {
		return Edge{}, false
	}
	return gen.edges[len(gen.edges)-1], true
}

func (gen *Generator) Pending() int {
	return gen.frontier.len()
}

func (gen *Generator) Discarded() int {
	return gen.discarded
}

// Result snapshots the generator. Before completion End is the latest commit.
func (gen *Generator) Result() (*Result, error) {
	if !gen.seeded {
		return nil, ErrNotSeeded
	}
	return &Result{
		Start:     gen.committed[0],
		End:       gen.committed[len(gen.committed)-1],
		Committed: append([]Coord(nil), gen.committed...),
		Edges:     append([]Edge(nil), gen.edges...),
		Grid:      gen.grid,
	}, nil
}

// Generate runs the whole algorithm on a grid whose weights and adjacency
// are already set up.
func Generate(g *Grid, start Coord) (*Result, error) {
	gen, err := NewGenerator(g)
	if err != nil {
		return nil, err
	}
	if err := gen.Seed(start); err != nil {
		return nil, err
	}
	if err := gen.Run(context.Background()); err != nil {
		return nil, err
	}
	return gen.Result()
}

type Params struct {
	Width, Depth int
	WeightRange  int
	Seed         uint64
	Start        Coord
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Depth <= 0 {
		return fmt.Errorf("%w (width = %d, depth = %d)", ErrInvalidDimension, p.Width, p.Depth)
	}
	if p.WeightRange <= 0 {
		return fmt.Errorf("%w (weight range = %d)", ErrInvalidWeightRange, p.WeightRange)
	}
	if p.Start.X < 0 || p.Start.X >= p.Width || p.Start.Z < 0 || p.Start.Z >= p.Depth {
		return fmt.Errorf("%w (start = %s)", ErrOutOfBounds, p.Start)
	}
	return nil
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(w%d:s%d)@%s", p.Width, p.Depth, p.WeightRange, p.Seed, p.Start)
}

// Prepare builds a grid with seeded weights and computed adjacency plus a
// seeded generator over it.
func (p Params) Prepare() (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g, err := New(p.Width, p.Depth)
	if err != nil {
		return nil, err
	}
	if err := g.AssignRandomWeights(p.WeightRange, p.Seed); err != nil {
		return nil, err
	}
	g.ComputeAdjacency()

	gen, err := NewGenerator(g)
	if err != nil {
		return nil, err
	}
	if err := gen.Seed(p.Start); err != nil {
		return nil, err
	}
	return gen, nil
}

func Build(p Params) (*Result, error) {
	gen, err := p.Prepare()
	if err != nil {
		return nil, err
	}
	if err := gen.Run(context.Background()); err != nil {
		return nil, err
	}
	return gen.Result()
}
