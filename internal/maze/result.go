package maze

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Edge joins a committed cell (To) with the maze neighbor that first put
// it on the frontier (From).
type Edge struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

func (e Edge) normalized() Edge {
	if e.To.X < e.From.X || e.To.X == e.From.X && e.To.Z < e.From.Z {
		return Edge{From: e.To, To: e.From}
	}
	return e
}

type Result struct {
	Start, End Coord
	Committed  []Coord
	Edges      []Edge
	Grid       *Grid
}

func DecodeResult(buf []byte) (*Result, error) {
	var res Result
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r Result) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(r)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Walls lists the cells that never joined the maze, in grid order.
func (r *Result) Walls() []Coord {
	walls := make([]Coord, 0)
	for _, cell := range r.Grid.Cells {
		if !cell.InMaze {
			walls = append(walls, cell.Coord)
		}
	}
	return walls
}

func (r *Result) edgeSet() mapset.Set[Edge] {
	set := mapset.New[Edge]()
	for _, e := range r.Edges {
		set.Put(e.normalized())
	}
	return set
}

// Connected reports whether the maze has a passage between a and b.
func (r *Result) Connected(a, b Coord) bool {
	want := Edge{From: a, To: b}.normalized()
	for _, e := range r.Edges {
		if e.normalized() == want {
			return true
		}
	}
	return false
}

// Reachable counts the cells reachable from Start through maze passages.
func (r *Result) Reachable() int {
	links := make(map[Coord][]Coord, len(r.Committed))
	for _, e := range r.Edges {
		links[e.From] = append(links[e.From], e.To)
		links[e.To] = append(links[e.To], e.From)
	}

	visited := mapset.New[Coord]()
	queue := []Coord{r.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited.Has(current) {
			continue
		}
		visited.Put(current)
		for _, n := range links[current] {
			if !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return visited.Size()
}

// String draws the maze with z growing downwards. Committed cells are
// blank (S and E mark the ends), walls are filled with #.
func (r *Result) String() string {
	var (
		b     strings.Builder
		g     = r.Grid
		edges = r.edgeSet()
	)

	open := func(a, c Coord) bool {
		return edges.Has(Edge{From: a, To: c}.normalized())
	}

	b.WriteString("+" + strings.Repeat("---+", g.Width) + "\n")
	for z := range g.Depth {
		b.WriteString("|")
		for x := range g.Width {
			c := Coord{X: x, Z: z}
			switch {
			case c == r.Start:
				b.WriteString(" S ")
			case c == r.End:
				b.WriteString(" E ")
			case g.At(c).InMaze:
				b.WriteString("   ")
			default:
				b.WriteString("###")
			}
			if x+1 < g.Width && open(c, Coord{X: x + 1, Z: z}) {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n+")
		for x := range g.Width {
			c := Coord{X: x, Z: z}
			if z+1 < g.Depth && open(c, Coord{X: x, Z: z + 1}) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Result) Summary() string {
	return fmt.Sprintf("%dx%d start=%s end=%s committed=%d walls=%d",
		r.Grid.Width, r.Grid.Depth, r.Start, r.End, len(r.Committed), len(r.Walls()))
}
