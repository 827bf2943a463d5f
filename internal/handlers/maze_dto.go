package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

var ErrTooLarge = errors.New("maze is too large")

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type GenerateMazeDTO struct {
	Width       int     `schema:"width,required"`
	Depth       int     `schema:"depth,required"`
	WeightRange int     `schema:"weight_range"`
	Seed        *uint64 `schema:"seed"`
	StartX      int     `schema:"start_x"`
	StartZ      int     `schema:"start_z"`
}

func ParseGenerateMazeDTO(src map[string][]string) (GenerateMazeDTO, error) {
	var dto GenerateMazeDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Params fills defaults from cfg and validates the request. A missing
// seed is drawn from randomSeed.
func (dto GenerateMazeDTO) Params(cfg *config.Generation, randomSeed func() uint64) (maze.Params, error) {
	p := maze.Params{
		Width:       dto.Width,
		Depth:       dto.Depth,
		WeightRange: dto.WeightRange,
		Start:       maze.Coord{X: dto.StartX, Z: dto.StartZ},
	}
	if p.WeightRange == 0 {
		p.WeightRange = cfg.WeightRange
	}
	if dto.Seed != nil {
		p.Seed = *dto.Seed
	} else {
		p.Seed = randomSeed()
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	if p.Width > cfg.MaxDimension || p.Depth > cfg.MaxDimension {
		return p, fmt.Errorf("%w (max dimension is %d)", ErrTooLarge, cfg.MaxDimension)
	}
	if p.WeightRange > cfg.MaxWeightRange {
		return p, fmt.Errorf("%w (max weight range is %d)", ErrTooLarge, cfg.MaxWeightRange)
	}
	return p, nil
}

type MazeDTO struct {
	MazeID      string       `json:"maze_id"`
	Width       int          `json:"width"`
	Depth       int          `json:"depth"`
	WeightRange int          `json:"weight_range"`
	Seed        string       `json:"seed"`
	Start       maze.Coord   `json:"start"`
	End         maze.Coord   `json:"end"`
	Committed   []maze.Coord `json:"committed"`
	Edges       []maze.Edge  `json:"edges"`
	Walls       []maze.Coord `json:"walls"`
	CreatedAt   int64        `json:"created_at"`
}

func NewMazeDTO(m *repository.Maze, res *maze.Result) *MazeDTO {
	p := m.Params()
	return &MazeDTO{
		MazeID:      strconv.FormatInt(m.MazeID, 10),
		Width:       p.Width,
		Depth:       p.Depth,
		WeightRange: p.WeightRange,
		Seed:        strconv.FormatUint(p.Seed, 10),
		Start:       p.Start,
		End:         res.End,
		Committed:   res.Committed,
		Edges:       res.Edges,
		Walls:       res.Walls(),
		CreatedAt:   m.CreatedAt.UnixMilli(),
	}
}

type StepEventType string

const (
	StepCommit StepEventType = "commit"
	StepDone   StepEventType = "done"
)

type StepEvent struct {
	Type      StepEventType `json:"type"`
	Step      int           `json:"step"`
	Cell      *maze.Coord   `json:"cell,omitempty"`
	From      *maze.Coord   `json:"from,omitempty"`
	End       *maze.Coord   `json:"end,omitempty"`
	Walls     []maze.Coord  `json:"walls,omitempty"`
	MazeID    string        `json:"maze_id,omitempty"`
	Discarded int           `json:"discarded,omitempty"`
}
