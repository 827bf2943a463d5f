package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vancomm/maze-server/internal/maze"
)

var ErrMazeExists = errors.New("a maze with these parameters already exists")

type Maze struct {
	MazeID      int64     `db:"maze_id"`
	Width       int       `db:"width"`
	Depth       int       `db:"depth"`
	WeightRange int       `db:"weight_range"`
	Seed        int64     `db:"seed"`
	StartX      int       `db:"start_x"`
	StartZ      int       `db:"start_z"`
	EndX        int       `db:"end_x"`
	EndZ        int       `db:"end_z"`
	Committed   int       `db:"committed"`
	Walls       int       `db:"walls"`
	State       []byte    `db:"state"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m Maze) Params() maze.Params {
	return maze.Params{
		Width:       m.Width,
		Depth:       m.Depth,
		WeightRange: m.WeightRange,
		Seed:        uint64(m.Seed),
		Start:       maze.Coord{X: m.StartX, Z: m.StartZ},
	}
}

// MazeKey identifies a generated maze; identical keys always produce
// identical mazes.
type MazeKey maze.Params

func (k MazeKey) Args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"width":        k.Width,
		"depth":        k.Depth,
		"weight_range": k.WeightRange,
		"seed":         int64(k.Seed),
		"start_x":      k.Start.X,
		"start_z":      k.Start.Z,
	}
}

type CreateMazeParams struct {
	Key    MazeKey
	Result *maze.Result
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (q Queries) CreateMaze(ctx context.Context, params CreateMazeParams) (*Maze, error) {
	state, err := params.Result.Bytes()
	if err != nil {
		return nil, err
	}

	args := params.Key.Args()
	args["end_x"] = params.Result.End.X
	args["end_z"] = params.Result.End.Z
	args["committed"] = len(params.Result.Committed)
	args["walls"] = len(params.Result.Walls())
	args["state"] = state

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO maze (
			width, depth, weight_range, seed, start_x, start_z,
			end_x, end_z, committed, walls, state
		)
		VALUES (
			@width, @depth, @weight_range, @seed, @start_x, @start_z,
			@end_x, @end_z, @committed, @walls, @state
		)
		RETURNING *;`,
		args,
	)
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Maze])
	if isUniqueViolation(err) {
		return nil, ErrMazeExists
	}
	return m, err
}

func (q Queries) FetchMaze(ctx context.Context, mazeID int64) (*Maze, error) {
	rows, _ := q.db.Query(ctx, "SELECT * FROM maze WHERE maze_id = $1", mazeID)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Maze])
}

func (q Queries) FindMaze(ctx context.Context, key MazeKey) (*Maze, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT * FROM maze
		WHERE width = @width
			AND depth = @depth
			AND weight_range = @weight_range
			AND seed = @seed
			AND start_x = @start_x
			AND start_z = @start_z`,
		key.Args(),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Maze])
}
