package handlers

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/repository"
)

type MazeStore interface {
	CreateMaze(ctx context.Context, params repository.CreateMazeParams) (*repository.Maze, error)
	FetchMaze(ctx context.Context, mazeID int64) (*repository.Maze, error)
	FindMaze(ctx context.Context, key repository.MazeKey) (*repository.Maze, error)
}

type MazeHandler struct {
	logger *slog.Logger
	store  MazeStore
	gen    *config.Generation
	ws     *config.WebSocket

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMazeHandler(
	logger *slog.Logger,
	store MazeStore,
	gen *config.Generation,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *MazeHandler {
	return &MazeHandler{
		logger: logger,
		store:  store,
		gen:    gen,
		ws:     ws,
		rnd:    rnd,
	}
}

func (h *MazeHandler) randomSeed() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rnd.Uint64()
}

func (h *MazeHandler) parseParams(r *http.Request) (maze.Params, error) {
	dto, err := ParseGenerateMazeDTO(r.URL.Query())
	if err != nil {
		return maze.Params{}, err
	}
	return dto.Params(h.gen, h.randomSeed)
}

// save stores res under p, returning the already stored row when another
// request got there first.
func (h *MazeHandler) save(ctx context.Context, p maze.Params, res *maze.Result) (*repository.Maze, error) {
	m, err := h.store.CreateMaze(ctx, repository.CreateMazeParams{
		Key:    repository.MazeKey(p),
		Result: res,
	})
	if errors.Is(err, repository.ErrMazeExists) {
		return h.store.FindMaze(ctx, repository.MazeKey(p))
	}
	return m, err
}

func (h *MazeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseParams(r)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	existing, err := h.store.FindMaze(r.Context(), repository.MazeKey(p))
	if err == nil {
		res, err := maze.DecodeResult(existing.State)
		if err != nil {
			internalError(w, h.logger, "db returned invalid maze.state", err)
			return
		}
		h.logger.Debug("maze already generated", slog.Int64("maze_id", existing.MazeID))
		sendJSONOrLog(w, h.logger, http.StatusOK, NewMazeDTO(existing, res))
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		internalError(w, h.logger, "unable to look up maze", err)
		return
	}

	res, err := maze.Build(p)
	if err != nil {
		internalError(w, h.logger, "unable to generate maze", err)
		return
	}
	h.logger.Debug("generated maze", slog.String("params", p.String()), slog.String("summary", res.Summary()))

	m, err := h.save(r.Context(), p, res)
	if err != nil {
		internalError(w, h.logger, "unable to store maze", err)
		return
	}

	sendJSONOrLog(w, h.logger, http.StatusCreated, NewMazeDTO(m, res))
}

func (h *MazeHandler) load(w http.ResponseWriter, r *http.Request) (*repository.Maze, *maze.Result, bool) {
	mazeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	m, err := h.store.FetchMaze(r.Context(), mazeID)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		internalError(w, h.logger, "unable to fetch maze from db", err)
		return nil, nil, false
	}

	res, err := maze.DecodeResult(m.State)
	if err != nil {
		internalError(w, h.logger, "db returned invalid maze.state", err)
		return nil, nil, false
	}
	return m, res, true
}

func (h *MazeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	m, res, ok := h.load(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, http.StatusOK, NewMazeDTO(m, res))
}

func (h *MazeHandler) Text(w http.ResponseWriter, r *http.Request) {
	_, res, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(res.String())); err != nil {
		h.logger.Error("unable to write maze text", slog.Any("error", err))
	}
}

const defaultCellPixels = 9

func (h *MazeHandler) Image(w http.ResponseWriter, r *http.Request) {
	cellPixels := defaultCellPixels
	if s := r.URL.Query().Get("cell"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < maze.MinCellPixels || v > 64 {
			sendError(w, h.logger, http.StatusBadRequest, errors.New("cell must be an integer in [3, 64]"))
			return
		}
		cellPixels = v
	}

	_, res, ok := h.load(w, r)
	if !ok {
		return
	}

	img := res.Image(cellPixels)
	if b := img.Bounds(); b.Dx()*b.Dy() > h.gen.MaxImagePixels {
		sendError(w, h.logger, http.StatusBadRequest, fmt.Errorf(
			"%w (%dx%d image exceeds %d pixels)", ErrTooLarge, b.Dx(), b.Dy(), h.gen.MaxImagePixels,
		))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		h.logger.Error("unable to encode maze image", slog.Any("error", err))
	}
}
