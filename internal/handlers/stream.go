package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/maze-server/internal/maze"
)

const writeWait = 10 * time.Second

// Stream upgrades to a websocket and replays generation one commit per
// message, spaced by the configured step delay. The finished maze is
// stored and its id sent with the final message.
func (h *MazeHandler) Stream(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseParams(r)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	gen, err := p.Prepare()
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	h.logger.Debug("established WS connection", slog.String("params", p.String()))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends anything meaningful; reading only surfaces
	// close frames and broken connections.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	err = h.runStream(ctx, conn, p, gen)
	switch {
	case err == nil:
		err = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
			time.Now().Add(writeWait),
		)
		if err != nil {
			h.logger.Debug("unable to send close frame", slog.Any("error", err))
		}
	case errors.Is(err, context.Canceled):
		h.logger.Debug("stream abandoned by client", slog.Int("committed", len(gen.Committed())))
	default:
		h.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}

func (h *MazeHandler) send(conn *websocket.Conn, ev StepEvent) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := conn.WriteJSON(ev); err != nil {
		return fmt.Errorf("unable to write json: %w", err)
	}
	return nil
}

func (h *MazeHandler) runStream(ctx context.Context, conn *websocket.Conn, p maze.Params, gen *maze.Generator) error {
	var tick <-chan time.Time
	if h.gen.StepDelay > 0 {
		ticker := time.NewTicker(h.gen.StepDelay)
		defer ticker.Stop()
		tick = ticker.C
	}

	start := p.Start
	if err := h.send(conn, StepEvent{Type: StepCommit, Step: 1, Cell: &start}); err != nil {
		return err
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		status, err := gen.Step()
		if err != nil {
			return err
		}
		if status == maze.Done {
			break
		}

		edge, _ := gen.LastEdge()
		err = h.send(conn, StepEvent{
			Type: StepCommit,
			Step: len(gen.Committed()),
			Cell: &edge.To,
			From: &edge.From,
		})
		if err != nil {
			return err
		}
	}

	res, err := gen.Result()
	if err != nil {
		return err
	}

	done := StepEvent{
		Type:      StepDone,
		Step:      len(res.Committed),
		End:       &res.End,
		Walls:     res.Walls(),
		Discarded: gen.Discarded(),
	}
	if m, err := h.save(ctx, p, res); err != nil {
		h.logger.Error("unable to store streamed maze", slog.Any("error", err))
	} else {
		done.MazeID = strconv.FormatInt(m.MazeID, 10)
	}

	return h.send(conn, done)
}
