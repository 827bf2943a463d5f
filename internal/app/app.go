package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	gen        *config.Generation
	ws         *config.WebSocket
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) Start(ctx context.Context) error {
	if err := config.ConfigureMazeLog(maze.Log); err != nil {
		return fmt.Errorf("unable to configure maze log: %w", err)
	}

	gen, err := config.NewGeneration()
	if err != nil {
		return err
	}
	a.gen = gen

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	defer db.Close()

	a.loadRoutes()

	addr := config.Addr()
	var handler http.Handler = a.router
	if base := config.BasePath(); base != "" {
		mux := http.NewServeMux()
		mux.Handle(base+"/", http.StripPrefix(base, a.router))
		handler = mux
	}

	server := &http.Server{
		Addr: addr,
		Handler: middleware.Wrap(
			handler,
			middleware.Logging(a.logger),
			middleware.Cors(),
		),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.logger.Info("server listening",
		slog.String("addr", addr),
		slog.String("base path", config.BasePath()),
		slog.Int("max dimension", gen.MaxDimension),
	)

	return g.Wait()
}
