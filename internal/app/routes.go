package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/maze-server/internal/handlers"
	"github.com/vancomm/maze-server/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	mazes := handlers.NewMazeHandler(
		a.logger, repository.New(a.db), a.gen, a.ws, createRand(),
	)

	a.router.HandleFunc("POST /maze", mazes.Generate)
	a.router.HandleFunc("GET /maze/stream", mazes.Stream)
	a.router.HandleFunc("GET /maze/{id}", mazes.Fetch)
	a.router.HandleFunc("GET /maze/{id}/text", mazes.Text)
	a.router.HandleFunc("GET /maze/{id}/image", mazes.Image)
}
