package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows every origin to read mazes. The API is read-mostly and
// carries no credentials.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
