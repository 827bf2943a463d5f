package config

import (
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket accepts any origin unless WS_ALLOWED_ORIGINS holds a comma
// separated allow list.
func NewWebSocket() (*WebSocket, error) {
	var origins []string
	if list, ok := os.LookupEnv("WS_ALLOWED_ORIGINS"); ok && list != "" {
		for _, o := range strings.Split(list, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if origins == nil {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	return &WebSocket{Upgrader: upgrader}, nil
}
