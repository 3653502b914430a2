package transport

import (
	"fmt"
	"log"
	"net/http"
)

// Server is the process's HTTP entrypoint: the Hub's websocket endpoint
// plus a liveness probe.
type Server struct {
	Hub *Hub
}

// NewServer wires a Server to the hub it serves `/ws` through.
func NewServer(hub *Hub) *Server {
	return &Server{Hub: hub}
}

// Start runs the Hub's event loop and serves HTTP until ListenAndServe
// returns. The http.Server is not exposed, so it cannot be shut down
// from outside; Start returns only with an error such as a bind failure.
func (s *Server) Start(port int) error {
	go s.Hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Hub.ServeWs)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Printf("HTTP server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
