package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
)

// checkOrigin checks a request's origin, returning true if the origin is
// valid. Browser clients connect from arbitrary hosts, so every origin is
// accepted.
func checkOrigin(r *http.Request) bool {
	return true
}

// runGateway serves a websocket endpoint speaking the same line protocol as
// the TCP listener, one protocol line per text frame.
func (s *Server) runGateway() error {
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Error("failed to upgrade connection", zap.Error(err))
			return
		}
		conn := comms.NewWSConn(socket)
		s.log.Info("websocket client connected",
			zap.String("conn", conn.ID()),
			zap.String("remote", r.RemoteAddr))
		s.handle(conn)
	})

	s.log.Info("websocket gateway listening", zap.Int("port", s.cfg.WSPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.cfg.WSPort), mux)
}
