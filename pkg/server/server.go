// Package server runs the listeners and feeds request lines from connected
// clients through the action layer.
package server

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/action"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/config"
)

// Server owns the listeners and the shared game state.
type Server struct {
	log   *zap.Logger
	cfg   *config.Config
	state *action.ServerState
}

// New constructs a server around the shared state.
func New(log *zap.Logger, cfg *config.Config, state *action.ServerState) *Server {
	return &Server{log: log, cfg: cfg, state: state}
}

// Run starts the TCP listener (and the websocket gateway when configured)
// and accepts connections until the listener fails.
func (s *Server) Run() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	defer listener.Close()

	if s.cfg.WSPort != 0 {
		go func() {
			if err := s.runGateway(); err != nil {
				s.log.Error("websocket gateway failed", zap.Error(err))
			}
		}()
	}

	s.log.Info("listening for connections", zap.Int("port", s.cfg.Port))
	for {
		socket, err := listener.Accept()
		if err != nil {
			return fmt.Errorf("accept failed: %w", err)
		}
		conn := comms.NewTCPConn(socket)
		s.log.Info("client connected",
			zap.String("conn", conn.ID()),
			zap.String("remote", socket.RemoteAddr().String()))
		go s.handle(conn)
	}
}

// handle reads request lines from one connection until it drops, routing
// each through the action dispatcher.
func (s *Server) handle(conn comms.Conn) {
	defer func() {
		s.state.Disconnect(conn)
		conn.Close()
		s.log.Info("client disconnected", zap.String("conn", conn.ID()))
	}()

	for {
		line, err := conn.ReadLine()
		if err != nil {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.state.Dispatch(conn, line)
	}
}
