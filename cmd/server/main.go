package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/action"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/config"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/room"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/server"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/userdb"
)

var configPath = flag.String("config", os.Getenv("CONFIG"), "Path to the server config file")

func main() {
	flag.Parse()
	log, _ := zap.NewProduction()
	defer log.Sync()

	if *configPath == "" {
		log.Fatal("missing -config flag (or CONFIG environment variable)")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("configuration error", zap.Error(err))
	}
	users, err := userdb.Open(cfg.UserDatabase)
	if err != nil {
		log.Fatal("user database error", zap.Error(err))
	}

	state := action.NewServerState(log, users, room.NewRegistry(cfg.MaxRooms))
	s := server.New(log, cfg, state)
	log.Info("starting server", zap.Int("port", cfg.Port))
	if err := s.Run(); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
