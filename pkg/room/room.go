// Package room holds the game rooms and their server-wide registry.
package room

import (
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/game"
)

// Room is a named game session slot holding up to two players and any number
// of viewers. The X player is the room's creator and moves first.
type Room struct {
	Name    string
	XPlayer comms.Conn
	YPlayer comms.Conn
	Viewers []comms.Conn

	// Started flips once both players are present.
	Started bool

	// CurrentTurn is the connection expected to move next, OpposingTurn the
	// one that moved last.
	CurrentTurn  comms.Conn
	OpposingTurn comms.Conn

	Board game.Board
}

// New creates an empty room with the given name.
func New(name string) *Room {
	return &Room{Name: name, Board: game.NewBoard()}
}

// Full reports whether both player slots are taken.
func (r *Room) Full() bool {
	return r.XPlayer != nil && r.YPlayer != nil
}

// AssignX seats a connection as the X player and gives it the first turn.
func (r *Room) AssignX(c comms.Conn) {
	r.XPlayer = c
	r.CurrentTurn = c
}

// AssignY seats a connection as the O player.
func (r *Room) AssignY(c comms.Conn) {
	r.YPlayer = c
	r.OpposingTurn = c
}

// AddViewer registers a spectating connection.
func (r *Room) AddViewer(c comms.Conn) {
	r.Viewers = append(r.Viewers, c)
}

// MarkOf returns the board mark a seated connection plays with.
func (r *Room) MarkOf(c comms.Conn) byte {
	if c == r.XPlayer {
		return game.MarkX
	}
	return game.MarkO
}

// Opponent returns the other seated player, or nil for a half-empty room.
func (r *Room) Opponent(c comms.Conn) comms.Conn {
	if c == r.XPlayer {
		return r.YPlayer
	}
	return r.XPlayer
}

// AdvanceTurn hands the turn to the mover's opponent.
func (r *Room) AdvanceTurn(mover comms.Conn) {
	r.CurrentTurn = r.Opponent(mover)
	r.OpposingTurn = mover
}

// Broadcast sends a protocol line to both players and every viewer. Write
// failures are ignored; a vanished connection is handled by its own read
// loop.
func (r *Room) Broadcast(line string) {
	if r.XPlayer != nil {
		_ = r.XPlayer.WriteLine(line)
	}
	if r.YPlayer != nil {
		_ = r.YPlayer.WriteLine(line)
	}
	for _, v := range r.Viewers {
		_ = v.WriteLine(line)
	}
}
