package action

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/game"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/protocol"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/room"
)

// endGame broadcasts the final GAMEEND notice to everyone in the room and
// removes the room from the registry.
func endGame(r *room.Room, s *ServerState, line string) {
	r.Broadcast(line)
	s.Rooms.Remove(r.Name)
	s.Log.Info("game ended", zap.String("room", r.Name), zap.String("notice", line))
}

// forfeit ends the game of the room conn is playing in, with conn's
// opponent as the winner. Called both for FORFEIT requests and for
// mid-game disconnects.
func forfeit(conn comms.Conn, s *ServerState) {
	username, ok := s.Username(conn)
	if !ok {
		return
	}
	r, ok := s.Rooms.RoomOf(username)
	if !ok {
		return
	}
	if r.YPlayer == nil {
		// No opponent yet, tear the room down quietly.
		s.Rooms.Remove(r.Name)
		return
	}
	winner, _ := s.Username(r.Opponent(conn))
	endGame(r, s, protocol.Line(protocol.CmdGameEnd, r.Board.String(), protocol.EndForfeit, winner))
}

// PlaceAction places the requester's mark on a board cell.
type PlaceAction struct{}

func (*PlaceAction) BuildRequest(c *ClientState) string {
	x, ok := promptCoordinate(c, "Enter x position:", "Column")
	if !ok {
		return ""
	}
	y, ok := promptCoordinate(c, "Enter y position:", "Row")
	if !ok {
		return ""
	}
	return protocol.Line(protocol.CmdPlace, strconv.Itoa(x), strconv.Itoa(y))
}

// promptCoordinate loops until the user types a coordinate in range,
// reporting false once input runs out.
func promptCoordinate(c *ClientState, prompt, axis string) (int, bool) {
	for {
		v, err := strconv.Atoi(c.Prompt(prompt))
		if err != nil || v < 0 || v >= game.BoardSize {
			if c.EOF() {
				return 0, false
			}
			fmt.Fprintf(c.Out, "Error: %s values must be an integer between 0 and %d\n", axis, game.BoardSize-1)
			continue
		}
		return v, true
	}
}

func (*PlaceAction) Render(string, *ClientState) {}

func (*PlaceAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	username, ok := s.Username(conn)
	if !ok {
		_ = conn.WriteLine(protocol.BadAuth)
		return
	}
	r, ok := s.Rooms.RoomOf(username)
	if !ok {
		_ = conn.WriteLine(protocol.NoRoom)
		return
	}

	index, ok := parsePosition(fields)
	if !ok {
		s.Log.Warn("malformed PLACE request",
			zap.String("conn", conn.ID()),
			zap.Strings("fields", fields))
		return
	}

	// Out-of-turn and premature moves are dropped; the next board broadcast
	// resynchronizes the client.
	if !r.Started || r.CurrentTurn != conn {
		return
	}
	if !r.Board.Place(index, r.MarkOf(conn)) {
		return
	}

	if r.Board.Winner() != game.Empty {
		endGame(r, s, protocol.Line(protocol.CmdGameEnd, r.Board.String(), protocol.EndWin, username))
		return
	}
	if r.Board.Full() {
		endGame(r, s, protocol.Line(protocol.CmdGameEnd, r.Board.String(), protocol.EndDraw))
		return
	}

	r.AdvanceTurn(conn)
	r.Broadcast(protocol.Line(protocol.CmdBoardStatus, r.Board.String()))
}

// parsePosition extracts the board index from a PLACE request.
func parsePosition(fields []string) (int, bool) {
	if len(fields) != 3 {
		return 0, false
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil || x < 0 || x >= game.BoardSize {
		return 0, false
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil || y < 0 || y >= game.BoardSize {
		return 0, false
	}
	return y*game.BoardSize + x, true
}

// ForfeitAction concedes the game, awarding the win to the opponent.
type ForfeitAction struct{}

func (*ForfeitAction) BuildRequest(*ClientState) string { return protocol.CmdForfeit }

func (*ForfeitAction) Render(_ string, c *ClientState) {
	c.InRoom = false
	c.IsPlayer = false
}

func (*ForfeitAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	username, ok := s.Username(conn)
	if !ok {
		_ = conn.WriteLine(protocol.BadAuth)
		return
	}
	if _, ok := s.Rooms.RoomOf(username); !ok {
		_ = conn.WriteLine(protocol.NoRoom)
		return
	}
	forfeit(conn, s)
}

// BeginAction is the server notice that a match is starting.
type BeginAction struct{}

func (*BeginAction) BuildRequest(*ClientState) string { return "" }

func (*BeginAction) Render(response string, c *ClientState) {
	fields := protocol.Fields(response)
	if len(fields) < 3 {
		fmt.Fprintf(c.Err, "Error: malformed BEGIN notice: %s\n", response)
		return
	}
	fmt.Fprintf(c.Out, "Match between %s and %s will commence, it is currently %s's turn.\n",
		fields[1], fields[2], fields[1])
}

func (*BeginAction) Apply(comms.Conn, []string, *ServerState) {}

// InprogressAction is the server notice that catches a late viewer up on a
// running match.
type InprogressAction struct{}

func (*InprogressAction) BuildRequest(*ClientState) string { return "" }

func (*InprogressAction) Render(response string, c *ClientState) {
	fields := protocol.Fields(response)
	if len(fields) < 3 {
		fmt.Fprintf(c.Err, "Error: malformed INPROGRESS notice: %s\n", response)
		return
	}
	fmt.Fprintf(c.Out, "Match between %s and %s is currently in progress, it is currently %s's turn.\n",
		fields[1], fields[2], fields[1])
}

func (*InprogressAction) Apply(comms.Conn, []string, *ServerState) {}

// BoardStatusAction is the server notice carrying the board after a move.
type BoardStatusAction struct{}

func (*BoardStatusAction) BuildRequest(*ClientState) string { return "" }

func (*BoardStatusAction) Render(response string, c *ClientState) {
	fields := protocol.Fields(response)
	if len(fields) < 2 {
		fmt.Fprintf(c.Err, "Error: malformed BOARDSTATUS notice: %s\n", response)
		return
	}
	b, err := game.ParseBoard(fields[1])
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		return
	}

	symbols := map[byte]byte{game.MarkX: 'X', game.MarkO: 'O', game.Empty: ' '}
	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			if x > 0 {
				fmt.Fprint(c.Out, " |")
			}
			fmt.Fprintf(c.Out, " %c", symbols[b[y*game.BoardSize+x]])
		}
		fmt.Fprintln(c.Out)
		if y < game.BoardSize-1 {
			fmt.Fprintln(c.Out, "---+---+---")
		}
	}

	// A board broadcast marks a completed move, so the turn flips for the
	// two players.
	if !c.IsParticipant() {
		return
	}
	if c.InTurn {
		fmt.Fprintln(c.Out, "Your opponent's turn.")
		c.InTurn = false
	} else {
		fmt.Fprintln(c.Out, "It's your turn.")
		c.InTurn = true
	}
}

func (*BoardStatusAction) Apply(comms.Conn, []string, *ServerState) {}

// GameEndAction is the server notice carrying the final result of a match.
type GameEndAction struct{}

func (*GameEndAction) BuildRequest(*ClientState) string { return "" }

func (*GameEndAction) Render(response string, c *ClientState) {
	fields := protocol.Fields(response)
	if len(fields) < 3 {
		fmt.Fprintf(c.Err, "Error: malformed GAMEEND notice: %s\n", response)
		return
	}
	defer c.AfterGame()

	switch fields[2] {
	case protocol.EndWin:
		if len(fields) < 4 {
			fmt.Fprintf(c.Err, "Error: malformed GAMEEND notice: %s\n", response)
			return
		}
		switch {
		case fields[3] == c.Name && c.IsParticipant():
			fmt.Fprintln(c.Out, "Congratulations, you won!")
		case c.IsParticipant():
			fmt.Fprintln(c.Out, "Sorry, you lost. Good luck next time.")
		default:
			fmt.Fprintf(c.Out, "%s has won this game.\n", fields[3])
		}
	case protocol.EndDraw:
		fmt.Fprintln(c.Out, "The game ended in a draw.")
	case protocol.EndForfeit:
		if len(fields) < 4 {
			fmt.Fprintf(c.Err, "Error: malformed GAMEEND notice: %s\n", response)
			return
		}
		fmt.Fprintf(c.Out, "%s won due to the opposing player forfeiting.\n", fields[3])
	}
}

func (*GameEndAction) Apply(comms.Conn, []string, *ServerState) {}
