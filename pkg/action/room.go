package action

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/game"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/protocol"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/room"
)

// CreateRoomAction creates a new game room with the requester seated as the
// X player and room owner.
type CreateRoomAction struct {
	Name string
}

func (a *CreateRoomAction) BuildRequest(c *ClientState) string {
	a.Name = c.Prompt("Enter the room name you want to create: ")
	if c.EOF() {
		return ""
	}
	return protocol.Line(protocol.CmdCreate, a.Name)
}

func (a *CreateRoomAction) Render(response string, c *ClientState) {
	if strings.TrimSpace(response) == protocol.BadAuth {
		fmt.Fprintln(c.Err, "Error: You must be logged in to perform this action.")
		return
	}
	fields := protocol.Fields(response)
	if len(fields) < 3 || fields[1] != protocol.AckStatus {
		fmt.Fprintln(c.Err, "Error: Unexpected response format.")
		return
	}
	switch fields[2] {
	case protocol.CreateOK:
		c.InRoom = true
		c.Owner = true
		c.InTurn = true
		fmt.Fprintf(c.Out, "Successfully created room %s. Waiting for other players to join.\n", a.Name)
	case protocol.CreateBadName:
		fmt.Fprintln(c.Err, "Error: Room name is invalid.")
	case protocol.CreateNameTaken:
		fmt.Fprintln(c.Err, "Error: Room already exists.")
	case protocol.CreateRoomLimit:
		fmt.Fprintf(c.Err, "Error: Maximum number of rooms reached (%d).\n", room.DefaultMaxRooms)
	case protocol.CreateBadFormat:
		fmt.Fprintln(c.Err, "Error: Invalid room creation format.")
	default:
		fmt.Fprintf(c.Err, "Error: Unrecognized ACKSTATUS %s.\n", fields[2])
	}
}

func (a *CreateRoomAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	username, ok := s.Username(conn)
	if !ok {
		_ = conn.WriteLine(protocol.BadAuth)
		return
	}
	if len(fields) != 2 {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdCreate, protocol.CreateBadFormat))
		return
	}
	name := fields[1]

	if _, err := s.Rooms.Create(name, username, conn); err != nil {
		code := protocol.CreateBadName
		switch {
		case errors.Is(err, room.ErrNameTaken):
			code = protocol.CreateNameTaken
		case errors.Is(err, room.ErrRoomLimit):
			code = protocol.CreateRoomLimit
		}
		_ = conn.WriteLine(protocol.Ack(protocol.CmdCreate, code))
		return
	}

	s.Log.Info("room created",
		zap.String("room", name),
		zap.String("owner", username))
	_ = conn.WriteLine(protocol.Ack(protocol.CmdCreate, protocol.CreateOK))
}

// JoinAction seats the requester in an existing room, as the O player or as
// a viewer.
type JoinAction struct {
	RoomName string
	Mode     string
}

func (a *JoinAction) BuildRequest(c *ClientState) string {
	a.RoomName = c.Prompt("Please enter the room name you want to join: ")
	a.Mode = c.Prompt("Please enter the mode you want to join: ")
	if c.EOF() {
		return ""
	}
	return protocol.Line(protocol.CmdJoin, a.RoomName, a.Mode)
}

func (a *JoinAction) Render(response string, c *ClientState) {
	if strings.TrimSpace(response) == protocol.BadAuth {
		fmt.Fprintln(c.Err, "Error: You must be logged in to perform this action.")
		return
	}
	fields := protocol.Fields(response)
	if len(fields) < 3 || fields[1] != protocol.AckStatus {
		fmt.Fprintln(c.Err, "Error: Unexpected response format.")
		return
	}
	switch fields[2] {
	case protocol.JoinOK:
		c.InRoom = true
		if a.Mode == protocol.ModePlayer {
			c.IsPlayer = true
		}
		fmt.Fprintf(c.Out, "Successfully joined room %s as a %s\n", a.RoomName, a.Mode)
	case protocol.JoinNoRoom:
		fmt.Fprintf(c.Err, "Error: No room named %s\n", a.RoomName)
	case protocol.JoinRoomFull:
		fmt.Fprintf(c.Err, "Error: The room %s already has 2 players\n", a.RoomName)
	case protocol.JoinBadFormat:
		fmt.Fprintln(c.Err, "Error: Invalid message format of JOIN")
	}
}

func (a *JoinAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	username, ok := s.Username(conn)
	if !ok {
		_ = conn.WriteLine(protocol.BadAuth)
		return
	}
	if len(fields) != 3 {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinBadFormat))
		return
	}
	name, mode := fields[1], fields[2]

	switch mode {
	case protocol.ModePlayer:
		r, ok := s.Rooms.Get(name)
		if !ok {
			_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinNoRoom))
			return
		}
		if r.Full() {
			_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinRoomFull))
			return
		}

		r.AssignY(conn)
		s.Rooms.Enter(username, name)
		_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinOK))

		xName, _ := s.Username(r.XPlayer)
		yName := username
		r.Started = true
		r.Broadcast(protocol.Line(protocol.CmdBegin, xName, yName))
		s.Log.Info("match started",
			zap.String("room", name),
			zap.String("xPlayer", xName),
			zap.String("yPlayer", yName))

	case protocol.ModeViewer:
		r, ok := s.Rooms.Get(name)
		if !ok {
			_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinNoRoom))
			return
		}
		r.AddViewer(conn)
		_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinOK))

		// Catch the viewer up on a game already underway.
		if r.OpposingTurn != nil {
			current, _ := s.Username(r.CurrentTurn)
			opposing, _ := s.Username(r.OpposingTurn)
			_ = conn.WriteLine(protocol.Line(protocol.CmdInprogress, current, opposing))
		}
		if r.Board != game.NewBoard() {
			_ = conn.WriteLine(protocol.Line(protocol.CmdBoardStatus, r.Board.String()))
		}

	default:
		_ = conn.WriteLine(protocol.Ack(protocol.CmdJoin, protocol.JoinBadFormat))
	}
}

// RoomListAction lists the rooms a user could join in a given mode.
type RoomListAction struct {
	Mode string
}

func (a *RoomListAction) BuildRequest(c *ClientState) string {
	a.Mode = c.Prompt("Do you want to have a room list as a player or viewer? (PLAYER/VIEWER) ")
	if c.EOF() {
		return ""
	}
	return protocol.Line(protocol.CmdRoomList, a.Mode)
}

func (a *RoomListAction) Render(response string, c *ClientState) {
	if strings.TrimSpace(response) == protocol.BadAuth {
		fmt.Fprintln(c.Err, "Error: You must be logged in to perform this action")
		return
	}
	fields := protocol.Fields(response)
	if len(fields) < 3 || fields[1] != protocol.AckStatus {
		fmt.Fprintln(c.Err, "Error: Unexpected response format.")
		return
	}
	switch fields[2] {
	case protocol.RoomListOK:
		fmt.Fprintf(c.Out, "Room available to join as %s are: \n", a.Mode)
		if len(fields) > 3 && fields[3] != "" {
			for _, name := range strings.Split(fields[3], ",") {
				fmt.Fprintln(c.Out, name)
			}
		}
	case protocol.RoomListBadMode:
		fmt.Fprintln(c.Err, "Error: Please input a valid mode.")
	}
}

func (a *RoomListAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	if _, ok := s.Username(conn); !ok {
		_ = conn.WriteLine(protocol.BadAuth)
		return
	}
	if len(fields) != 2 {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdRoomList, protocol.RoomListBadMode))
		return
	}

	var names []string
	switch fields[1] {
	case protocol.ModeViewer:
		names = s.Rooms.Viewable()
	case protocol.ModePlayer:
		names = s.Rooms.Playable()
	default:
		_ = conn.WriteLine(protocol.Ack(protocol.CmdRoomList, protocol.RoomListBadMode))
		return
	}
	_ = conn.WriteLine(protocol.Ack(protocol.CmdRoomList, protocol.RoomListOK, strings.Join(names, ",")))
}
