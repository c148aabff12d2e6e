// Package action implements the protocol's action layer. Every command on
// the wire is represented by an Action that knows how to build its outgoing
// request line, how to apply an incoming request against the shared server
// state, and how to render the server's response on the client terminal.
package action

import (
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/protocol"
)

// Action is one protocol command.
type Action interface {
	// BuildRequest constructs the outgoing protocol line for this action,
	// prompting the user for any fields the command needs. An empty string
	// means the action is server-initiated and the client sends nothing.
	BuildRequest(c *ClientState) string

	// Render interprets a server response line for this action, writing a
	// human-readable message to the client terminal and updating the
	// client's flags.
	Render(response string, c *ClientState)

	// Apply processes a parsed request line server-side, mutating the
	// shared state and writing the protocol reply to conn.
	Apply(conn comms.Conn, fields []string, s *ServerState)
}

// New returns the action for a command word. Unknown commands map to a
// fallback whose request line marks the input as invalid and whose other
// operations do nothing.
func New(command string) Action {
	switch command {
	case protocol.CmdLogin:
		return &LoginAction{}
	case protocol.CmdRegister:
		return &RegisterAction{}
	case protocol.CmdRoomList:
		return &RoomListAction{}
	case protocol.CmdCreate:
		return &CreateRoomAction{}
	case protocol.CmdJoin:
		return &JoinAction{}
	case protocol.CmdPlace:
		return &PlaceAction{}
	case protocol.CmdForfeit:
		return &ForfeitAction{}
	case protocol.CmdBegin:
		return &BeginAction{}
	case protocol.CmdInprogress:
		return &InprogressAction{}
	case protocol.CmdBoardStatus:
		return &BoardStatusAction{}
	case protocol.CmdGameEnd:
		return &GameEndAction{}
	default:
		return &BadAction{}
	}
}

// BadAction is the fallback for unrecognized input. Its request line tells
// the server the input was invalid; the server ignores it.
type BadAction struct{}

func (*BadAction) BuildRequest(*ClientState) string { return protocol.BadActionLine }

func (*BadAction) Render(string, *ClientState) {}

func (*BadAction) Apply(comms.Conn, []string, *ServerState) {}
