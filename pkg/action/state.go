package action

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/protocol"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/room"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/userdb"
)

// ServerState bundles the shared structures an action reads and mutates when
// applying a client request: the user database, the room registry and the
// set of authenticated connections.
//
// Dispatch serializes Apply calls, so actions touch the state without
// further locking.
type ServerState struct {
	Log   *zap.Logger
	Users *userdb.Store
	Rooms *room.Registry

	mu     sync.Mutex
	authed map[comms.Conn]string // connection -> username
}

// NewServerState creates the shared server state.
func NewServerState(log *zap.Logger, users *userdb.Store, rooms *room.Registry) *ServerState {
	return &ServerState{
		Log:    log,
		Users:  users,
		Rooms:  rooms,
		authed: make(map[comms.Conn]string),
	}
}

// Username returns the username a connection authenticated as.
func (s *ServerState) Username(conn comms.Conn) (string, bool) {
	name, ok := s.authed[conn]
	return name, ok
}

// SetAuthenticated records a successful login on a connection.
func (s *ServerState) SetAuthenticated(conn comms.Conn, username string) {
	s.authed[conn] = username
}

// LoggedIn reports whether a username is authenticated on any connection.
func (s *ServerState) LoggedIn(username string) bool {
	for _, name := range s.authed {
		if name == username {
			return true
		}
	}
	return false
}

// Dispatch parses one request line from a connection and applies the
// matching action against the shared state.
func (s *ServerState) Dispatch(conn comms.Conn, line string) {
	fields := protocol.Fields(line)
	s.Log.Debug("dispatching request",
		zap.String("conn", conn.ID()),
		zap.String("command", fields[0]))

	s.mu.Lock()
	defer s.mu.Unlock()
	New(fields[0]).Apply(conn, fields, s)
}

// Disconnect cleans up after a vanished connection: an in-room player
// forfeits the game, then the connection is deauthenticated.
func (s *ServerState) Disconnect(conn comms.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username, ok := s.authed[conn]; ok {
		if _, ok := s.Rooms.RoomOf(username); ok {
			s.Log.Info("player disconnected mid-game",
				zap.String("conn", conn.ID()),
				zap.String("username", username))
			forfeit(conn, s)
		}
		delete(s.authed, conn)
	}
}

// ClientState tracks a client's view of its own session: assigned name and
// the flags the rendered responses flip. The command loop and the receive
// goroutine both touch the flags, so holders take the embedded mutex. Renders
// write to Out and Err so the terminal output is testable.
type ClientState struct {
	sync.Mutex

	Name          string
	Authenticated bool
	InRoom        bool
	CanQuit       bool
	IsPlayer      bool
	Owner         bool
	InTurn        bool

	Out io.Writer
	Err io.Writer

	in  *bufio.Scanner
	eof bool
}

// NewClientState creates a client state prompting on in and writing to out
// and errw.
func NewClientState(in io.Reader, out, errw io.Writer) *ClientState {
	return &ClientState{
		Out: out,
		Err: errw,
		in:  bufio.NewScanner(in),
	}
}

// NewTerminalClientState creates a client state bound to the process
// terminal.
func NewTerminalClientState() *ClientState {
	return NewClientState(os.Stdin, os.Stdout, os.Stderr)
}

// Prompt writes a prompt and returns the user's trimmed reply.
func (c *ClientState) Prompt(prompt string) string {
	fmt.Fprint(c.Out, prompt)
	line, _ := c.ReadLine()
	return line
}

// ReadLine reads the next line of user input, reporting false once input is
// exhausted.
func (c *ClientState) ReadLine() (string, bool) {
	if c.eof || !c.in.Scan() {
		c.eof = true
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// EOF reports whether user input has run out. Prompt loops check it so a
// closed stdin cannot spin them forever.
func (c *ClientState) EOF() bool { return c.eof }

// AfterGame resets the in-game flags once a game is over.
func (c *ClientState) AfterGame() {
	c.InRoom = false
	c.CanQuit = false
	c.IsPlayer = false
	c.Owner = false
	c.InTurn = false
}

// IsParticipant reports whether the client is playing rather than watching.
func (c *ClientState) IsParticipant() bool {
	return c.IsPlayer || c.Owner
}
