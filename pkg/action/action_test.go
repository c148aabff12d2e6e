package action

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/room"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/userdb"
)

// fakeConn records the protocol lines an action writes to it.
type fakeConn struct {
	id      string
	written []string
}

func (c *fakeConn) ID() string                  { return c.id }
func (c *fakeConn) ReadLine() (string, error)   { return "", io.EOF }
func (c *fakeConn) WriteLine(line string) error { c.written = append(c.written, line); return nil }
func (c *fakeConn) Close() error                { return nil }

func (c *fakeConn) last() string {
	if len(c.written) == 0 {
		return ""
	}
	return c.written[len(c.written)-1]
}

func (c *fakeConn) reset() { c.written = nil }

func newTestState(t *testing.T, maxRooms int) *ServerState {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}
	users, err := userdb.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	return NewServerState(zap.NewNop(), users, room.NewRegistry(maxRooms))
}

func login(t *testing.T, s *ServerState, conn *fakeConn, username string) {
	t.Helper()
	s.Dispatch(conn, "REGISTER:"+username+":pw")
	s.Dispatch(conn, "LOGIN:"+username+":pw")
	if got := conn.last(); got != "LOGIN:ACKSTATUS:0" {
		t.Fatalf("login as %s: got %q", username, got)
	}
	conn.reset()
}

func TestLoginApply(t *testing.T) {
	s := newTestState(t, 0)
	conn := &fakeConn{id: "c1"}

	s.Dispatch(conn, "LOGIN:alice:pw")
	if got := conn.last(); got != "LOGIN:ACKSTATUS:1" {
		t.Errorf("unknown user: got %q", got)
	}

	s.Dispatch(conn, "REGISTER:alice:pw")
	if got := conn.last(); got != "REGISTER:ACKSTATUS:0" {
		t.Fatalf("register: got %q", got)
	}

	s.Dispatch(conn, "LOGIN:alice:wrong")
	if got := conn.last(); got != "LOGIN:ACKSTATUS:2" {
		t.Errorf("wrong password: got %q", got)
	}

	s.Dispatch(conn, "LOGIN:alice")
	if got := conn.last(); got != "LOGIN:ACKSTATUS:3" {
		t.Errorf("bad format: got %q", got)
	}

	s.Dispatch(conn, "LOGIN:alice:pw")
	if got := conn.last(); got != "LOGIN:ACKSTATUS:0" {
		t.Fatalf("correct login: got %q", got)
	}
	if name, ok := s.Username(conn); !ok || name != "alice" {
		t.Errorf("Username = %q, %v", name, ok)
	}

	// The same account on a second connection is refused.
	other := &fakeConn{id: "c2"}
	s.Dispatch(other, "LOGIN:alice:pw")
	if got := other.last(); got != "LOGIN:ACKSTATUS:4" {
		t.Errorf("second login: got %q", got)
	}
}

func TestRegisterApply(t *testing.T) {
	s := newTestState(t, 0)
	conn := &fakeConn{}

	s.Dispatch(conn, "REGISTER:alice:pw")
	if got := conn.last(); got != "REGISTER:ACKSTATUS:0" {
		t.Errorf("register: got %q", got)
	}
	s.Dispatch(conn, "REGISTER:alice:other")
	if got := conn.last(); got != "REGISTER:ACKSTATUS:1" {
		t.Errorf("duplicate: got %q", got)
	}
	s.Dispatch(conn, "REGISTER:bob")
	if got := conn.last(); got != "REGISTER:ACKSTATUS:2" {
		t.Errorf("bad format: got %q", got)
	}
	s.Dispatch(conn, "REGISTER:aaaaaaaaaaaaaaaaaaaaa:pw")
	if got := conn.last(); got != "REGISTER:ACKSTATUS:3" {
		t.Errorf("over-long username: got %q", got)
	}
}

func TestBadAuthGate(t *testing.T) {
	s := newTestState(t, 0)

	for _, line := range []string{
		"CREATE:arena",
		"JOIN:arena:PLAYER",
		"ROOMLIST:PLAYER",
		"PLACE:0:0",
		"FORFEIT",
	} {
		conn := &fakeConn{}
		s.Dispatch(conn, line)
		if got := conn.last(); got != "BADAUTH" {
			t.Errorf("%s before login: got %q, want BADAUTH", line, got)
		}
	}
}

func TestCreateRoomApply(t *testing.T) {
	s := newTestState(t, 1)
	conn := &fakeConn{}
	login(t, s, conn, "alice")

	s.Dispatch(conn, "CREATE")
	if got := conn.last(); got != "CREATE:ACKSTATUS:4" {
		t.Errorf("missing name: got %q", got)
	}
	s.Dispatch(conn, "CREATE:bad!name")
	if got := conn.last(); got != "CREATE:ACKSTATUS:1" {
		t.Errorf("invalid name: got %q", got)
	}
	s.Dispatch(conn, "CREATE:arena")
	if got := conn.last(); got != "CREATE:ACKSTATUS:0" {
		t.Fatalf("create: got %q", got)
	}
	s.Dispatch(conn, "CREATE:arena")
	if got := conn.last(); got != "CREATE:ACKSTATUS:2" {
		t.Errorf("duplicate name: got %q", got)
	}
	s.Dispatch(conn, "CREATE:other")
	if got := conn.last(); got != "CREATE:ACKSTATUS:3" {
		t.Errorf("over room limit: got %q", got)
	}

	r, ok := s.Rooms.Get("arena")
	if !ok {
		t.Fatal("room not in registry")
	}
	if r.XPlayer != conn {
		t.Error("creator not seated as X")
	}
}

func TestRoomListApply(t *testing.T) {
	s := newTestState(t, 0)
	conn := &fakeConn{}
	login(t, s, conn, "alice")

	s.Dispatch(conn, "ROOMLIST:PLAYER")
	if got := conn.last(); got != "ROOMLIST:ACKSTATUS:0:" {
		t.Errorf("empty list: got %q", got)
	}
	s.Dispatch(conn, "ROOMLIST:banana")
	if got := conn.last(); got != "ROOMLIST:ACKSTATUS:1" {
		t.Errorf("bad mode: got %q", got)
	}
	s.Dispatch(conn, "ROOMLIST")
	if got := conn.last(); got != "ROOMLIST:ACKSTATUS:1" {
		t.Errorf("missing mode: got %q", got)
	}

	s.Dispatch(conn, "CREATE:beta")
	s.Dispatch(conn, "CREATE:alpha")
	conn.reset()

	s.Dispatch(conn, "ROOMLIST:VIEWER")
	if got := conn.last(); got != "ROOMLIST:ACKSTATUS:0:alpha,beta" {
		t.Errorf("viewer list: got %q", got)
	}

	// A full room disappears from the player list but not the viewer list.
	bob := &fakeConn{}
	login(t, s, bob, "bob")
	s.Dispatch(bob, "JOIN:alpha:PLAYER")
	conn.reset()

	s.Dispatch(conn, "ROOMLIST:PLAYER")
	if got := conn.last(); got != "ROOMLIST:ACKSTATUS:0:beta" {
		t.Errorf("player list: got %q", got)
	}
	s.Dispatch(conn, "ROOMLIST:VIEWER")
	if got := conn.last(); got != "ROOMLIST:ACKSTATUS:0:alpha,beta" {
		t.Errorf("viewer list: got %q", got)
	}
}

func TestJoinApply(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob, carol := &fakeConn{id: "a"}, &fakeConn{id: "b"}, &fakeConn{id: "c"}
	login(t, s, alice, "alice")
	login(t, s, bob, "bob")
	login(t, s, carol, "carol")

	s.Dispatch(bob, "JOIN:arena:PLAYER")
	if got := bob.last(); got != "JOIN:ACKSTATUS:1" {
		t.Errorf("no such room: got %q", got)
	}

	s.Dispatch(alice, "CREATE:arena")
	alice.reset()
	bob.reset()

	s.Dispatch(bob, "JOIN:arena:banana")
	if got := bob.last(); got != "JOIN:ACKSTATUS:3" {
		t.Errorf("bad mode: got %q", got)
	}
	bob.reset()

	s.Dispatch(bob, "JOIN:arena:PLAYER")
	if got := []string{"JOIN:ACKSTATUS:0", "BEGIN:alice:bob"}; !reflect.DeepEqual(bob.written, got) {
		t.Errorf("joiner received %v", bob.written)
	}
	if got := alice.last(); got != "BEGIN:alice:bob" {
		t.Errorf("owner received %q", got)
	}

	s.Dispatch(carol, "JOIN:arena:PLAYER")
	if got := carol.last(); got != "JOIN:ACKSTATUS:2" {
		t.Errorf("full room: got %q", got)
	}
}

func TestJoinViewerCatchUp(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob, viewer := &fakeConn{id: "a"}, &fakeConn{id: "b"}, &fakeConn{id: "v"}
	login(t, s, alice, "alice")
	login(t, s, bob, "bob")
	login(t, s, viewer, "viewer")

	s.Dispatch(alice, "CREATE:arena")
	s.Dispatch(bob, "JOIN:arena:PLAYER")
	s.Dispatch(alice, "PLACE:0:0")

	s.Dispatch(viewer, "JOIN:arena:VIEWER")
	want := []string{
		"JOIN:ACKSTATUS:0",
		"INPROGRESS:bob:alice",
		"BOARDSTATUS:100000000",
	}
	if !reflect.DeepEqual(viewer.written, want) {
		t.Errorf("viewer received %v, want %v", viewer.written, want)
	}

	// A viewer joining before any move sees only the ack.
	s.Dispatch(alice, "CREATE:fresh")
	late := &fakeConn{id: "l"}
	login(t, s, late, "late")
	s.Dispatch(late, "JOIN:fresh:VIEWER")
	if !reflect.DeepEqual(late.written, []string{"JOIN:ACKSTATUS:0"}) {
		t.Errorf("fresh room viewer received %v", late.written)
	}
}

func startMatch(t *testing.T, s *ServerState) (alice, bob *fakeConn) {
	t.Helper()
	alice, bob = &fakeConn{id: "a"}, &fakeConn{id: "b"}
	login(t, s, alice, "alice")
	login(t, s, bob, "bob")
	s.Dispatch(alice, "CREATE:arena")
	s.Dispatch(bob, "JOIN:arena:PLAYER")
	alice.reset()
	bob.reset()
	return alice, bob
}

func TestPlaceToWin(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob := startMatch(t, s)

	s.Dispatch(alice, "PLACE:0:0")
	s.Dispatch(bob, "PLACE:0:1")
	s.Dispatch(alice, "PLACE:1:0")
	s.Dispatch(bob, "PLACE:1:1")
	s.Dispatch(alice, "PLACE:2:0")

	want := "GAMEEND:111220000:0:alice"
	if got := alice.last(); got != want {
		t.Errorf("winner received %q, want %q", got, want)
	}
	if got := bob.last(); got != want {
		t.Errorf("loser received %q, want %q", got, want)
	}
	if _, ok := s.Rooms.Get("arena"); ok {
		t.Error("room still registered after game end")
	}
	if _, ok := s.Rooms.RoomOf("alice"); ok {
		t.Error("winner still indexed to a room")
	}
}

func TestPlaceToDraw(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob := startMatch(t, s)

	moves := []struct {
		conn *fakeConn
		line string
	}{
		{alice, "PLACE:0:0"}, {bob, "PLACE:1:0"},
		{alice, "PLACE:2:0"}, {bob, "PLACE:1:1"},
		{alice, "PLACE:0:1"}, {bob, "PLACE:2:1"},
		{alice, "PLACE:1:2"}, {bob, "PLACE:0:2"},
		{alice, "PLACE:2:2"},
	}
	for _, m := range moves {
		s.Dispatch(m.conn, m.line)
	}

	want := "GAMEEND:121122211:1"
	if got := bob.last(); got != want {
		t.Errorf("draw notice = %q, want %q", got, want)
	}
}

func TestPlaceIgnoresIllegalMoves(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob := startMatch(t, s)

	// Not bob's turn.
	s.Dispatch(bob, "PLACE:0:0")
	if len(bob.written) != 0 || len(alice.written) != 0 {
		t.Errorf("out-of-turn move produced output: %v %v", bob.written, alice.written)
	}

	s.Dispatch(alice, "PLACE:0:0")
	alice.reset()
	bob.reset()

	// Occupied cell, still alice's mark there.
	s.Dispatch(bob, "PLACE:0:0")
	if len(bob.written) != 0 {
		t.Errorf("occupied-cell move produced output: %v", bob.written)
	}

	// Malformed coordinates are dropped without a reply.
	for _, line := range []string{"PLACE:9:0", "PLACE:0", "PLACE:a:b"} {
		s.Dispatch(bob, line)
		if len(bob.written) != 0 {
			t.Errorf("%s produced output: %v", line, bob.written)
		}
	}

	// The game is still alive and bob can move legally.
	s.Dispatch(bob, "PLACE:1:1")
	if got := bob.last(); got != "BOARDSTATUS:100020000" {
		t.Errorf("legal move: got %q", got)
	}
}

func TestPlaceOutsideRoom(t *testing.T) {
	s := newTestState(t, 0)
	conn := &fakeConn{}
	login(t, s, conn, "alice")

	s.Dispatch(conn, "PLACE:0:0")
	if got := conn.last(); got != "NOROOM" {
		t.Errorf("got %q, want NOROOM", got)
	}
	s.Dispatch(conn, "FORFEIT")
	if got := conn.last(); got != "NOROOM" {
		t.Errorf("forfeit outside room: got %q, want NOROOM", got)
	}
}

func TestForfeitApply(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob := startMatch(t, s)
	s.Dispatch(alice, "PLACE:0:0")
	alice.reset()
	bob.reset()

	s.Dispatch(alice, "FORFEIT")
	want := "GAMEEND:100000000:2:bob"
	if got := bob.last(); got != want {
		t.Errorf("opponent received %q, want %q", got, want)
	}
	if got := alice.last(); got != want {
		t.Errorf("forfeiter received %q, want %q", got, want)
	}
	if _, ok := s.Rooms.Get("arena"); ok {
		t.Error("room still registered after forfeit")
	}
}

func TestForfeitBeforeOpponent(t *testing.T) {
	s := newTestState(t, 0)
	conn := &fakeConn{}
	login(t, s, conn, "alice")
	s.Dispatch(conn, "CREATE:arena")
	conn.reset()

	s.Dispatch(conn, "FORFEIT")
	// No opponent to notify; the room is just torn down.
	if len(conn.written) != 0 {
		t.Errorf("forfeit in a waiting room produced output: %v", conn.written)
	}
	if _, ok := s.Rooms.Get("arena"); ok {
		t.Error("room still registered")
	}
}

func TestDisconnectForfeitsGame(t *testing.T) {
	s := newTestState(t, 0)
	alice, bob := startMatch(t, s)

	s.Disconnect(alice)
	if got := bob.last(); got != "GAMEEND:000000000:2:bob" {
		t.Errorf("opponent received %q", got)
	}
	if _, ok := s.Rooms.Get("arena"); ok {
		t.Error("room survived the disconnect")
	}

	// The account is free to log in again.
	again := &fakeConn{id: "a2"}
	s.Dispatch(again, "LOGIN:alice:pw")
	if got := again.last(); got != "LOGIN:ACKSTATUS:0" {
		t.Errorf("relogin after disconnect: got %q", got)
	}
}

func TestUnknownCommandIgnored(t *testing.T) {
	s := newTestState(t, 0)
	conn := &fakeConn{}
	s.Dispatch(conn, "BAD:ACTION")
	s.Dispatch(conn, "BANANA")
	if len(conn.written) != 0 {
		t.Errorf("unknown commands produced output: %v", conn.written)
	}
}

func TestActionFactoryFallback(t *testing.T) {
	var out, errb bytes.Buffer
	c := NewClientState(strings.NewReader(""), &out, &errb)
	act := New("BANANA")
	if got := act.BuildRequest(c); got != "BAD:ACTION" {
		t.Errorf("BuildRequest = %q, want BAD:ACTION", got)
	}
}

func renderState(input string) (*ClientState, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	return NewClientState(strings.NewReader(input), &out, &errb), &out, &errb
}

func TestLoginBuildAndRender(t *testing.T) {
	c, out, errb := renderState("alice\nhunter2\n")
	act := &LoginAction{}
	if got := act.BuildRequest(c); got != "LOGIN:alice:hunter2" {
		t.Fatalf("BuildRequest = %q", got)
	}

	act.Render("LOGIN:ACKSTATUS:0", c)
	if !strings.Contains(out.String(), "Welcome alice") {
		t.Errorf("output = %q", out.String())
	}
	if c.Name != "alice" || !c.Authenticated {
		t.Errorf("state after login: Name=%q Authenticated=%v", c.Name, c.Authenticated)
	}

	cases := map[string]string{
		"LOGIN:ACKSTATUS:1": "User not found",
		"LOGIN:ACKSTATUS:2": "Wrong password",
		"LOGIN:ACKSTATUS:3": "Invalid message format",
		"LOGIN:ACKSTATUS:4": "logged in by another user",
	}
	for response, want := range cases {
		errb.Reset()
		act.Render(response, c)
		if !strings.Contains(errb.String(), want) {
			t.Errorf("Render(%q) wrote %q, want substring %q", response, errb.String(), want)
		}
	}
}

func TestRegisterBuildRepromptsLongCredentials(t *testing.T) {
	long := strings.Repeat("a", 21)
	c, out, _ := renderState(long + "\nalice\n" + long + "\npw\n")
	act := &RegisterAction{}
	if got := act.BuildRequest(c); got != "REGISTER:alice:pw" {
		t.Errorf("BuildRequest = %q", got)
	}
	if !strings.Contains(out.String(), "length limitation is 20 characters") {
		t.Errorf("no length warning in %q", out.String())
	}
}

func TestCreateRoomRender(t *testing.T) {
	c, out, _ := renderState("")
	act := &CreateRoomAction{Name: "arena"}

	act.Render("CREATE:ACKSTATUS:0", c)
	if !c.InRoom || !c.Owner || !c.InTurn {
		t.Errorf("flags after create: InRoom=%v Owner=%v InTurn=%v", c.InRoom, c.Owner, c.InTurn)
	}
	if !strings.Contains(out.String(), "Successfully created room arena") {
		t.Errorf("output = %q", out.String())
	}

	cases := map[string]string{
		"BADAUTH":            "must be logged in",
		"CREATE:ACKSTATUS:1": "Room name is invalid",
		"CREATE:ACKSTATUS:2": "Room already exists",
		"CREATE:ACKSTATUS:3": "Maximum number of rooms",
		"CREATE:ACKSTATUS:4": "Invalid room creation format",
		"CREATE:ACKSTATUS:9": "Unrecognized ACKSTATUS 9",
		"CREATE:garbage":     "Unexpected response format",
	}
	for response, want := range cases {
		c, _, errb := renderState("")
		act.Render(response, c)
		if !strings.Contains(errb.String(), want) {
			t.Errorf("Render(%q) wrote %q, want substring %q", response, errb.String(), want)
		}
	}
}

func TestJoinRender(t *testing.T) {
	c, out, _ := renderState("")
	act := &JoinAction{RoomName: "arena", Mode: "PLAYER"}
	act.Render("JOIN:ACKSTATUS:0", c)
	if !c.InRoom || !c.IsPlayer {
		t.Errorf("flags after join: InRoom=%v IsPlayer=%v", c.InRoom, c.IsPlayer)
	}
	if !strings.Contains(out.String(), "Successfully joined room arena as a PLAYER") {
		t.Errorf("output = %q", out.String())
	}

	c, _, _ = renderState("")
	viewer := &JoinAction{RoomName: "arena", Mode: "VIEWER"}
	viewer.Render("JOIN:ACKSTATUS:0", c)
	if !c.InRoom || c.IsPlayer {
		t.Errorf("viewer flags: InRoom=%v IsPlayer=%v", c.InRoom, c.IsPlayer)
	}
}

func TestRoomListRender(t *testing.T) {
	c, out, _ := renderState("")
	act := &RoomListAction{Mode: "PLAYER"}
	act.Render("ROOMLIST:ACKSTATUS:0:alpha,beta", c)
	for _, name := range []string{"alpha", "beta"} {
		if !strings.Contains(out.String(), name+"\n") {
			t.Errorf("room %s missing from %q", name, out.String())
		}
	}

	c, out, _ = renderState("")
	act.Render("ROOMLIST:ACKSTATUS:0:", c)
	if strings.Count(out.String(), "\n") != 1 {
		t.Errorf("empty list output = %q", out.String())
	}
}

func TestBoardStatusRender(t *testing.T) {
	c, out, _ := renderState("")
	(&BoardStatusAction{}).Render("BOARDSTATUS:120000000", c)
	want := " X | O |  \n---+---+---\n   |   |   \n---+---+---\n   |   |   \n"
	if out.String() != want {
		t.Errorf("grid =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestBoardStatusTogglesTurn(t *testing.T) {
	c, out, _ := renderState("")
	c.IsPlayer = true
	c.InTurn = true

	(&BoardStatusAction{}).Render("BOARDSTATUS:100000000", c)
	if c.InTurn {
		t.Error("InTurn still set after own move")
	}
	if !strings.Contains(out.String(), "Your opponent's turn.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	(&BoardStatusAction{}).Render("BOARDSTATUS:100020000", c)
	if !c.InTurn {
		t.Error("InTurn not set after opponent's move")
	}
	if !strings.Contains(out.String(), "It's your turn.") {
		t.Errorf("output = %q", out.String())
	}

	// Spectators never see turn prompts.
	c, out, _ = renderState("")
	(&BoardStatusAction{}).Render("BOARDSTATUS:100000000", c)
	if strings.Contains(out.String(), "turn") {
		t.Errorf("spectator output mentions turns: %q", out.String())
	}
}

func TestGameEndRender(t *testing.T) {
	cases := []struct {
		name     string
		selfName string
		player   bool
		response string
		want     string
	}{
		{"win", "alice", true, "GAMEEND:111220000:0:alice", "Congratulations, you won!"},
		{"loss", "bob", true, "GAMEEND:111220000:0:alice", "Sorry, you lost. Good luck next time."},
		{"spectator", "carol", false, "GAMEEND:111220000:0:alice", "alice has won this game."},
		{"draw", "alice", true, "GAMEEND:121122211:1", "The game ended in a draw."},
		{"forfeit", "alice", true, "GAMEEND:100000000:2:bob", "bob won due to the opposing player forfeiting."},
	}
	for _, tc := range cases {
		c, out, _ := renderState("")
		c.Name = tc.selfName
		c.InRoom = true
		c.IsPlayer = tc.player

		(&GameEndAction{}).Render(tc.response, c)
		if !strings.Contains(out.String(), tc.want) {
			t.Errorf("%s: output %q, want substring %q", tc.name, out.String(), tc.want)
		}
		if c.InRoom || c.IsPlayer || c.InTurn {
			t.Errorf("%s: in-game flags not reset", tc.name)
		}
	}
}

func TestBeginAndInprogressRender(t *testing.T) {
	c, out, _ := renderState("")
	(&BeginAction{}).Render("BEGIN:alice:bob", c)
	if !strings.Contains(out.String(), "Match between alice and bob will commence, it is currently alice's turn.") {
		t.Errorf("BEGIN output = %q", out.String())
	}

	c, out, _ = renderState("")
	(&InprogressAction{}).Render("INPROGRESS:bob:alice", c)
	if !strings.Contains(out.String(), "Match between bob and alice is currently in progress, it is currently bob's turn.") {
		t.Errorf("INPROGRESS output = %q", out.String())
	}
}

func TestPlaceBuildRequestReprompts(t *testing.T) {
	c, out, _ := renderState("9\n1\nbanana\n2\n")
	act := &PlaceAction{}
	if got := act.BuildRequest(c); got != "PLACE:1:2" {
		t.Errorf("BuildRequest = %q", got)
	}
	if strings.Count(out.String(), "must be an integer between 0 and 2") != 2 {
		t.Errorf("prompt output = %q", out.String())
	}
}

func TestPlaceBuildRequestStopsWhenInputEnds(t *testing.T) {
	// One bad coordinate, then a closed stdin: the prompt loop must give up
	// rather than spin on empty reads.
	c, _, _ := renderState("9\n")
	done := make(chan string, 1)
	go func() { done <- (&PlaceAction{}).BuildRequest(c) }()

	select {
	case got := <-done:
		if got != "" {
			t.Errorf("BuildRequest = %q, want empty", got)
		}
	case <-time.After(time.Second):
		t.Fatal("BuildRequest still running after input ended")
	}
}

func TestBuildRequestEmptyWhenInputEnds(t *testing.T) {
	acts := []Action{
		&LoginAction{},
		&RegisterAction{},
		&CreateRoomAction{},
		&JoinAction{},
		&RoomListAction{},
		&PlaceAction{},
	}
	for _, act := range acts {
		c, _, _ := renderState("")
		if got := act.BuildRequest(c); got != "" {
			t.Errorf("%T built %q from exhausted input", act, got)
		}
	}
}
