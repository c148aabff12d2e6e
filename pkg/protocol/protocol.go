// Package protocol defines the colon-delimited ASCII wire format spoken
// between the tic-tac-toe client and server. A message is a single line of
// fields joined by ':', e.g. "CREATE:myroom" or "CREATE:ACKSTATUS:0".
package protocol

import "strings"

// Delim separates the fields of a protocol line.
const Delim = ":"

// Commands sent by the client.
const (
	CmdLogin    = "LOGIN"
	CmdRegister = "REGISTER"
	CmdRoomList = "ROOMLIST"
	CmdCreate   = "CREATE"
	CmdJoin     = "JOIN"
	CmdPlace    = "PLACE"
	CmdForfeit  = "FORFEIT"
)

// Notices sent by the server without a preceding request.
const (
	CmdBegin       = "BEGIN"
	CmdInprogress  = "INPROGRESS"
	CmdBoardStatus = "BOARDSTATUS"
	CmdGameEnd     = "GAMEEND"
)

// Sentinel replies carrying no ACKSTATUS code.
const (
	BadAuth = "BADAUTH" // request from an unauthenticated connection
	NoRoom  = "NOROOM"  // in-game request from a connection not in a room
)

// AckStatus marks the second field of a coded reply.
const AckStatus = "ACKSTATUS"

// BadActionLine is sent for input that maps to no known command.
const BadActionLine = "BAD:ACTION"

// LOGIN ack codes.
const (
	LoginOK          = "0"
	LoginUnknownUser = "1"
	LoginBadPassword = "2"
	LoginBadFormat   = "3"
	LoginElsewhere   = "4"
)

// REGISTER ack codes.
const (
	RegisterOK        = "0"
	RegisterDuplicate = "1"
	RegisterBadFormat = "2"
	RegisterTooLong   = "3"
)

// ROOMLIST ack codes.
const (
	RoomListOK      = "0"
	RoomListBadMode = "1"
)

// CREATE ack codes.
const (
	CreateOK        = "0"
	CreateBadName   = "1"
	CreateNameTaken = "2"
	CreateRoomLimit = "3"
	CreateBadFormat = "4"
)

// JOIN ack codes.
const (
	JoinOK        = "0"
	JoinNoRoom    = "1"
	JoinRoomFull  = "2"
	JoinBadFormat = "3"
)

// GAMEEND result codes (third field of a GAMEEND notice).
const (
	EndWin     = "0" // the named player completed a line
	EndDraw    = "1" // the board filled with no winner
	EndForfeit = "2" // the named player won by forfeit
)

// Room membership modes used by ROOMLIST and JOIN.
const (
	ModePlayer = "PLAYER"
	ModeViewer = "VIEWER"
)

// Fields splits a protocol line into its colon-delimited fields, trimming
// surrounding whitespace first. The line's command word is Fields(line)[0].
func Fields(line string) []string {
	return strings.Split(strings.TrimSpace(line), Delim)
}

// Line joins fields into a protocol line.
func Line(fields ...string) string {
	return strings.Join(fields, Delim)
}

// Ack builds a coded reply for a command, e.g. Ack(CmdCreate, CreateOK) ->
// "CREATE:ACKSTATUS:0". Extra fields are appended after the code.
func Ack(command, code string, extra ...string) string {
	fields := append([]string{command, AckStatus, code}, extra...)
	return Line(fields...)
}
