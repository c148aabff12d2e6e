package action

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/comms"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/protocol"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/userdb"
)

// LoginAction authenticates a connection as a registered user.
type LoginAction struct {
	Username string
	Password string
}

func (a *LoginAction) BuildRequest(c *ClientState) string {
	a.Username = c.Prompt("Enter username: ")
	a.Password = c.Prompt("Enter password: ")
	if c.EOF() {
		return ""
	}
	return protocol.Line(protocol.CmdLogin, a.Username, a.Password)
}

func (a *LoginAction) Render(response string, c *ClientState) {
	fields := protocol.Fields(response)
	if len(fields) < 3 || fields[1] != protocol.AckStatus {
		fmt.Fprintf(c.Err, "Error: %s\n", response)
		return
	}
	switch fields[2] {
	case protocol.LoginOK:
		fmt.Fprintf(c.Out, "Welcome %s\n", a.Username)
		c.Name = a.Username
		c.Authenticated = true
	case protocol.LoginUnknownUser:
		fmt.Fprintln(c.Err, "Error: User not found")
	case protocol.LoginBadPassword:
		fmt.Fprintln(c.Err, "Error: Wrong password")
	case protocol.LoginBadFormat:
		fmt.Fprintln(c.Err, "Error: Invalid message format of LOGIN")
	case protocol.LoginElsewhere:
		fmt.Fprintln(c.Err, "Error: The account has been logged in by another user")
	}
}

func (a *LoginAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	if len(fields) != 3 {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginBadFormat))
		return
	}
	username, password := fields[1], fields[2]

	exists, err := s.Users.Exists(username)
	if err != nil {
		s.Log.Error("user database lookup failed", zap.Error(err))
		_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginUnknownUser))
		return
	}
	if !exists {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginUnknownUser))
		return
	}

	ok, err := s.Users.Authenticate(username, password)
	if err != nil {
		s.Log.Error("user authentication failed", zap.Error(err))
		_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginBadPassword))
		return
	}
	if !ok {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginBadPassword))
		return
	}
	if s.LoggedIn(username) {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginElsewhere))
		return
	}

	s.SetAuthenticated(conn, username)
	s.Log.Info("user logged in",
		zap.String("conn", conn.ID()),
		zap.String("username", username))
	_ = conn.WriteLine(protocol.Ack(protocol.CmdLogin, protocol.LoginOK))
}

// RegisterAction creates a new user account.
type RegisterAction struct {
	Username string
	Password string
}

func (a *RegisterAction) BuildRequest(c *ClientState) string {
	for {
		a.Username = c.Prompt("Enter username: ")
		if len(a.Username) > userdb.MaxCredentialLength {
			fmt.Fprintf(c.Out, "Error: username length limitation is %d characters\n", userdb.MaxCredentialLength)
			continue
		}
		break
	}
	for {
		a.Password = c.Prompt("Enter password: ")
		if len(a.Password) > userdb.MaxCredentialLength {
			fmt.Fprintf(c.Out, "Error: password length limitation is %d characters\n", userdb.MaxCredentialLength)
			continue
		}
		break
	}
	if c.EOF() {
		return ""
	}
	return protocol.Line(protocol.CmdRegister, a.Username, a.Password)
}

func (a *RegisterAction) Render(response string, c *ClientState) {
	fields := protocol.Fields(response)
	if len(fields) < 3 || fields[1] != protocol.AckStatus {
		fmt.Fprintf(c.Err, "Error: %s\n", response)
		return
	}
	switch fields[2] {
	case protocol.RegisterOK:
		fmt.Fprintf(c.Out, "Successfully created user account %s\n", a.Username)
	case protocol.RegisterDuplicate:
		fmt.Fprintln(c.Err, "Error: User already exists")
	default:
		fmt.Fprintln(c.Err, "Error: Invalid message format of REGISTER")
	}
}

func (a *RegisterAction) Apply(conn comms.Conn, fields []string, s *ServerState) {
	if len(fields) != 3 {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterBadFormat))
		return
	}
	username, password := fields[1], fields[2]
	if len(username) > userdb.MaxCredentialLength || len(password) > userdb.MaxCredentialLength {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterTooLong))
		return
	}

	created, err := s.Users.Register(username, password)
	if err != nil {
		s.Log.Error("user registration failed", zap.Error(err))
		_ = conn.WriteLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterDuplicate))
		return
	}
	if !created {
		_ = conn.WriteLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterDuplicate))
		return
	}
	s.Log.Info("user registered", zap.String("username", username))
	_ = conn.WriteLine(protocol.Ack(protocol.CmdRegister, protocol.RegisterOK))
}
