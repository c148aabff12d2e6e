// Package client implements the terminal client: it connects to the server,
// turns typed commands into protocol requests and renders server responses.
package client

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/action"
	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/protocol"
)

// Client holds the connection and the session state the rendered responses
// mutate.
type Client struct {
	State *action.ClientState

	conn net.Conn

	// pending maps a command word to the action instance that sent it, so
	// the response render sees the fields the user was prompted for.
	mu      sync.Mutex
	pending map[string]action.Action

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the server and returns a client bound to the process
// terminal.
func Dial(host, port string) (*Client, error) {
	conn, err := net.Dial("tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, fmt.Errorf("cannot connect to server at %s and %s: %w", host, port, err)
	}
	return &Client{
		State:   action.NewTerminalClientState(),
		conn:    conn,
		pending: make(map[string]action.Action),
		done:    make(chan struct{}),
	}, nil
}

// Close shuts the connection down and unblocks the receive loop.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Run drives the session: a goroutine renders server responses while the
// main loop reads commands from the terminal. It returns when the user
// quits or the connection drops.
func (c *Client) Run() error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.receive()
	}()
	defer wg.Wait()
	defer c.Close()

	for !c.closed() {
		c.State.Lock()
		canQuit := c.State.CanQuit
		c.State.Unlock()
		if canQuit {
			break
		}
		line, ok := c.State.ReadLine()
		if !ok {
			break
		}
		command := strings.ToUpper(line)
		if command == "" {
			continue
		}
		if command == "QUIT" {
			c.State.Lock()
			quit := !c.State.InRoom || c.State.IsPlayer
			c.State.Unlock()
			if quit {
				break
			}
		}

		act := action.New(command)
		request := act.BuildRequest(c.State)
		if request == "" {
			continue
		}
		c.remember(protocol.Fields(request)[0], act)
		if _, err := fmt.Fprintln(c.conn, request); err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
	}
	return nil
}

// receive renders every server line until the connection drops.
func (c *Client) receive() {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		response := scanner.Text()
		if strings.TrimSpace(response) == "" {
			continue
		}
		c.HandleResponse(response)
	}
	c.Close()
}

// HandleResponse routes one server line to the action that sent its request,
// or to a fresh action for server-initiated notices. The session flags are
// shared with the command loop, so they and the render run under the state
// lock.
func (c *Client) HandleResponse(response string) {
	command := protocol.Fields(response)[0]
	act := c.takePending(command)

	c.State.Lock()
	defer c.State.Unlock()

	if command == protocol.CmdGameEnd {
		// A waiting viewer has nothing left to do once the game is over.
		if c.State.InRoom && !c.State.IsPlayer && !c.State.Owner {
			c.State.CanQuit = true
			c.Close()
		}
		c.State.InRoom = false
	}

	act.Render(response, c.State)
}

func (c *Client) remember(command string, act action.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[command] = act
}

// takePending removes and returns the action that sent the command, or a
// fresh action for server-initiated notices.
func (c *Client) takePending(command string) action.Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	if act, ok := c.pending[command]; ok {
		delete(c.pending, command)
		return act
	}
	return action.New(command)
}
