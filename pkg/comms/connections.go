// Package comms wraps client connections so the rest of the server can
// speak protocol lines without caring about the underlying transport.
package comms

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn wraps a client connection, handling line-oriented communication.
type Conn interface {
	// ID returns the connection's unique identifier, used for logging.
	ID() string

	// ReadLine reads the next protocol line from the client.
	ReadLine() (string, error)

	// WriteLine sends a protocol line to the client.
	WriteLine(line string) error

	// Close closes the underlying connection.
	Close() error
}

// TCPConn is a Conn over a raw TCP socket, one message per newline-terminated
// line.
type TCPConn struct {
	id      string
	mu      sync.Mutex
	socket  net.Conn
	scanner *bufio.Scanner
}

// NewTCPConn wraps an accepted TCP socket.
func NewTCPConn(socket net.Conn) *TCPConn {
	return &TCPConn{
		id:      uuid.NewString(),
		socket:  socket,
		scanner: bufio.NewScanner(socket),
	}
}

func (c *TCPConn) ID() string { return c.id }

func (c *TCPConn) ReadLine() (string, error) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", net.ErrClosed
	}
	return c.scanner.Text(), nil
}

func (c *TCPConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.socket.Write([]byte(line + "\n"))
	return err
}

func (c *TCPConn) Close() error {
	return c.socket.Close()
}

// WSConn is a Conn over a websocket, one message per text frame. It lets
// browser clients speak the same line protocol as TCP clients.
type WSConn struct {
	id     string
	mu     sync.Mutex
	socket *websocket.Conn
}

// NewWSConn wraps an upgraded websocket connection.
func NewWSConn(socket *websocket.Conn) *WSConn {
	return &WSConn{id: uuid.NewString(), socket: socket}
}

func (c *WSConn) ID() string { return c.id }

func (c *WSConn) ReadLine() (string, error) {
	_, data, err := c.socket.ReadMessage()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (c *WSConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *WSConn) Close() error {
	return c.socket.Close()
}
