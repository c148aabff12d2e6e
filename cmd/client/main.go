package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/PierceLe/Tic-tac-toe-socket-server-online/pkg/client"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Error: Expecting 2 arguments: <server address> <port>")
		os.Exit(1)
	}
	host, port := os.Args[1], os.Args[2]
	if _, err := strconv.Atoi(port); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid port number %s\n", port)
		os.Exit(1)
	}

	c, err := client.Dial(host, port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
