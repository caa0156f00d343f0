// Package node holds the fleet model: the probe targets the bot knows
// about and the visibility policy deciding which of them a conversation
// may see.
package node

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Node identifies one remote probe target. Two nodes are equal iff host
// and port match; values are immutable once constructed.
type Node struct {
	Host string
	Port int
}

// New builds a Node, stripping surrounding whitespace from the host.
func New(host string, port int) Node {
	return Node{Host: strings.TrimSpace(host), Port: port}
}

// String renders the node identity used in all user-facing output.
func (n Node) String() string {
	return fmt.Sprintf("%s:%d", n.Host, n.Port)
}

// HTTPURL derives the node's HTTP endpoint for the given path suffix.
// IPv6 literal hosts come out bracketed.
func (n Node) HTTPURL(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "http://" + net.JoinHostPort(n.Host, strconv.Itoa(n.Port)) + path
}
