// Package command routes inbound chat messages over the bot's closed
// command set and dispatches each command to its handler.
package command

import "strings"

// Command is one label in the closed command set. The empty value is
// the always-handled fallback for unrecognized input.
type Command string

const (
	// Help lists the available commands.
	Help Command = "/help"
	// Healthcheck probes every visible node and reports its status.
	Healthcheck Command = "/healthcheck"
	// Unknown is the fallback for any unrecognized token.
	Unknown Command = ""
)

// Parse maps the first whitespace-delimited token of an inbound message
// to a command. Matching is exact label equality, no case folding, no
// prefix matching. The raw token is returned alongside so the
// unknown-command reply can echo it.
func Parse(text string) (Command, string) {
	token := ""
	if fields := strings.Fields(text); len(fields) > 0 {
		token = fields[0]
	}
	switch token {
	case string(Help):
		return Help, token
	case string(Healthcheck):
		return Healthcheck, token
	default:
		return Unknown, token
	}
}

// Name returns the command's log and metrics label.
func (c Command) Name() string {
	switch c {
	case Help:
		return "help"
	case Healthcheck:
		return "healthcheck"
	default:
		return "unknown"
	}
}
