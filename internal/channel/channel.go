// Package channel defines the transport-neutral chat message model: the
// inbound message shape, the single-reply contract, and the escaping
// rules for markdown-like rich text.
package channel

import (
	"context"
	"time"
)

// MessageFormat identifies how outbound text should be interpreted by
// the transport.
type MessageFormat string

const (
	// MessageFormatPlain is unformatted text.
	MessageFormatPlain MessageFormat = "plain"
	// MessageFormatMarkdown is markdown-like rich text. Dynamic content
	// embedded in it must pass through EscapeMarkdown or
	// EscapeMarkdownCode.
	MessageFormatMarkdown MessageFormat = "markdown"
)

// Message is one inbound chat message, normalized away from the
// transport's update envelope.
type Message struct {
	ChatID     int64
	Text       string
	Sender     string
	ReceivedAt time.Time
}

// Reply is the outbound response to one inbound message. Every handled
// message produces exactly one reply.
type Reply struct {
	Text   string
	Format MessageFormat
}

// Handler consumes one inbound message and returns its reply. Handlers
// never fail: malformed input maps to a reply, not an error.
type Handler func(ctx context.Context, msg Message) Reply
