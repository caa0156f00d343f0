package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nodewatchhq/nodewatch/internal/channel"
	"github.com/nodewatchhq/nodewatch/internal/healthcheck"
	"github.com/nodewatchhq/nodewatch/internal/metrics"
)

const (
	// HelpText is the /help reply. The list is maintained by hand and
	// has to grow together with the command set above.
	HelpText = "Available commands:\n" +
		"    /help - view this information\n" +
		"    /healthcheck - probe every visible node and report its status"

	// NoVisibleNodesText replaces the report when a conversation has
	// no nodes to probe.
	NoVisibleNodesText = "there's no visible nodes available"
)

// HealthcheckRunner runs a full probe cycle for one conversation.
type HealthcheckRunner interface {
	Run(ctx context.Context, chatID int64) healthcheck.Report
}

// Router turns inbound messages into replies. Every message produces
// exactly one reply, unknown and malformed input included.
type Router struct {
	logger  *slog.Logger
	runner  HealthcheckRunner
	metrics *metrics.Metrics
}

// NewRouter creates a router backed by the given healthcheck runner.
func NewRouter(log *slog.Logger, runner HealthcheckRunner, m *metrics.Metrics) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		logger:  log.With(slog.String("component", "command_router")),
		runner:  runner,
		metrics: m,
	}
}

// Handle dispatches one inbound message and returns its reply.
func (r *Router) Handle(ctx context.Context, msg channel.Message) channel.Reply {
	cmd, token := Parse(msg.Text)
	r.metrics.IncCommand(cmd.Name())
	r.logger.Info("command received",
		slog.String("command", cmd.Name()),
		slog.Int64("chat_id", msg.ChatID),
		slog.String("sender", msg.Sender),
	)

	switch cmd {
	case Help:
		return channel.Reply{Text: HelpText, Format: channel.MessageFormatPlain}
	case Healthcheck:
		report := r.runner.Run(ctx, msg.ChatID)
		if report.Empty() {
			return channel.Reply{Text: NoVisibleNodesText, Format: channel.MessageFormatPlain}
		}
		return healthcheck.RenderReport(report)
	default:
		return channel.Reply{
			Text:   fmt.Sprintf("Unknown command '%s'. Try /help to see the list of available commands", token),
			Format: channel.MessageFormatPlain,
		}
	}
}
