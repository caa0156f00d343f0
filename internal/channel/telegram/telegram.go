// Package telegram runs the bot's chat transport against the Telegram
// Bot API using long polling.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nodewatchhq/nodewatch/internal/channel"
)

const (
	// maxMessageLength is Telegram's hard cap on outbound message text.
	maxMessageLength = 4096
	// pollTimeoutSeconds is the long-poll timeout passed to getUpdates.
	pollTimeoutSeconds = 30
)

// Bot receives Telegram messages and answers each one through the
// configured handler.
type Bot struct {
	logger  *slog.Logger
	token   string
	handler channel.Handler

	api     *tgbotapi.BotAPI
	updates tgbotapi.UpdatesChannel
	cancel  context.CancelFunc
}

// NewBot creates a Bot. It validates its inputs but does not touch the
// network; Start does.
func NewBot(log *slog.Logger, token string, handler channel.Handler) (*Bot, error) {
	if log == nil {
		log = slog.Default()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	if handler == nil {
		return nil, errors.New("telegram: message handler is required")
	}
	b := &Bot{
		logger:  log.With(slog.String("adapter", "telegram")),
		token:   token,
		handler: handler,
	}
	_ = tgbotapi.SetLogger(&slogBotLogger{log: b.logger})
	return b, nil
}

// Start connects to the Bot API and begins consuming updates. The
// polling loop runs until ctx is done or Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	api, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("connect to telegram: %w", err)
	}
	b.api = api
	b.logger.Info("connected", slog.String("username", api.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds
	b.updates = api.GetUpdatesChan(updateConfig)

	pollCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	go b.poll(pollCtx)
	return nil
}

func (b *Bot) poll(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-b.updates:
			if !ok {
				b.logger.Info("updates channel closed")
				return
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}
			text := strings.TrimSpace(update.Message.Text)
			if text == "" {
				continue
			}
			msg := channel.Message{
				ChatID:     update.Message.Chat.ID,
				Text:       text,
				Sender:     senderName(update.Message.From),
				ReceivedAt: time.Unix(int64(update.Message.Date), 0).UTC(),
			}
			b.logger.Info("inbound received",
				slog.Int64("chat_id", msg.ChatID),
				slog.String("sender", msg.Sender),
				slog.String("text", summarizeText(msg.Text)),
			)
			go b.handleMessage(ctx, msg)
		}
	}
}

// handleMessage answers one inbound message. A reply is dropped once
// the context is done, so a shutdown mid-run never sends a partial
// report.
func (b *Bot) handleMessage(ctx context.Context, msg channel.Message) {
	if err := b.sendTyping(msg.ChatID); err != nil {
		b.logger.Debug("chat action failed", slog.Int64("chat_id", msg.ChatID), slog.Any("error", err))
	}
	reply := b.handler(ctx, msg)
	if strings.TrimSpace(reply.Text) == "" {
		return
	}
	if ctx.Err() != nil {
		b.logger.Info("reply dropped", slog.Int64("chat_id", msg.ChatID))
		return
	}
	if err := b.send(msg.ChatID, reply); err != nil {
		b.logger.Error("send failed", slog.Int64("chat_id", msg.ChatID), slog.Any("error", err))
	}
}

var (
	sendMessageForTest    func(api *tgbotapi.BotAPI, msg tgbotapi.MessageConfig) error
	sendChatActionForTest func(api *tgbotapi.BotAPI, action tgbotapi.ChatActionConfig) error
)

func (b *Bot) send(chatID int64, reply channel.Reply) error {
	text := sanitizeText(reply.Text)
	mode := parseMode(reply.Format)
	if len(text) > maxMessageLength {
		// The cut can land inside an escape sequence or a code span,
		// which would make the whole message unparseable. An oversized
		// reply goes out as plain text.
		text = truncateText(text)
		mode = ""
	}
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = mode
	send := sendMessageForTest
	if send == nil {
		send = func(api *tgbotapi.BotAPI, msg tgbotapi.MessageConfig) error { _, err := api.Send(msg); return err }
	}
	return send(b.api, out)
}

func (b *Bot) sendTyping(chatID int64) error {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	send := sendChatActionForTest
	if send == nil {
		send = func(api *tgbotapi.BotAPI, a tgbotapi.ChatActionConfig) error { _, err := api.Request(a); return err }
	}
	return send(b.api, action)
}

// Stop shuts the polling loop down. Safe to call when Start never ran.
func (b *Bot) Stop(_ context.Context) error {
	if b.api == nil {
		return nil
	}
	b.api.StopReceivingUpdates()
	if b.cancel != nil {
		b.cancel()
	}
	// Drain remaining updates so the library's polling goroutine can
	// finish writing and exit. Without this, the in-flight long-poll
	// HTTP request keeps the old getUpdates session alive, causing
	// "Conflict: terminated by other getUpdates request" when a new
	// connection starts with the same bot token.
	for range b.updates {
	}
	b.logger.Info("stopped")
	return nil
}

func parseMode(format channel.MessageFormat) string {
	if format == channel.MessageFormatMarkdown {
		return tgbotapi.ModeMarkdownV2
	}
	return ""
}

// sanitizeText ensures text is valid UTF-8 for the Telegram API,
// stripping invalid byte sequences.
func sanitizeText(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "")
}

// truncateText truncates text to maxMessageLength on a valid UTF-8
// rune boundary, appending "..." when truncation occurs.
func truncateText(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	const suffix = "..."
	limit := maxMessageLength - len(suffix)
	// Walk backwards to a rune boundary.
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + suffix
}

func senderName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	if name := strings.TrimSpace(from.UserName); name != "" {
		return name
	}
	return strings.TrimSpace(from.FirstName + " " + from.LastName)
}

// summarizeText shortens inbound text for log lines.
func summarizeText(text string) string {
	const limit = 64
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// slogBotLogger routes the Bot API library's internal logging through
// slog at debug level.
type slogBotLogger struct {
	log *slog.Logger
}

func (l *slogBotLogger) Println(v ...interface{}) {
	l.log.Debug(fmt.Sprint(v...))
}

func (l *slogBotLogger) Printf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
