package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/berkayda/hawkeye-public/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultTelegramTimeout = 30 * time.Second

// Notifier delivers operator messages and chart artifacts to a chat.
type Notifier interface {
	// SendText sends a Telegram-markdown formatted message.
	SendText(ctx context.Context, chatID int64, markdown string) error
	// SendImage sends an image, e.g. the JPEG chart snapshot.
	SendImage(ctx context.Context, chatID int64, name string, data []byte) error
	// SendDocument sends an arbitrary file, e.g. the chart HTML.
	SendDocument(ctx context.Context, chatID int64, name string, data []byte) error
}

// TelegramClient implements Notifier over the Telegram Bot API.
type TelegramClient struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramClient authenticates the bot token against the Bot API.
// endpoint is a format string like tgbotapi.APIEndpoint; empty means the public API.
func NewTelegramClient(token, endpoint string) (*TelegramClient, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: defaultTelegramTimeout})
	if err != nil {
		return nil, domain.WithKind(domain.ErrDelivery, errors.Wrap(err, "failed to authorize telegram bot"))
	}

	return &TelegramClient{bot: bot}, nil
}

// SendText sends markdown to chatID.
func (c *TelegramClient) SendText(ctx context.Context, chatID int64, markdown string) error {
	msg := tgbotapi.NewMessage(chatID, markdown)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return c.send(ctx, msg, "message")
}

// SendImage uploads data as a photo.
func (c *TelegramClient) SendImage(ctx context.Context, chatID int64, name string, data []byte) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	return c.send(ctx, photo, "photo")
}

// SendDocument uploads data as a document.
func (c *TelegramClient) SendDocument(ctx context.Context, chatID int64, name string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	return c.send(ctx, doc, "document")
}

func (c *TelegramClient) send(ctx context.Context, msg tgbotapi.Chattable, kind string) error {
	if err := ctx.Err(); err != nil {
		return domain.WithKind(domain.ErrDelivery, err)
	}
	if _, err := c.bot.Send(msg); err != nil {
		return domain.WithKind(domain.ErrDelivery, errors.Wrapf(err, "failed to send telegram %s", kind))
	}
	return nil
}

// LogNotifier implements Notifier by logging, for runs without a bot token.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that only writes to the log.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendText logs the message.
func (n *LogNotifier) SendText(_ context.Context, chatID int64, markdown string) error {
	n.logger.Info("notification", zap.Int64("chat_id", chatID), zap.String("text", markdown))
	return nil
}

// SendImage logs the image metadata.
func (n *LogNotifier) SendImage(_ context.Context, chatID int64, name string, data []byte) error {
	n.logger.Info("notification image", zap.Int64("chat_id", chatID), zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

// SendDocument logs the document metadata.
func (n *LogNotifier) SendDocument(_ context.Context, chatID int64, name string, data []byte) error {
	n.logger.Info("notification document", zap.Int64("chat_id", chatID), zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}
