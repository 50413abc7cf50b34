package channel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"healthbot/internal/domain"
)

// ResponseURLDeliverer posts message chunks back to the temporary webhook
// Slack attaches to each slash command.
type ResponseURLDeliverer struct {
	client *http.Client
	logger *slog.Logger
}

// NewResponseURLDeliverer creates a deliverer with a bounded request timeout.
func NewResponseURLDeliverer(logger *slog.Logger) *ResponseURLDeliverer {
	return &ResponseURLDeliverer{
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

func (d *ResponseURLDeliverer) Deliver(ctx context.Context, responseURL string, chunk domain.MessageChunk) error {
	msg := &slack.WebhookMessage{
		ResponseType: "in_channel",
		Text:         chunk.Text,
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, responseURL, d.client, msg); err != nil {
		return fmt.Errorf("post to response_url: %w", err)
	}
	d.logger.Debug("chunk delivered",
		"index", chunk.Index,
		"total", chunk.Total,
		"bytes", len(chunk.Text),
	)
	return nil
}
