package chunk

import (
	"context"
	"log/slog"
	"time"

	"healthbot/internal/domain"
	"healthbot/internal/metrics"
)

const retryDelay = 500 * time.Millisecond

// Sender delivers chunks strictly in order: chunk k+1 is not attempted
// until chunk k's attempt (including its retry) has completed. Delivery is
// best-effort; a chunk that still fails after the retry is skipped and
// counted, and the remaining chunks are sent anyway.
type Sender struct {
	deliverer domain.Deliverer
	retries   int
	logger    *slog.Logger
}

func NewSender(deliverer domain.Deliverer, retries int, logger *slog.Logger) *Sender {
	if retries < 0 {
		retries = 0
	}
	return &Sender{deliverer: deliverer, retries: retries, logger: logger}
}

// Send posts every chunk to responseURL in order and returns how many were
// delivered. It stops early only when ctx is done.
func (s *Sender) Send(ctx context.Context, responseURL string, chunks []domain.MessageChunk) int {
	delivered := 0
	for _, c := range chunks {
		if ctx.Err() != nil {
			s.logger.Warn("delivery aborted", "sent", delivered, "total", len(chunks))
			return delivered
		}
		if s.sendOne(ctx, responseURL, c) {
			delivered++
			metrics.ChunksSent.Inc()
		} else {
			metrics.DeliveryFailures.Inc()
		}
	}
	return delivered
}

func (s *Sender) sendOne(ctx context.Context, responseURL string, c domain.MessageChunk) bool {
	for attempt := 0; attempt <= s.retries; attempt++ {
		err := s.deliverer.Deliver(ctx, responseURL, c)
		if err == nil {
			return true
		}
		s.logger.Error("chunk delivery failed",
			"chunk", c.Index,
			"total", c.Total,
			"attempt", attempt+1,
			"err", err,
		)
		if attempt < s.retries {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return false
			}
		}
	}
	return false
}
