package feed

import (
	"context"
	"encoding/json"

	domainfeed "autolot-service/internal/domain/feed"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler receives each decoded change event.
type Handler func(ev *domainfeed.Event)

// Subscriber listens on the per-table channels and dispatches events to a
// handler. One subscription is established per session and torn down with
// the context; a dropped feed is not re-established.
type Subscriber struct {
	client *redis.Client
	logger *zap.Logger
}

func NewSubscriber(client *redis.Client, logger *zap.Logger) *Subscriber {
	return &Subscriber{client: client, logger: logger}
}

// Run blocks reading the feed until ctx is done. Malformed payloads are
// logged and skipped.
func (s *Subscriber) Run(ctx context.Context, handler Handler) {
	sub := s.client.Subscribe(ctx,
		domainfeed.TableVehicles.Channel(),
		domainfeed.TableTransactions.Channel(),
	)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warn("change feed closed")
				return
			}
			var ev domainfeed.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				s.logger.Error("failed to decode feed event",
					zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			handler(&ev)
		}
	}
}
