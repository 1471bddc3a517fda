// Package feed carries change notifications between sessions over redis
// pub/sub, one channel per remote table. It is the realtime half of the
// synchronizer: remote writes publish events, every open session's
// subscriber patches its local mirror from them.
package feed

import (
	"context"
	"encoding/json"
	"fmt"

	domainfeed "autolot-service/internal/domain/feed"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher pushes change events onto the per-table channels. Publishing
// is best-effort: a lost event degrades freshness, not correctness, since
// startup reconciliation resyncs wholesale.
type Publisher struct {
	client *redis.Client
	logger *zap.Logger
}

func NewPublisher(client *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, ev *domainfeed.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}

	if err := p.client.Publish(ctx, ev.Table.Channel(), raw).Err(); err != nil {
		return fmt.Errorf("failed to publish feed event: %w", err)
	}
	return nil
}
