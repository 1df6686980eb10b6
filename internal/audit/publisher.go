// Package audit publishes page view events to a redis stream for the audit consumers.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Page names
const (
	PageLocationHistory = "location-history"
	PageLocationDetails = "location-details"
)

// PageView 一次页面访问（谁看了哪个 prisoner 的哪个页面）
type PageView struct {
	Page           string
	Username       string
	PrisonerNumber string
	Details        map[string]string
}

type Publisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
	now    func() time.Time
}

func NewPublisher(client *redis.Client, stream string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, stream: stream, logger: logger, now: time.Now}
}

// Publish XADD the event; returns the generated event id.
func (p *Publisher) Publish(ctx context.Context, view PageView) (string, error) {
	eventID := uuid.NewString()
	values := map[string]interface{}{
		"event_id":        eventID,
		"page":            view.Page,
		"username":        view.Username,
		"prisoner_number": view.PrisonerNumber,
		"timestamp":       p.now().UTC().Format(time.RFC3339),
	}
	for k, v := range view.Details {
		if _, ok := values[k]; !ok {
			values[k] = v
		}
	}
	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Err(); err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", p.stream, err)
	}
	return eventID, nil
}

// Record publishes without failing the caller.
func (p *Publisher) Record(ctx context.Context, view PageView) {
	if p == nil {
		return
	}
	eventID, err := p.Publish(ctx, view)
	if err != nil {
		p.logger.Warn("Failed to publish page view",
			zap.String("page", view.Page),
			zap.String("username", view.Username),
			zap.Error(err),
		)
		return
	}
	p.logger.Debug("Published page view", zap.String("event_id", eventID), zap.String("page", view.Page))
}
