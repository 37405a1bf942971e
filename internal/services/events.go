package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"copilot-replica/internal/models"
)

const chatEventsChannel = "chat_events"

// EventPublisher fans chat events out to observers outside the process.
type EventPublisher interface {
	Publish(ctx context.Context, event models.ChatEvent)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.ChatEvent) {}

// RedisPublisher sends events over Redis pub/sub. Nothing is stored.
type RedisPublisher struct {
	redis   *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{redis: client, channel: chatEventsChannel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.ChatEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := p.redis.Publish(ctx, p.channel, string(data)).Err(); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}
