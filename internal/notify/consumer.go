package notify

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"aurora/web/internal/cache"
)

const (
	consumerGroup = "aurora-notify"
	consumerName  = "api"
)

// Consumer drains the submission stream and logs each event. This is
// the attachment point for real notification fan-out (Discord webhook,
// staff email) once one exists.
type Consumer struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewConsumer(client *redis.Client, log zerolog.Logger) *Consumer {
	return &Consumer{client: client, log: log}
}

func (c *Consumer) Start(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, cache.SubmissionStream, consumerGroup, "$").Err()
	if err != nil && err != redis.Nil {
		// BUSYGROUP means the group already exists, which is fine.
		if !isBusyGroup(err) {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    consumerGroup,
			Consumer: consumerName,
			Streams:  []string{cache.SubmissionStream, ">"},
			Count:    16,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			c.log.Error().Err(err).Msg("submission stream read error")
			time.Sleep(2 * time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				c.handle(msg)
				if err := c.client.XAck(ctx, cache.SubmissionStream, consumerGroup, msg.ID).Err(); err != nil {
					c.log.Warn().Err(err).Str("msg_id", msg.ID).Msg("ack failed")
				}
			}
		}
	}
}

func (c *Consumer) handle(msg redis.XMessage) {
	kind, _ := msg.Values["kind"].(string)
	id, _ := msg.Values["id"].(string)
	username, _ := msg.Values["username"].(string)

	c.log.Info().
		Str("kind", kind).
		Str("id", id).
		Str("username", username).
		Msg("new submission received")
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}
