package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const SubmissionStream = "aurora:submissions"

// Events publishes submission events to a redis stream. The in-process
// notifier consumes them; a real notification worker can attach to the
// same stream later.
type Events struct {
	client *redis.Client
}

func NewEvents(client *redis.Client) *Events {
	return &Events{client: client}
}

func (e *Events) PublishSubmission(ctx context.Context, kind, id, username string) error {
	if e == nil || e.client == nil {
		return nil
	}
	_, err := e.client.XAdd(ctx, &redis.XAddArgs{
		Stream: SubmissionStream,
		Values: map[string]any{
			"kind":     kind,
			"id":       id,
			"username": username,
		},
	}).Result()
	return err
}
