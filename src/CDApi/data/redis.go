package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

const streamCases = "casedocket.cases"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishCase appends an accepted case to the event stream consumed by
// downstream feeds. Failures are the caller's to ignore; publishing is
// best-effort and never gates a submission.
func PublishCase(ctx context.Context, rdb *redis.Client, payload map[string]any) error {
	_, err := rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamCases,
		Values: payload,
	}).Result()
	return err
}
