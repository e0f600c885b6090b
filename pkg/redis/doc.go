// Package redis connects to the optional Redis instance that backs the
// durable completion outbox (queue.RedisOutbox).
//
//	if cfg.Configured() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//	}
//
// Healthcheck adapts a client to the readiness probe signature.
package redis
