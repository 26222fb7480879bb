// Package redis provides connection helpers for the Redis-backed session
// store: URL-based configuration, connect-with-retry, and a healthcheck
// suitable for readiness probes.
//
// Example:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := session.NewRedisStore(client)
package redis
