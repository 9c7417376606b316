package middleware

import (
	"context"

	"github.com/reelify-app/backend/internal/common"
	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/router"
	"github.com/reelify-app/backend/pkg/xcontext"
	"github.com/reelify-app/backend/pkg/xredis"
)

type RateLimiter struct {
	redisClient xredis.Client
}

func NewRateLimiter(redisClient xredis.Client) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// Middleware counts requests per user (or per remote address for anonymous
// requests) in a fixed window. The counter key expires with the window, so
// a crashed request can never lock a user out forever.
func (l *RateLimiter) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		cfg := xcontext.Configs(ctx).RateLimit
		if cfg.Limit <= 0 {
			return nil, nil
		}

		identity := xcontext.RequestUserID(ctx)
		if identity == "" {
			identity = xcontext.HTTPRequest(ctx).RemoteAddr
		}

		key := common.RedisKeyRateLimit(identity, xcontext.HTTPRequest(ctx).URL.Path)
		count, err := l.redisClient.Incr(ctx, key)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase rate limit counter: %v", err)
			return nil, nil
		}

		if count == 1 {
			if err := l.redisClient.Expire(ctx, key, cfg.Window); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot set expiration of rate limit counter: %v", err)
			}
		}

		if count > int64(cfg.Limit) {
			return nil, errorx.New(errorx.TooManyRequests, "Too many requests, please try again later")
		}

		return nil, nil
	}
}
