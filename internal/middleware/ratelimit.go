package middleware

import (
	"fmt"
	"net/http"

	logpkg "github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/request"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

const (
	// DefaultRateLimit allows 20 requests per second per client
	DefaultRateLimit = "20-S"
	rateLimitPrefix  = "datenight:ratelimit"
)

// RateLimit returns per-client rate limiting middleware keyed on request.ClientIP.
// The rate uses the limiter format ("20-S", "1000-H"). Counters live in Redis
// when a client is given, otherwise in process memory.
func RateLimit(rate string, redisClient *redis.Client, logger *zap.Logger) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = DefaultRateLimit
	}
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	var store limiter.Store
	if redisClient != nil {
		store, err = redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	instance := limiter.New(store, parsed)
	mw := stdlibmw.NewMiddleware(instance,
		stdlibmw.WithKeyGetter(request.ClientIP),
		stdlibmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			respondErrorJSON(w, r, http.StatusTooManyRequests, "Rate limit exceeded, try again later", logger)
		}),
		stdlibmw.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("rate_limit_store_error",
				zap.String("error", logpkg.SanitizeError(err)),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
			)
			respondErrorJSON(w, r, http.StatusInternalServerError, "Rate limiter unavailable", logger)
		}),
	)
	return mw.Handler, nil
}
