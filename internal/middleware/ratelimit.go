package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"

	"github.com/velourstudio/salon-scheduler/internal/httperr"
)

// RateLimit throttles the public endpoints per client IP. With Redis
// configured the limit is a fixed window shared across instances;
// without it each process falls back to local token buckets.
type RateLimit struct {
	rdb    *redis.Client
	limit  int
	window time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimit(rdb *redis.Client, limit int, window time.Duration) *RateLimit {
	return &RateLimit{
		rdb:     rdb,
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
	}
}

func (rl *RateLimit) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, err := rl.allow(c, ip)
		if err != nil {
			// A limiter outage must not take the API down.
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			httperr.TooManyRequests(c, "Too many requests. Try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimit) allow(c *gin.Context, ip string) (bool, error) {
	if rl.rdb == nil {
		return rl.allowLocal(ip), nil
	}

	key := "ratelimit:" + ip

	count, err := rl.rdb.Incr(c.Request.Context(), key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		rl.rdb.Expire(c.Request.Context(), key, rl.window)
	}

	return count <= int64(rl.limit), nil
}

func (rl *RateLimit) allowLocal(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{
			limiter: rate.NewLimiter(
				rate.Every(rl.window/time.Duration(rl.limit)),
				rl.limit,
			),
		}
		rl.buckets[ip] = b
	}
	b.lastSeen = now

	// Opportunistic eviction of idle buckets.
	if len(rl.buckets) > 10000 {
		for k, v := range rl.buckets {
			if now.Sub(v.lastSeen) > time.Hour {
				delete(rl.buckets, k)
			}
		}
	}

	return b.limiter.Allow()
}
