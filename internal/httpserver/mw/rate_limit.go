package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/homey/internal/logger"
	"github.com/MrSnakeDoc/homey/internal/utils"
)

// RateLimitConfig configures a per-client-IP token bucket.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int // clients tracked before idle ones are evicted early
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool             // resolve IP from proxy headers when true
	Logger            logger.Logger    // optional, logs rejected requests
	Now               func() time.Time // for testing, defaults to time.Now
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.RefillPerIPPerMin < 1 {
		c.RefillPerIPPerMin = 1
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientTable hands out one limiter per client key and forgets idle clients.
type clientTable struct {
	cfg   RateLimitConfig
	every rate.Limit

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func newClientTable(cfg RateLimitConfig) *clientTable {
	return &clientTable{
		cfg:       cfg,
		every:     rate.Limit(float64(cfg.RefillPerIPPerMin) / 60),
		clients:   make(map[string]*client),
		lastSweep: cfg.Now(),
	}
}

func (t *clientTable) limiterFor(key string, now time.Time) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	full := t.cfg.MaxEntries > 0 && len(t.clients) >= t.cfg.MaxEntries
	if full || now.Sub(t.lastSweep) >= t.cfg.SweepInterval {
		t.evictIdle(now)
	}

	c, ok := t.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(t.every, t.cfg.Burst)}
		t.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

func (t *clientTable) evictIdle(now time.Time) {
	for key, c := range t.clients {
		if now.Sub(c.lastSeen) > t.cfg.IdleTTL {
			delete(t.clients, key)
		}
	}
	t.lastSweep = now
}

// take spends one token. When the bucket is empty it returns the whole
// seconds until the next token instead, and spends nothing.
func take(lim *rate.Limiter, now time.Time) (remaining, retryAfter int) {
	res := lim.ReserveN(now, 1)
	if wait := res.DelayFrom(now); wait > 0 {
		res.CancelAt(now)
		return 0, max(int(math.Ceil(wait.Seconds())), 1)
	}
	return max(int(lim.TokensAt(now)), 0), 0
}

// RateLimit rejects requests with 429 once a client IP has used up its bucket.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()
	table := newClientTable(cfg)
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := cfg.Now()
			ip := utils.ClientIP(r, cfg.TrustProxy)
			remaining, retryAfter := take(table.limiterFor(ip, now), now)

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if retryAfter > 0 {
				if cfg.Logger != nil {
					cfg.Logger.Info("rate limit exceeded",
						logger.String("ip", ip),
						logger.String("path", r.URL.Path),
						logger.Int("retry_after", retryAfter))
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
