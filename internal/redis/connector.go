package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/homey/internal/logger"
)

// ConnectOptions defines Redis connection and retry behavior.
type ConnectOptions struct {
	Addr           string        // Redis address (ex: "localhost:6379"), empty disables the mirror
	User           string        // Optional username
	Password       string        // Optional password
	DB             int           // Redis DB number
	DialTimeout    time.Duration // Redis dial timeout
	ReadTimeout    time.Duration // Redis read timeout
	WriteTimeout   time.Duration // Redis write timeout
	PoolSize       int           // Redis connection pool size
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 10s)
	RetryInterval  time.Duration // Initial wait between retries (grows exponentially)
	MaxWait        time.Duration // Max wait between retries
	PingTimeout    time.Duration // Timeout for each ping attempt
}

// retryConfig holds retry policy settings.
type retryConfig struct {
	maxWait      time.Duration
	pingTimeout  time.Duration
	initialWait  time.Duration
	totalTimeout time.Duration
}

// validate ensures the retry policy is usable.
func (o ConnectOptions) validate() error {
	if o.ConnectTimeout <= 0 {
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	}
	if o.RetryInterval <= 0 {
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	}
	if o.MaxWait <= 0 {
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	}
	if o.PingTimeout <= 0 {
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	}
	return nil
}

// New creates a Redis client and waits until it answers a ping.
// It retries with exponential backoff until ConnectTimeout is reached or
// ctx is cancelled. The client is closed when no connection could be made.
func New(ctx context.Context, opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	retry := retryConfig{
		maxWait:      opts.MaxWait,
		pingTimeout:  opts.PingTimeout,
		initialWait:  opts.RetryInterval,
		totalTimeout: opts.ConnectTimeout,
	}

	if err := connectWithRetry(ctx, client, opts.Addr, retry, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// connectWithRetry handles the retry loop with exponential backoff.
func connectWithRetry(parent context.Context, client *redis.Client, addr string, retry retryConfig, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(parent, retry.totalTimeout)
	defer cancel()

	log.Info("connecting to redis",
		logger.String("addr", addr),
		logger.Duration("timeout", retry.totalTimeout))

	attempt := 0
	wait := retry.initialWait

	for {
		attempt++

		pingCtx, pingCancel := context.WithTimeout(ctx, retry.pingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.String("addr", addr),
					logger.Int("attempts", attempt))
			} else {
				log.Info("connected to redis", logger.String("addr", addr))
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
				addr, attempt, retry.totalTimeout, err)

		case <-timer.C:
			log.Warn("redis connection failed, retrying",
				logger.String("addr", addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
			// Exponential backoff with cap
			wait *= 2
			if wait > retry.maxWait {
				wait = retry.maxWait
			}
		}
	}
}
