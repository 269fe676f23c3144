package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/MrSnakeDoc/homey/internal/logger"
)

// EnvPrefix is prepended to every configuration key when read from the environment
const EnvPrefix = "HOMEY"

// Configuration keys. Environment variables are EnvPrefix + "_" + upper-cased key,
// e.g. HOMEY_CONFIG_FILE.
const (
	KeyListenPort      = "listen_port"
	KeyShutdownTimeout = "shutdown_timeout"
	KeyRequestTimeout  = "request_timeout"
	KeyLogLevel        = "log_level"
	KeyPrettyLog       = "pretty_log"

	KeyConfigFile   = "config_file"
	KeyStaticDir    = "static_dir"
	KeyAdminEnabled = "admin_enabled"
	KeyMaxSaveBytes = "max_save_bytes"
	KeySaveBurst    = "save_burst"
	KeySavePerMin   = "save_per_min"

	KeyAllowedHosts = "allowed_hosts"
	KeyAllowedCIDRS = "allowed_cidrs"
	KeyAdminCIDRS   = "admin_cidrs"
	KeyTrustProxy   = "trust_proxy"

	KeyRedisAddr           = "redis_addr"
	KeyRedisUser           = "redis_username"
	KeyRedisPassword       = "redis_password"
	KeyRedisDB             = "redis_db"
	KeyRedisKeyPrefix      = "redis_key_prefix"
	KeyRedisDialTimeout    = "redis_dial_timeout"
	KeyRedisReadTimeout    = "redis_read_timeout"
	KeyRedisWriteTimeout   = "redis_write_timeout"
	KeyRedisPoolSize       = "redis_pool_size"
	KeyRedisConnectTimeout = "redis_connect_timeout"
	KeyRedisRetryInterval  = "redis_retry_interval"
	KeyRedisMaxWait        = "redis_max_wait"
	KeyRedisPingTimeout    = "redis_ping_timeout"
)

type Config struct {
	ListenPort      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout applied by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ConfigFile   string // path to the dashboard JSON file
	StaticDir    string // directory served under /static
	AdminEnabled bool   // mount /admin and /admin/save
	MaxSaveBytes int64  // request body cap for /admin/save
	SaveBurst    int    // rate limit burst for /admin/save per client IP
	SavePerMin   int    // rate limit refill per client IP per minute

	AllowedHosts []string // optional, restrict admin access to specific Host headers
	AllowedCIDRS []string // optional, restrict healthz/readyz/infra to specific IPs/CIDRs
	AdminCIDRS   []string // optional, restrict /admin to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Redis (optional): config mirror and jump usage counters
	RedisAddr           string // empty => disabled
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisKeyPrefix      string
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting at boot
	RedisRetryInterval  time.Duration // initial wait between retries
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
}

// SetDefaults registers every default value and enables environment lookup.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyListenPort, ":3000")
	v.SetDefault(KeyShutdownTimeout, 5*time.Second)
	v.SetDefault(KeyRequestTimeout, 10*time.Second)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyPrettyLog, true)

	v.SetDefault(KeyConfigFile, "config.json")
	v.SetDefault(KeyStaticDir, "static")
	v.SetDefault(KeyAdminEnabled, true)
	v.SetDefault(KeyMaxSaveBytes, 1<<20)
	v.SetDefault(KeySaveBurst, 10)
	v.SetDefault(KeySavePerMin, 30)

	v.SetDefault(KeyAllowedHosts, "")
	v.SetDefault(KeyAllowedCIDRS, "")
	v.SetDefault(KeyAdminCIDRS, "")
	v.SetDefault(KeyTrustProxy, false)

	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeyRedisUser, "")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisKeyPrefix, "homey:")
	v.SetDefault(KeyRedisDialTimeout, 5*time.Second)
	v.SetDefault(KeyRedisReadTimeout, 3*time.Second)
	v.SetDefault(KeyRedisWriteTimeout, 3*time.Second)
	v.SetDefault(KeyRedisPoolSize, 10)
	v.SetDefault(KeyRedisConnectTimeout, 10*time.Second)
	v.SetDefault(KeyRedisRetryInterval, 1*time.Second)
	v.SetDefault(KeyRedisMaxWait, 5*time.Second)
	v.SetDefault(KeyRedisPingTimeout, 2*time.Second)
}

// Load builds the configuration from v (defaults, environment, bound flags).
// SetDefaults must have been called on v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		// Server settings
		ListenPort:      v.GetString(KeyListenPort),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		RequestTimeout:  v.GetDuration(KeyRequestTimeout),

		// Logging
		LogLevel:  strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		PrettyLog: v.GetBool(KeyPrettyLog),

		// Dashboard
		ConfigFile:   strings.TrimSpace(v.GetString(KeyConfigFile)),
		StaticDir:    v.GetString(KeyStaticDir),
		AdminEnabled: v.GetBool(KeyAdminEnabled),
		MaxSaveBytes: v.GetInt64(KeyMaxSaveBytes),
		SaveBurst:    v.GetInt(KeySaveBurst),
		SavePerMin:   v.GetInt(KeySavePerMin),

		// Access restrictions
		AllowedHosts: splitAndTrim(v.GetString(KeyAllowedHosts)),
		AllowedCIDRS: splitAndTrim(v.GetString(KeyAllowedCIDRS)),
		AdminCIDRS:   splitAndTrim(v.GetString(KeyAdminCIDRS)),
		TrustProxy:   v.GetBool(KeyTrustProxy),

		// Redis settings
		RedisAddr:           strings.TrimSpace(v.GetString(KeyRedisAddr)),
		RedisUser:           v.GetString(KeyRedisUser),
		RedisPassword:       v.GetString(KeyRedisPassword),
		RedisDB:             v.GetInt(KeyRedisDB),
		RedisKeyPrefix:      v.GetString(KeyRedisKeyPrefix),
		RedisDT:             v.GetDuration(KeyRedisDialTimeout),
		RedisRT:             v.GetDuration(KeyRedisReadTimeout),
		RedisWT:             v.GetDuration(KeyRedisWriteTimeout),
		RedisPoolSize:       v.GetInt(KeyRedisPoolSize),
		RedisConnectTimeout: v.GetDuration(KeyRedisConnectTimeout),
		RedisRetryInterval:  v.GetDuration(KeyRedisRetryInterval),
		RedisMaxWait:        v.GetDuration(KeyRedisMaxWait),
		RedisPingTimeout:    v.GetDuration(KeyRedisPingTimeout),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.ConfigFile == "" {
		errs = append(errs, fmt.Errorf("%s_%s must not be empty", EnvPrefix, strings.ToUpper(KeyConfigFile)))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must be > 0, got %v", c.ShutdownTimeout))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be > 0, got %v", c.RequestTimeout))
	}
	if c.MaxSaveBytes <= 0 {
		errs = append(errs, fmt.Errorf("max save bytes must be > 0, got %d", c.MaxSaveBytes))
	}

	return errors.Join(errs...)
}

// RedisEnabled reports whether a Redis address is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Redacted returns a copy safe to log
func (c Config) Redacted() Config {
	if c.RedisPassword != "" {
		c.RedisPassword = "***REDACTED***"
	}
	if c.RedisUser != "" {
		c.RedisUser = "***REDACTED***"
	}
	return c
}

// splitAndTrim parses comma-separated lists from the environment
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
