package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/homey/internal/config"
	"github.com/MrSnakeDoc/homey/internal/domain"
	"github.com/MrSnakeDoc/homey/internal/editor"
	"github.com/MrSnakeDoc/homey/internal/httpserver"
	"github.com/MrSnakeDoc/homey/internal/httpserver/deps"
	"github.com/MrSnakeDoc/homey/internal/logger"
	"github.com/MrSnakeDoc/homey/internal/redis"
	"github.com/MrSnakeDoc/homey/internal/render"
	"github.com/MrSnakeDoc/homey/internal/sources/configfile"
	"github.com/MrSnakeDoc/homey/internal/store"
	redisstore "github.com/MrSnakeDoc/homey/internal/store/redis"
	"github.com/MrSnakeDoc/homey/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       *store.ConfigStore
}

// New loads the configuration file and wires every component.
// A missing or invalid configuration file is returned as a *configfile.BootError.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	loggerClient.Debug("effective settings", logger.String("settings", fmt.Sprintf("%+v", cfg.Redacted())))

	doc, err := configfile.NewLoader(cfg.ConfigFile).Load()
	if err != nil {
		return nil, err
	}
	loggerClient.Info("configuration loaded",
		logger.String("file", cfg.ConfigFile),
		logger.String("title", doc.Title),
		logger.Int("links", len(doc.Links)))

	configStore := store.NewConfigStore(doc)

	// Redis is optional: without it the mirror and usage learning are disabled
	var redisClient *goredis.Client
	if cfg.RedisEnabled() {
		redisClient = connectRedis(ctx, cfg, loggerClient)
	}
	mirror := redisstore.NewStore(redisClient, cfg.RedisKeyPrefix)
	if mirror.Enabled() {
		checkMirrorDrift(ctx, mirror, doc, loggerClient)
	}

	workflow := editor.NewWorkflow(
		configfile.NewWriter(cfg.ConfigFile),
		configStore,
		loggerClient.Named("editor"),
	)
	if mirror.Enabled() {
		workflow.WithPublisher(mirror)
	}

	renderer := render.New(render.Options{
		AdminEnabled: cfg.AdminEnabled,
		FileName:     filepath.Base(cfg.ConfigFile),
	})

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		AdminCIDRS:   cfg.AdminCIDRS,
		TrustProxy:   cfg.TrustProxy,
		ConfigFile:   cfg.ConfigFile,
		StaticDir:    cfg.StaticDir,
		AdminEnabled: cfg.AdminEnabled,
		MaxSaveBytes: cfg.MaxSaveBytes,
		SaveBurst:    cfg.SaveBurst,
		SavePerMin:   cfg.SavePerMin,
		Store:        configStore,
		Workflow:     workflow,
		Renderer:     renderer,
		Mirror:       mirror,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       configStore,
	}, nil
}

// connectRedis returns nil when Redis cannot be reached; the dashboard runs without it.
func connectRedis(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) *goredis.Client {
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)

	client, err := redis.New(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient.Named("redis"))
	if err != nil {
		loggerClient.Warn("redis unavailable, mirror and usage learning disabled",
			logger.Error(err))
		return nil
	}

	loggerClient.Info("Redis initialized successfully")
	return client
}

// checkMirrorDrift logs when the mirrored copy differs from the file on disk.
// The file always wins; the mirror is refreshed on the next save.
func checkMirrorDrift(ctx context.Context, mirror *redisstore.Store, doc domain.Document, loggerClient logger.Logger) {
	canonical, err := domain.Canonical(doc)
	if err != nil {
		return
	}

	mirrored, err := mirror.MirroredConfig(ctx)
	switch {
	case err != nil:
		loggerClient.Warn("failed to read mirrored config", logger.Error(err))
	case mirrored == nil:
		loggerClient.Debug("no mirrored config yet")
	case !bytes.Equal(mirrored, canonical):
		loggerClient.Info("mirrored config differs from file, file wins")
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("Starting Homey %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Homey %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		a.closeRedis()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()

	a.logger.Info("Homey stopped cleanly",
		logger.Uint64("revisions", a.store.Revision()))
	return nil
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warnf("failed to close redis: %v", err)
		return
	}
	a.logger.Info("Redis closed cleanly")
}
