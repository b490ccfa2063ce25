package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campushare/campushare-backend/internal/data/db"
	"github.com/campushare/campushare-backend/internal/observability"
	"github.com/campushare/campushare-backend/internal/pkg/envutil"
	"github.com/campushare/campushare-backend/internal/pkg/logger"
	"github.com/campushare/campushare-backend/internal/realtime"
	"github.com/campushare/campushare-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	SSEHub   *realtime.SSEHub

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "campushare",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	sseHub := realtime.NewSSEHub(log)

	// Redis fan-out is optional; single-instance deployments skip it.
	var sseBus bus.Bus
	if os.Getenv("REDIS_ADDR") != "" {
		sseBus, err = bus.NewRedisBus(log)
		if err != nil {
			log.Sync()
			return nil, fmt.Errorf("init redis bus: %w", err)
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, sseHub, sseBus)
	handlerset := wireHandlers(log, serviceset, sseHub)
	middlewareset := wireMiddleware(log, cfg, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		SSEHub:       sseHub,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.SSEBus != nil {
		err := a.Services.SSEBus.StartForwarder(ctx, func(m realtime.SSEMessage) {
			a.SSEHub.Broadcast(m)
		})
		if err != nil {
			a.Log.Error("Failed to start SSE bus forwarder", "error", err)
		}
	}

	// Background score refresh. SCORE_REFRESH_MINUTES=0 disables it; callers
	// can still recompute on demand through the leaderboard endpoint.
	if minutes := envutil.GetEnvAsInt("SCORE_REFRESH_MINUTES", 0, a.Log); minutes > 0 {
		go a.runScoreRefresh(ctx, time.Duration(minutes)*time.Minute)
	}
}

func (a *App) runScoreRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.Services.Reputation.RecomputeAll(ctx); err != nil {
				a.Log.Error("Scheduled score refresh failed", "error", err)
			}
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Services.SSEBus != nil {
		_ = a.Services.SSEBus.Close()
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
