// README: Entry point; loads config, wires stores and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carzz/internal/ai"
	"carzz/internal/config"
	httptransport "carzz/internal/http"
	"carzz/internal/infra"
	"carzz/internal/logger"
	"carzz/internal/modules/booking"
	"carzz/internal/modules/chat"
	"carzz/internal/modules/pricing"
	"carzz/internal/modules/tracking"
	"carzz/internal/modules/vehicle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		vehicleRepo vehicle.Repository
		bookingRepo booking.Repository
		chatQuota   chat.Quota
		tracker     booking.Tracker
	)

	var cacheClient *redis.Client
	if cfg.Redis.Addr != "" {
		cacheClient = infra.NewRedis(cfg.Redis.Addr)
	}

	switch cfg.Backend {
	case "postgres":
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			zlog.Fatal("db init", zap.Error(err))
		}
		defer pool.Close()
		if err := infra.Migrate(ctx, pool); err != nil {
			zlog.Fatal("migrate", zap.Error(err))
		}
		vehicleRepo = vehicle.NewStore(pool)
		bookingRepo = booking.NewStore(pool)
		chatQuota = chat.NewQuotaStore(pool, cfg.Chat.MonthlyTokens)
		tracker = tracking.NewService(tracking.NewStore(pool, cacheClient))
	case "memory":
		vehicleRepo = vehicle.NewMemStore(vehicle.SeedFleet())
		bookingRepo = booking.NewMemStore()
		tracker = tracking.NewService(tracking.NewStore(nil, cacheClient))
	default:
		zlog.Fatal("unknown backend", zap.String("backend", cfg.Backend))
	}

	var provider ai.LLMProvider
	if cfg.Chat.GeminiKey != "" {
		p, err := ai.NewGeminiProvider(ctx, cfg.Chat.GeminiKey)
		if err != nil {
			zlog.Fatal("gemini init", zap.Error(err))
		}
		defer p.Close()
		provider = p
	}

	catalogSvc := vehicle.NewService(vehicleRepo, cacheClient, cfg.Catalog.CacheTTL)
	pricingSvc := pricing.NewService()
	bookingSvc := booking.NewService(bookingRepo, vehicleRepo, pricingSvc, tracker)
	chatSvc := chat.NewService(provider, chatQuota, zlog)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Catalog:  catalogSvc,
		Pricing:  pricingSvc,
		Bookings: bookingSvc,
		Chat:     chatSvc,
		Log:      zlog,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zlog.Info("listening", zap.String("addr", cfg.HTTP.Addr), zap.String("backend", cfg.Backend))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server", zap.Error(err))
	}
}
