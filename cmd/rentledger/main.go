package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentledger/internal/client"
	"rentledger/internal/config"
	httpapi "rentledger/internal/http"
	"rentledger/internal/logger"
	"rentledger/internal/service"
	"rentledger/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "rentledger")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	upstream := client.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	log.Info("Upstream API configured",
		zap.String("base_url", cfg.Upstream.BaseURL),
		zap.Duration("timeout", cfg.Upstream.Timeout))

	roomSvc := service.NewRoomService(upstream, kv, cfg.RoomCacheTTL, log)
	tenantSvc := service.NewTenantService(upstream, log)
	billSvc := service.NewBillService(upstream, log)

	router := httpapi.NewRouter(log)
	router.RegisterManagerRoutes(
		httpapi.NewRoomsHandler(roomSvc, tenantSvc, log),
		httpapi.NewTenantsHandler(tenantSvc, log),
	)
	router.RegisterPublicRoutes(httpapi.NewPublicBillsHandler(billSvc, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		log.Error("HTTP server exited", zap.Error(err))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
}
