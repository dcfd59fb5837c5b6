package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"focozero-data/internal/config"
	"focozero-data/internal/database"
	httpapi "focozero-data/internal/http"
	"focozero-data/internal/logger"
	"focozero-data/internal/repository"
	"focozero-data/internal/service"
	"focozero-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "focozero-data")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting focozero-data service")

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer database.Close(db)

	redisClient := store.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := store.Ping(context.Background(), redisClient); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	kv := store.NewRedisKV(redisClient)
	locker := store.NewMutex(redisClient, time.Duration(cfg.Rollup.LockTTL)*time.Second)

	usersRepo := repository.NewPostgresUsersRepository(db)
	areasRepo := repository.NewPostgresAreasRepository(db)
	blocksRepo := repository.NewPostgresBlocksRepository(db)
	propertiesRepo := repository.NewPostgresPropertiesRepository(db)
	visitsRepo := repository.NewPostgresVisitsRepository(db)
	dailyLogsRepo := repository.NewPostgresDailyLogsRepository(db)
	weeklyLogsRepo := repository.NewPostgresWeeklyLogsRepository(db)
	cyclesRepo := repository.NewPostgresCyclesRepository(db)

	areaService := service.NewAreaService(areasRepo, usersRepo, log)
	blockService := service.NewBlockService(blocksRepo, areasRepo, usersRepo, log)
	propertyService := service.NewPropertyService(propertiesRepo, blocksRepo, log)
	visitService := service.NewVisitService(visitsRepo, propertiesRepo, log)
	dailyLogService := service.NewDailyLogService(visitsRepo, blocksRepo, dailyLogsRepo, locker, log)
	weeklyLogService := service.NewWeeklyLogService(dailyLogsRepo, weeklyLogsRepo, blocksRepo, locker, log)
	cycleService := service.NewCycleService(usersRepo, areasRepo, propertiesRepo, weeklyLogsRepo,
		cyclesRepo, kv, time.Duration(cfg.Rollup.SummaryCacheTTL)*time.Second, log)

	router := httpapi.NewRouter(log)
	router.RegisterRoutes(
		httpapi.NewAreaHandler(areaService, log),
		httpapi.NewBlockHandler(blockService, log),
		httpapi.NewPropertyHandler(propertyService, log),
		httpapi.NewVisitHandler(visitService, log),
		httpapi.NewLogHandler(dailyLogService, weeklyLogService, log),
		httpapi.NewCycleHandler(cycleService, log),
	)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping server", zap.Error(err))
	}

	log.Info("Service stopped")
}
