package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ViniDeiro/daily-icu/internal/clock"
	"github.com/ViniDeiro/daily-icu/internal/config"
	"github.com/ViniDeiro/daily-icu/internal/database"
	httpapi "github.com/ViniDeiro/daily-icu/internal/http"
	"github.com/ViniDeiro/daily-icu/internal/logger"
	"github.com/ViniDeiro/daily-icu/internal/repository"
	"github.com/ViniDeiro/daily-icu/internal/service"
	"github.com/ViniDeiro/daily-icu/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "daily-icu")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Redis backs the day-list cache. When it is down the cache stays
	// nil and every read goes to the repository.
	var dayCache *store.DayListCache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err == nil {
		dayCache = store.NewDayListCache(store.NewRedisKV(redisClient), cfg.Cache.DayListTTL)
	} else {
		log.Warn("redis unavailable, day-list cache disabled", zap.Error(err))
	}

	// DB-backed repos when Postgres is reachable, in-memory otherwise
	// so a plain `go run` still serves the API.
	var db *sql.DB
	var patientsRepo repository.PatientsRepository
	var daysRepo repository.DaysRepository
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for daily-icu")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repos", zap.Error(err))
		}
	}
	if db != nil {
		patientsRepo = repository.NewPostgresPatientsRepository(db)
		daysRepo = repository.NewPostgresDaysRepository(db)
	} else {
		patientsRepo = repository.NewMemoryPatientsRepository()
		daysRepo = repository.NewMemoryDaysRepository()
	}

	patientSvc := service.NewPatientService(patientsRepo, log)
	evolutionSvc := service.NewEvolutionService(patientsRepo, daysRepo, dayCache, clock.System(), log)

	router := httpapi.NewRouter(log)
	router.RegisterPatientRoutes(
		httpapi.NewPatientHandler(patientSvc, log),
		httpapi.NewDayHandler(evolutionSvc, log),
	)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		log.Error("server exited", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	_ = database.Close(db)
}
