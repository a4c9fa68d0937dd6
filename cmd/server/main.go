package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studypulse/internal/cache"
	"studypulse/internal/config"
	"studypulse/internal/platform/logger"
	"studypulse/internal/repository"
	"studypulse/internal/service"
	"studypulse/internal/transport/rest"
	"studypulse/internal/transport/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		logg.Info("AI generation enabled",
			"answerModel", aiConfig.Models.Answer,
			"practiceModel", aiConfig.Models.Practice)
	} else {
		logg.Warn("OPENAI_API_KEY not set, using mock generator")
	}

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logg.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logg.Fatal("failed to ping MongoDB", "error", err)
	}
	logg.Info("connected to MongoDB", "db", cfg.MongoDB)

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logg.Fatal("failed to ping Redis", "error", err)
	}
	logg.Info("connected to Redis", "addr", redisAddr)

	// WebSocket hub
	wsHub := ws.NewHub(logg)

	// Repositories
	ratingRepo := repository.NewRatingRepo(db)
	attemptRepo := repository.NewAttemptRepo(db)
	itemRepo := repository.NewItemRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	nudgeRepo := repository.NewNudgeRepo(db)
	studentRepo := repository.NewStudentRepo(db)

	// Caches
	ratingCache := cache.NewRatingCache(rdb)
	masteryCache := cache.NewMasteryCache(rdb)
	dashboardCache := cache.NewDashboardCache(rdb, cfg.DashboardCacheTTL)

	// Services
	authSvc := service.NewAuthService(cfg)
	studentSvc := service.NewStudentService(studentRepo, authSvc)
	generator := service.NewGeneratorService(aiConfig, logg)
	practiceSvc := service.NewPracticeService(
		ratingRepo, attemptRepo, itemRepo, studentRepo,
		ratingCache, masteryCache, dashboardCache,
		generator, cfg.Scoring, logg,
	)
	qaSvc := service.NewQAService(interactionRepo, studentRepo, generator, cfg.Confidence, logg)
	sessionSvc := service.NewSessionService(sessionRepo, studentRepo, generator, logg)
	nudgeSvc := service.NewNudgeService(nudgeRepo, studentRepo, generator, cfg.NudgeInactiveAfter, cfg.NudgeInterval, logg)
	dashboardSvc := service.NewDashboardService(
		ratingRepo, attemptRepo, interactionRepo, sessionRepo, studentRepo,
		masteryCache, dashboardCache, logg,
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	practiceSvc.SetBroadcaster(wsHub)
	qaSvc.SetBroadcaster(wsHub)
	sessionSvc.SetBroadcaster(wsHub)
	nudgeSvc.SetBroadcaster(wsHub)

	// Background nudge sweep
	nudgeCtx, stopNudges := context.WithCancel(ctx)
	defer stopNudges()
	go nudgeSvc.Run(nudgeCtx)

	router := rest.NewRouter(&rest.Container{
		AuthService:      authSvc,
		StudentService:   studentSvc,
		PracticeService:  practiceSvc,
		QAService:        qaSvc,
		SessionService:   sessionSvc,
		NudgeService:     nudgeSvc,
		DashboardService: dashboardSvc,
		WSHub:            wsHub,
		Logger:           logg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logg.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("shutting down")

	stopNudges()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Fatal("forced shutdown", "error", err)
	}

	logg.Info("server exited")
}
