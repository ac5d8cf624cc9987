package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pybotlabs/pybot-api/adapters/event"
	httpAdapter "github.com/pybotlabs/pybot-api/adapters/http"
	"github.com/pybotlabs/pybot-api/adapters/llm"
	"github.com/pybotlabs/pybot-api/adapters/persistence"
	"github.com/pybotlabs/pybot-api/adapters/sandbox"
	chatUC "github.com/pybotlabs/pybot-api/internal/application/usecase/chat"
	executeUC "github.com/pybotlabs/pybot-api/internal/application/usecase/execute"
	lessonUC "github.com/pybotlabs/pybot-api/internal/application/usecase/lesson"
	profileUC "github.com/pybotlabs/pybot-api/internal/application/usecase/profile"
	progressUC "github.com/pybotlabs/pybot-api/internal/application/usecase/progress"
	rewardsUC "github.com/pybotlabs/pybot-api/internal/application/usecase/rewards"
	"github.com/pybotlabs/pybot-api/internal/config"
	"github.com/pybotlabs/pybot-api/internal/domain/lesson"
	"github.com/pybotlabs/pybot-api/pkg/identity"
	"github.com/pybotlabs/pybot-api/pkg/logger"
	"github.com/pybotlabs/pybot-api/pkg/tracing"
)

func main() {
	fmt.Println("Start PyBot Tutor API Server...")

	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "pybot-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Progress events are optional; without brokers the update path
	// still works, only the back-office feed is off.
	var publisher progressUC.ProgressPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	rewardsRepo := persistence.NewPostgresRewardsRepo(dbPool, appLogger)
	var lessonRepo lesson.Repository = persistence.NewPostgresLessonRepo(dbPool, appLogger)
	lessonRepo = persistence.NewCachedLessonRepo(lessonRepo, redisClient, cfg.Redis.LessonTTL, appLogger)

	// Services
	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	tutor, err := llm.NewOpenAITutorAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init tutor adapter", err)
	}
	runner := sandbox.NewStubRunner(appLogger)

	// Use Cases
	chatUseCase := chatUC.NewChatUseCase(profileRepo, tutor, appLogger)
	executeUseCase := executeUC.NewExecuteUseCase(runner)
	progressUseCase := progressUC.NewProgressUseCase(profileRepo, publisher, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo)
	rewardsUseCase := rewardsUC.NewRewardsUseCase(rewardsRepo)
	catalogUseCase := lessonUC.NewCatalogUseCase(lessonRepo)

	// HTTP Handlers
	chatHandler := httpAdapter.NewChatHandler(chatUseCase, appLogger)
	executeHandler := httpAdapter.NewExecuteHandler(executeUseCase)
	progressHandler := httpAdapter.NewProgressHandler(progressUseCase, profileUseCase, appLogger)
	rewardsHandler := httpAdapter.NewRewardsHandler(rewardsUseCase)
	lessonHandler := httpAdapter.NewLessonHandler(catalogUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(verifier, appLogger)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.POST("/chat", chatHandler.Chat)
			private.POST("/execute", executeHandler.Execute)
			private.GET("/progress", progressHandler.GetProgress)
			private.POST("/progress", progressHandler.UpdateProgress)
			private.PUT("/profile", progressHandler.UpdateProfile)
			private.GET("/rewards", rewardsHandler.GetRewards)
			private.GET("/lessons", lessonHandler.ListLessons)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
