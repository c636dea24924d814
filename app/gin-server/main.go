package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Perfect-Cube/Reflex/config"
	"github.com/Perfect-Cube/Reflex/internal/api/handlers"
	"github.com/Perfect-Cube/Reflex/internal/api/middleware"
	"github.com/Perfect-Cube/Reflex/internal/api/routes"
	"github.com/Perfect-Cube/Reflex/internal/cache"
	"github.com/Perfect-Cube/Reflex/internal/logger"
	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
	mongorepo "github.com/Perfect-Cube/Reflex/internal/repositories/mongo"
	pgrepo "github.com/Perfect-Cube/Reflex/internal/repositories/postgres"
	"github.com/Perfect-Cube/Reflex/internal/services"
	"github.com/Perfect-Cube/Reflex/internal/vision"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// PostgreSQL is the system of record; nothing runs without it.
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init failed")
	}
	log.Info("PostgreSQL connected")

	// Redis backs the report cache. Degrade to uncached reads when absent.
	var reportCache cache.Cache = cache.NewNoop()
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Warn("Redis unavailable, report caching disabled")
	} else {
		reportCache = cache.NewRedisCache(config.RedisClient)
		log.Info("Redis connected")
	}

	// MongoDB archives simulation runs. Optional.
	var simRuns mongorepo.SimulationRepository
	if err := config.InitMongo(); err != nil {
		log.WithError(err).Warn("MongoDB unavailable, simulation archive disabled")
	} else {
		simRuns = mongorepo.NewSimulationRepo(config.MongoDatabase())
		log.Info("MongoDB connected")
	}

	vertexCfg, err := config.LoadVertexConfig()
	if err != nil {
		log.WithError(err).Fatal("Vertex AI config error")
	}
	provider, err := llm.NewVertexGemini(ctx, vertexCfg.ProjectID, vertexCfg.Location, vertexCfg.DefaultModel)
	if err != nil {
		log.WithError(err).Fatal("Vertex AI init failed")
	}
	defer provider.Close()

	cascadeCfg := config.LoadCascadeConfig()
	detector, err := vision.LoadCascadeDetector(cascadeCfg.FaceFinderPath, cascadeCfg.PuplocPath)
	if err != nil {
		log.WithError(err).Fatal("cascade load failed")
	}

	interviewRepo := pgrepo.NewInterviewRepo(config.PostgresDB)
	messageRepo := pgrepo.NewMessageRepo(config.PostgresDB)
	reportRepo := pgrepo.NewReportRepo(config.PostgresDB)
	feedbackRepo := pgrepo.NewFeedbackRepo(config.PostgresDB)

	reportSvc := services.NewReportService(interviewRepo, messageRepo, reportRepo, reportCache, provider, log)
	interviewSvc := services.NewInterviewService(interviewRepo, messageRepo, feedbackRepo, provider, reportSvc, log)
	feedbackSvc := services.NewFeedbackService(interviewRepo, messageRepo, feedbackRepo, provider, log)
	simulationSvc := services.NewSimulationService(provider, simRuns, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(config.AllowedOrigins()))

	routes.RegisterRoutes(r, routes.Deps{
		Interview:  handlers.NewInterviewHandler(interviewSvc),
		Report:     handlers.NewReportHandler(reportSvc),
		Feedback:   handlers.NewFeedbackHandler(feedbackSvc),
		Proctor:    handlers.NewProctorHandler(interviewSvc, detector, log),
		Simulation: handlers.NewSimulationHandler(simulationSvc, log),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
