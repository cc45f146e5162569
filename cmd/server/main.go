package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/glucheck/backend/config"
	"github.com/glucheck/backend/controllers"
	"github.com/glucheck/backend/database"
	"github.com/glucheck/backend/logger"
	"github.com/glucheck/backend/ml"
	"github.com/glucheck/backend/repository"
	"github.com/glucheck/backend/routes"
	"github.com/glucheck/backend/services"
)

func main() {
	logger.Init()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system env vars")
	}

	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if err := database.InitDB(cfg); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	// The classifier and the nutrition catalog load once, before any request
	// is served. Either failing is fatal: the pipeline never runs degraded.
	classifier, err := ml.LoadClassifier(cfg.ModelPath)
	if err != nil {
		logger.Fatal("failed to load classifier", zap.Error(err))
	}
	catalog, err := ml.LoadCatalog(cfg.NutritionPath)
	if err != nil {
		logger.Fatal("failed to load nutrition catalog", zap.Error(err))
	}
	logger.Info("model and catalog loaded",
		zap.String("model", cfg.ModelPath),
		zap.Int("catalog_items", catalog.Len()))

	db := database.GetDBInstance()
	users := repository.NewUserRepository(db)
	predictions := repository.NewPredictionRepository(db)

	builder := ml.NewBuilder(cfg.Validation)
	assessments := services.NewAssessmentService(builder, classifier, predictions)
	recommendations := services.NewRecommendationService(catalog, predictions)
	stats := services.NewStatsService(predictions)

	r := routes.SetupRouter(cfg, routes.Controllers{
		Auth:      controllers.NewAuthController(users, []byte(cfg.JWTSecretKey)),
		User:      controllers.NewUserController(users),
		Predict:   controllers.NewPredictController(assessments),
		History:   controllers.NewHistoryController(assessments),
		Stats:     controllers.NewStatsController(stats),
		Recommend: controllers.NewRecommendController(recommendations),
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
