package main

import (
	"time"

	"github.com/garciajoao467/app-nutri/config"
	"github.com/garciajoao467/app-nutri/controllers"
	"github.com/garciajoao467/app-nutri/routes"
	"github.com/garciajoao467/app-nutri/services"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	log.Info("database connected and migrated")

	gemini := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	usda := services.NewUSDAService(cfg.USDAAPIKey, log)
	mealSvc := services.NewMealService(db, gemini, usda, log)
	summarySvc := services.NewSummaryService(db, log)
	authSvc := services.NewAuthService(db, cfg.JWTSecret, time.Duration(cfg.TokenExpireMinutes)*time.Minute, log)

	r := routes.SetupRouter(
		db,
		[]byte(cfg.JWTSecret),
		controllers.NewAuthController(authSvc),
		controllers.NewMealController(mealSvc),
		controllers.NewSummaryController(summarySvc),
	)

	log.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
