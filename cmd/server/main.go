package main

import (
	"net/http"
	"os"

	"github.com/mkravets/liveproof/internal/api"
	"github.com/mkravets/liveproof/internal/config"
	"github.com/mkravets/liveproof/internal/database"
	"github.com/mkravets/liveproof/internal/logging"
	"github.com/mkravets/liveproof/internal/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting liveproof backend", "env", cfg.Env, "port", cfg.Port)

	// The model artifact is loaded once and shared read-only for the
	// process lifetime. A missing artifact is not fatal: scoring runs
	// on the rule-based fallback instead.
	model, err := verification.LoadModel(cfg.ModelPath)
	if err != nil {
		logger.Warn("trained model not available, using rule-based fallback",
			"model_path", cfg.ModelPath, "error", err)
		model = nil
	} else {
		logger.Info("trained model loaded",
			"model_path", cfg.ModelPath,
			"model_type", model.ModelType,
			"trained_at", model.TrainedAt,
		)
	}

	var results *database.ResultRepository
	if cfg.PersistenceEnabled() {
		db, err := database.NewDB(database.Config{
			Type:       cfg.DBType,
			SQLitePath: cfg.DBPath,
			URL:        cfg.DatabaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize result store", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		results = database.NewResultRepository(db)
		logger.Info("result store ready", "db_type", cfg.DBType)
	} else {
		logger.Info("result store disabled")
	}

	app := &api.App{
		Verifier:       verification.NewService(model, logger),
		Results:        results,
		Logger:         logger,
		ModelPath:      cfg.ModelPath,
		ChallengeCount: cfg.ChallengeCount,
	}

	router := api.NewRouter(app, cfg.AllowedOrigin)

	logger.Info("server listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
