package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/secrets"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type server struct {
	app    *fiber.App
	worker services.Worker
	addr   string
	log    *zap.Logger
}

// newServer wires every dependency of the HTTP service from cfg.
func newServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*server, error) {
	history := repositories.NewDisabledAnalysisRepository()
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		history = repositories.NewAnalysisRepository(db)
		log.Info("analysis history enabled")
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return nil, err
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	llm, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:       apiKey,
		Model:        cfg.Gemini.Model,
		MaxAttempts:  cfg.Worker.RetryMaxAttempts,
		InitialDelay: cfg.Worker.RetryInitialDelay,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Info("gemini client initialized", zap.String("model", cfg.Gemini.Model))

	analyzer := services.NewAnalyzerService(llm, services.NewFileReader(), cfg.Pipeline.MinResumeWords, log)

	worker := services.NewWorker(analyzer, cfg.Worker.Concurrency, log)
	worker.Start(context.Background())

	analysisHandler := handlers.NewAnalysisHandler(worker, history, log)
	app := handlers.NewApp(handlers.Handlers{
		Analysis: analysisHandler,
		Upload:   handlers.NewUploadHandler(analysisHandler, storageService, cfg.Storage.MaxFileSize),
		History:  handlers.NewHistoryHandler(history),
	}, cfg.Storage.MaxFileSize)

	return &server{
		app:    app,
		worker: worker,
		addr:   fmt.Sprintf(":%s", cfg.Server.Port),
		log:    log,
	}, nil
}

func (s *server) listen() error {
	s.log.Info("server starting", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

func (s *server) shutdown() {
	s.log.Info("shutting down server")
	if err := s.app.Shutdown(); err != nil {
		s.log.Error("server forced to shutdown", zap.Error(err))
	}
	s.worker.Stop()
}
