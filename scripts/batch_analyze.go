package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/secrets"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	dir := flag.String("dir", "./resumes", "directory with .txt, .md or .text resumes")
	jobFile := flag.String("job", "./reference_docs/job_description.txt", "file with the job description")
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.Load(viper.New())

	logger, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	jobDescription, err := os.ReadFile(*jobFile)
	if err != nil {
		logger.Fatal("reading job description", zap.String("path", *jobFile), zap.Error(err))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Fatal("loading api key", zap.Error(err))
	}

	ctx := context.Background()

	llm, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:       apiKey,
		Model:        cfg.Gemini.Model,
		MaxAttempts:  cfg.Worker.RetryMaxAttempts,
		InitialDelay: cfg.Worker.RetryInitialDelay,
	}, logger)
	if err != nil {
		logger.Fatal("initializing gemini", zap.Error(err))
	}

	analyzer := services.NewAnalyzerService(llm, services.NewFileReader(), cfg.Pipeline.MinResumeWords, logger)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Fatal("reading resume directory", zap.String("dir", *dir), zap.Error(err))
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !services.IsSupportedTextFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(*dir, entry.Name()))
	}
	sort.Strings(paths)

	successCount := 0
	failCount := 0

	for _, path := range paths {
		fileLog := logger.With(zap.String("file", path))

		final, err := analyzer.Run(ctx, models.NewWorkflowState("", string(jobDescription), path))
		if err != nil {
			fileLog.Error("analysis faulted", zap.Error(err))
			failCount++
			continue
		}

		summary := final.Summary()
		if !summary.IsValid {
			fileLog.Warn("resume rejected", zap.Strings("issues", final.ValidationIssues))
			failCount++
			continue
		}

		fileLog.Info("resume analyzed",
			zap.Float64("match_score", summary.MatchScore),
			zap.Int("matched", summary.MatchedCount),
			zap.Int("missing", summary.MissingCount),
			zap.Bool("has_errors", summary.HasErrors),
		)
		successCount++
	}

	logger.Info("batch summary",
		zap.Int("files", len(paths)),
		zap.Int("successful", successCount),
		zap.Int("failed", failCount),
	)

	if failCount > 0 {
		os.Exit(1)
	}
}
