package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	healthAttempts = 10
	healthInterval = 2 * time.Second
	healthTimeout  = 5 * time.Second
	analyzeTimeout = 5 * time.Minute
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Send a payload file to the API, starting a local server when none is running",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("payload", "data/payload.json", "JSON file with resume_text and job_description")
	analyzeCmd.Flags().String("out", "data/results.json", "where to save the analysis response")
	analyzeCmd.Flags().String("server", "", "base URL of a running API (default http://localhost:$PORT)")
}

func analyze(cmd *cobra.Command) {
	cfg := config.Load(viper.GetViper())

	logger, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	payload, _ := cmd.Flags().GetString("payload")
	out, _ := cmd.Flags().GetString("out")
	baseURL, _ := cmd.Flags().GetString("server")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	baseURL = strings.TrimRight(baseURL, "/")

	req, err := readPayload(payload)
	if err != nil {
		logger.Fatal("loading payload", zap.Error(err))
	}

	if checkHealth(baseURL) {
		logger.Info("server is already running", zap.String("url", baseURL))
	} else {
		srv, err := newServer(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatal("initializing local server", zap.Error(err))
		}
		go func() {
			if err := srv.listen(); err != nil {
				logger.Error("local server stopped", zap.Error(err))
			}
		}()
		defer srv.shutdown()

		if !waitForServer(baseURL, healthAttempts, healthInterval) {
			logger.Error("server failed to start", zap.String("url", baseURL))
			return
		}
		logger.Info("server is ready", zap.String("url", baseURL))
	}

	logger.Info("sending analysis request")
	body, err := postAnalysis(baseURL, req, analyzeTimeout)
	if err != nil {
		logger.Error("analysis request failed", zap.Error(err))
		return
	}

	pretty, err := saveResult(out, body)
	if err != nil {
		logger.Error("saving result", zap.Error(err))
		return
	}

	fmt.Println(string(pretty))
	logger.Info("results saved", zap.String("path", out))
}

func readPayload(path string) (models.AnalysisRequest, error) {
	var req models.AnalysisRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("reading payload %q: %w", path, err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("parsing payload %q: %w", path, err)
	}
	return req, nil
}

func checkHealth(baseURL string) bool {
	code, _, errs := fiber.Get(baseURL + "/health").Timeout(healthTimeout).Bytes()
	return len(errs) == 0 && code == fiber.StatusOK
}

func waitForServer(baseURL string, attempts int, interval time.Duration) bool {
	for i := 0; i < attempts; i++ {
		if checkHealth(baseURL) {
			return true
		}
		if i < attempts-1 {
			time.Sleep(interval)
		}
	}
	return false
}

func postAnalysis(baseURL string, req models.AnalysisRequest, timeout time.Duration) ([]byte, error) {
	code, body, errs := fiber.Post(baseURL + handlers.APIPrefix + "/analyze").
		Timeout(timeout).
		JSON(req).
		Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", code, bytes.TrimSpace(body))
	}
	return body, nil
}

// saveResult indents body and writes it to path, creating parent directories.
func saveResult(path string, body []byte) ([]byte, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}
