package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/logger"
)

var ErrEmptyResponse = errors.New("no text content in response")

// LLMService is the model capability used by the pipeline stages.
type LLMService interface {
	// InvokeStructured asks the model for a JSON object and decodes it.
	InvokeStructured(ctx context.Context, systemPrompt, userInput string, temperature float32) (map[string]any, error)
	// InvokeText asks the model for free text.
	InvokeText(ctx context.Context, systemPrompt, userInput string, temperature float32) (string, error)
}

// modelsAPI is the subset of *genai.Models used here.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiOptions struct {
	APIKey       string
	Model        string
	MaxAttempts  int
	InitialDelay time.Duration
}

type geminiService struct {
	models       modelsAPI
	modelName    string
	maxAttempts  int
	initialDelay time.Duration
	log          *zap.Logger
}

func NewGeminiService(ctx context.Context, opts GeminiOptions, log *zap.Logger) (LLMService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, opts, log), nil
}

func newGeminiService(models modelsAPI, opts GeminiOptions, log *zap.Logger) *geminiService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &geminiService{
		models:       models,
		modelName:    opts.Model,
		maxAttempts:  opts.MaxAttempts,
		initialDelay: opts.InitialDelay,
		log:          log.Named("gemini"),
	}
}

// InvokeStructured implements LLMService.
func (g *geminiService) InvokeStructured(ctx context.Context, systemPrompt, userInput string, temperature float32) (map[string]any, error) {
	text, err := g.generateWithRetry(ctx, systemPrompt, userInput, temperature, true)
	if err != nil {
		return nil, err
	}
	return parseStructured(text)
}

// InvokeText implements LLMService.
func (g *geminiService) InvokeText(ctx context.Context, systemPrompt, userInput string, temperature float32) (string, error) {
	text, err := g.generateWithRetry(ctx, systemPrompt, userInput, temperature, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (g *geminiService) generate(ctx context.Context, systemPrompt, userInput string, temperature float32, structured bool) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       &temperature,
		MaxOutputTokens:   4096,
	}
	if structured {
		config.ResponseMIMEType = "application/json"
	}

	g.log.Debug("calling model",
		zap.String("model", g.modelName),
		zap.Bool("structured", structured),
		zap.String("input", logger.TruncateForLog(userInput, 200)),
	)

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(userInput), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w (nil response)", ErrEmptyResponse)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	if resp.UsageMetadata != nil {
		g.log.Debug("model response received",
			zap.Int("chars", len(text)),
			zap.Int32("tokens", resp.UsageMetadata.TotalTokenCount),
		)
	}

	return text, nil
}

func (g *geminiService) generateWithRetry(ctx context.Context, systemPrompt, userInput string, temperature float32, structured bool) (string, error) {
	var lastErr error
	delay := g.initialDelay

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		text, err := g.generate(ctx, systemPrompt, userInput, temperature, structured)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		if attempt == g.maxAttempts {
			break
		}

		g.log.Warn("model call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", fmt.Errorf("failed after %d attempts: %w", g.maxAttempts, lastErr)
}

// parseStructured decodes a model reply into a JSON object.
func parseStructured(response string) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("LLM response is not valid JSON: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("LLM response is not a JSON object: %s", logger.TruncateForLog(response, 120))
	}
	return result, nil
}

// extractJSON pulls the JSON payload out of text that may be wrapped in markdown fences.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")
	if startArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return strings.TrimSpace(text)
}
