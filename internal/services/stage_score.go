package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const maxRecommendations = 5

type scoringResult struct {
	MatchedKeywords []string `mapstructure:"matched_keywords"`
	MissingKeywords []string `mapstructure:"missing_keywords"`
	MatchScore      float64  `mapstructure:"match_score"`
	ConfidenceNotes string   `mapstructure:"confidence_notes"`
	Recommendations []string `mapstructure:"recommendations"`
}

type scoreStage struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewScoreStage(llm LLMService, log *zap.Logger) Stage {
	return &scoreStage{llm: llm, prompts: NewPromptBuilder(), log: log}
}

func (s *scoreStage) Name() string { return StageScore }

func (s *scoreStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	raw, err := s.llm.InvokeStructured(ctx, analysisPrompt,
		s.prompts.BuildAnalysisInput(state.ResumeKeywords, state.TargetKeywords), 0.0)
	if err != nil {
		return state, err
	}

	var result scoringResult
	if err := decodeStructured(raw, &result); err != nil {
		return state, err
	}

	state.MatchedKeywords = nonNil(result.MatchedKeywords)
	state.MissingKeywords = nonNil(result.MissingKeywords)
	state.MatchScore = clampScore(result.MatchScore)
	// A score is only meaningful against a non-empty target.
	if len(state.TargetKeywords) == 0 {
		state.MatchScore = 0
	}
	state.ConfidenceNotes = result.ConfidenceNotes

	recs := nonNil(result.Recommendations)
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	state.Recommendations = recs

	s.log.Info("analysis scored",
		zap.Float64("match_score", state.MatchScore),
		zap.Int("matched", len(state.MatchedKeywords)),
		zap.Int("missing", len(state.MissingKeywords)),
		zap.Int("recommendations", len(state.Recommendations)),
	)

	return state, nil
}

func (s *scoreStage) Degrade(state models.WorkflowState, err error) models.WorkflowState {
	msg := "Analysis and scoring error: " + err.Error()
	state.MatchedKeywords = []string{}
	state.MissingKeywords = []string{}
	state.MatchScore = 0
	state.ConfidenceNotes = msg
	state.Recommendations = []string{}
	return state.WithError(msg)
}
