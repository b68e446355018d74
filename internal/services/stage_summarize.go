package services

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type summarizeStage struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewSummarizeStage(llm LLMService, log *zap.Logger) Stage {
	return &summarizeStage{llm: llm, prompts: NewPromptBuilder(), log: log}
}

func (s *summarizeStage) Name() string { return StageSummarize }

func (s *summarizeStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	summary, err := s.llm.InvokeText(ctx, finalOutputPrompt, s.prompts.BuildFinalOutputInput(state), 0.3)
	if err != nil {
		return state, err
	}

	state.FinalSummary = summary
	state.JSONOutput = map[string]any{
		"match_score":      state.MatchScore,
		"matched_keywords": slices.Clone(nonNil(state.MatchedKeywords)),
		"missing_keywords": slices.Clone(nonNil(state.MissingKeywords)),
		"resume_keywords":  slices.Clone(nonNil(state.ResumeKeywords)),
		"target_keywords":  slices.Clone(nonNil(state.TargetKeywords)),
		"recommendations":  slices.Clone(nonNil(state.Recommendations)),
		"confidence_notes": state.ConfidenceNotes,
		"final_summary":    summary,
	}

	s.log.Info("final summary generated", zap.Int("chars", len(summary)))

	return state, nil
}

func (s *summarizeStage) Degrade(state models.WorkflowState, err error) models.WorkflowState {
	state.FinalSummary = "Error generating summary: " + err.Error()
	msg := "Output formatting error: " + err.Error()
	state.JSONOutput = map[string]any{"error": msg}
	return state.WithError(msg)
}
