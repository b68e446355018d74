package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type extractionResult struct {
	ResumeKeywords  []string `mapstructure:"resume_keywords"`
	TargetKeywords  []string `mapstructure:"target_keywords"`
	ExtractionNotes string   `mapstructure:"extraction_notes"`
}

type extractStage struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewExtractStage(llm LLMService, log *zap.Logger) Stage {
	return &extractStage{llm: llm, prompts: NewPromptBuilder(), log: log}
}

func (s *extractStage) Name() string { return StageExtract }

func (s *extractStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	raw, err := s.llm.InvokeStructured(ctx, extractionPrompt,
		s.prompts.BuildExtractionInput(state.ResumeText, state.JobDescription), 0.0)
	if err != nil {
		return state, err
	}

	var result extractionResult
	if err := decodeStructured(raw, &result); err != nil {
		return state, err
	}

	state.ResumeKeywords = uniqueKeywords(result.ResumeKeywords)
	state.TargetKeywords = uniqueKeywords(result.TargetKeywords)
	state.ExtractionNotes = result.ExtractionNotes

	s.log.Info("keywords extracted",
		zap.Int("resume_keywords", len(state.ResumeKeywords)),
		zap.Int("target_keywords", len(state.TargetKeywords)),
	)
	s.log.Debug("extraction notes", zap.String("notes", state.ExtractionNotes))

	return state, nil
}

func (s *extractStage) Degrade(state models.WorkflowState, err error) models.WorkflowState {
	msg := "Keyword extraction error: " + err.Error()
	state.ResumeKeywords = []string{}
	state.TargetKeywords = []string{}
	state.ExtractionNotes = msg
	return state.WithError(msg)
}
