package services

import (
	"context"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type validationResult struct {
	IsValid        bool     `mapstructure:"is_valid"`
	Issues         []string `mapstructure:"issues"`
	InputType      string   `mapstructure:"input_type"`
	ExtractionPlan string   `mapstructure:"extraction_plan"`
}

type validateStage struct {
	llm      LLMService
	reader   FileReader
	prompts  *PromptBuilder
	minWords int
	log      *zap.Logger
}

func NewValidateStage(llm LLMService, reader FileReader, minWords int, log *zap.Logger) Stage {
	return &validateStage{
		llm:      llm,
		reader:   reader,
		prompts:  NewPromptBuilder(),
		minWords: minWords,
		log:      log,
	}
}

func (s *validateStage) Name() string { return StageValidate }

func (s *validateStage) Run(ctx context.Context, state models.WorkflowState) (models.WorkflowState, error) {
	if state.FilePath != "" {
		text, err := s.reader.ReadText(state.FilePath)
		if err != nil {
			return state, err
		}
		state.ResumeText = text
	}

	if ok, msg := ValidateTextContent(state.ResumeText, s.minWords); !ok {
		s.log.Info("resume rejected before model call", zap.String("reason", msg))
		state = state.WithValidity(false)
		state.ValidationIssues = []string{msg}
		return state.WithError(msg), nil
	}

	raw, err := s.llm.InvokeStructured(ctx, validatorPrompt,
		s.prompts.BuildValidationInput(state.ResumeText, state.JobDescription), 0.0)
	if err != nil {
		return state, err
	}

	var result validationResult
	if err := decodeStructured(raw, &result); err != nil {
		return state, err
	}

	state = state.WithValidity(result.IsValid)
	state.ValidationIssues = nonNil(result.Issues)
	state.InputType = models.ParseInputType(result.InputType)
	state.ExtractionPlan = result.ExtractionPlan

	s.log.Info("validation result",
		zap.Bool("is_valid", result.IsValid),
		zap.String("input_type", string(state.InputType)),
		zap.Strings("issues", state.ValidationIssues),
	)

	if !result.IsValid {
		if len(state.ValidationIssues) == 0 {
			return state.WithError("Input validation failed"), nil
		}
		return state.WithError(state.ValidationIssues...), nil
	}

	return state, nil
}

func (s *validateStage) Degrade(state models.WorkflowState, err error) models.WorkflowState {
	state = state.WithValidity(false)
	state.ValidationIssues = []string{err.Error()}
	return state.WithError("Validation error: " + err.Error())
}
