package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// ErrPipelineFault reports a programming error inside the pipeline. It is never
// folded into the state's error log.
var ErrPipelineFault = errors.New("pipeline fault")

type AnalyzerService interface {
	Run(ctx context.Context, initial models.WorkflowState) (models.WorkflowState, error)
}

type phase int

const (
	phaseValidating phase = iota
	phaseExtracting
	phaseScoring
	phaseSummarizing
	phaseDone
	phaseHalted
)

func (p phase) String() string {
	switch p {
	case phaseValidating:
		return "validating"
	case phaseExtracting:
		return "extracting"
	case phaseScoring:
		return "scoring"
	case phaseSummarizing:
		return "summarizing"
	case phaseDone:
		return "done"
	case phaseHalted:
		return "halted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type analyzerService struct {
	stages map[phase]Stage
	log    *zap.Logger
}

func NewAnalyzerService(llm LLMService, reader FileReader, minResumeWords int, log *zap.Logger) AnalyzerService {
	log = log.Named("analyzer")
	return newAnalyzer(
		NewValidateStage(llm, reader, minResumeWords, log),
		NewExtractStage(llm, log),
		NewScoreStage(llm, log),
		NewSummarizeStage(llm, log),
		log,
	)
}

func newAnalyzer(validate, extract, score, summarize Stage, log *zap.Logger) *analyzerService {
	return &analyzerService{
		stages: map[phase]Stage{
			phaseValidating:  validate,
			phaseExtracting:  extract,
			phaseScoring:     score,
			phaseSummarizing: summarize,
		},
		log: log,
	}
}

// ShouldContinue is the single branch of the pipeline: analysis proceeds only
// when validation ran and accepted the input.
func ShouldContinue(state models.WorkflowState) bool {
	return state.Valid()
}

func next(current phase, state models.WorkflowState) phase {
	switch current {
	case phaseValidating:
		if ShouldContinue(state) {
			return phaseExtracting
		}
		return phaseHalted
	case phaseExtracting:
		return phaseScoring
	case phaseScoring:
		return phaseSummarizing
	default:
		return phaseDone
	}
}

// Run drives the state through the pipeline. Stage failures are recorded in the
// returned state; only ErrPipelineFault is returned as an error.
func (a *analyzerService) Run(ctx context.Context, initial models.WorkflowState) (final models.WorkflowState, err error) {
	defer func() {
		if r := recover(); r != nil {
			analysisRunsTotal.WithLabelValues(outcomeFault).Inc()
			a.log.Error("pipeline fault", zap.Any("panic", r), zap.Stack("stack"))
			final, err = initial, fmt.Errorf("%w: %v", ErrPipelineFault, r)
		}
	}()

	state := initial
	current := phaseValidating

	for current != phaseDone && current != phaseHalted {
		stage, ok := a.stages[current]
		if !ok || stage == nil {
			panic(fmt.Sprintf("no stage registered for phase %s", current))
		}

		state = a.runStage(ctx, stage, state)
		current = next(current, state)

		a.log.Debug("transition", zap.String("to", current.String()), zap.String("current_step", state.CurrentStep))
	}

	outcome := outcomeCompleted
	if current == phaseHalted {
		outcome = outcomeHalted
	}
	analysisRunsTotal.WithLabelValues(outcome).Inc()

	a.log.Info("analysis finished",
		zap.String("outcome", outcome),
		zap.Float64("match_score", state.MatchScore),
		zap.Int("errors", len(state.Errors)),
	)

	return state, nil
}

func (a *analyzerService) runStage(ctx context.Context, stage Stage, prev models.WorkflowState) models.WorkflowState {
	name := stage.Name()
	log := a.log.With(logger.StageFields(name, prev.CurrentStep)...)
	log.Info("stage started")

	start := time.Now()
	state, err := stage.Run(ctx, prev)
	if err != nil {
		stageFailuresTotal.WithLabelValues(name).Inc()
		log.Warn("stage failed, using defaults", zap.Error(err))
		state = stage.Degrade(state, err)
	}
	stageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if len(state.Errors) < len(prev.Errors) {
		panic(fmt.Sprintf("stage %s dropped entries from the error log", name))
	}

	state.CurrentStep = name
	return state
}
