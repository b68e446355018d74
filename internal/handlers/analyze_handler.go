package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const analysisIDHeader = "X-Analysis-ID"

type AnalysisHandler struct {
	worker  services.Worker
	history repositories.AnalysisRepository
	log     *zap.Logger
}

func NewAnalysisHandler(
	worker services.Worker,
	history repositories.AnalysisRepository,
	log *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		worker:  worker,
		history: history,
		log:     log.Named("http"),
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalysisRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	state := models.NewWorkflowState(req.ResumeText, req.JobDescription, "")
	return h.respond(c, state, models.SourceText)
}

// respond runs the pipeline for state and writes the analysis response.
func (h *AnalysisHandler) respond(c *fiber.Ctx, state models.WorkflowState, source models.AnalysisSource) error {
	final, err := h.worker.Submit(c.UserContext(), state)
	if err != nil {
		h.log.Error("analysis failed", zap.String("source", string(source)), zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Analysis failed: "+err.Error())
	}

	resp := models.NewAnalysisResponse(final)

	record := models.NewAnalysisRecord(source, final, resp)
	switch err := h.history.Create(record); {
	case err == nil:
		c.Set(analysisIDHeader, record.ID.String())
	case errors.Is(err, repositories.ErrHistoryDisabled):
	default:
		h.log.Warn("failed to store analysis", zap.Error(err))
	}

	h.log.Info("analysis served",
		zap.String("source", string(source)),
		zap.Bool("success", resp.Success),
		zap.Float64("match_score", resp.MatchScore),
		zap.Int("errors", len(resp.Errors)),
	)

	return c.JSON(resp)
}
