package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

type HistoryHandler struct {
	history repositories.AnalysisRepository
}

func NewHistoryHandler(history repositories.AnalysisRepository) *HistoryHandler {
	return &HistoryHandler{
		history: history,
	}
}

// HandleList handles GET /analyses
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", repositories.DefaultRecentLimit)

	records, err := h.history.FindRecent(limit)
	if err != nil {
		return historyError(c, err)
	}

	return c.JSON(fiber.Map{
		"count":    len(records),
		"analyses": records,
	})
}

// HandleGet handles GET /analyses/:id
func (h *HistoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	record, err := h.history.FindByID(id)
	if err != nil {
		return historyError(c, err)
	}

	return c.JSON(record)
}

func historyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrHistoryDisabled):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis history is disabled",
		})
	case errors.Is(err, repositories.ErrAnalysisNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analysis history",
		})
	}
}
