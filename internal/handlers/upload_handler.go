package handlers

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type UploadHandler struct {
	analysis       *AnalysisHandler
	storageService services.StorageService
	maxFileSize    int64
}

func NewUploadHandler(
	analysis *AnalysisHandler,
	storageService services.StorageService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		analysis:       analysis,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyzeFile handles POST /analyze-file
func (h *UploadHandler) HandleAnalyzeFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if !services.IsSupportedTextFile(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File must be a text file (.txt, .md, .text)",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	if !utf8.Valid(content) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File must be valid UTF-8 text",
		})
	}

	filename, filePath, err := h.storageService.SaveText(file.Filename, content)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save uploaded file: %v", err),
		})
	}
	defer func() {
		if err := h.storageService.DeleteFile(filename); err != nil {
			h.analysis.log.Warn("failed to remove upload", zap.String("file", filename), zap.Error(err))
		}
	}()

	state := models.NewWorkflowState("", c.FormValue("job_description"), filePath)
	return h.analysis.respond(c, state, models.SourceFile)
}
