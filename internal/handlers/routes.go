package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	AppName     = "Resume Analyzer"
	APIPrefix   = "/api/v1/resume-analyzer"
	AppVersion  = "1.0.0"
	uploadSlack = 1 << 20
)

type Handlers struct {
	Analysis *AnalysisHandler
	Upload   *UploadHandler
	History  *HistoryHandler
}

// NewApp builds the fiber application with middleware and every route registered.
func NewApp(h Handlers, maxFileSize int64) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      AppName + " API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(maxFileSize) + uploadSlack,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: analysisIDHeader,
	}))

	RegisterRoutes(app, h)
	return app
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group(APIPrefix)

	api.Get("/health", healthCheck)
	api.Post("/analyze", h.Analysis.HandleAnalyze)
	api.Post("/analyze-file", h.Upload.HandleAnalyzeFile)
	api.Get("/analyses", h.History.HandleList)
	api.Get("/analyses/:id", h.History.HandleGet)

	app.Get("/health", healthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": AppName + " API",
			"version": AppVersion,
			"endpoints": []string{
				"POST " + APIPrefix + "/analyze",
				"POST " + APIPrefix + "/analyze-file",
				"GET " + APIPrefix + "/health",
				"GET " + APIPrefix + "/analyses",
				"GET " + APIPrefix + "/analyses/:id",
				"GET /metrics",
			},
		})
	})
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": AppName,
	})
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
