package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/repositories"
	"kayaai/career-navigator/internal/services"
)

type Dependencies struct {
	Sessions     repositories.SessionRepository
	Orchestrator *services.Orchestrator
	Extractor    services.DocumentExtractor
	Reports      *services.ReportBuilder
	MaxFileSize  int64
	Logger       logging.Logger
}

// RegisterRoutes mounts the API on router, normally the /api/v1 group.
func RegisterRoutes(router fiber.Router, deps Dependencies) {
	sessionHandler := NewSessionHandler(deps.Sessions, deps.Orchestrator, deps.Logger)
	inputHandler := NewInputHandler(deps.Sessions, deps.Extractor, deps.MaxFileSize, deps.Logger)
	analysisHandler := NewAnalysisHandler(deps.Sessions, deps.Orchestrator, deps.Logger)
	resultHandler := NewResultHandler(deps.Sessions, deps.Reports)

	// Health check
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now(),
			"sessions": deps.Sessions.Count(),
		})
	})

	router.Get("/catalog", HandleCatalog)

	router.Post("/sessions", sessionHandler.HandleCreate)
	router.Get("/sessions/:id", sessionHandler.HandleGet)
	router.Delete("/sessions/:id", sessionHandler.HandleDelete)
	router.Post("/sessions/:id/start", sessionHandler.HandleStart)
	router.Post("/sessions/:id/home", sessionHandler.HandleHome)
	router.Post("/sessions/:id/test-resume", sessionHandler.HandleTestResume)
	router.Post("/sessions/:id/input", inputHandler.HandleSubmitInput)
	router.Post("/sessions/:id/analyze", analysisHandler.HandleAnalyze)
	router.Get("/sessions/:id/results", resultHandler.HandleGetResults)
	router.Get("/sessions/:id/report", resultHandler.HandleDownloadReport)
	router.Post("/sessions/:id/reset", sessionHandler.HandleReset)
}
