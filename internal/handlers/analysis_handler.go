package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/models"
	"kayaai/career-navigator/internal/repositories"
	"kayaai/career-navigator/internal/services"
)

type AnalysisHandler struct {
	sessions     repositories.SessionRepository
	orchestrator *services.Orchestrator
	logger       logging.Logger
}

func NewAnalysisHandler(
	sessions repositories.SessionRepository,
	orchestrator *services.Orchestrator,
	logger logging.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		sessions:     sessions,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// HandleAnalyze handles POST /sessions/:id/analyze. The pipeline runs at most
// once per submission; a repeated call returns the stored result.
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	s, err := h.sessions.FindByID(id)
	if err != nil {
		return errorResponse(c, err)
	}

	if s.AnalysisComplete {
		return c.JSON(models.AnalysisResponse{Session: models.NewSessionResponse(s), Result: s.Result})
	}

	if s.Page != models.PageAnalysis {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No submitted input to analyze",
		})
	}

	// Runs outside the repository lock; providers can take a while.
	result := h.orchestrator.Analyze(c.UserContext(), s.Input)

	updated, err := h.sessions.Update(id, func(s *models.Session) error {
		return s.CompleteAnalysis(result)
	})
	if errors.Is(err, models.ErrInvalidTransition) {
		// Another request finished first.
		current, findErr := h.sessions.FindByID(id)
		if findErr == nil && current.AnalysisComplete {
			return c.JSON(models.AnalysisResponse{Session: models.NewSessionResponse(current), Result: current.Result})
		}
	}
	if err != nil {
		return errorResponse(c, err)
	}

	h.logger.Infof("✅ Session %s analysis complete: %.1f/10", updated.ID, updated.Result.DisplayScore)

	return c.JSON(models.AnalysisResponse{Session: models.NewSessionResponse(updated), Result: updated.Result})
}
