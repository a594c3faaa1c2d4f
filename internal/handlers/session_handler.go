package handlers

import (
	"github.com/gofiber/fiber/v2"

	"kayaai/career-navigator/internal/logging"
	"kayaai/career-navigator/internal/models"
	"kayaai/career-navigator/internal/repositories"
	"kayaai/career-navigator/internal/services"
)

type SessionHandler struct {
	sessions     repositories.SessionRepository
	orchestrator *services.Orchestrator
	logger       logging.Logger
}

func NewSessionHandler(
	sessions repositories.SessionRepository,
	orchestrator *services.Orchestrator,
	logger logging.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessions:     sessions,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	s, err := h.sessions.Create()
	if err != nil {
		return err
	}

	h.logger.Debugf("🆕 Session %s created", s.ID)

	return c.Status(fiber.StatusCreated).JSON(models.NewSessionResponse(s))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	s, err := h.sessions.FindByID(id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.NewSessionResponse(s))
}

// HandleDelete handles DELETE /sessions/:id
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.sessions.Delete(id); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleStart handles POST /sessions/:id/start
func (h *SessionHandler) HandleStart(c *fiber.Ctx) error {
	return h.transition(c, (*models.Session).Start)
}

// HandleHome handles POST /sessions/:id/home
func (h *SessionHandler) HandleHome(c *fiber.Ctx) error {
	return h.transition(c, (*models.Session).BackToHome)
}

// HandleReset handles POST /sessions/:id/reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	return h.transition(c, (*models.Session).Reset)
}

// HandleTestResume handles POST /sessions/:id/test-resume
func (h *SessionHandler) HandleTestResume(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req models.TestResumeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
			})
		}
	}

	if err := validate.Struct(req); err != nil {
		return errorResponse(c, models.NewValidationError("Please enter a valid email address."))
	}

	resume := h.orchestrator.BuildTestResume(req)

	if _, err := h.sessions.Update(id, func(s *models.Session) error {
		return s.SetTestResume(resume)
	}); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.TestResumeResponse{
		Message: "Test resume generated successfully!",
		Resume:  resume,
	})
}

func (h *SessionHandler) transition(c *fiber.Ctx, fn func(s *models.Session) error) error {
	id, err := sessionID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	s, err := h.sessions.Update(id, fn)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.NewSessionResponse(s))
}

// HandleCatalog handles GET /catalog
func HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(models.CatalogResponse{
		Companies: models.Companies,
		JobRoles:  models.JobRoles,
	})
}
